package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme は、端末出力の配色を定義します
type Theme struct {
	Success lipgloss.Color
	Info    lipgloss.Color
	Warn    lipgloss.Color
	Error   lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme は、デフォルトの配色です
var DefaultTheme = Theme{
	Success: lipgloss.Color("#00ff9f"),
	Info:    lipgloss.Color("#58a6ff"),
	Warn:    lipgloss.Color("#d29922"),
	Error:   lipgloss.Color("#f85149"),
	Dim:     lipgloss.Color("#6e7681"),
}

// ConsoleReporter は、進捗と結果を端末に出力するReporterです
// 進捗と成功は標準出力に、警告とエラーは標準エラー出力に書き込みます
type ConsoleReporter struct {
	out     io.Writer
	errOut  io.Writer
	success lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
}

// NewConsoleReporter は新しいConsoleReporterインスタンスを作成します
// 出力先ごとにカラープロファイルを判定するため、それぞれのRendererを使用します
func NewConsoleReporter(out, errOut io.Writer, theme Theme) *ConsoleReporter {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &ConsoleReporter{
		out:     out,
		errOut:  errOut,
		success: outRenderer.NewStyle().Foreground(theme.Success),
		info:    outRenderer.NewStyle().Foreground(theme.Info),
		warning: errRenderer.NewStyle().Bold(true).Foreground(theme.Warn),
		failure: errRenderer.NewStyle().Bold(true).Foreground(theme.Error),
		hint:    errRenderer.NewStyle().Foreground(theme.Dim),
	}
}

// Info は進捗メッセージを出力します
func (r *ConsoleReporter) Info(format string, args ...any) {
	fmt.Fprintln(r.out, r.info.Render("ℹ")+" "+fmt.Sprintf(format, args...))
}

// Success は成功メッセージを出力します
func (r *ConsoleReporter) Success(format string, args ...any) {
	fmt.Fprintln(r.out, r.success.Render("✓")+" "+fmt.Sprintf(format, args...))
}

// Warn は警告メッセージを出力します
func (r *ConsoleReporter) Warn(format string, args ...any) {
	fmt.Fprintln(r.errOut, r.warning.Render("⚠ 警告:")+" "+fmt.Sprintf(format, args...))
}

// Error はエラーメッセージを出力します
func (r *ConsoleReporter) Error(format string, args ...any) {
	fmt.Fprintln(r.errOut, r.failure.Render("✗ エラー:")+" "+fmt.Sprintf(format, args...))
}

// Hint は対処方法を出力します
func (r *ConsoleReporter) Hint(format string, args ...any) {
	fmt.Fprintln(r.errOut, r.hint.Render("  "+fmt.Sprintf(format, args...)))
}
