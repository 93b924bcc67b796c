// Package cli は、imagegenコマンドのコマンドライン層を実装します
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"imagegen/configs"
	"imagegen/internal/application"
	"imagegen/internal/domain"
	"imagegen/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

// Dependencies は、コマンドが使用する外部コンポーネントの生成方法を定義します
type Dependencies struct {
	LoadConfig     func() (*configs.Config, error)
	NewImageClient func(apiKey string, openAIConfig *config.OpenAIConfig) application.ImageClient
	NewDownloader  func(downloadConfig *config.DownloadConfig) application.ImageDownloader
	NewImageStore  func(outputConfig *config.OutputConfig) application.ImageStore
}

// options は、コマンドラインフラグの値を保持します
type options struct {
	prompt     string
	promptFile string
	size       string
	count      string
	model      string
	quality    string
	style      string
	verbose    bool
}

// NewRootCommand は、imagegenのルートコマンドを作成します
func NewRootCommand(deps Dependencies, reporter *ConsoleReporter, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "imagegen [prompt]",
		Short: "テキストプロンプトから画像を生成して保存します",
		Long:  longDescription(),
		Example: `  imagegen "A sunset over mountains"
  imagegen --prompt "A cat wearing a hat" --model dall-e-2 --n 3 --size 512x512
  imagegen --prompt-file prompt.txt --model gpt-image-1 --quality high`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.verbose, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), deps, reporter, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.prompt, "prompt", "", "生成する画像のプロンプト")
	flags.StringVar(&opts.promptFile, "prompt-file", "", "プロンプトを読み込むファイルのパス")
	flags.StringVar(&opts.size, "size", domain.DefaultImageSize, "画像サイズ (WxH)")
	flags.StringVar(&opts.count, "n", "1", "生成する画像の枚数")
	flags.StringVar(&opts.model, "model", domain.DefaultImageModel.String(), "使用するモデル ("+strings.Join(modelNames(), ", ")+")")
	flags.StringVar(&opts.quality, "quality", "", "画像の品質 (例: standard, hd, low, medium, high)")
	flags.StringVar(&opts.style, "style", "", "画像のスタイル (dall-e-3のみ: vivid, natural)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "詳細なログを標準エラー出力に表示")

	return cmd
}

// run は、設定の読み込み、リクエストの解決、画像の生成と保存を順に実行します
func run(ctx context.Context, deps Dependencies, reporter *ConsoleReporter, opts *options, args []string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	resolver := application.NewRequestResolver(reporter)
	request, err := resolver.Resolve(application.RawInput{
		Args:       args,
		Prompt:     opts.prompt,
		PromptFile: opts.promptFile,
		Size:       opts.size,
		Count:      opts.count,
		Model:      opts.model,
		Quality:    opts.quality,
		Style:      opts.style,
	})
	if err != nil {
		return err
	}

	apiKey := cfg.OpenAI.APIKey
	service := application.NewImageGenerationService(
		deps.NewImageClient(apiKey, &cfg.OpenAI),
		deps.NewDownloader(&cfg.Download),
		deps.NewImageStore(&cfg.Output),
		reporter,
	)

	report, err := service.Run(ctx, request, apiKey)
	if err != nil {
		return err
	}

	if len(report.Failed) > 0 {
		reporter.Warn("%d枚中%d枚の画像を保存できませんでした", report.Requested, len(report.Failed))
	}
	reporter.Info("%d枚中%d枚の画像を保存しました", report.Requested, len(report.Saved))
	return nil
}

// Execute は、コマンドを実行して終了コードを返します
// 0: 成功（個別の画像の失敗を含む）、1: 致命的なエラー
func Execute(ctx context.Context, deps Dependencies, args []string, stdout, stderr io.Writer) int {
	reporter := NewConsoleReporter(stdout, stderr, DefaultTheme)

	cmd := NewRootCommand(deps, reporter, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(reporter, err)
		return 1
	}
	return 0
}

// reportError は、エラーの種類に応じたメッセージと対処方法を出力します
func reportError(reporter *ConsoleReporter, err error) {
	var genErr *domain.GenerationError

	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		reporter.Error("%v", err)
		reporter.Hint("環境変数または.envファイルに OPENAI_API_KEY を設定してください")
		reporter.Hint("例: export OPENAI_API_KEY=sk-...")
	case errors.Is(err, domain.ErrMissingPrompt):
		reporter.Error("%v", err)
		reporter.Hint(`プロンプトを位置引数、--prompt、--prompt-file のいずれかで指定してください`)
		reporter.Hint(`例: imagegen "A sunset over mountains"`)
	case errors.Is(err, domain.ErrPromptFileRead):
		reporter.Error("%v", err)
		reporter.Hint("--prompt-file に読み込み可能なファイルを指定してください")
	case errors.Is(err, domain.ErrInvalidCount):
		reporter.Error("%v", err)
		reporter.Hint("例: --n 2")
	case errors.Is(err, domain.ErrUnknownModel):
		reporter.Error("%v", err)
		reporter.Hint("使用可能なモデル: %s", strings.Join(modelNames(), ", "))
	case errors.As(err, &genErr) && genErr.StatusCode == 401:
		reporter.Error("%v", err)
		reporter.Hint("OPENAI_API_KEY の値が正しいか確認してください")
	default:
		reporter.Error("%v", err)
	}
}

// configureLogging は、詳細ログの出力先を設定します
func configureLogging(verbose bool, stderr io.Writer) {
	if verbose {
		log.SetOutput(stderr)
		log.SetFlags(log.LstdFlags)
		log.SetPrefix("[verbose] ")
		return
	}
	log.SetOutput(io.Discard)
}

// modelNames は、サポートされているモデル識別子の一覧を返します
func modelNames() []string {
	models := domain.AllImageModels()
	result := make([]string, len(models))
	for i, model := range models {
		result[i] = model.String()
	}
	return result
}

// longDescription は、モデルごとの対応サイズを含むヘルプ文を作成します
func longDescription() string {
	var builder strings.Builder
	builder.WriteString("テキストプロンプトをOpenAI Images APIに送信し、生成された画像を\n")
	builder.WriteString("generated_image_<タイムスタンプ>_<番号>.png としてカレントディレクトリに保存します。\n\n")
	builder.WriteString("プロンプトの優先順位: 位置引数 > --prompt > --prompt-file\n\n")
	builder.WriteString("モデル:\n")
	for _, model := range domain.AllImageModels() {
		count := "1枚のみ"
		if model.SupportsMultipleImages() {
			count = fmt.Sprintf("最大%d枚", model.MaxCount())
		}
		fmt.Fprintf(&builder, "  %-17s %-17s %s  サイズ: %s\n",
			model.String(), model.DisplayName(), count, strings.Join(model.SupportedSizes(), ", "))
	}
	builder.WriteString("\n環境変数:\n")
	builder.WriteString("  OPENAI_API_KEY             APIキー (必須、.envファイルからも読み込み)\n")
	builder.WriteString("  OPENAI_BASE_URL            APIのベースURL\n")
	builder.WriteString("  IMAGEGEN_REQUEST_TIMEOUT   画像生成リクエストのタイムアウト (デフォルト: 120s)\n")
	builder.WriteString("  IMAGEGEN_DOWNLOAD_TIMEOUT  画像ダウンロードのタイムアウト (デフォルト: 60s)\n")
	builder.WriteString("  IMAGEGEN_OUTPUT_DIR        画像の保存先 (デフォルト: .)\n")
	return builder.String()
}
