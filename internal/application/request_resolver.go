package application

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"imagegen/internal/domain"
)

// RawInput は、コマンドラインから受け取った未検証の入力です
type RawInput struct {
	Args       []string
	Prompt     string
	PromptFile string
	Size       string
	Count      string
	Model      string
	Quality    string
	Style      string
}

// RequestResolver は、生の入力を検証済みのGenerationRequestに変換します
type RequestResolver struct {
	reporter Reporter
	readFile func(name string) ([]byte, error)
}

// NewRequestResolver は新しいRequestResolverインスタンスを作成します
func NewRequestResolver(reporter Reporter) *RequestResolver {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &RequestResolver{
		reporter: reporter,
		readFile: os.ReadFile,
	}
}

// Resolve は、入力からGenerationRequestを作成します
// APIキーの確認はここでは行いません
func (r *RequestResolver) Resolve(input RawInput) (domain.GenerationRequest, error) {
	prompt, err := r.resolvePrompt(input)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	model, err := domain.ParseImageModel(input.Model)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	count, err := parseCount(input.Count)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	// 複数枚生成に対応していないモデルは1枚に制限
	if count > 1 && !model.SupportsMultipleImages() {
		r.reporter.Warn("%s は1回の呼び出しで1枚の画像のみ生成できます。生成枚数を %d から 1 に変更します", model, count)
		count = 1
	}

	size := strings.TrimSpace(input.Size)
	if size == "" {
		size = domain.DefaultImageSize
	}

	// サイズはAPI側で検証されるため、ここでは警告のみ
	if !model.SupportsSize(size) {
		r.reporter.Warn("サイズ %s は %s の既知のサイズ (%s) に含まれていません。APIに拒否される可能性があります",
			size, model, strings.Join(model.SupportedSizes(), ", "))
	}

	request := domain.GenerationRequest{
		Prompt:  prompt,
		Size:    size,
		Count:   count,
		Model:   model,
		Quality: strings.TrimSpace(input.Quality),
		Style:   strings.TrimSpace(input.Style),
	}
	log.Printf("リクエストを解決: %s", request)
	return request, nil
}

// resolvePrompt は、位置引数 > --prompt > --prompt-file の優先順位でプロンプトを決定します
func (r *RequestResolver) resolvePrompt(input RawInput) (string, error) {
	if len(input.Args) > 0 && input.Args[0] != "" {
		log.Printf("プロンプトを位置引数から取得")
		return input.Args[0], nil
	}

	if input.Prompt != "" {
		log.Printf("プロンプトを--promptから取得")
		return input.Prompt, nil
	}

	if input.PromptFile != "" {
		data, err := r.readFile(input.PromptFile)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", domain.ErrPromptFileRead, input.PromptFile, err)
		}
		log.Printf("プロンプトをファイルから取得: %s (%dバイト)", input.PromptFile, len(data))
		if prompt := strings.TrimSpace(string(data)); prompt != "" {
			return prompt, nil
		}
	}

	return "", domain.ErrMissingPrompt
}

// parseCount は、生成枚数を整数として解釈します
func parseCount(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 1, nil
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidCount, value)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidCount, count)
	}
	return count, nil
}
