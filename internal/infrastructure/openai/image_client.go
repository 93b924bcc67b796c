package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"imagegen/internal/domain"
	"imagegen/internal/infrastructure/config"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tidwall/gjson"
)

// ImageClient は、OpenAI Images APIとの通信を行うクライアントです
type ImageClient struct {
	client openai.Client
	config *config.OpenAIConfig
}

// NewImageClient は新しいImageClientインスタンスを作成します
// 画像生成は高コストな操作のため、SDKの自動リトライは無効にします
func NewImageClient(apiKey string, openAIConfig *config.OpenAIConfig) *ImageClient {
	if openAIConfig == nil {
		openAIConfig = config.DefaultOpenAIConfig()
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIConfig.RequestTimeout}),
		option.WithMaxRetries(0),
	}
	if openAIConfig.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(openAIConfig.BaseURL))
	}

	return &ImageClient{
		client: openai.NewClient(opts...),
		config: openAIConfig,
	}
}

// GenerateImages は、Images APIに画像生成を1回だけリクエストします
func (c *ImageClient) GenerateImages(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
	log.Printf("OpenAI APIに画像生成をリクエスト中: model=%s, n=%d, size=%s", request.Model, request.Count, request.Size)

	resp, err := c.client.Images.Generate(ctx, buildGenerateParams(request))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &domain.GenerationError{Message: "OpenAI APIへのリクエストがタイムアウトしました", Err: err}
		}
		return nil, toGenerationError(err)
	}

	images := make([]domain.ImageResult, 0, len(resp.Data))
	for i, data := range resp.Data {
		images = append(images, domain.ImageResult{
			Index:         i + 1,
			URL:           data.URL,
			B64JSON:       data.B64JSON,
			RevisedPrompt: data.RevisedPrompt,
		})
	}

	log.Printf("OpenAI APIから応答を取得: 画像数=%d", len(images))

	return &domain.GenerationResponse{
		Images:      images,
		Prompt:      request.Prompt,
		Model:       request.Model.String(),
		GeneratedAt: time.Now(),
	}, nil
}

// buildGenerateParams は、ドメインのリクエストをSDKのパラメータに変換します
func buildGenerateParams(request domain.GenerationRequest) openai.ImageGenerateParams {
	params := openai.ImageGenerateParams{
		Prompt: request.Prompt,
		Model:  openai.ImageModel(request.Model.String()),
		N:      openai.Int(int64(request.Count)),
		Size:   openai.ImageGenerateParamsSize(request.Size),
	}

	// gpt-imageシリーズはresponse_formatを受け付けず、常にbase64を返す
	if request.Model.AcceptsResponseFormat() {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatURL
	}
	if request.Quality != "" {
		params.Quality = openai.ImageGenerateParamsQuality(request.Quality)
	}
	if request.Style != "" {
		params.Style = openai.ImageGenerateParamsStyle(request.Style)
	}

	return params
}

// toGenerationError は、SDKのエラーをGenerationErrorに変換します
func toGenerationError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return &domain.GenerationError{Err: err}
	}

	return &domain.GenerationError{
		StatusCode: apiErr.StatusCode,
		Message:    providerMessage(apiErr),
		Err:        err,
	}
}

// providerMessage は、エラーペイロードからプロバイダーのメッセージを取り出します
func providerMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		if body, err := io.ReadAll(apiErr.Response.Body); err == nil {
			for _, path := range []string{"error.message", "message", "error"} {
				if value := gjson.GetBytes(body, path); value.Type == gjson.String && value.String() != "" {
					return value.String()
				}
			}
		}
	}
	return fmt.Sprintf("HTTP %d", apiErr.StatusCode)
}
