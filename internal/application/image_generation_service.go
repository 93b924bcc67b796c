package application

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"imagegen/internal/domain"
)

// ImageGenerationService は、画像生成と保存に関するビジネスロジックを担当するサービスです
type ImageGenerationService struct {
	imageClient ImageClient
	downloader  ImageDownloader
	store       ImageStore
	reporter    Reporter
	now         func() time.Time
}

// NewImageGenerationService は新しいImageGenerationServiceインスタンスを作成します
func NewImageGenerationService(imageClient ImageClient, downloader ImageDownloader, store ImageStore, reporter Reporter) *ImageGenerationService {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &ImageGenerationService{
		imageClient: imageClient,
		downloader:  downloader,
		store:       store,
		reporter:    reporter,
		now:         time.Now,
	}
}

// Run は、APIを1回呼び出して画像を生成し、返された画像を順番に保存します
// 個別の画像の保存失敗は致命的なエラーとして扱いません
func (s *ImageGenerationService) Run(ctx context.Context, request domain.GenerationRequest, apiKey string) (*domain.SaveReport, error) {
	key := domain.APIKey(apiKey)
	if key.IsEmpty() {
		return nil, domain.ErrMissingAPIKey
	}
	if request.Prompt == "" {
		return nil, domain.ErrMissingPrompt
	}

	log.Printf("画像生成サービス: %s, APIキー=%s", request, key.Masked())

	s.reporter.Info("モデル: %s", request.Model)
	s.reporter.Info("生成枚数: %d", request.Count)
	s.reporter.Info("プロンプト: %s", request.Prompt)
	s.reporter.Info("サイズ: %s", request.Size)

	response, err := s.imageClient.GenerateImages(ctx, request)
	if err != nil {
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return nil, err
		}
		return nil, &domain.GenerationError{Err: err}
	}

	if response == nil || len(response.Images) == 0 {
		return nil, domain.ErrNoImagesGenerated
	}

	log.Printf("画像生成サービス: 生成完了, 画像数=%d", len(response.Images))

	report := &domain.SaveReport{Requested: len(response.Images)}
	for _, image := range response.Images {
		path, err := s.saveImage(ctx, image)
		if err != nil {
			log.Printf("画像 %d の保存に失敗: %v", image.Index, err)
			s.reporter.Error("画像 %d: %v", image.Index, err)
			report.Failed = append(report.Failed, domain.ItemFailure{Index: image.Index, Err: err})
			continue
		}
		s.reporter.Success("画像 %d を保存しました: %s", image.Index, path)
		report.Saved = append(report.Saved, path)
	}

	return report, nil
}

// saveImage は、1枚の画像を取得してファイルに書き込みます
func (s *ImageGenerationService) saveImage(ctx context.Context, image domain.ImageResult) (string, error) {
	if !image.HasContent() {
		return "", domain.ErrMissingImageURL
	}

	if image.RevisedPrompt != "" {
		log.Printf("画像 %d の修正後プロンプト: %s", image.Index, image.RevisedPrompt)
	}

	data, err := s.fetchImage(ctx, image)
	if err != nil {
		return "", err
	}

	// タイムスタンプは画像ごとに取得する
	name := domain.ImageFilename(s.now(), image.Index)
	path, err := s.store.Save(name, data)
	if err != nil {
		return "", fmt.Errorf("画像の書き込みに失敗: %w", err)
	}
	return path, nil
}

// fetchImage は、URLからのダウンロードまたはbase64のデコードで画像データを取得します
func (s *ImageGenerationService) fetchImage(ctx context.Context, image domain.ImageResult) ([]byte, error) {
	if image.URL != "" {
		log.Printf("画像 %d をダウンロード中: %s", image.Index, image.URL)
		data, err := s.downloader.Download(ctx, image.URL)
		if err != nil {
			return nil, fmt.Errorf("画像のダウンロードに失敗: %w", err)
		}
		return data, nil
	}

	data, err := base64.StdEncoding.DecodeString(image.B64JSON)
	if err != nil {
		return nil, fmt.Errorf("画像データのデコードに失敗: %w", err)
	}
	return data, nil
}
