package application

import (
	"context"

	"imagegen/internal/domain"
)

// ImageClient は、画像生成APIとの通信を行うクライアントのインターフェースです
type ImageClient interface {
	// GenerateImages は、リクエストを1回だけAPIに送信し、生成された画像の一覧を返します
	GenerateImages(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error)
}

// ImageDownloader は、画像URLから画像データを取得するインターフェースです
type ImageDownloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// ImageStore は、画像データを永続化するインターフェースです
type ImageStore interface {
	// Save は、指定されたファイル名で画像を保存し、保存先のパスを返します
	Save(name string, data []byte) (string, error)
}

// Reporter は、ユーザーに進捗や警告を伝えるためのインターフェースです
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// nopReporter は、何も出力しないReporterです
type nopReporter struct{}

func (nopReporter) Info(string, ...any)    {}
func (nopReporter) Success(string, ...any) {}
func (nopReporter) Warn(string, ...any)    {}
func (nopReporter) Error(string, ...any)   {}
