package httpfetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"imagegen/internal/infrastructure/config"
)

// Downloader は、生成された画像をURLからダウンロードします
type Downloader struct {
	httpClient *http.Client
	maxBytes   int64
}

// NewDownloader は新しいDownloaderインスタンスを作成します
func NewDownloader(downloadConfig *config.DownloadConfig) *Downloader {
	if downloadConfig == nil {
		downloadConfig = config.DefaultDownloadConfig()
	}
	return &Downloader{
		httpClient: &http.Client{Timeout: downloadConfig.Timeout},
		maxBytes:   downloadConfig.MaxBytes,
	}
}

// Download は、URLの内容を取得して返します
// 2xx以外のステータスはエラーとして扱います
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ダウンロードに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("ダウンロードに失敗: HTTP %d", resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if d.maxBytes > 0 {
		body = io.LimitReader(resp.Body, d.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み込みに失敗: %w", err)
	}
	if d.maxBytes > 0 && int64(len(data)) > d.maxBytes {
		return nil, fmt.Errorf("画像が大きすぎます (最大%dバイト)", d.maxBytes)
	}

	log.Printf("ダウンロード完了: %s (%dバイト, %s)", url, len(data), resp.Header.Get("Content-Type"))
	return data, nil
}
