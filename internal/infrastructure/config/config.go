package config

import "time"

// OpenAIConfig は、OpenAI Images API関連の設定を定義します
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string        // 空の場合はSDKのデフォルトを使用
	RequestTimeout time.Duration // 画像生成リクエストのタイムアウト
}

// DownloadConfig は、生成画像のダウンロード関連の設定を定義します
type DownloadConfig struct {
	Timeout  time.Duration
	MaxBytes int64 // 1枚あたりの最大サイズ
}

// OutputConfig は、画像の保存先に関する設定を定義します
type OutputConfig struct {
	Dir string
}

// DefaultOpenAIConfig は、デフォルトのOpenAI設定を返します
func DefaultOpenAIConfig() *OpenAIConfig {
	return &OpenAIConfig{
		RequestTimeout: 120 * time.Second,
	}
}

// DefaultDownloadConfig は、デフォルトのダウンロード設定を返します
func DefaultDownloadConfig() *DownloadConfig {
	return &DownloadConfig{
		Timeout:  60 * time.Second,
		MaxBytes: 50 << 20,
	}
}

// DefaultOutputConfig は、デフォルトの保存先設定を返します
func DefaultOutputConfig() *OutputConfig {
	return &OutputConfig{
		Dir: ".",
	}
}
