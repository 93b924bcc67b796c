package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"imagegen/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// Config は、アプリケーション全体の設定を定義します
type Config struct {
	OpenAI   config.OpenAIConfig
	Download config.DownloadConfig
	Output   config.OutputConfig
}

// LoadConfig は、環境変数から設定を読み込みます
// APIキーの有無はここでは検証せず、API呼び出しの直前に確認します
func LoadConfig() (*Config, error) {
	// .envファイルを読み込み（ファイルが存在しない場合は無視）
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: .envファイルの読み込みに失敗しました: %v", err)
	}

	openAIDefaults := config.DefaultOpenAIConfig()
	downloadDefaults := config.DefaultDownloadConfig()
	outputDefaults := config.DefaultOutputConfig()

	config := &Config{
		OpenAI: config.OpenAIConfig{
			APIKey:         getEnvOrDefault("OPENAI_API_KEY", ""),
			BaseURL:        getEnvOrDefault("OPENAI_BASE_URL", ""),
			RequestTimeout: getEnvAsDurationOrDefault("IMAGEGEN_REQUEST_TIMEOUT", openAIDefaults.RequestTimeout),
		},
		Download: config.DownloadConfig{
			Timeout:  getEnvAsDurationOrDefault("IMAGEGEN_DOWNLOAD_TIMEOUT", downloadDefaults.Timeout),
			MaxBytes: getEnvAsInt64OrDefault("IMAGEGEN_MAX_IMAGE_BYTES", downloadDefaults.MaxBytes),
		},
		Output: config.OutputConfig{
			Dir: getEnvOrDefault("IMAGEGEN_OUTPUT_DIR", outputDefaults.Dir),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate は、設定の妥当性を検証します
func (c *Config) Validate() error {
	if c.OpenAI.RequestTimeout <= 0 {
		return fmt.Errorf("IMAGEGEN_REQUEST_TIMEOUT は正の値である必要があります")
	}

	if c.Download.Timeout <= 0 {
		return fmt.Errorf("IMAGEGEN_DOWNLOAD_TIMEOUT は正の値である必要があります")
	}

	if c.Download.MaxBytes <= 0 {
		return fmt.Errorf("IMAGEGEN_MAX_IMAGE_BYTES は正の整数である必要があります")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("IMAGEGEN_OUTPUT_DIR が空です")
	}

	return nil
}

// HasAPIKey は、APIキーが設定されているかを返します
func (c *Config) HasAPIKey() bool {
	return c.OpenAI.APIKey != ""
}

// getEnvOrDefault は、環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64OrDefault は、環境変数を整数として取得し、存在しない場合はデフォルト値を返します
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は、環境変数を時間として取得し、存在しない場合はデフォルト値を返します
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
