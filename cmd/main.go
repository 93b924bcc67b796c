package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"imagegen/configs"
	"imagegen/internal/application"
	"imagegen/internal/infrastructure/config"
	"imagegen/internal/infrastructure/httpfetch"
	"imagegen/internal/infrastructure/openai"
	"imagegen/internal/infrastructure/storage"
	"imagegen/internal/presentation/cli"
)

func main() {
	// Ctrl-Cで実行中のAPI呼び出しとダウンロードを中断する
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	deps := cli.Dependencies{
		LoadConfig: configs.LoadConfig,
		NewImageClient: func(apiKey string, openAIConfig *config.OpenAIConfig) application.ImageClient {
			return openai.NewImageClient(apiKey, openAIConfig)
		},
		NewDownloader: func(downloadConfig *config.DownloadConfig) application.ImageDownloader {
			return httpfetch.NewDownloader(downloadConfig)
		},
		NewImageStore: func(outputConfig *config.OutputConfig) application.ImageStore {
			return storage.NewFileStore(outputConfig)
		},
	}

	code := cli.Execute(ctx, deps, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
