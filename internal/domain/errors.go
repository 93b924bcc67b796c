package domain

import (
	"errors"
	"fmt"
)

// ドメイン固有のエラー型を定義
var (
	// ErrMissingPrompt は、プロンプトが指定されていない場合のエラーです
	ErrMissingPrompt = errors.New("プロンプトが指定されていません")

	// ErrPromptFileRead は、プロンプトファイルの読み込みに失敗した場合のエラーです
	ErrPromptFileRead = errors.New("プロンプトファイルの読み込みに失敗しました")

	// ErrMissingAPIKey は、APIキーが設定されていない場合のエラーです
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY が設定されていません")

	// ErrInvalidCount は、生成枚数が正の整数でない場合のエラーです
	ErrInvalidCount = errors.New("生成枚数は正の整数である必要があります")

	// ErrUnknownModel は、サポートされていないモデルが指定された場合のエラーです
	ErrUnknownModel = errors.New("サポートされていないモデルです")

	// ErrNoImagesGenerated は、APIが画像を1枚も返さなかった場合のエラーです
	ErrNoImagesGenerated = errors.New("画像が生成されませんでした")

	// ErrMissingImageURL は、結果エントリに画像URLも画像データも含まれていない場合のエラーです
	ErrMissingImageURL = errors.New("画像URLが含まれていません")
)

// GenerationError は、画像生成APIの呼び出しが失敗した場合のエラーです
// Messageにはプロバイダーのエラーペイロードから取り出したメッセージが入ります
type GenerationError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GenerationError) Error() string {
	switch {
	case e.Message != "" && e.StatusCode != 0:
		return fmt.Sprintf("画像生成APIがエラーを返しました (HTTP %d): %s", e.StatusCode, e.Message)
	case e.Message != "":
		return fmt.Sprintf("画像生成APIがエラーを返しました: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("画像生成APIの呼び出しに失敗: %v", e.Err)
	default:
		return "画像生成APIの呼び出しに失敗しました"
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
