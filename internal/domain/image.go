package domain

import (
	"fmt"
	"time"
)

// GenerationRequest は、解決済みの画像生成リクエストを表す値オブジェクトです
type GenerationRequest struct {
	Prompt  string     `json:"prompt"`
	Size    string     `json:"size"`
	Count   int        `json:"n"`
	Model   ImageModel `json:"-"`
	Quality string     `json:"quality,omitempty"`
	Style   string     `json:"style,omitempty"`
}

// String はGenerationRequestの文字列表現を返します
func (r GenerationRequest) String() string {
	return fmt.Sprintf("GenerationRequest{Model: %s, Prompt: %s, Count: %d, Size: %s}",
		r.Model, r.Prompt, r.Count, r.Size)
}

// ImageResult は、APIが返した1枚分の画像を表します
type ImageResult struct {
	Index         int    `json:"index"`
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// HasContent は、URLまたは画像データのどちらかを持っているかを返します
func (r ImageResult) HasContent() bool {
	return r.URL != "" || r.B64JSON != ""
}

// GenerationResponse は、画像生成APIの応答を表すドメインオブジェクトです
type GenerationResponse struct {
	Images      []ImageResult `json:"images"`
	Prompt      string        `json:"prompt"`
	Model       string        `json:"model"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ItemFailure は、個別の画像の保存に失敗したことを表します
type ItemFailure struct {
	Index int
	Err   error
}

// SaveReport は、1回の実行で保存された画像と失敗した画像をまとめたものです
type SaveReport struct {
	Requested int
	Saved     []string
	Failed    []ItemFailure
}

// ImageFilename は、生成画像のファイル名を作成します
// 形式: generated_image_<エポックミリ秒>_<1始まりのインデックス>.png
func ImageFilename(at time.Time, index int) string {
	return fmt.Sprintf("generated_image_%d_%d.png", at.UnixMilli(), index)
}
