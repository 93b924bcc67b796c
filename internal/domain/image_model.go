package domain

import (
	"fmt"
	"strings"
)

// ImageModel は画像生成モデルを表す定数です
type ImageModel int

const (
	ImageModelDallE3 ImageModel = iota
	ImageModelDallE2
	ImageModelGPTImage1
	ImageModelGPTImage1Mini
)

// DefaultImageModel は、モデル未指定時に使用されるモデルです
const DefaultImageModel = ImageModelDallE3

// DefaultImageSize は、サイズ未指定時に使用されるサイズです
const DefaultImageSize = "1024x1024"

// imageModelData はImageModelのデータを保持します
type imageModelData struct {
	Value          string
	DisplayName    string
	MultipleImages bool
	MaxCount       int
	Sizes          []string
}

// imageModels は各ImageModelのデータを定義します
var imageModels = []imageModelData{
	{
		Value:       "dall-e-3",
		DisplayName: "DALL·E 3",
		MaxCount:    1,
		Sizes:       []string{"1024x1024", "1792x1024", "1024x1792"},
	},
	{
		Value:          "dall-e-2",
		DisplayName:    "DALL·E 2",
		MultipleImages: true,
		MaxCount:       10,
		Sizes:          []string{"256x256", "512x512", "1024x1024"},
	},
	{
		Value:       "gpt-image-1",
		DisplayName: "GPT Image 1",
		MaxCount:    1,
		Sizes:       []string{"1024x1024", "1536x1024", "1024x1536", "auto"},
	},
	{
		Value:       "gpt-image-1-mini",
		DisplayName: "GPT Image 1 Mini",
		MaxCount:    1,
		Sizes:       []string{"1024x1024", "1536x1024", "1024x1536", "auto"},
	},
}

// ParseImageModel は、モデル識別子をImageModelに変換します
// 空文字列の場合はDefaultImageModelを返します
func ParseImageModel(value string) (ImageModel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultImageModel, nil
	}
	for i, m := range imageModels {
		if strings.EqualFold(m.Value, value) {
			return ImageModel(i), nil
		}
	}
	return DefaultImageModel, fmt.Errorf("%w: %s", ErrUnknownModel, value)
}

func (m ImageModel) data() imageModelData {
	if int(m) >= 0 && int(m) < len(imageModels) {
		return imageModels[m]
	}
	return imageModels[DefaultImageModel]
}

// String はAPIに送信するモデル識別子を返します
func (m ImageModel) String() string {
	return m.data().Value
}

// DisplayName はモデルの表示名を返します
func (m ImageModel) DisplayName() string {
	return m.data().DisplayName
}

// SupportsMultipleImages は、1回の呼び出しで複数枚の画像を生成できるかを返します
func (m ImageModel) SupportsMultipleImages() bool {
	return m.data().MultipleImages
}

// MaxCount は、1回の呼び出しで生成できる最大枚数を返します
func (m ImageModel) MaxCount() int {
	return m.data().MaxCount
}

// SupportedSizes は、モデルが受け付けるサイズの一覧を返します
func (m ImageModel) SupportedSizes() []string {
	sizes := m.data().Sizes
	result := make([]string, len(sizes))
	copy(result, sizes)
	return result
}

// SupportsSize は、指定されたサイズがモデルの既知のサイズに含まれるかを返します
func (m ImageModel) SupportsSize(size string) bool {
	for _, s := range m.data().Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// AcceptsResponseFormat は、response_formatパラメータを受け付けるモデルかを返します
// gpt-imageシリーズは常にbase64で画像を返します
func (m ImageModel) AcceptsResponseFormat() bool {
	return m == ImageModelDallE3 || m == ImageModelDallE2
}

// AllImageModels はすべてのImageModelを返します
func AllImageModels() []ImageModel {
	return []ImageModel{
		ImageModelDallE3,
		ImageModelDallE2,
		ImageModelGPTImage1,
		ImageModelGPTImage1Mini,
	}
}
