package domain

import "strings"

// APIKey は、画像生成APIの認証に使用するキーを表します
type APIKey string

// IsEmpty は、キーが設定されていないかを返します
func (k APIKey) IsEmpty() bool {
	return strings.TrimSpace(string(k)) == ""
}

// Masked は、ログ出力用に末尾4文字以外を伏せた文字列を返します
func (k APIKey) Masked() string {
	key := strings.TrimSpace(string(k))
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + "..." + key[len(key)-4:]
}
