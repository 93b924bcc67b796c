package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"imagegen/internal/infrastructure/config"
)

// FileStore は、画像をローカルのディレクトリに書き込みます
// ディレクトリの作成や上書きの防止は行いません
type FileStore struct {
	dir string
}

// NewFileStore は新しいFileStoreインスタンスを作成します
func NewFileStore(outputConfig *config.OutputConfig) *FileStore {
	if outputConfig == nil {
		outputConfig = config.DefaultOutputConfig()
	}
	dir := outputConfig.Dir
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Save は、指定されたファイル名で画像を書き込み、書き込んだパスを返します
func (s *FileStore) Save(name string, data []byte) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("不正なファイル名です: %q", name)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}

	log.Printf("画像を書き込みました: %s (%dバイト)", path, len(data))
	return path, nil
}
