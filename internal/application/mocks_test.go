package application

import (
	"context"
	"fmt"
	"sync"

	"imagegen/internal/domain"
)

// MockImageClient は、テスト用のモック画像生成クライアントです
type MockImageClient struct {
	response *domain.GenerationResponse
	err      error
	calls    int
	requests []domain.GenerationRequest
}

func (m *MockImageClient) GenerateImages(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationResponse, error) {
	m.calls++
	m.requests = append(m.requests, request)
	return m.response, m.err
}

// MockImageDownloader は、URLごとに決められたデータまたはエラーを返すモックです
type MockImageDownloader struct {
	data map[string][]byte
	errs map[string]error
	urls []string
}

func (m *MockImageDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	m.urls = append(m.urls, url)
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if data, ok := m.data[url]; ok {
		return data, nil
	}
	return []byte("image:" + url), nil
}

// MockImageStore は、保存されたファイルをメモリに保持するモックです
type MockImageStore struct {
	files map[string][]byte
	names []string
	err   error
}

func (m *MockImageStore) Save(name string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	m.names = append(m.names, name)
	return "./" + name, nil
}

// MockReporter は、出力されたメッセージを記録するモックです
type MockReporter struct {
	mu        sync.Mutex
	infos     []string
	successes []string
	warnings  []string
	errors    []string
}

func (m *MockReporter) Info(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *MockReporter) Success(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, fmt.Sprintf(format, args...))
}

func (m *MockReporter) Warn(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}

func (m *MockReporter) Error(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}
