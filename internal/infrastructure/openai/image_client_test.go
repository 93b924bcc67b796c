package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"imagegen/internal/domain"
	"imagegen/internal/infrastructure/config"
)

// requestRecorder は、テスト用サーバーが受け取ったリクエストを記録します
type requestRecorder struct {
	mu    sync.Mutex
	calls int
	body  map[string]any
}

func (r *requestRecorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *requestRecorder) Body() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body
}

// newTestServer は、Images APIを模倣するテスト用サーバーを作成します
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *requestRecorder) {
	t.Helper()
	recorder := &requestRecorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/images/generations") {
			t.Errorf("予期しないパス: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("Authorizationヘッダーが正しくありません: %s", got)
		}
		raw, _ := io.ReadAll(r.Body)
		var captured map[string]any
		if err := json.Unmarshal(raw, &captured); err != nil {
			t.Errorf("リクエストボディの解析に失敗: %v", err)
		}

		recorder.mu.Lock()
		recorder.calls++
		recorder.body = captured
		recorder.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, recorder
}

func newTestClient(baseURL string) *ImageClient {
	return NewImageClient("sk-test", &config.OpenAIConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	})
}

func TestNewImageClient_WithNilConfig(t *testing.T) {
	client := NewImageClient("sk-test", nil)

	if client.config == nil {
		t.Fatal("デフォルト設定が使用されていません")
	}
	if client.config.RequestTimeout != 120*time.Second {
		t.Errorf("期待されるタイムアウト: 120s, 実際: %v", client.config.RequestTimeout)
	}
}

func TestImageClient_GenerateImages(t *testing.T) {
	server, recorder := newTestServer(t, http.StatusOK, `{
		"created": 1700000000,
		"data": [
			{"url": "https://images.example.com/1.png", "revised_prompt": "A calm sunset"},
			{},
			{"b64_json": "aGVsbG8="}
		]
	}`)

	client := newTestClient(server.URL)
	resp, err := client.GenerateImages(context.Background(), domain.GenerationRequest{
		Prompt: "A sunset",
		Size:   "512x512",
		Count:  3,
		Model:  domain.ImageModelDallE2,
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if recorder.Calls() != 1 {
		t.Errorf("APIの呼び出しは1回であるべきです: %d回", recorder.Calls())
	}
	body := recorder.Body()
	if body["model"] != "dall-e-2" || body["prompt"] != "A sunset" || body["size"] != "512x512" {
		t.Errorf("リクエストボディが正しくありません: %v", body)
	}
	if body["n"] != float64(3) {
		t.Errorf("期待されるn: 3, 実際: %v", body["n"])
	}
	if body["response_format"] != "url" {
		t.Errorf("DALL·Eモデルではresponse_format=urlを送るべきです: %v", body["response_format"])
	}
	if _, ok := body["quality"]; ok {
		t.Error("未指定のqualityは送信されないはずです")
	}

	if len(resp.Images) != 3 {
		t.Fatalf("期待される画像数: 3, 実際: %d", len(resp.Images))
	}
	want := []domain.ImageResult{
		{Index: 1, URL: "https://images.example.com/1.png", RevisedPrompt: "A calm sunset"},
		{Index: 2},
		{Index: 3, B64JSON: "aGVsbG8="},
	}
	for i := range want {
		if resp.Images[i] != want[i] {
			t.Errorf("画像[%d]: 期待値 %+v, 実際 %+v", i, want[i], resp.Images[i])
		}
	}
	if resp.Model != "dall-e-2" || resp.Prompt != "A sunset" {
		t.Errorf("応答のメタデータが正しくありません: %+v", resp)
	}
}

func TestImageClient_GenerateImages_GPTImageOmitsResponseFormat(t *testing.T) {
	server, recorder := newTestServer(t, http.StatusOK, `{"created": 1, "data": [{"b64_json": "aGVsbG8="}]}`)

	client := newTestClient(server.URL)
	_, err := client.GenerateImages(context.Background(), domain.GenerationRequest{
		Prompt:  "A sunset",
		Size:    "1024x1024",
		Count:   1,
		Model:   domain.ImageModelGPTImage1Mini,
		Quality: "high",
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	body := recorder.Body()
	if _, ok := body["response_format"]; ok {
		t.Error("gpt-imageモデルではresponse_formatを送信しないはずです")
	}
	if body["model"] != "gpt-image-1-mini" {
		t.Errorf("期待されるモデル: gpt-image-1-mini, 実際: %v", body["model"])
	}
	if body["quality"] != "high" {
		t.Errorf("期待されるquality: high, 実際: %v", body["quality"])
	}
}

func TestImageClient_GenerateImages_ProviderError(t *testing.T) {
	server, recorder := newTestServer(t, http.StatusBadRequest, `{
		"error": {
			"message": "Invalid size",
			"type": "invalid_request_error",
			"param": "size",
			"code": null
		}
	}`)

	client := newTestClient(server.URL)
	_, err := client.GenerateImages(context.Background(), domain.GenerationRequest{
		Prompt: "A sunset",
		Size:   "640x480",
		Count:  1,
		Model:  domain.ImageModelDallE3,
	})

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("GenerationErrorを期待しましたが、実際: %v", err)
	}
	if genErr.StatusCode != http.StatusBadRequest {
		t.Errorf("期待されるステータス: 400, 実際: %d", genErr.StatusCode)
	}
	if genErr.Message != "Invalid size" {
		t.Errorf("期待されるメッセージ: Invalid size, 実際: %q", genErr.Message)
	}
	if recorder.Calls() != 1 {
		t.Errorf("リトライしてはいけません: %d回", recorder.Calls())
	}
}

func TestImageClient_GenerateImages_ServerErrorIsNotRetried(t *testing.T) {
	server, recorder := newTestServer(t, http.StatusInternalServerError, `{"error": {"message": "boom"}}`)

	client := newTestClient(server.URL)
	_, err := client.GenerateImages(context.Background(), domain.GenerationRequest{
		Prompt: "A sunset",
		Size:   "1024x1024",
		Count:  1,
		Model:  domain.ImageModelDallE3,
	})
	if err == nil {
		t.Fatal("エラーが発生するべきです")
	}
	if recorder.Calls() != 1 {
		t.Errorf("5xxでもリトライしてはいけません: %d回", recorder.Calls())
	}
}

func TestImageClient_GenerateImages_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(baseURL)
	_, err := client.GenerateImages(context.Background(), domain.GenerationRequest{
		Prompt: "A sunset",
		Size:   "1024x1024",
		Count:  1,
		Model:  domain.ImageModelDallE3,
	})

	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("GenerationErrorを期待しましたが、実際: %v", err)
	}
	if genErr.StatusCode != 0 {
		t.Errorf("ネットワークエラーにステータスはないはずです: %d", genErr.StatusCode)
	}
}
