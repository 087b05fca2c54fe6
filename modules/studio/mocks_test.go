package studio

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/gemini"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/storage"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// --- Mocks ---

type mockGenerator struct {
	mu    sync.Mutex
	calls int
	resp  *genai.GenerateContentResponse
	err   error
	// gate 가 있으면 응답 전에 대기
	gate chan struct{}
}

func (m *mockGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	gate := m.gate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakePublisher struct {
	enabled bool
	owner   string
	size    int
	err     error
}

func (f *fakePublisher) Enabled() bool { return f.enabled }

func (f *fakePublisher) UploadImage(_ context.Context, data []byte, ownerID string) (storage.Upload, error) {
	if f.err != nil {
		return storage.Upload{}, f.err
	}
	f.owner = ownerID
	f.size = len(data)
	return storage.Upload{Path: "published/owner-" + ownerID + "/x.webp", PublicURL: "https://cdn.example/x.webp", Size: int64(len(data))}, nil
}

// --- Helpers ---

type testEnv struct {
	server    *Server
	handler   http.Handler
	gen       *mockGenerator
	publisher *fakePublisher
	registry  *account.Registry
	verifier  *auth.Verifier
	store     *kv.Memory
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	gen := &mockGenerator{}
	factory := gemini.NewFactoryWith(func(context.Context, string) (gemini.ContentGenerator, error) {
		return gen, nil
	}, logger.Nop())

	store := kv.NewMemory()
	registry := account.NewRegistry(store, nil, time.Hour, logger.Nop())
	verifier := auth.NewVerifier("test-secret")
	publisher := &fakePublisher{enabled: true}
	builder := prompt.NewBuilder(prompt.Models{Image: "img-model", Text: "text-model", Reasoning: "reason-model"})

	srv := NewServer(opts, registry, factory, builder, publisher, verifier, logger.Nop())
	return &testEnv{
		server:    srv,
		handler:   srv.Routes(),
		gen:       gen,
		publisher: publisher,
		registry:  registry,
		verifier:  verifier,
		store:     store,
	}
}

func defaultOptions() Options {
	return Options{ServerAPIKey: "server-key", MaxAttachmentEdge: 1024, AllowAnonymous: true}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func pngBytesFromURI(t *testing.T, uri string) []byte {
	t.Helper()
	const prefix = "data:image/png;base64,"
	data, err := base64.StdEncoding.DecodeString(uri[len(prefix):])
	require.NoError(t, err)
	return data
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
		}},
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}
