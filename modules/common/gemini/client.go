package gemini

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
)

// ContentGenerator - GenerateContent 호출 경계. *genai.Models 가 만족한다
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Constructor - API 키로 ContentGenerator 생성
type Constructor func(ctx context.Context, apiKey string) (ContentGenerator, error)

// Factory - API 키별 클라이언트 캐시
type Factory struct {
	mu      sync.Mutex
	clients map[string]ContentGenerator
	newFn   Constructor
	log     logger.Logger
}

// NewFactory - genai 백엔드 팩토리
func NewFactory(log logger.Logger) *Factory {
	return NewFactoryWith(newGenAIClient, log)
}

// NewFactoryWith - 생성 함수 지정 (테스트용)
func NewFactoryWith(fn Constructor, log logger.Logger) *Factory {
	return &Factory{
		clients: make(map[string]ContentGenerator),
		newFn:   fn,
		log:     log,
	}
}

func newGenAIClient(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// For - 키에 해당하는 클라이언트 반환. 없으면 생성해서 캐시
func (f *Factory) For(ctx context.Context, apiKey string) (ContentGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("no API key provided")
	}

	fp := fingerprint(apiKey)

	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[fp]; ok {
		return c, nil
	}

	c, err := f.newFn(ctx, apiKey)
	if err != nil {
		f.log.Error().Err(err).Str("key", fp).Msg("❌ [Gemini] Failed to create client")
		return nil, errors.Wrap(err, "failed to create Gemini client")
	}
	f.clients[fp] = c
	f.log.Info().Str("key", fp).Msg("🔑 [Gemini] Client created")
	return c, nil
}

// Forget - 키가 교체/삭제되었을 때 캐시 제거
func (f *Factory) Forget(apiKey string) {
	if apiKey == "" {
		return
	}
	f.mu.Lock()
	delete(f.clients, fingerprint(apiKey))
	f.mu.Unlock()
}

// 로그와 캐시 키에는 원문 대신 해시 앞부분만
func fingerprint(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:6])
}
