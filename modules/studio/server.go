package studio

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/account"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/gemini"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/storage"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/generation"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/prompt"
)

// Publisher - 공개 URL 로 이미지 업로드
type Publisher interface {
	Enabled() bool
	UploadImage(ctx context.Context, imageData []byte, ownerID string) (storage.Upload, error)
}

// Options - 서버 설정 중 HTTP 계층이 쓰는 값
type Options struct {
	ServerAPIKey      string
	MaxAttachmentEdge int
	AllowAnonymous    bool
	AllowedOrigins    []string
}

// Server - 스튜디오 HTTP 서버
type Server struct {
	opts      Options
	registry  *account.Registry
	models    *gemini.Factory
	builder   *prompt.Builder
	publisher Publisher
	verifier  *auth.Verifier
	hub       *Hub
	log       logger.Logger
}

// NewServer - publisher 가 nil 이면 publish 는 503
func NewServer(opts Options, registry *account.Registry, models *gemini.Factory, builder *prompt.Builder, publisher Publisher, verifier *auth.Verifier, log logger.Logger) *Server {
	return &Server{
		opts:      opts,
		registry:  registry,
		models:    models,
		builder:   builder,
		publisher: publisher,
		verifier:  verifier,
		hub:       NewHub(registry, log),
		log:       log,
	}
}

// Hub - 웹소켓 허브
func (s *Server) Hub() *Hub {
	return s.hub
}

// Routes - 전체 라우터
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	authn := Authenticate(s.verifier, s.opts.AllowAnonymous)
	r.Handle("/ws", authn(s.hub)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authn, Language)

	api.HandleFunc("/catalog", s.catalog).Methods(http.MethodGet)

	// 이미지 스튜디오
	api.HandleFunc("/graphic/generate", handleAction[generation.SynthesizeRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/graphic/edit", handleAction[generation.EditRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/graphic/collage", handleAction[generation.CollageRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/graphic/post", handleAction[generation.SimplePostRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/graphic/analyze", handleAction[generation.AnalyzeRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/graphic/describe", handleAction[generation.DescribeRequest](s)).Methods(http.MethodPost)

	// 콘텐츠 스튜디오, 프롬프트 랩
	api.HandleFunc("/content/generate", handleAction[generation.TextRequest](s)).Methods(http.MethodPost)
	api.HandleFunc("/prompt/craft", handleAction[generation.CraftRequest](s)).Methods(http.MethodPost)

	api.HandleFunc("/workspaces/{ws}/result", s.getResult).Methods(http.MethodGet)
	api.HandleFunc("/workspaces/{ws}/result", s.clearResult).Methods(http.MethodDelete)

	api.HandleFunc("/drafts/{ws}", s.getDraft).Methods(http.MethodGet)
	api.HandleFunc("/drafts/{ws}", s.replaceDraft).Methods(http.MethodPut)
	api.HandleFunc("/drafts/{ws}", s.patchDraft).Methods(http.MethodPatch)
	api.HandleFunc("/drafts/{ws}", s.resetDraft).Methods(http.MethodDelete)

	api.HandleFunc("/history", s.listHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", s.clearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/history/{id}", s.removeHistory).Methods(http.MethodDelete)
	api.HandleFunc("/history/{id}/export", s.exportHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}/publish", s.publishHistory).Methods(http.MethodPost)

	api.HandleFunc("/settings", s.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.updateSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings/api-key", s.saveAPIKey).Methods(http.MethodPut)
	api.HandleFunc("/settings/api-key", s.deleteAPIKey).Methods(http.MethodDelete)

	api.HandleFunc("/auth/signout", s.signOut).Methods(http.MethodPost)

	// CORS 는 라우트 매칭 전에 (OPTIONS 프리플라이트)
	return RequestID(RequestLogger(s.log)(CORS(s.opts.AllowedOrigins)(r)))
}

// 헬스 체크 엔드포인트
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"service":  "lumina-studio",
		"contexts": s.registry.Len(),
		"sockets":  s.hub.Len(),
	})
}

// account - 인증 미들웨어를 통과한 요청의 오너 컨텍스트
func (s *Server) account(r *http.Request) *account.Context {
	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		owner = auth.Owner{Kind: auth.OwnerDevice, ID: auth.DefaultDeviceID}
	}
	return s.registry.Get(r.Context(), owner)
}
