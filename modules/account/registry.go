package account

import (
	"context"
	"sync"
	"time"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/auth"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/kv"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/draft"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/history"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/workspace"
)

// DefaultReapInterval - 유휴 컨텍스트 정리 주기
const DefaultReapInterval = time.Minute

// HistoryDriverFunc - 오너에 맞는 히스토리 드라이버 선택 (store 는 오너 네임스페이스)
type HistoryDriverFunc func(owner auth.Owner, store kv.Store) history.Driver

// LocalHistory - 모든 오너를 kv 로컬 히스토리로
func LocalHistory(_ auth.Owner, store kv.Store) history.Driver {
	return history.NewLocal(store)
}

// RemoteForUsers - 로그인 사용자는 원격 드라이버, 익명 기기는 로컬
func RemoteForUsers(remote func(userID string) history.Driver) HistoryDriverFunc {
	return func(owner auth.Owner, store kv.Store) history.Driver {
		if owner.IsUser() {
			return remote(owner.ID)
		}
		return history.NewLocal(store)
	}
}

// Context - 오너 한 명의 상태 묶음. Registry 밖에서 만들지 않는다
type Context struct {
	Owner      auth.Owner
	Store      kv.Store
	History    *history.Store
	Drafts     *draft.Set
	Workspaces *workspace.Set
	Settings   *SettingsStore

	once     sync.Once
	mu       sync.Mutex
	lastSeen time.Time
	holds    int
}

// Retain - 웹소켓 등 장기 연결이 있는 동안 정리 대상에서 제외
func (c *Context) Retain() {
	c.mu.Lock()
	c.holds++
	c.mu.Unlock()
}

// Release - Retain 해제
func (c *Context) Release() {
	c.mu.Lock()
	if c.holds > 0 {
		c.holds--
	}
	c.mu.Unlock()
}

func (c *Context) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

// LastSeen - 마지막 접근 시각
func (c *Context) LastSeen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// busy - 연결이 붙어 있거나 진행 중인 제출이 있으면 정리하지 않음
func (c *Context) busy() bool {
	c.mu.Lock()
	held := c.holds > 0
	c.mu.Unlock()
	if held {
		return true
	}
	for _, snap := range c.Workspaces.Snapshots() {
		if snap.State == workspace.StateSubmitting {
			return true
		}
	}
	return false
}

// Registry - 오너별 Context 관리 (전역 싱글톤 대신)
type Registry struct {
	mu       sync.Mutex
	contexts map[string]*Context
	store    kv.Store
	drivers  HistoryDriverFunc
	idleTTL  time.Duration
	now      func() time.Time
	log      logger.Logger
}

// NewRegistry - idleTTL 이 0 이하면 정리하지 않음
func NewRegistry(store kv.Store, drivers HistoryDriverFunc, idleTTL time.Duration, log logger.Logger) *Registry {
	if drivers == nil {
		drivers = LocalHistory
	}
	return &Registry{
		contexts: make(map[string]*Context),
		store:    store,
		drivers:  drivers,
		idleTTL:  idleTTL,
		now:      time.Now,
		log:      log,
	}
}

// Get - 오너 컨텍스트. 처음이면 만들고 히스토리를 불러온다
func (r *Registry) Get(ctx context.Context, owner auth.Owner) *Context {
	key := owner.Key()

	r.mu.Lock()
	c, ok := r.contexts[key]
	if !ok {
		c = r.build(owner)
		r.contexts[key] = c
	}
	r.mu.Unlock()

	c.touch(r.now())
	c.once.Do(func() {
		c.History.Load(ctx)
		r.log.Info().Str("owner", key).Str("history", c.History.Driver()).Msg("👤 [Account] Context ready")
	})
	return c
}

// Lookup - 만들지 않고 조회
func (r *Registry) Lookup(owner auth.Owner) (*Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contexts[owner.Key()]
	return c, ok
}

// SignOut - 워크스페이스 세션을 닫고 미러를 버린다. 저장된 드래프트/설정은 유지
func (r *Registry) SignOut(owner auth.Owner) bool {
	key := owner.Key()

	r.mu.Lock()
	c, ok := r.contexts[key]
	delete(r.contexts, key)
	r.mu.Unlock()

	if !ok {
		return false
	}
	c.Workspaces.Close()
	r.log.Info().Str("owner", key).Msg("👋 [Account] Signed out")
	return true
}

// Len - 살아 있는 컨텍스트 수
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contexts)
}

// Reap - idleTTL 동안 접근이 없고 제출 중이 아닌 컨텍스트 정리
func (r *Registry) Reap() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var stale []*Context
	for key, c := range r.contexts {
		if c.LastSeen().Before(cutoff) && !c.busy() {
			stale = append(stale, c)
			delete(r.contexts, key)
		}
	}
	r.mu.Unlock()

	for _, c := range stale {
		c.Workspaces.Close()
	}
	if len(stale) > 0 {
		r.log.Info().Int("count", len(stale)).Msg("🧹 [Account] Reaped idle contexts")
	}
	return len(stale)
}

// Run - ctx 가 끝날 때까지 주기적으로 Reap
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = DefaultReapInterval
	}
	r.log.Info().Dur("ttl", r.idleTTL).Dur("interval", interval).Msg("🔄 [Account] Idle reaper starting")

	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info().Msg("🛑 [Account] Idle reaper stopped")
			return
		case <-timer.C:
			r.Reap()
			timer.Reset(interval)
		}
	}
}

// Close - 모든 컨텍스트 종료 (서버 종료 시)
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.contexts
	r.contexts = make(map[string]*Context)
	r.mu.Unlock()

	for _, c := range all {
		c.Workspaces.Close()
	}
}

func (r *Registry) build(owner auth.Owner) *Context {
	key := owner.Key()
	store := kv.Namespace(r.store, key)
	log := r.log.With().Str("owner", key).Logger()
	return &Context{
		Owner:      owner,
		Store:      store,
		History:    history.NewStore(r.drivers(owner, store), log),
		Drafts:     draft.NewSet(store, log),
		Workspaces: workspace.NewSet(log),
		Settings:   NewSettingsStore(store, log),
	}
}
