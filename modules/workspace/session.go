package workspace

import (
	"errors"
	"sync"

	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/errs"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// State - 워크스페이스 결과 상태
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

var (
	// ErrDuplicateSubmit - 같은 작업이 이미 진행 중
	ErrDuplicateSubmit error = &errs.Error{
		Kind: errs.KindPrecondition,
		Op:   "workspace.Begin",
		Err:  errors.New("This request is already in progress."),
	}
	// ErrSuperseded - 더 최근 요청이나 Clear 로 결과가 버려짐
	ErrSuperseded = errors.New("request was superseded by a newer one")
	// ErrClosed - 로그아웃 등으로 세션이 닫힘
	ErrClosed = errors.New("workspace session is closed")
)

// Ticket - Begin 이 발급하는 요청 세대 번호
type Ticket struct {
	Workspace model.Workspace
	Action    string
	seq       uint64
}

// Snapshot - 현재 상태
type Snapshot struct {
	Workspace model.Workspace       `json:"workspace"`
	State     State                 `json:"state"`
	Action    string                `json:"action,omitempty"`
	Result    model.GeneratedResult `json:"result"`
}

// Observer - 상태 전이 알림. 블록되면 안 되고 세션을 다시 호출하면 안 된다
type Observer func(Snapshot)

// Session - 워크스페이스 하나의 Idle → Submitting → {Success, Failed} 상태 머신
type Session struct {
	mu        sync.Mutex
	ws        model.Workspace
	state     State
	action    string
	seq       uint64
	result    model.GeneratedResult
	closed    bool
	observers map[int]Observer
	nextObs   int
	log       logger.Logger
}

func NewSession(ws model.Workspace, log logger.Logger) *Session {
	return &Session{
		ws:        ws,
		state:     StateIdle,
		observers: make(map[int]Observer),
		log:       log.With().Str("workspace", string(ws)).Logger(),
	}
}

// Begin - 제출 시작. 다른 작업이 진행 중이면 그 요청을 대체한다
func (s *Session) Begin(action string) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Ticket{}, ErrClosed
	}
	if s.state == StateSubmitting {
		if s.action == action {
			return Ticket{}, ErrDuplicateSubmit
		}
		s.log.Info().Str("previous", s.action).Str("action", action).Msg("🔁 [Workspace] Superseding in-flight request")
	}

	s.seq++
	s.state = StateSubmitting
	s.action = action
	s.result = model.GeneratedResult{Loading: true}
	s.notifyLocked()

	return Ticket{Workspace: s.ws, Action: action, seq: s.seq}, nil
}

// Complete - 성공 결과 반영. 최신 티켓이 아니면 버리고 false
func (s *Session) Complete(t Ticket, result model.GeneratedResult) bool {
	result.Loading = false
	result.Error = ""
	return s.finish(t, StateSuccess, result)
}

// Fail - 에러 메시지 반영. 최신 티켓이 아니면 버리고 false
func (s *Session) Fail(t Ticket, message string) bool {
	return s.finish(t, StateFailed, model.GeneratedResult{Error: message})
}

func (s *Session) finish(t Ticket, state State, result model.GeneratedResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || t.seq != s.seq || s.state != StateSubmitting {
		s.log.Info().
			Str("action", t.Action).
			Uint64("ticket", t.seq).
			Uint64("current", s.seq).
			Msg("🗑️ [Workspace] Dropping stale result")
		return false
	}

	s.state = state
	s.result = result
	s.notifyLocked()
	return true
}

// Clear - Idle 로 되돌리고 진행 중인 티켓 무효화
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.state = StateIdle
	s.action = ""
	s.result = model.GeneratedResult{}
	s.notifyLocked()
}

// Close - 세션 종료. 이후 모든 결과는 버려진다
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.closed = true
	s.state = StateIdle
	s.action = ""
	s.result = model.GeneratedResult{}
	s.observers = make(map[int]Observer)
}

// Snapshot - 현재 상태 복사본
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe - 전이 알림 등록. 반환된 함수로 해제
func (s *Session) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{Workspace: s.ws, State: s.state, Action: s.action, Result: s.result}
}

// 락을 잡은 상태에서 호출해 전이 순서를 보장
func (s *Session) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.observers {
		fn(snap)
	}
}
