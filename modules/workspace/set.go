package workspace

import (
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/logger"
	"github.com/jElioSpace/Lumina-AI-Studio/modules/common/model"
)

// Set - 오너 한 명의 워크스페이스 세션들
type Set struct {
	sessions map[model.Workspace]*Session
}

func NewSet(log logger.Logger) *Set {
	s := &Set{sessions: make(map[model.Workspace]*Session, len(model.Workspaces))}
	for _, ws := range model.Workspaces {
		s.sessions[ws] = NewSession(ws, log)
	}
	return s
}

// Get - 워크스페이스 세션
func (s *Set) Get(ws model.Workspace) (*Session, bool) {
	sess, ok := s.sessions[ws]
	return sess, ok
}

// Snapshots - 전체 상태
func (s *Set) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(model.Workspaces))
	for _, ws := range model.Workspaces {
		out = append(out, s.sessions[ws].Snapshot())
	}
	return out
}

// Subscribe - 모든 워크스페이스 전이 구독
func (s *Set) Subscribe(fn Observer) func() {
	var cancels []func()
	for _, ws := range model.Workspaces {
		cancels = append(cancels, s.sessions[ws].Subscribe(fn))
	}
	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// Close - 모든 세션 종료
func (s *Set) Close() {
	for _, sess := range s.sessions {
		sess.Close()
	}
}
