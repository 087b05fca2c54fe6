package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind - 에러 분류
type Kind int

const (
	// KindUnknown - 분류되지 않은 에러
	KindUnknown Kind = iota
	// KindPrecondition - 필수 입력 누락 (네트워크 호출 전에 보고)
	KindPrecondition
	// KindBoundary - 외부 API 호출 실패 또는 응답 없음
	KindBoundary
	// KindPersistence - 히스토리/드래프트 저장 실패 (로그만 남김)
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindBoundary:
		return "boundary"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error - 분류된 에러
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Precondition - 필수 입력 누락 에러 생성
func Precondition(op, msg string) error {
	return &Error{Kind: KindPrecondition, Op: op, Err: errors.New(msg)}
}

// Preconditionf - 포맷 지원 버전
func Preconditionf(op, format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Op: op, Err: errors.New(fmt.Sprintf(format, args...))}
}

// Boundary - 외부 API 에러를 그대로 감싼다 (메시지는 변경하지 않음)
func Boundary(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindBoundary, Op: op, Err: errors.WithStack(err)}
}

// Persistence - 저장소 에러를 감싼다
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindPersistence, Op: op, Err: errors.Wrap(err, op)}
}

// KindOf - 에러 체인에서 분류를 찾는다
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is - 에러가 해당 분류인지 확인
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
