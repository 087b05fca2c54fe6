package prompt

import (
	"bytes"
	"encoding/json"
	"strings"
)

// legacySentinel - 예전 드래프트에 남아 있는 "선택 안 함" 값
const legacySentinel = "None"

// Option - 선택 항목. 값이 없으면 프롬프트에서 빠진다
type Option[T comparable] struct {
	value T
	set   bool
}

// Some - 값 지정
func Some[T comparable](v T) Option[T] {
	if s, ok := any(v).(string); ok && blank(s) {
		return Option[T]{}
	}
	return Option[T]{value: v, set: true}
}

// None - 미지정
func None[T comparable]() Option[T] {
	return Option[T]{}
}

// Text - 문자열 옵션. 앞뒤 공백 제거
func Text(s string) Option[string] {
	return Some(strings.TrimSpace(s))
}

// Get - 값과 지정 여부
func (o Option[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet - 지정 여부
func (o Option[T]) IsSet() bool {
	return o.set
}

// OrElse - 미지정이면 fallback
func (o Option[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// MarshalJSON - 미지정은 null
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON - null, 빈 문자열, "None" 은 미지정
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Option[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if s, ok := any(v).(string); ok {
		s = strings.TrimSpace(s)
		*o = Option[T]{}
		if !blank(s) {
			o.value, o.set = any(s).(T), true
		}
		return nil
	}
	*o = Some(v)
	return nil
}

func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == legacySentinel
}
