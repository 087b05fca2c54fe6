package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound - 키가 없음
var ErrNotFound = errors.New("kv: key not found")

// Store - 드래프트, 로컬 히스토리, 설정을 담는 키-값 저장소
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type namespaced struct {
	prefix string
	inner  Store
}

// Namespace - 오너별 키 공간. 고정 키 이름은 그대로 두고 앞에 prefix만 붙인다
func Namespace(s Store, ns string) Store {
	return &namespaced{prefix: strings.TrimSuffix(ns, ":") + ":", inner: s}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

// Close - 공유 저장소는 닫지 않음
func (n *namespaced) Close() error {
	return nil
}
