package repository

import (
	"context"
	"errors"
)

// キーが存在しない
var ErrNotFound = errors.New("not found")

// ブラウザのlocalStorage相当の小さなkey-valueポート。
// カートの永続化はすべてこの裏で行う。
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
