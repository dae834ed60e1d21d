package kv

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"storefront/internal/repository"
)

// JSONファイル1枚に全キーを持つKV。
// 単一ノード前提。localStorageの置き換えなのでロック粒度は荒くてよい。
type FileKV struct {
	mu   sync.Mutex
	path string
}

func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return nil, err
	}

	v, ok := data[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}

	data[key] = json.RawMessage(value)
	return f.write(data)
}

func (f *FileKV) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return err
	}

	delete(data, key)
	return f.write(data)
}

// ファイル全体を読む。無い・壊れている場合は空として扱う。
func (f *FileKV) read() (map[string]json.RawMessage, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, err
	}

	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return data, nil
}

// 一時ファイルに書いてからrenameで置き換える
func (f *FileKV) write(data map[string]json.RawMessage) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
