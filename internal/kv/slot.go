// Package kv хранит один именованный слот байтов на диске.
// Слот всегда читается и пишется целиком.
package kv

import (
	"context"
	"fmt"
)

type Slot interface {
	// Load возвращает nil, nil, если в слот еще ничего не писали.
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
	Close() error
}

const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open создает слот name в каталоге dir.
func Open(kind, dir, name string) (Slot, error) {
	switch kind {
	case KindFile, "":
		return NewFileSlot(dir, name)
	case KindSQLite:
		return OpenSQLite(dir, name)
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}
