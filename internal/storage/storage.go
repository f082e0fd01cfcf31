// Package storage provides the local key/value backends the health log is
// persisted to. Each backend behaves like a browser's localStorage: string
// keys, opaque values, whole-value overwrites.
package storage

import (
	"fmt"
	"io"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendSQLite, BackendBolt, BackendMemory}

// KV is implemented by every backend in this package.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	io.Closer
}

// Open returns the named backend. path is ignored for the memory backend.
func Open(backend, path string) (KV, error) {
	switch backend {
	case BackendSQLite:
		s, err := NewSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendBolt:
		b, err := NewBolt(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BackendMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
