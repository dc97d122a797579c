package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sanchay/planner/internal/domain"
)

// Persister loads and saves the whole user state. Load returns (nil, nil)
// when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) (*domain.UserState, error)
	Save(ctx context.Context, state *domain.UserState) error
}

// MemoryPersister keeps the last saved state in process memory
type MemoryPersister struct {
	mu    sync.Mutex
	state *domain.UserState
}

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns a copy of the last saved state
func (m *MemoryPersister) Load(ctx context.Context) (*domain.UserState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	s := cloneState(*m.state)
	return &s, nil
}

// Save stores a copy of state
func (m *MemoryPersister) Save(ctx context.Context, state *domain.UserState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := cloneState(*state)
	m.state = &s
	return nil
}

// FilePersister stores the state as indented JSON. Writes go to a temporary
// file in the same directory which is then renamed over the target.
type FilePersister struct {
	Path string
}

// NewFilePersister creates a persister for path
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

// Load reads the state file; a missing file is not an error
func (f *FilePersister) Load(ctx context.Context) (*domain.UserState, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", f.Path, err)
	}
	var state domain.UserState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", f.Path, err)
	}
	return &state, nil
}

// Save writes the state atomically
func (f *FilePersister) Save(ctx context.Context, state *domain.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("failed to replace state file %s: %w", f.Path, err)
	}
	return nil
}

// DefaultRedisKey is the key used when none is configured
const DefaultRedisKey = "sanchay:state"

// RedisPersister stores the JSON encoded state under a single Redis key
type RedisPersister struct {
	client *redis.Client
	key    string
}

// NewRedisPersister connects to addr; the connection is established lazily
func NewRedisPersister(addr, key string) *RedisPersister {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisPersister{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
	}
}

// Ping checks that the server is reachable
func (r *RedisPersister) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Load fetches the state; a missing key is not an error
func (r *RedisPersister) Load(ctx context.Context) (*domain.UserState, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read redis key %s: %w", r.key, err)
	}
	var state domain.UserState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse redis key %s: %w", r.key, err)
	}
	return &state, nil
}

// Save writes the state without expiry
func (r *RedisPersister) Save(ctx context.Context, state *domain.UserState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write redis key %s: %w", r.key, err)
	}
	return nil
}

// Close releases the underlying connection pool
func (r *RedisPersister) Close() error {
	return r.client.Close()
}
