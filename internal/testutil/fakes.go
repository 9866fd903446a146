package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
)

// MemoryCovers 内存封面存储
type MemoryCovers struct {
	mu      sync.Mutex
	seq     int
	Objects map[string][]byte
	Deleted []string
	SaveErr error
}

// NewMemoryCovers 创建内存封面存储
func NewMemoryCovers() *MemoryCovers {
	return &MemoryCovers{Objects: map[string][]byte{}}
}

func (m *MemoryCovers) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	key := fmt.Sprintf("covers/%d-%s", m.seq, filename)
	m.Objects[key] = data
	return key, nil
}

func (m *MemoryCovers) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

func (m *MemoryCovers) URL(key string) string {
	if key == "" {
		return ""
	}
	return "/media/" + key
}

// Len 当前保存的封面数
func (m *MemoryCovers) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

// RecordingPublisher 记录发布过的事件
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []event.Event
	Err    error
}

func (p *RecordingPublisher) Publish(_ context.Context, e event.Event) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
	return nil
}

// Names 按发布顺序返回事件名
func (p *RecordingPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, len(p.Events))
	for i, e := range p.Events {
		names[i] = e.Name
	}
	return names
}

// MemorySessions 内存会话存储，TTL只记录不过期
type MemorySessions struct {
	mu        sync.Mutex
	Sessions  map[uint]map[string]interface{}
	Blacklist map[string]time.Duration
	SaveErr   error
}

// NewMemorySessions 创建内存会话存储
func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		Sessions:  map[uint]map[string]interface{}{},
		Blacklist: map[string]time.Duration{},
	}
}

// ErrSessionDown 模拟会话存储不可用
var ErrSessionDown = errors.New("session store unavailable")

func (s *MemorySessions) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sessions[userID] = data
	return nil
}

func (s *MemorySessions) DeleteSession(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Sessions, userID)
	return nil
}

func (s *MemorySessions) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Blacklist[token] = ttl
	return nil
}

func (s *MemorySessions) IsInBlacklist(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Blacklist[token]
	return ok, nil
}
