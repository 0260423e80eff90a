package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session

	sets  *variant.Registry
	store *storage.Store
	now   func() time.Time
}

type Option func(*Manager)

// WithStore 每次修改后把快照写进 store，内存里没有的对局从 store 恢复
func WithStore(store *storage.Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithNow 替换时间来源（测试用）
func WithNow(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(sets *variant.Registry, opts ...Option) *Manager {
	if sets == nil {
		sets = variant.BuiltinRegistry()
	}
	m := &Manager{
		games: make(map[string]*Session),
		sets:  sets,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Sets() *variant.Registry { return m.sets }

func (m *Manager) Now() time.Time { return m.now() }

func (m *Manager) NewGame(whiteSet, blackSet string, cfg ClockConfig) (*Session, error) {
	white, err := m.sets.Get(whiteSet)
	if err != nil {
		return nil, err
	}
	black, err := m.sets.Get(blackSet)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	g := &Session{
		ID:        uuid.NewString(),
		WhiteSet:  white.ID,
		BlackSet:  black.ID,
		State:     variant.NewGameState(white, black),
		Clock:     NewClock(cfg),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	m.persist(g, false)
	return g, nil
}

// Get 只确认对局存在；读写对局内容要走 View / Do
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if ok {
		return g, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id)
}

// View 在读锁内执行 fn，fn 不能修改对局
func (m *Manager) View(id string, fn func(g *Session) error) error {
	m.mu.RLock()
	if g, ok := m.games[id]; ok {
		defer m.mu.RUnlock()
		return fn(g)
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	g, err := m.lookup(id)
	if err != nil {
		return err
	}
	return fn(g)
}

// lookup 调用方持有写锁
func (m *Manager) lookup(id string) (*Session, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	if m.store == nil {
		return nil, ErrGameNotFound
	}
	rec, err := m.store.LoadGame(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	g, err := sessionFromRecord(rec, m.sets)
	if err != nil {
		return nil, err
	}
	m.games[id] = g
	return g, nil
}

// Do 在写锁内执行 fn，fn 结束后落盘（fn 出错时局面也可能变了，比如超时判负）
func (m *Manager) Do(id string, fn func(g *Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, err := m.lookup(id)
	if err != nil {
		return err
	}
	wasOver := g.State.GameOver
	fnErr := fn(g)
	g.UpdatedAt = m.now()
	m.persist(g, !wasOver && g.State.GameOver)
	return fnErr
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, inMemory := m.games[id]
	delete(m.games, id)
	if m.store != nil {
		err := m.store.DeleteGame(id)
		if errors.Is(err, storage.ErrNotFound) && inMemory {
			return nil
		}
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	if !inMemory {
		return ErrGameNotFound
	}
	return nil
}

// Tick 检查所有在走的时钟，把超时的对局判负，返回这些对局 id
func (m *Manager) Tick() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var expired []string
	for id, g := range m.games {
		if g.checkExpired(now) {
			g.UpdatedAt = now
			m.persist(g, true)
			expired = append(expired, id)
		}
	}
	return expired
}

// RunTicker 每隔 interval 调用一次 Tick，直到 stop 被关闭
func (m *Manager) RunTicker(interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			for _, id := range m.Tick() {
				log.Printf("game %s: flag fell", id)
			}
		}
	}
}

func (m *Manager) persist(g *Session, finished bool) {
	if m.store == nil {
		return
	}
	rec := g.Record()
	if err := m.store.SaveGame(rec); err != nil {
		log.Printf("save game %s: %v", g.ID, err)
	}
	if finished {
		if err := m.store.RecordResult(rec); err != nil {
			log.Printf("record result %s: %v", g.ID, err)
		}
	}
}
