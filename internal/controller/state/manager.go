package state

import (
	"sync"
	"time"
)

// Manager хранит состояния собеседников в памяти процесса
type Manager struct {
	mu    sync.RWMutex
	convs map[Key]*Conversation
	now   func() time.Time
}

func NewManager() *Manager {
	return &Manager{
		convs: make(map[Key]*Conversation),
		now:   time.Now,
	}
}

// Get возвращает состояние собеседника, создавая пустое при первом обращении
func (m *Manager) Get(key Key) *Conversation {
	m.mu.RLock()
	c, ok := m.convs[key]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.convs[key]; ok {
		return c
	}
	c = &Conversation{Key: key, lastActive: m.now()}
	m.convs[key] = c
	return c
}

// Peek возвращает состояние без создания
func (m *Manager) Peek(key Key) (*Conversation, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.convs[key]
	return c, ok
}

// Reset забывает собеседника целиком
func (m *Manager) Reset(key Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.convs, key)
}

// Len количество живых состояний
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.convs)
}

// EvictIdle удаляет состояния, неактивные дольше ttl.
// Занятые в этот момент обработкой пропускаются.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	deadline := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for key, c := range m.convs {
		if !c.mu.TryLock() {
			continue
		}
		idle := c.lastActive.Before(deadline)
		c.mu.Unlock()

		if idle {
			delete(m.convs, key)
			evicted++
		}
	}
	return evicted
}
