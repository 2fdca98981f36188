package repository

import (
	"context"
	"fmt"
	"sync"

	"guesthouse/internal/domains/room/model"
)

type memorySettings struct {
	mu          sync.Mutex
	settings    model.Settings
	subscribers map[int]func(model.Settings)
	nextID      int
}

// NewMemory keeps settings in process. It starts from the defaults.
func NewMemory() Settings {
	return &memorySettings{
		subscribers: map[int]func(model.Settings){},
	}
}

func (m *memorySettings) Load(_ context.Context) (model.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings == nil {
		return model.DefaultSettings(), nil
	}

	return m.settings.Clone(), nil
}

func (m *memorySettings) Save(_ context.Context, settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid room settings: %w", err)
	}

	m.mu.Lock()
	m.settings = settings.Clone()

	callbacks := make([]func(model.Settings), 0, len(m.subscribers))
	for _, callback := range m.subscribers {
		callbacks = append(callbacks, callback)
	}
	m.mu.Unlock()

	for _, callback := range callbacks {
		callback(settings.Clone())
	}

	return nil
}

func (m *memorySettings) OnSettingsChanged(ctx context.Context, callback func(model.Settings)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subscribers[id] = callback
	m.mu.Unlock()

	remove := func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}

	stop := context.AfterFunc(ctx, remove)

	return func() {
		stop()
		remove()
	}
}
