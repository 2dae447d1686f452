package orchestrators

import (
	"context"
	"errors"
	"strings"
	"sync"

	"treetroopers/internal/adapters/email"
	accountStore "treetroopers/internal/adapters/storage/account"
	"treetroopers/internal/adapters/storage/kv"
	"treetroopers/internal/domain/account"
	"treetroopers/internal/domain/calendar"
)

// mockKVStore is an in-memory KVStore.
type mockKVStore struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string]string{}}
}

func (m *mockKVStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", kv.ErrNotFound
	}
	return v, nil
}

func (m *mockKVStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *mockKVStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockEventStore assigns increasing ids.
type mockEventStore struct {
	events    []calendar.Event
	createErr error
}

func (m *mockEventStore) Create(_ context.Context, e calendar.Event) (calendar.Event, error) {
	if m.createErr != nil {
		return calendar.Event{}, m.createErr
	}
	e.ID = int64(len(m.events) + 1)
	m.events = append(m.events, e)
	return e, nil
}

// mockDeveloperStore is keyed by lower-cased email.
type mockDeveloperStore struct {
	devs  map[string]account.Developer
	saves int
}

func newMockDeveloperStore() *mockDeveloperStore {
	return &mockDeveloperStore{devs: map[string]account.Developer{}}
}

func (m *mockDeveloperStore) GetByEmail(_ context.Context, email string) (account.Developer, error) {
	d, ok := m.devs[strings.ToLower(email)]
	if !ok {
		return account.Developer{}, accountStore.ErrNotFound
	}
	return d, nil
}

func (m *mockDeveloperStore) Save(_ context.Context, d account.Developer) error {
	m.saves++
	m.devs[strings.ToLower(d.Email)] = d
	return nil
}

func (m *mockDeveloperStore) Count(_ context.Context) (int, error) {
	return len(m.devs), nil
}

// failingSender always errors.
type failingSender struct{ calls int }

func (f *failingSender) Send(context.Context, email.Message) (string, error) {
	f.calls++
	return "", errors.New("provider down")
}
