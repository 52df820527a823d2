package session

import (
	"context"
	"errors"
)

var errStorage = errors.New("storage unavailable")

// memKV is an in-memory store.KVRepo with switchable failures.
type memKV struct {
	data    map[string]string
	failGet bool
	failSet bool
	sets    int
	deleted []string
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, name string) (string, bool, error) {
	if m.failGet {
		return "", false, errStorage
	}
	v, ok := m.data[name]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, name, value string) error {
	if m.failSet {
		return errStorage
	}
	m.sets++
	m.data[name] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, names ...string) error {
	m.deleted = append(m.deleted, names...)
	for _, n := range names {
		delete(m.data, n)
	}
	return nil
}
