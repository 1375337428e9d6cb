// Package model exposes the store as the asynchronous item collection the
// controller talks to.
package model

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sadopc/todomvc/internal/store"
)

// Model runs every operation on its own goroutine and hands the result to the
// callback exactly once. Ordering between independent calls is whatever the
// store's single connection gives them.
type Model struct {
	store  *store.Store
	logger *log.Logger
	wg     sync.WaitGroup
}

func New(s *store.Store, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.Default()
	}
	return &Model{store: s, logger: logger}
}

func (m *Model) Read(q store.Query, fn func([]store.Item, error)) {
	m.run("read", func() {
		items, err := m.store.ListItems(q)
		fn(items, err)
	})
}

func (m *Model) GetCount(fn func(store.Counts, error)) {
	m.run("count", func() {
		c, err := m.store.CountItems()
		fn(c, err)
	})
}

func (m *Model) Create(title string, fn func(error)) {
	m.run("create", func() {
		_, err := m.store.CreateItem(title)
		fn(err)
	})
}

func (m *Model) Update(id int64, p store.Patch, fn func(error)) {
	m.run("update", func() {
		fn(m.store.UpdateItem(id, p))
	})
}

func (m *Model) Remove(id int64, fn func(error)) {
	m.run("remove", func() {
		fn(m.store.DeleteItem(id))
	})
}

// Wait blocks until every operation issued so far, and any issued from their
// callbacks, has finished.
func (m *Model) Wait() {
	m.wg.Wait()
}

func (m *Model) run(op string, fn func()) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		start := time.Now()
		fn()
		m.logger.Debug("model op", "op", op, "took", time.Since(start))
	}()
}
