package service

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Manager owns the process context and the teardown functions that run when
// it is cancelled.
type Manager struct {
	termChan  chan os.Signal
	waitGroup *sync.WaitGroup
	context   context.Context
	cancel    context.CancelFunc
	once      sync.Once
}

var manager *Manager
var managerOnce sync.Once

// GetTeardownManager returns the process manager, subscribed to SIGINT and
// SIGTERM.
func GetTeardownManager() *Manager {
	managerOnce.Do(func() {
		manager = NewManager()
		signal.Notify(manager.termChan, os.Interrupt, syscall.SIGTERM)
	})
	return manager
}

// NewManager returns a manager that is not subscribed to any signal.
func NewManager() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		termChan:  make(chan os.Signal, 1),
		waitGroup: &sync.WaitGroup{},
		context:   ctx,
		cancel:    cancel,
	}
}

// TeardownFunc registers f to run once the manager context is cancelled.
func (m *Manager) TeardownFunc(f func()) {
	m.waitGroup.Add(1)
	go func() {
		defer m.waitGroup.Done()
		<-m.context.Done()
		f()
	}()
}

// Wait blocks until a termination signal arrives or the context is cancelled,
// then shuts down.
func (m *Manager) Wait() {
	select {
	case <-m.termChan:
	case <-m.context.Done():
	}
	m.Shutdown()
}

// Shutdown cancels the context and waits for every teardown function. Safe to
// call more than once.
func (m *Manager) Shutdown() {
	m.once.Do(m.cancel)
	m.waitGroup.Wait()
}

func (m *Manager) WaitGroup() *sync.WaitGroup {
	return m.waitGroup
}

func (m *Manager) Context() context.Context {
	return m.context
}
