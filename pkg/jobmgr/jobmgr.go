// Package jobmgr runs named background jobs with cancellation and
// in-memory tracking. Jobs run in their own goroutines and are removed
// when they finish.
package jobmgr

import (
	"context"
	"fmt"
	"sync"
)

// StatusReporter receives job lifecycle events, e.g. "running:monitor:FordBot"
// or "error:monitor:FordBot:connection reset".
type StatusReporter func(string)

// Manager starts, stops and tracks jobs. Safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	jobs   map[string]context.CancelFunc
	wg     sync.WaitGroup
	report StatusReporter
}

// NewManager creates a Manager. report may be nil.
func NewManager(report StatusReporter) *Manager {
	return &Manager{jobs: make(map[string]context.CancelFunc), report: report}
}

func (m *Manager) emit(msg string) {
	if m.report != nil {
		m.report(msg)
	}
}

// StartAsync launches fn under the given name. The job's context is
// cancelled by Stop or StopAll. Starting a duplicate name is an error.
func (m *Manager) StartAsync(parent context.Context, name string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job %q is already running", name)
	}
	ctx, cancel := context.WithCancel(parent)
	m.jobs[name] = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.emit("running:" + name)
		err := fn(ctx)

		m.mu.Lock()
		delete(m.jobs, name)
		m.mu.Unlock()
		cancel()

		if err != nil && ctx.Err() == nil {
			m.emit("error:" + name + ":" + err.Error())
			return
		}
		m.emit("done:" + name)
	}()
	return nil
}

// Stop cancels the named job. Unknown names are an error.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	cancel, ok := m.jobs[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("no job named %q", name)
	}
	cancel()
	return nil
}

// StopAll cancels every running job.
func (m *Manager) StopAll() {
	m.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(m.jobs))
	for _, c := range m.jobs {
		cancels = append(cancels, c)
	}
	m.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Wait blocks until all jobs have finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Running returns the names of currently running jobs.
func (m *Manager) Running() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.jobs))
	for name := range m.jobs {
		names = append(names, name)
	}
	return names
}
