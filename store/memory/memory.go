// Package memory provides an in-memory payroll.TimesheetStore.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/warp/shift-payroll/attendance"
	"github.com/warp/shift-payroll/generic"
	"github.com/warp/shift-payroll/payroll"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	sheets map[string]payroll.Timesheet
}

var _ payroll.TimesheetStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{sheets: make(map[string]payroll.Timesheet)}
}

// SaveTimesheet stores a copy so later edits by the caller don't leak in.
func (m *Memory) SaveTimesheet(_ context.Context, t payroll.Timesheet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sheets[t.ID]; ok {
		t.CreatedAt = existing.CreatedAt
	}
	m.sheets[t.ID] = clone(t)
	return nil
}

func (m *Memory) GetTimesheet(_ context.Context, id string) (*payroll.Timesheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.sheets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", generic.ErrTimesheetNotFound, id)
	}
	c := clone(t)
	return &c, nil
}

func (m *Memory) ListTimesheets(_ context.Context) ([]payroll.Timesheet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]payroll.Timesheet, 0, len(m.sheets))
	for _, t := range m.sheets {
		out = append(out, clone(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteTimesheet(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sheets[id]; !ok {
		return fmt.Errorf("%w: %s", generic.ErrTimesheetNotFound, id)
	}
	delete(m.sheets, id)
	return nil
}

func (m *Memory) DeleteStale(_ context.Context, before time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, t := range m.sheets {
		if t.UpdatedAt.Before(before) {
			delete(m.sheets, id)
			n++
		}
	}
	return n, nil
}

func clone(t payroll.Timesheet) payroll.Timesheet {
	t.Rows = append([]attendance.Row(nil), t.Rows...)
	return t
}
