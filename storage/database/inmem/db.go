package inmemdb

import (
	"sync"

	"github.com/trezcool/katalog/core/catalog"
)

type (
	// DB holds the catalog tables in memory for the lifetime of the process.
	DB struct {
		subject  *table[catalog.Subject]
		student  *table[catalog.Student]
		project  *table[catalog.Project]
		feedback *table[catalog.Feedback]
	}

	// table rows are never modified in place: writers swap in a new slice,
	// so a slice handed out to a reader stays consistent.
	table[T any] struct {
		sync.RWMutex
		rows []T
	}
)

func Open() *DB {
	return &DB{
		subject:  &table[catalog.Subject]{rows: []catalog.Subject{}},
		student:  &table[catalog.Student]{rows: []catalog.Student{}},
		project:  &table[catalog.Project]{rows: []catalog.Project{}},
		feedback: &table[catalog.Feedback]{rows: []catalog.Feedback{}},
	}
}

func (t *table[T]) all() []T {
	t.RLock()
	defer t.RUnlock()
	return t.rows
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.RLock()
	defer t.RUnlock()

	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// insert adds row at the end of the table, or at the front when prepend is set.
// It fails with catalog.ErrIDExists when exists reports a row with the same id.
func (t *table[T]) insert(row T, prepend bool, exists func(T) bool) error {
	t.Lock()
	defer t.Unlock()

	for _, r := range t.rows {
		if exists(r) {
			return catalog.ErrIDExists
		}
	}

	rows := make([]T, len(t.rows)+1)
	if prepend {
		rows[0] = row
		copy(rows[1:], t.rows)
	} else {
		copy(rows, t.rows)
		rows[len(t.rows)] = row
	}
	t.rows = rows
	return nil
}
