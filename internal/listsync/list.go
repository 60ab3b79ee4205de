// Package listsync keeps a page's local copy of a remote collection. The copy
// is replaced wholesale by every successful refresh and is never patched in
// place.
package listsync

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"mediassist/internal/api"
	"mediassist/internal/clinic"
)

// Row is a record annotated with its 1-based display position. Seq is
// recomputed on every fetch and never sent to the backend.
type Row[R clinic.Record] struct {
	Seq    int
	Record R
}

// List is safe for concurrent use. When refreshes overlap, the one that
// completes last determines the displayed rows.
type List[R clinic.Record] struct {
	schema clinic.Schema[R]
	caller api.Caller
	log    *zap.Logger

	mu   sync.RWMutex
	rows []Row[R]
}

func New[R clinic.Record](schema clinic.Schema[R], caller api.Caller, log *zap.Logger) *List[R] {
	if log == nil {
		log = zap.NewNop()
	}
	return &List[R]{schema: schema, caller: caller, log: log}
}

// Refresh refetches the collection. On failure the error is logged, the
// previous rows stay in place, and the error is returned.
func (l *List[R]) Refresh(ctx context.Context) error {
	records, err := api.List[R](ctx, l.caller)
	if err != nil {
		l.log.Error("refresh failed, keeping previous rows",
			zap.String("kind", string(l.schema.Kind)),
			zap.Error(err),
		)
		return err
	}

	rows := make([]Row[R], len(records))
	for i, r := range records {
		rows[i] = Row[R]{Seq: i + 1, Record: l.schema.Normalized(r)}
	}

	l.mu.Lock()
	l.rows = rows
	l.mu.Unlock()

	l.log.Debug("list refreshed", zap.String("kind", string(l.schema.Kind)), zap.Int("rows", len(rows)))
	return nil
}

// Rows returns a snapshot of the displayed rows.
func (l *List[R]) Rows() []Row[R] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Row[R](nil), l.rows...)
}

func (l *List[R]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}

// Find returns the row whose record has the given identifier.
func (l *List[R]) Find(id int64) (Row[R], bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, row := range l.rows {
		if rid := row.Record.Identifier(); rid != nil && *rid == id {
			return row, true
		}
	}
	return Row[R]{}, false
}

// Filter returns the rows whose search text contains term, ignoring case.
// Matching rows keep their Seq. A blank term, or a kind without search,
// returns every row.
func (l *List[R]) Filter(term string) []Row[R] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || !l.schema.Searchable() {
		return l.Rows()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Row[R]
	for _, row := range l.rows {
		if strings.Contains(strings.ToLower(l.schema.SearchText(row.Record)), term) {
			out = append(out, row)
		}
	}
	return out
}
