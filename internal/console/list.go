package console

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// List holds the rows of a list screen. Rows change only after the server
// confirmed the action; a failed action leaves them as they were.
type List[T any] struct {
	mu      sync.Mutex
	items   []T
	id      func(T) int64
	notify  Notifier
	failMsg string
}

func NewList[T any](items []T, id func(T) int64, n Notifier, failMsg string) *List[T] {
	return &List[T]{items: items, id: id, notify: n, failMsg: failMsg}
}

// Items returns a copy of the current rows.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Toggle runs action for id and, on success, replaces the row with flip(row).
func (l *List[T]) Toggle(ctx context.Context, id int64, action ItemAction, flip func(T) T) bool {
	if !l.run(ctx, id, action) {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]T, len(l.items))
	for i, it := range l.items {
		if l.id(it) == id {
			it = flip(it)
		}
		next[i] = it
	}
	l.items = next
	return true
}

// Delete asks confirm first; only an accepted and successful delete drops
// the row.
func (l *List[T]) Delete(ctx context.Context, id int64, confirm func() bool, action ItemAction) bool {
	if confirm != nil && !confirm() {
		return false
	}
	if !l.run(ctx, id, action) {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if l.id(it) != id {
			next = append(next, it)
		}
	}
	l.items = next
	return true
}

func (l *List[T]) run(ctx context.Context, id int64, action ItemAction) bool {
	res, err := action(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("id", id).Msg("list action failed")
		l.notify.Error(l.failMsg)
		return false
	}
	if !res.Success {
		l.notify.Error(res.Message)
		return false
	}
	if res.Message != "" {
		l.notify.Success(res.Message)
	}
	return true
}
