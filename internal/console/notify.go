// Package console holds the state machines behind the terminal admin:
// forms that submit one action, lists that update only after an action
// succeeds, and the hero slide carousel.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"hotel_portal/internal/adapters/adminclient"
)

// Action is one call to the admin API.
type Action func(ctx context.Context, payload map[string]any) (adminclient.Result, error)

// ItemAction is an action on one record.
type ItemAction func(ctx context.Context, id int64) (adminclient.Result, error)

// Notifier shows transient messages to the operator.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Printer writes notifications as lines to w.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

func (p *Printer) Success(msg string) { p.line("ok", msg) }
func (p *Printer) Error(msg string)   { p.line("error", msg) }

func (p *Printer) line(tag, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "[%s] %s\n", tag, msg)
}
