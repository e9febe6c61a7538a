package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_portal/internal/adapters/adminclient"
	"hotel_portal/internal/domain"
)

// ErrBusy is returned by Submit while an earlier submit is still in flight.
var ErrBusy = errors.New("form is already submitting")

type FieldKind int

const (
	Text FieldKind = iota
	Number
	Integer
	Date
	Bool
	CommaList // comma separated values
)

type Field struct {
	Name string // JSON name sent to the action
	Kind FieldKind
}

// Form collects flat string values, converts them to native types on submit
// and calls one action. Set is last-write-wins; derive hooks recompute
// dependent fields when their source changes.
type Form struct {
	mu      sync.Mutex
	kinds   map[string]FieldKind
	order   []string
	values  map[string]string
	hooks   map[string][]func(values map[string]string)
	busy    bool
	submit  Action
	notify  Notifier
	failMsg string
	okMsg   string
}

// NewForm builds a form over fields. failMsg is shown when the action fails
// unexpectedly; okMsg when it succeeds without a message of its own.
func NewForm(fields []Field, submit Action, n Notifier, failMsg, okMsg string) *Form {
	f := &Form{
		kinds:   make(map[string]FieldKind, len(fields)),
		values:  make(map[string]string, len(fields)),
		hooks:   map[string][]func(map[string]string){},
		submit:  submit,
		notify:  n,
		failMsg: failMsg,
		okMsg:   okMsg,
	}
	for _, fd := range fields {
		f.kinds[fd.Name] = fd.Kind
		f.order = append(f.order, fd.Name)
	}
	return f
}

// DeriveSlug fills slug from source whenever source changes.
func (f *Form) DeriveSlug(source, slug string) *Form {
	f.hooks[source] = append(f.hooks[source], func(v map[string]string) {
		v[slug] = domain.Slugify(v[source])
	})
	return f
}

// DeriveSavings keeps the savings pair in step with the two prices.
func (f *Form) DeriveSavings(original, offer, amount, percent string) *Form {
	hook := func(v map[string]string) {
		a, p := domain.ComputeSavings(parsePrice(v[original]), parsePrice(v[offer]))
		if a == nil {
			v[amount], v[percent] = "", ""
			return
		}
		v[amount] = strconv.FormatFloat(*a, 'f', 2, 64)
		v[percent] = strconv.FormatFloat(*p, 'f', -1, 64)
	}
	f.hooks[original] = append(f.hooks[original], hook)
	f.hooks[offer] = append(f.hooks[offer], hook)
	return f
}

func parsePrice(s string) *float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &n
}

func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.kinds[field]; !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	f.values[field] = value
	for _, h := range f.hooks[field] {
		h(f.values)
	}
	return nil
}

func (f *Form) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

func (f *Form) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit converts the values and calls the action once. The operator is
// notified either way; only an unexpected failure is returned as an error.
func (f *Form) Submit(ctx context.Context) (adminclient.Result, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return adminclient.Result{}, ErrBusy
	}
	f.busy = true
	payload, convErr := f.payload()
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.busy = false
		f.mu.Unlock()
	}()

	if convErr != nil {
		f.notify.Error(convErr.Error())
		return adminclient.Result{Message: convErr.Error()}, nil
	}

	res, err := f.submit(ctx, payload)
	if err != nil {
		log.Error().Err(err).Msg("form submit failed")
		f.notify.Error(f.failMsg)
		return adminclient.Result{}, err
	}
	if !res.Success {
		f.notify.Error(res.Message)
		return res, nil
	}
	msg := res.Message
	if msg == "" {
		msg = f.okMsg
	}
	f.notify.Success(msg)
	return res, nil
}

// payload turns the string values into JSON-ready native values. Blank
// fields are sent as null.
func (f *Form) payload() (map[string]any, error) {
	out := make(map[string]any, len(f.order))
	for _, name := range f.order {
		raw, set := f.values[name]
		if !set {
			continue
		}
		raw = strings.TrimSpace(raw)
		kind := f.kinds[name]
		if raw == "" {
			if kind == Text {
				out[name] = ""
			} else {
				out[name] = nil
			}
			continue
		}
		switch kind {
		case Number:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", name)
			}
			out[name] = n
		case Integer:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a whole number", name)
			}
			out[name] = n
		case Date:
			d, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return nil, fmt.Errorf("%s must be a date like 2026-01-31", name)
			}
			out[name] = d
		case Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("%s must be true or false", name)
			}
			out[name] = b
		case CommaList:
			parts := strings.Split(raw, ",")
			items := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					items = append(items, p)
				}
			}
			out[name] = items
		default:
			out[name] = raw
		}
	}
	return out, nil
}
