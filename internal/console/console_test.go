package console_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotel_portal/internal/adapters/adminclient"
	"hotel_portal/internal/console"
)

type recorder struct {
	mu      sync.Mutex
	ok, bad []string
}

func (r *recorder) Success(msg string) { r.mu.Lock(); r.ok = append(r.ok, msg); r.mu.Unlock() }
func (r *recorder) Error(msg string)   { r.mu.Lock(); r.bad = append(r.bad, msg); r.mu.Unlock() }

var offerFields = []console.Field{
	{Name: "title", Kind: console.Text},
	{Name: "slug", Kind: console.Text},
	{Name: "originalPrice", Kind: console.Number},
	{Name: "offerPrice", Kind: console.Number},
	{Name: "savingsAmount", Kind: console.Number},
	{Name: "savingsPercent", Kind: console.Number},
	{Name: "validFrom", Kind: console.Date},
	{Name: "isFeatured", Kind: console.Bool},
	{Name: "propertyId", Kind: console.Integer},
	{Name: "inclusions", Kind: console.CommaList},
}

func newOfferForm(action console.Action, n console.Notifier) *console.Form {
	return console.NewForm(offerFields, action, n, "Failed to save offer", "Offer saved").
		DeriveSlug("title", "slug").
		DeriveSavings("originalPrice", "offerPrice", "savingsAmount", "savingsPercent")
}

func TestForm_DerivesSlugAndSavings(t *testing.T) {
	f := newOfferForm(nil, &recorder{})

	_ = f.Set("title", "Grand Opening!")
	if got := f.Get("slug"); got != "grand-opening" {
		t.Fatalf("unexpected slug %q", got)
	}
	// a hand-typed slug wins until the title changes again
	_ = f.Set("slug", "opening")
	if got := f.Get("slug"); got != "opening" {
		t.Fatalf("manual slug overwritten: %q", got)
	}

	_ = f.Set("originalPrice", "1000")
	if got := f.Get("savingsAmount"); got != "" {
		t.Fatalf("savings without an offer price: %q", got)
	}
	_ = f.Set("offerPrice", "750")
	if f.Get("savingsAmount") != "250.00" || f.Get("savingsPercent") != "25" {
		t.Fatalf("unexpected savings %q %q", f.Get("savingsAmount"), f.Get("savingsPercent"))
	}

	if err := f.Set("nope", "x"); err == nil {
		t.Fatalf("expected error for an unknown field")
	}
}

func TestForm_SubmitSuccessConvertsTypes(t *testing.T) {
	n := &recorder{}
	var got map[string]any
	var busyDuringCall bool
	var f *console.Form
	f = newOfferForm(func(_ context.Context, p map[string]any) (adminclient.Result, error) {
		got = p
		busyDuringCall = f.Busy()
		return adminclient.Result{Success: true, Message: "Offer created"}, nil
	}, n)

	_ = f.Set("title", "Spa Days")
	_ = f.Set("originalPrice", "300")
	_ = f.Set("offerPrice", "199.99")
	_ = f.Set("validFrom", "2026-07-01")
	_ = f.Set("isFeatured", "true")
	_ = f.Set("propertyId", "4")
	_ = f.Set("inclusions", "breakfast, spa ,")

	res, err := f.Submit(context.Background())
	if err != nil || !res.Success {
		t.Fatalf("unexpected submit result %+v (%v)", res, err)
	}
	if !busyDuringCall || f.Busy() {
		t.Fatalf("busy flag must be set during the call and cleared after")
	}
	if len(n.ok) != 1 || n.ok[0] != "Offer created" || len(n.bad) != 0 {
		t.Fatalf("unexpected notifications ok=%v err=%v", n.ok, n.bad)
	}
	if got["offerPrice"] != 199.99 || got["propertyId"] != int64(4) || got["isFeatured"] != true {
		t.Fatalf("unexpected payload %v", got)
	}
	if d, ok := got["validFrom"].(time.Time); !ok || !d.Equal(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got["validFrom"])
	}
	if l, ok := got["inclusions"].([]string); !ok || len(l) != 2 || l[1] != "spa" {
		t.Fatalf("unexpected list %v", got["inclusions"])
	}
	if got["savingsAmount"] != 100.01 || got["savingsPercent"] != float64(33) {
		t.Fatalf("unexpected savings %v %v", got["savingsAmount"], got["savingsPercent"])
	}
}

func TestForm_BusinessFailureShownVerbatim(t *testing.T) {
	n := &recorder{}
	f := newOfferForm(func(context.Context, map[string]any) (adminclient.Result, error) {
		return adminclient.Result{Success: false, Message: "X"}, nil
	}, n)
	_ = f.Set("title", "Anything")

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("business failures are not errors: %v", err)
	}
	if len(n.bad) != 1 || n.bad[0] != "X" || f.Busy() {
		t.Fatalf("unexpected state: errors=%v busy=%v", n.bad, f.Busy())
	}
}

func TestForm_UnexpectedFailureShowsGenericMessage(t *testing.T) {
	n := &recorder{}
	f := newOfferForm(func(context.Context, map[string]any) (adminclient.Result, error) {
		return adminclient.Result{}, errors.New("connection refused")
	}, n)

	if _, err := f.Submit(context.Background()); err == nil {
		t.Fatalf("expected the transport error")
	}
	if len(n.bad) != 1 || n.bad[0] != "Failed to save offer" || f.Busy() {
		t.Fatalf("unexpected state: errors=%v busy=%v", n.bad, f.Busy())
	}
}

func TestForm_ConversionErrorSkipsAction(t *testing.T) {
	n := &recorder{}
	called := false
	f := newOfferForm(func(context.Context, map[string]any) (adminclient.Result, error) {
		called = true
		return adminclient.Result{Success: true}, nil
	}, n)
	_ = f.Set("validFrom", "31/12/2026")

	if _, err := f.Submit(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if called || len(n.bad) != 1 {
		t.Fatalf("action must not run on bad input: called=%v errors=%v", called, n.bad)
	}
}

func TestForm_RejectsDoubleSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := newOfferForm(func(context.Context, map[string]any) (adminclient.Result, error) {
		close(entered)
		<-release
		return adminclient.Result{Success: true}, nil
	}, &recorder{})

	done := make(chan struct{})
	go func() {
		_, _ = f.Submit(context.Background())
		close(done)
	}()
	<-entered
	if _, err := f.Submit(context.Background()); !errors.Is(err, console.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(release)
	<-done
}

type row struct {
	ID       int64
	Featured bool
}

func rowID(r row) int64 { return r.ID }

func TestList_ToggleOnlyAfterSuccess(t *testing.T) {
	n := &recorder{}
	l := console.NewList([]row{{ID: 1}, {ID: 2}}, rowID, n, "Failed to update offer")
	flip := func(r row) row { r.Featured = !r.Featured; return r }

	failing := func(context.Context, int64) (adminclient.Result, error) {
		return adminclient.Result{Message: "Offer not found"}, nil
	}
	if l.Toggle(context.Background(), 2, failing, flip) {
		t.Fatalf("failed toggle reported success")
	}
	if l.Items()[1].Featured || n.bad[0] != "Offer not found" {
		t.Fatalf("row changed after a failed toggle: %+v", l.Items())
	}

	ok := func(context.Context, int64) (adminclient.Result, error) {
		return adminclient.Result{Success: true, Message: "Offer updated"}, nil
	}
	if !l.Toggle(context.Background(), 2, ok, flip) {
		t.Fatalf("toggle failed")
	}
	items := l.Items()
	if items[0].Featured || !items[1].Featured {
		t.Fatalf("unexpected rows: %+v", items)
	}
}

func TestList_DeleteNeedsConfirmation(t *testing.T) {
	n := &recorder{}
	l := console.NewList([]row{{ID: 1}, {ID: 2}, {ID: 3}}, rowID, n, "Failed to delete offer")
	calls := 0
	del := func(context.Context, int64) (adminclient.Result, error) {
		calls++
		return adminclient.Result{Success: true, Message: "Offer deleted"}, nil
	}

	if l.Delete(context.Background(), 2, func() bool { return false }, del) || calls != 0 {
		t.Fatalf("declined delete must not call the action")
	}
	if !l.Delete(context.Background(), 2, func() bool { return true }, del) {
		t.Fatalf("delete failed")
	}
	if items := l.Items(); len(items) != 2 || items[0].ID != 1 || items[1].ID != 3 {
		t.Fatalf("unexpected rows: %+v", items)
	}

	boom := func(context.Context, int64) (adminclient.Result, error) {
		return adminclient.Result{}, errors.New("timeout")
	}
	if l.Delete(context.Background(), 3, nil, boom) || len(l.Items()) != 2 {
		t.Fatalf("rows changed after a failed delete")
	}
	if n.bad[len(n.bad)-1] != "Failed to delete offer" {
		t.Fatalf("expected generic message, got %v", n.bad)
	}
}

func TestCarousel_WrapsAndStops(t *testing.T) {
	c := console.NewCarousel(3, 5*time.Millisecond)
	if c.Prev() != 2 || c.Next() != 0 || c.Next() != 1 {
		t.Fatalf("unexpected rotation")
	}

	ctx, cancel := context.WithCancel(context.Background())
	seen := make(chan int, 16)
	done := make(chan struct{})
	go func() {
		c.Run(ctx, func(i int) {
			select {
			case seen <- i:
			default:
			}
		})
		close(done)
	}()

	first := <-seen
	second := <-seen
	if second != (first+1)%3 {
		t.Fatalf("carousel skipped: %d then %d", first, second)
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("carousel did not stop with its context")
	}
}
