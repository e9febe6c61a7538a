package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"hotel_portal/internal/adapters/adminclient"
	"hotel_portal/internal/console"
	"hotel_portal/internal/domain"
)

type cli struct {
	api    *adminclient.Client
	in     *bufio.Reader
	out    io.Writer
	notify *console.Printer
}

func (c *cli) connect(base string, timeout time.Duration) error {
	api, err := adminclient.New(base, timeout)
	if err != nil {
		return err
	}
	c.api = api
	c.notify = console.NewPrinter(c.out)
	return nil
}

// row is the generic shape of a list item; every entity has an id and
// either a name or a title.
type row map[string]any

func (r row) id() int64 {
	f, _ := r["id"].(float64)
	return int64(f)
}

func (r row) label() string {
	for _, k := range []string{"name", "title", "confirmationNumber"} {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	if fn, ok := r["firstName"].(string); ok {
		ln, _ := r["lastName"].(string)
		return strings.TrimSpace(fn + " " + ln)
	}
	return "-"
}

func (r row) flag(key string) string {
	b, ok := r[key].(bool)
	switch {
	case !ok:
		return ""
	case b:
		return "yes"
	default:
		return "no"
	}
}

func resourceArg(args []string) (string, error) {
	if len(args) == 0 || !slices.Contains(resourceNames, args[0]) {
		return "", fmt.Errorf("expected a resource: properties, restaurants, events, hero-slides, offers or guests")
	}
	return args[0], nil
}

func resourceAndID(args []string) (string, int64, error) {
	resource, err := resourceArg(args)
	if err != nil {
		return "", 0, err
	}
	id, err := idArg(args, 1)
	return resource, id, err
}

// noun turns "hero-slides" into "hero slide".
func noun(resource string) string {
	s := strings.ReplaceAll(resource, "-", " ")
	if strings.HasSuffix(s, "ies") {
		return strings.TrimSuffix(s, "ies") + "y"
	}
	return strings.TrimSuffix(s, "s")
}

func idArg(args []string, i int) (int64, error) {
	if len(args) <= i {
		return 0, errors.New("missing id")
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[i])
	}
	return id, nil
}

// load fetches one page of rows into a console list.
func (c *cli) load(ctx context.Context, resource string, q url.Values) (*console.List[row], int64, error) {
	res, err := c.api.List(ctx, resource, q)
	if err != nil {
		return nil, 0, err
	}
	if !res.Success {
		return nil, 0, errors.New(res.Message)
	}
	var page domain.Page[row]
	if err := res.Decode(&page); err != nil {
		return nil, 0, err
	}
	l := console.NewList(page.Items, row.id, c.notify, "Failed to update "+noun(resource))
	return l, page.Total, nil
}

func (c *cli) list(ctx context.Context, resource string, q url.Values) error {
	l, total, err := c.load(ctx, resource, q)
	if err != nil {
		return err
	}
	c.print(l.Items())
	fmt.Fprintf(c.out, "%d of %d\n", len(l.Items()), total)
	return nil
}

func (c *cli) print(rows []row) {
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tFEATURED")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.id(), r.label(), r.flag("isActive"), r.flag("isFeatured"))
	}
	_ = tw.Flush()
}

func (c *cli) toggle(ctx context.Context, which domain.Flag, resource string, id int64) error {
	res, err := c.api.Get(ctx, resource, id)
	if err != nil {
		return err
	}
	if !res.Success {
		c.notify.Error(res.Message)
		return nil
	}
	var current row
	if err := res.Decode(&current); err != nil {
		return err
	}
	l := console.NewList([]row{current}, row.id, c.notify, "Failed to update "+noun(resource))
	key := "isActive"
	if which == domain.FlagFeatured {
		key = "isFeatured"
	}
	ok := l.Toggle(ctx, id, func(ctx context.Context, id int64) (adminclient.Result, error) {
		return c.api.Toggle(ctx, resource, id, which)
	}, func(r row) row {
		next := row{}
		for k, v := range r {
			next[k] = v
		}
		b, _ := r[key].(bool)
		next[key] = !b
		return next
	})
	if ok {
		c.print(l.Items())
	}
	return nil
}

func (c *cli) delete(ctx context.Context, resource string, id int64, yes bool) {
	what := noun(resource)
	l := console.NewList([]row{{"id": float64(id)}}, row.id, c.notify, "Failed to delete "+what)
	l.Delete(ctx, id, func() bool {
		if yes {
			return true
		}
		fmt.Fprintf(c.out, "Delete %s %d? [y/N] ", what, id)
		answer, _ := c.in.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}, func(ctx context.Context, id int64) (adminclient.Result, error) {
		return c.api.Delete(ctx, resource, id)
	})
}

// fill copies the flags that were given on the command line into the form.
func fill(fs *pflag.FlagSet, f *console.Form, names map[string]string) error {
	var err error
	fs.Visit(func(fl *pflag.Flag) {
		if field, ok := names[fl.Name]; ok && err == nil {
			err = f.Set(field, fl.Value.String())
		}
	})
	return err
}

func (c *cli) create(resource string) console.Action {
	return func(ctx context.Context, payload map[string]any) (adminclient.Result, error) {
		return c.api.Create(ctx, resource, payload)
	}
}

func (c *cli) createOffer(ctx context.Context, fs *pflag.FlagSet) error {
	f := console.NewForm([]console.Field{
		{Name: "title", Kind: console.Text},
		{Name: "slug", Kind: console.Text},
		{Name: "offerType", Kind: console.Text},
		{Name: "originalPrice", Kind: console.Number},
		{Name: "offerPrice", Kind: console.Number},
		{Name: "savingsAmount", Kind: console.Number},
		{Name: "savingsPercent", Kind: console.Number},
		{Name: "validFrom", Kind: console.Date},
		{Name: "validTo", Kind: console.Date},
		{Name: "promoCode", Kind: console.Text},
		{Name: "propertyId", Kind: console.Integer},
		{Name: "isActive", Kind: console.Bool},
		{Name: "isFeatured", Kind: console.Bool},
	}, c.create("offers"), c.notify, "Failed to create offer", "Offer created").
		DeriveSlug("title", "slug").
		DeriveSavings("originalPrice", "offerPrice", "savingsAmount", "savingsPercent")

	_ = f.Set("isActive", "true")
	_ = f.Set("isFeatured", "false")
	if err := fill(fs, f, map[string]string{
		"title": "title", "slug": "slug", "type": "offerType", "original": "originalPrice",
		"price": "offerPrice", "from": "validFrom", "to": "validTo", "promo": "promoCode",
		"property": "propertyId", "active": "isActive", "featured": "isFeatured",
	}); err != nil {
		return err
	}
	if a := f.Get("savingsAmount"); a != "" {
		fmt.Fprintf(c.out, "Guests save %s (%s%%)\n", a, f.Get("savingsPercent"))
	}
	_, err := f.Submit(ctx)
	return err
}

func (c *cli) createEvent(ctx context.Context, fs *pflag.FlagSet) error {
	f := console.NewForm([]console.Field{
		{Name: "title", Kind: console.Text},
		{Name: "slug", Kind: console.Text},
		{Name: "startDate", Kind: console.Date},
		{Name: "endDate", Kind: console.Date},
		{Name: "venue", Kind: console.Text},
		{Name: "category", Kind: console.Text},
		{Name: "price", Kind: console.Number},
		{Name: "capacity", Kind: console.Integer},
		{Name: "status", Kind: console.Text},
		{Name: "propertyId", Kind: console.Integer},
		{Name: "isActive", Kind: console.Bool},
	}, c.create("events"), c.notify, "Failed to create event", "Event created").
		DeriveSlug("title", "slug")

	_ = f.Set("isActive", "true")
	if err := fill(fs, f, map[string]string{
		"title": "title", "slug": "slug", "start": "startDate", "end": "endDate", "venue": "venue",
		"category": "category", "price": "price", "capacity": "capacity", "status": "status",
		"property": "propertyId",
	}); err != nil {
		return err
	}
	_, err := f.Submit(ctx)
	return err
}

// itemAction runs one status action and reports it like a list screen does.
func (c *cli) itemAction(ctx context.Context, resource string, id int64, action, failMsg string, body any) {
	l := console.NewList([]row{{"id": float64(id)}}, row.id, c.notify, failMsg)
	l.Toggle(ctx, id, func(ctx context.Context, id int64) (adminclient.Result, error) {
		return c.api.Action(ctx, resource, id, action, body)
	}, func(r row) row { return r })
}

func (c *cli) hero(ctx context.Context, interval time.Duration) error {
	l, _, err := c.load(ctx, "hero-slides", url.Values{"active": {"true"}, "limit": {"200"}})
	if err != nil {
		return err
	}
	slides := l.Items()
	if len(slides) == 0 {
		fmt.Fprintln(c.out, "no active hero slides")
		return nil
	}
	show := func(i int) {
		sub, _ := slides[i]["subtitle"].(string)
		fmt.Fprintf(c.out, "[%d/%d] %s  %s\n", i+1, len(slides), slides[i].label(), sub)
	}
	car := console.NewCarousel(len(slides), interval)
	show(car.Index())
	car.Run(ctx, show)
	return nil
}

func (c *cli) dashboard(ctx context.Context) error {
	d, err := c.api.Dashboard(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Active properties\t%d\n", d.ActiveProperties)
	fmt.Fprintf(tw, "Guests\t%d\n", d.Guests)
	fmt.Fprintf(tw, "Pending reservations\t%d\n", d.PendingReservations)
	fmt.Fprintf(tw, "Arrivals today\t%d\n", d.ArrivalsToday)
	fmt.Fprintf(tw, "Departures today\t%d\n", d.DeparturesToday)
	fmt.Fprintf(tw, "In house\t%d\n", d.InHouse)
	fmt.Fprintf(tw, "Revenue this month\t%.2f\n", d.RevenueThisMonth)
	return tw.Flush()
}
