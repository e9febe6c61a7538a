package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_portal/internal/domain"
)

// Catalog is the admin action set of one catalog entity: list, detail,
// create, update, delete and flag toggles.
type Catalog[T any, P interface {
	*T
	domain.Record
}] struct {
	kind     domain.Kind
	repo     domain.Repository[T]
	cache    domain.Cache
	validate *validator.Validate

	// public cache prefixes a write to this entity makes stale
	affects []string
	// extra rules run after tag validation and Check
	rules []func(ctx context.Context, v P) error
	// refuses a delete with a business error
	deleteGuard func(ctx context.Context, id int64) error
	// replaces repo.Delete when the check and the delete must share a transaction
	remove func(ctx context.Context, id int64) error
}

func newCatalog[T any, P interface {
	*T
	domain.Record
}](kind domain.Kind, repo domain.Repository[T], cache domain.Cache, vd *validator.Validate, affects ...string) *Catalog[T, P] {
	return &Catalog[T, P]{kind: kind, repo: repo, cache: cache, validate: vd, affects: affects}
}

func (c *Catalog[T, P]) Kind() domain.Kind { return c.kind }

func (c *Catalog[T, P]) List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error) {
	return c.repo.List(ctx, q)
}

func (c *Catalog[T, P]) Get(ctx context.Context, id int64) (T, error) {
	return c.repo.Get(ctx, id)
}

func (c *Catalog[T, P]) Create(ctx context.Context, v *T) (T, error) {
	var zero T
	p := P(v)
	p.SetID(0)
	p.Prepare()
	if err := c.check(ctx, p); err != nil {
		return zero, err
	}
	if err := c.repo.Create(ctx, v); err != nil {
		return zero, err
	}
	c.invalidate(ctx)
	return *v, nil
}

func (c *Catalog[T, P]) Update(ctx context.Context, id int64, v *T) (T, error) {
	var zero T
	p := P(v)
	p.SetID(id)
	p.Prepare()
	if err := c.check(ctx, p); err != nil {
		return zero, err
	}
	if err := c.repo.Update(ctx, v); err != nil {
		return zero, err
	}
	c.invalidate(ctx)
	return c.repo.Get(ctx, id)
}

func (c *Catalog[T, P]) Delete(ctx context.Context, id int64) error {
	if c.deleteGuard != nil {
		if err := c.deleteGuard(ctx, id); err != nil {
			return err
		}
	}
	remove := c.repo.Delete
	if c.remove != nil {
		remove = c.remove
	}
	if err := remove(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Toggle flips flag on one row and returns the row as stored.
func (c *Catalog[T, P]) Toggle(ctx context.Context, id int64, flag domain.Flag) (T, error) {
	var zero T
	col, ok := c.kind.FlagColumn(flag)
	if !ok {
		return zero, domain.Business("A %s cannot be marked as %s", c.kind, flag)
	}
	v, err := c.repo.Toggle(ctx, id, col)
	if err != nil {
		return zero, err
	}
	c.invalidate(ctx)
	return v, nil
}

func (c *Catalog[T, P]) check(ctx context.Context, p P) error {
	if err := validate(c.validate, p); err != nil {
		return err
	}
	if ch, ok := any(p).(domain.Checker); ok {
		if err := ch.Check(); err != nil {
			return err
		}
	}
	if s, ok := any(p).(domain.Sluggable); ok {
		taken, err := c.repo.SlugTaken(ctx, s.GetSlug(), p.GetID())
		if err != nil {
			return err
		}
		if taken {
			return domain.Business("Another %s already uses the slug %q", c.kind, s.GetSlug())
		}
	}
	for _, rule := range c.rules {
		if err := rule(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog[T, P]) invalidate(ctx context.Context) {
	if c.cache == nil {
		return
	}
	for _, prefix := range c.affects {
		if err := c.cache.DelPrefix(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}

// propertyExists rejects references to a property that is not on file.
func propertyExists(ctx context.Context, props domain.PropertyRepository, id *int64) error {
	if id == nil || *id == 0 {
		return nil
	}
	if _, err := props.Get(ctx, *id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Business("The selected property does not exist")
		}
		return err
	}
	return nil
}

func plural(n int64, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
