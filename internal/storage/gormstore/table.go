package gormstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel_portal/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Table is the gorm-backed list/detail/form surface of one catalog entity.
type Table[T any] struct {
	db          *gorm.DB
	kind        domain.Kind
	search      []string // columns matched by ListQuery.Search
	order       string
	propertyCol string // "" when the entity is not scoped to a property
}

func newTable[T any](db *gorm.DB, kind domain.Kind, order, propertyCol string, search ...string) *Table[T] {
	return &Table[T]{db: db, kind: kind, search: search, order: order, propertyCol: propertyCol}
}

func (t *Table[T]) model(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx).Model(new(T))
}

func (t *Table[T]) filter(q domain.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Active != nil {
			if col, ok := t.kind.FlagColumn(domain.FlagActive); ok {
				tx = tx.Where(col+" = ?", *q.Active)
			}
		}
		if q.Featured != nil {
			if col, ok := t.kind.FlagColumn(domain.FlagFeatured); ok {
				tx = tx.Where(col+" = ?", *q.Featured)
			}
		}
		if q.PropertyID != nil && t.propertyCol != "" {
			tx = tx.Where(t.propertyCol+" = ?", *q.PropertyID)
		}
		if s := strings.TrimSpace(q.Search); s != "" && len(t.search) > 0 {
			tx = likeAny(tx, s, t.search...)
		}
		return tx
	}
}

func (t *Table[T]) List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error) {
	var total int64
	if err := t.model(ctx).Scopes(t.filter(q)).Count(&total).Error; err != nil {
		return domain.Page[T]{}, err
	}
	items := make([]T, 0)
	err := t.model(ctx).
		Scopes(t.filter(q), paginate(q.Limit, q.Offset)).
		Order(t.order).
		Find(&items).Error
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.Page[T]{Items: items, Total: total}, nil
}

func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	var v T
	if err := t.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return v, notFound(err)
	}
	return v, nil
}

func (t *Table[T]) Create(ctx context.Context, v *T) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

// Update overwrites every column of the row, zero values included.
func (t *Table[T]) Update(ctx context.Context, v *T) error {
	rec, ok := any(v).(domain.Record)
	if !ok {
		return errors.New("gormstore: update of a type without an id")
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(new(T)).Where("id = ?", rec.GetID()).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return tx.Model(v).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Where("id = ?", rec.GetID()).
			Updates(v).Error
	})
}

func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	res := t.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (t *Table[T]) Toggle(ctx context.Context, id int64, column string) (T, error) {
	var zero T
	res := t.model(ctx).Where("id = ?", id).Update(column, gorm.Expr("NOT "+column))
	if res.Error != nil {
		return zero, res.Error
	}
	if res.RowsAffected == 0 {
		return zero, domain.ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *Table[T]) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var n int64
	err := t.model(ctx).Where("slug = ? AND id <> ?", slug, exceptID).Count(&n).Error
	return n > 0, err
}

func paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			limit = defaultLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		if offset < 0 {
			offset = 0
		}
		return tx.Limit(limit).Offset(offset)
	}
}

// likeAny matches s case-insensitively against any of cols.
func likeAny(tx *gorm.DB, s string, cols ...string) *gorm.DB {
	pattern := "%" + strings.ToLower(s) + "%"
	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		conds = append(conds, "LOWER("+c+") LIKE ?")
		args = append(args, pattern)
	}
	return tx.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
