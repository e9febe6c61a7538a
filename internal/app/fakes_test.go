package app_test

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel_portal/internal/app"
	"hotel_portal/internal/domain"
)

// ---- catalog repository ----

type memRepo[T any, P interface {
	*T
	domain.Record
}] struct {
	rows    map[int64]T
	next    int64
	toggled []string
}

func newMemRepo[T any, P interface {
	*T
	domain.Record
}]() *memRepo[T, P] {
	return &memRepo[T, P]{rows: map[int64]T{}}
}

func (m *memRepo[T, P]) List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error) {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return domain.Page[T]{Items: out, Total: int64(len(out))}, nil
}

func (m *memRepo[T, P]) Get(ctx context.Context, id int64) (T, error) {
	v, ok := m.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return v, nil
}

func (m *memRepo[T, P]) Create(ctx context.Context, v *T) error {
	m.next++
	P(v).SetID(m.next)
	m.rows[m.next] = *v
	return nil
}

func (m *memRepo[T, P]) Update(ctx context.Context, v *T) error {
	id := P(v).GetID()
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	m.rows[id] = *v
	return nil
}

func (m *memRepo[T, P]) Delete(ctx context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memRepo[T, P]) Toggle(ctx context.Context, id int64, column string) (T, error) {
	v, ok := m.rows[id]
	if !ok {
		return v, domain.ErrNotFound
	}
	m.toggled = append(m.toggled, column)
	return v, nil
}

func (m *memRepo[T, P]) SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	for id, v := range m.rows {
		if s, ok := any(P(&v)).(domain.Sluggable); ok && id != exceptID && s.GetSlug() == slug {
			return true, nil
		}
	}
	return false, nil
}

type fakeProperties struct {
	*memRepo[domain.Property, *domain.Property]
	restaurants, reservations int64
	misses                    map[int64]string
	coords                    map[int64]domain.Coords
	missErr                   error
}

func newFakeProperties() *fakeProperties {
	return &fakeProperties{
		memRepo: newMemRepo[domain.Property, *domain.Property](),
		misses:  map[int64]string{},
		coords:  map[int64]domain.Coords{},
	}
}

func (f *fakeProperties) DeleteUnreferenced(ctx context.Context, id int64) (int64, int64, error) {
	if _, ok := f.rows[id]; !ok {
		return 0, 0, domain.ErrNotFound
	}
	if f.restaurants > 0 || f.reservations > 0 {
		return f.restaurants, f.reservations, nil
	}
	return 0, 0, f.Delete(ctx, id)
}
func (f *fakeProperties) MissingCoordinates(ctx context.Context, limit int) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range f.rows {
		if !p.HasCoordinates() {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeProperties) SetCoordinates(ctx context.Context, id int64, c domain.Coords) error {
	p, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Latitude, p.Longitude = &c.Lat, &c.Lon
	f.rows[id] = p
	f.coords[id] = c
	return nil
}
func (f *fakeProperties) LogGeocodeMiss(ctx context.Context, id int64, status int, reason string) error {
	if f.missErr != nil {
		return f.missErr
	}
	f.misses[id] = reason
	return nil
}

type fakeGuests struct {
	*memRepo[domain.Guest, *domain.Guest]
	reservations int64
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{memRepo: newMemRepo[domain.Guest, *domain.Guest]()}
}

func (f *fakeGuests) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	for id, g := range f.rows {
		if id != exceptID && g.Email == email {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeGuests) CountReservations(ctx context.Context, guestID int64) (int64, error) {
	return f.reservations, nil
}

// ---- reservations & payments ----

type fakeReservations struct {
	rows     map[int64]domain.Reservation
	next     int64
	conflict bool // next conditional write loses the race
}

func newFakeReservations() *fakeReservations {
	return &fakeReservations{rows: map[int64]domain.Reservation{}}
}

func (f *fakeReservations) ListReservations(ctx context.Context, q domain.ReservationQuery) (domain.Page[domain.Reservation], error) {
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var items []domain.Reservation
	for _, id := range ids {
		if q.Status == "" || f.rows[id].Status == q.Status {
			items = append(items, f.rows[id])
		}
	}
	total := int64(len(items))
	if q.Offset >= len(items) {
		return domain.Page[domain.Reservation]{Total: total}, nil
	}
	items = items[q.Offset:]
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return domain.Page[domain.Reservation]{Items: items, Total: total}, nil
}

func (f *fakeReservations) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	r, ok := f.rows[id]
	if !ok {
		return r, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReservations) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	f.next++
	r.ID = f.next
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeReservations) write(r *domain.Reservation, from domain.ReservationStatus) error {
	cur, ok := f.rows[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if f.conflict || cur.Status != from {
		f.conflict = false
		return domain.ErrConflict
	}
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeReservations) UpdateReservation(ctx context.Context, r *domain.Reservation, from domain.ReservationStatus) error {
	return f.write(r, from)
}

func (f *fakeReservations) SaveStatus(ctx context.Context, r *domain.Reservation, from domain.ReservationStatus) error {
	return f.write(r, from)
}

type fakePayments struct {
	rows map[int64]domain.Payment
	next int64
	// beforeSave runs once ahead of the next SavePayment, standing in for a
	// concurrent writer.
	beforeSave func()
}

func newFakePayments() *fakePayments { return &fakePayments{rows: map[int64]domain.Payment{}} }

func (f *fakePayments) ListPayments(ctx context.Context, q domain.PaymentQuery) (domain.Page[domain.Payment], error) {
	var items []domain.Payment
	for _, p := range f.rows {
		items = append(items, p)
	}
	return domain.Page[domain.Payment]{Items: items, Total: int64(len(items))}, nil
}

func (f *fakePayments) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	p, ok := f.rows[id]
	if !ok {
		return p, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakePayments) CreatePayment(ctx context.Context, p *domain.Payment) error {
	f.next++
	p.ID = f.next
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePayments) SavePayment(ctx context.Context, p *domain.Payment, from domain.PaymentState) error {
	if hook := f.beforeSave; hook != nil {
		f.beforeSave = nil
		hook()
	}
	cur, ok := f.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.State() != from {
		return domain.ErrConflict
	}
	f.rows[p.ID] = *p
	return nil
}

// ---- cache & publisher ----

type fakeCache struct {
	mu      sync.Mutex
	store   map[string][]byte
	dropped []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) DelPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropped = append(c.dropped, prefix)
	for k := range c.store {
		if strings.HasPrefix(k, prefix) {
			delete(c.store, k)
		}
	}
	return nil
}

type published struct {
	key string
	v   any
}

type fakePublisher struct{ events []published }

func (p *fakePublisher) Publish(ctx context.Context, key string, v any) error {
	p.events = append(p.events, published{key: key, v: v})
	return nil
}

// ---- helpers ----

type fixture struct {
	props  *fakeProperties
	rests  *memRepo[domain.Restaurant, *domain.Restaurant]
	events *memRepo[domain.Event, *domain.Event]
	slides *memRepo[domain.HeroSlide, *domain.HeroSlide]
	offers *memRepo[domain.SpecialOffer, *domain.SpecialOffer]
	guests *fakeGuests
	resv   *fakeReservations
	pays   *fakePayments
	cache  *fakeCache
	pub    *fakePublisher
}

func newFixture() *fixture {
	return &fixture{
		props:  newFakeProperties(),
		rests:  newMemRepo[domain.Restaurant, *domain.Restaurant](),
		events: newMemRepo[domain.Event, *domain.Event](),
		slides: newMemRepo[domain.HeroSlide, *domain.HeroSlide](),
		offers: newMemRepo[domain.SpecialOffer, *domain.SpecialOffer](),
		guests: newFakeGuests(),
		resv:   newFakeReservations(),
		pays:   newFakePayments(),
		cache:  &fakeCache{},
		pub:    &fakePublisher{},
	}
}

func (f *fixture) repos() app.Repos {
	return app.Repos{
		Properties:   f.props,
		Restaurants:  f.rests,
		Events:       f.events,
		HeroSlides:   f.slides,
		Offers:       f.offers,
		Guests:       f.guests,
		Reservations: f.resv,
		Payments:     f.pays,
	}
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func ptr[T any](v T) *T { return &v }
