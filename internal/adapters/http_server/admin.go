package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"hotel_portal/internal/domain"
)

// catalogActions is what a catalog screen can ask of the app layer.
type catalogActions[T any] interface {
	List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, v *T) (T, error)
	Update(ctx context.Context, id int64, v *T) (T, error)
	Delete(ctx context.Context, id int64) error
	Toggle(ctx context.Context, id int64, flag domain.Flag) (T, error)
}

func (h *Handlers) mountAdmin(r chi.Router) {
	mountCatalog[domain.Property](r, "properties", h.Admin.Properties)
	mountCatalog[domain.Restaurant](r, "restaurants", h.Admin.Restaurants)
	mountCatalog[domain.Event](r, "events", h.Admin.Events)
	mountCatalog[domain.HeroSlide](r, "hero-slides", h.Admin.HeroSlides)
	mountCatalog[domain.SpecialOffer](r, "offers", h.Admin.Offers)
	mountCatalog[domain.Guest](r, "guests", h.Admin.Guests)
	r.Post("/properties/{id}/geocode", h.geocodeProperty)

	r.Get("/reservations", h.listReservations)
	r.Get("/reservations/export.xlsx", h.exportReservations)
	r.Get("/reservations/{id}", h.getReservation)
	r.Post("/reservations", h.createReservation)
	r.Put("/reservations/{id}", h.updateReservation)
	r.Post("/reservations/{id}/confirm", h.transition("confirm", "Reservation confirmed"))
	r.Post("/reservations/{id}/cancel", h.transition("cancel", "Reservation cancelled"))
	r.Post("/reservations/{id}/check-in", h.transition("check-in", "Guest checked in"))
	r.Post("/reservations/{id}/check-out", h.transition("check-out", "Guest checked out"))
	r.Post("/reservations/{id}/no-show", h.transition("no-show", "Reservation marked as no-show"))

	r.Get("/payments", h.listPayments)
	r.Get("/payments/{id}", h.getPayment)
	r.Post("/payments", h.recordPayment)
	r.Post("/payments/{id}/mark-paid", h.paymentAction("mark-paid", "Payment marked as paid"))
	r.Post("/payments/{id}/fail", h.paymentAction("fail", "Payment marked as failed"))
	r.Post("/payments/{id}/refund", h.refundPayment)

	r.Get("/dashboard", h.dashboard)
}

func mountCatalog[T any](r chi.Router, resource string, svc catalogActions[T]) {
	noun := capitalize(singular(resource))

	r.Get("/"+resource, func(w http.ResponseWriter, r *http.Request) {
		q, err := listQuery(r)
		if err != nil {
			badRequest(w, resource, "list", err.Error())
			return
		}
		page, err := svc.List(r.Context(), q)
		if err != nil {
			fail(w, r, resource, "list", err)
			return
		}
		ok(w, resource, "list", "", page)
	})

	r.Get("/"+resource+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, valid := idParam(r)
		if !valid {
			badRequest(w, resource, "load", "Invalid id")
			return
		}
		v, err := svc.Get(r.Context(), id)
		if err != nil {
			fail(w, r, resource, "load", err)
			return
		}
		ok(w, resource, "load", "", v)
	})

	r.Post("/"+resource, func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := decode(r, &v); err != nil {
			badRequest(w, resource, "create", "Invalid request body")
			return
		}
		out, err := svc.Create(r.Context(), &v)
		if err != nil {
			fail(w, r, resource, "create", err)
			return
		}
		ok(w, resource, "create", noun+" created", out)
	})

	r.Put("/"+resource+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, valid := idParam(r)
		if !valid {
			badRequest(w, resource, "update", "Invalid id")
			return
		}
		var v T
		if err := decode(r, &v); err != nil {
			badRequest(w, resource, "update", "Invalid request body")
			return
		}
		out, err := svc.Update(r.Context(), id, &v)
		if err != nil {
			fail(w, r, resource, "update", err)
			return
		}
		ok(w, resource, "update", noun+" updated", out)
	})

	r.Delete("/"+resource+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, valid := idParam(r)
		if !valid {
			badRequest(w, resource, "delete", "Invalid id")
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			fail(w, r, resource, "delete", err)
			return
		}
		ok(w, resource, "delete", noun+" deleted", nil)
	})

	for _, flag := range []domain.Flag{domain.FlagActive, domain.FlagFeatured} {
		action := "toggle-" + string(flag)
		r.Post("/"+resource+"/{id}/"+action, func(w http.ResponseWriter, r *http.Request) {
			id, valid := idParam(r)
			if !valid {
				badRequest(w, resource, action, "Invalid id")
				return
			}
			v, err := svc.Toggle(r.Context(), id, flag)
			if err != nil {
				fail(w, r, resource, action, err)
				return
			}
			ok(w, resource, action, noun+" updated", v)
		})
	}
}

func (h *Handlers) geocodeProperty(w http.ResponseWriter, r *http.Request) {
	id, valid := idParam(r)
	if !valid {
		badRequest(w, "properties", "geocode", "Invalid id")
		return
	}
	if h.Geocode == nil {
		fail(w, r, "properties", "geocode", domain.Business("Geocoding is not configured"))
		return
	}
	p, err := h.Geocode.GeocodeProperty(r.Context(), id)
	if err != nil {
		fail(w, r, "properties", "geocode", err)
		return
	}
	ok(w, "properties", "geocode", "Property located on the map", p)
}

// ---- reservations ----

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	q, err := reservationQuery(r)
	if err != nil {
		badRequest(w, "reservations", "list", err.Error())
		return
	}
	page, err := h.Reservations.List(r.Context(), q)
	if err != nil {
		fail(w, r, "reservations", "list", err)
		return
	}
	ok(w, "reservations", "list", "", page)
}

func (h *Handlers) exportReservations(w http.ResponseWriter, r *http.Request) {
	q, err := reservationQuery(r)
	if err != nil {
		badRequest(w, "reservations", "export", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reservations-%s.xlsx"`, time.Now().UTC().Format("20060102")))
	if _, err := h.Reservations.ExportReservations(r.Context(), q, w); err != nil {
		w.Header().Del("Content-Disposition")
		fail(w, r, "reservations", "export", err)
	}
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, valid := idParam(r)
	if !valid {
		badRequest(w, "reservations", "load", "Invalid id")
		return
	}
	res, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		fail(w, r, "reservations", "load", err)
		return
	}
	ok(w, "reservations", "load", "", res)
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var in domain.Reservation
	if err := decode(r, &in); err != nil {
		badRequest(w, "reservations", "create", "Invalid request body")
		return
	}
	res, err := h.Reservations.Create(r.Context(), &in)
	if err != nil {
		fail(w, r, "reservations", "create", err)
		return
	}
	ok(w, "reservations", "create", "Reservation "+res.ConfirmationNumber+" created", res)
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, valid := idParam(r)
	if !valid {
		badRequest(w, "reservations", "update", "Invalid id")
		return
	}
	var in domain.Reservation
	if err := decode(r, &in); err != nil {
		badRequest(w, "reservations", "update", "Invalid request body")
		return
	}
	res, err := h.Reservations.Update(r.Context(), id, &in)
	if err != nil {
		fail(w, r, "reservations", "update", err)
		return
	}
	ok(w, "reservations", "update", "Reservation updated", res)
}

type reasonBody struct {
	Reason string   `json:"reason"`
	Amount *float64 `json:"amount"`
}

func (h *Handlers) transition(action, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, valid := idParam(r)
		if !valid {
			badRequest(w, "reservations", action, "Invalid id")
			return
		}
		var (
			res domain.Reservation
			err error
		)
		switch action {
		case "confirm":
			res, err = h.Reservations.Confirm(r.Context(), id)
		case "cancel":
			var body reasonBody
			if r.ContentLength != 0 {
				if derr := decode(r, &body); derr != nil {
					badRequest(w, "reservations", action, "Invalid request body")
					return
				}
			}
			res, err = h.Reservations.Cancel(r.Context(), id, body.Reason)
		case "check-in":
			res, err = h.Reservations.CheckIn(r.Context(), id)
		case "check-out":
			res, err = h.Reservations.CheckOut(r.Context(), id)
		case "no-show":
			res, err = h.Reservations.NoShow(r.Context(), id)
		}
		if err != nil {
			fail(w, r, "reservations", action, err)
			return
		}
		ok(w, "reservations", action, msg, res)
	}
}

// ---- payments ----

func (h *Handlers) listPayments(w http.ResponseWriter, r *http.Request) {
	var q domain.PaymentQuery
	v := r.URL.Query()
	q.Status = domain.PaymentStatus(strings.ToUpper(v.Get("status")))
	var err error
	if q.ReservationID, err = int64Param(v.Get("reservation_id"), "reservation_id"); err != nil {
		badRequest(w, "payments", "list", err.Error())
		return
	}
	if q.Limit, q.Offset, err = pageParams(r); err != nil {
		badRequest(w, "payments", "list", err.Error())
		return
	}
	page, err := h.Payments.List(r.Context(), q)
	if err != nil {
		fail(w, r, "payments", "list", err)
		return
	}
	ok(w, "payments", "list", "", page)
}

func (h *Handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	id, valid := idParam(r)
	if !valid {
		badRequest(w, "payments", "load", "Invalid id")
		return
	}
	p, err := h.Payments.Get(r.Context(), id)
	if err != nil {
		fail(w, r, "payments", "load", err)
		return
	}
	ok(w, "payments", "load", "", p)
}

func (h *Handlers) recordPayment(w http.ResponseWriter, r *http.Request) {
	var in domain.Payment
	if err := decode(r, &in); err != nil {
		badRequest(w, "payments", "record", "Invalid request body")
		return
	}
	p, err := h.Payments.Record(r.Context(), &in)
	if err != nil {
		fail(w, r, "payments", "record", err)
		return
	}
	ok(w, "payments", "record", "Payment recorded", p)
}

func (h *Handlers) paymentAction(action, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, valid := idParam(r)
		if !valid {
			badRequest(w, "payments", action, "Invalid id")
			return
		}
		var (
			p   domain.Payment
			err error
		)
		if action == "mark-paid" {
			p, err = h.Payments.MarkPaid(r.Context(), id)
		} else {
			p, err = h.Payments.Fail(r.Context(), id)
		}
		if err != nil {
			fail(w, r, "payments", action, err)
			return
		}
		ok(w, "payments", action, msg, p)
	}
}

func (h *Handlers) refundPayment(w http.ResponseWriter, r *http.Request) {
	id, valid := idParam(r)
	if !valid {
		badRequest(w, "payments", "refund", "Invalid id")
		return
	}
	var body reasonBody
	if err := decode(r, &body); err != nil {
		badRequest(w, "payments", "refund", "Invalid request body")
		return
	}
	p, err := h.Payments.Refund(r.Context(), id, body.Amount, body.Reason)
	if err != nil {
		fail(w, r, "payments", "refund", err)
		return
	}
	msg := "Payment refunded"
	if p.Status == domain.PaymentPartiallyRefunded {
		msg = fmt.Sprintf("Refunded %.2f %s", p.RefundedAmount, p.Currency)
	}
	ok(w, "payments", "refund", msg, p)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Overview(r.Context())
	if err != nil {
		fail(w, r, "dashboard", "load", err)
		return
	}
	ok(w, "dashboard", "load", "", d)
}

// ---- query parsing ----

func listQuery(r *http.Request) (domain.ListQuery, error) {
	v := r.URL.Query()
	var q domain.ListQuery
	var err error
	if q.Active, err = boolParam(v.Get("active"), "active"); err != nil {
		return q, err
	}
	if q.Featured, err = boolParam(v.Get("featured"), "featured"); err != nil {
		return q, err
	}
	if q.PropertyID, err = int64Param(v.Get("property_id"), "property_id"); err != nil {
		return q, err
	}
	q.Search = strings.TrimSpace(v.Get("q"))
	q.Limit, q.Offset, err = pageParams(r)
	return q, err
}

func reservationQuery(r *http.Request) (domain.ReservationQuery, error) {
	v := r.URL.Query()
	var q domain.ReservationQuery
	var err error
	q.Status = domain.ReservationStatus(strings.ToUpper(v.Get("status")))
	if q.PropertyID, err = int64Param(v.Get("property_id"), "property_id"); err != nil {
		return q, err
	}
	if q.GuestID, err = int64Param(v.Get("guest_id"), "guest_id"); err != nil {
		return q, err
	}
	if q.From, err = dateParam(v.Get("from"), "from"); err != nil {
		return q, err
	}
	if q.To, err = dateParam(v.Get("to"), "to"); err != nil {
		return q, err
	}
	q.Search = strings.TrimSpace(v.Get("q"))
	q.Limit, q.Offset, err = pageParams(r)
	return q, err
}

func pageParams(r *http.Request) (limit, offset int, err error) {
	v := r.URL.Query()
	if s := v.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil || limit <= 0 || limit > 200 {
			return 0, 0, fmt.Errorf("limit must be an integer between 1 and 200")
		}
	}
	if s := v.Get("offset"); s != "" {
		if offset, err = strconv.Atoi(s); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}
	return limit, offset, nil
}

func boolParam(s, name string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", name)
	}
	return &b, nil
}

func int64Param(s, name string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &n, nil
}

func dateParam(s, name string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date like 2006-01-02", name)
	}
	return &t, nil
}
