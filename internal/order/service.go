package order

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/orderlog"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"hasMore"`
}

// Stats is the per-user order summary for the dashboard.
type Stats struct {
	Total      int             `json:"total"`
	Pending    int             `json:"pending"`
	Confirmed  int             `json:"confirmed"`
	Shipped    int             `json:"shipped"`
	Delivered  int             `json:"delivered"`
	Cancelled  int             `json:"cancelled"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// Service owns order creation, the settlement simulation, and the guarded
// status transitions. A single mutex serializes all order mutations so the
// settlement goroutine and a concurrent cancel cannot interleave.
type Service struct {
	repo      Repository
	scheduler *Scheduler
	log       orderlog.Repository // nil-safe: transitions not persisted if nil
	shipping  ShippingPolicy

	mu     sync.Mutex
	nextID int
	now    func() time.Time
}

// NewService wires the order service. log may be nil.
func NewService(repo Repository, scheduler *Scheduler, log orderlog.Repository, shipping ShippingPolicy) *Service {
	return &Service{
		repo:      repo,
		scheduler: scheduler,
		log:       log,
		shipping:  shipping,
		now:       time.Now,
	}
}

// Create materializes a pending order from validated checkout input and
// schedules its settlement.
func (s *Service) Create(ctx context.Context, userID int, items []Item, addr Address, method PaymentMethod, notes string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	o := New(s.nextID, userID, items, addr, method, notes, s.shipping, s.now().UTC())

	if err := s.repo.Put(ctx, o); err != nil {
		return nil, fmt.Errorf("order: create %d: %w", o.ID, err)
	}
	s.logTransition(ctx, o, "created")

	id := o.ID
	s.scheduler.Schedule(id, func() { s.settle(id) })

	return o, nil
}

// settle is the deferred settlement job: it confirms payment on an order
// that is still pending. It runs on the scheduler goroutine, detached from
// any request.
func (s *Service) settle(orderID int) {
	ctx := context.Background()

	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.repo.Get(ctx, orderID)
	if err != nil || o == nil {
		slog.Error("settlement: order lookup failed", "order_id", orderID, "error", err)
		return
	}
	if o.Status != StatusPending {
		// Cancelled (or otherwise moved on) while the job was queued.
		return
	}

	if err := o.Confirm(NewTrackingCode(), s.now().UTC()); err != nil {
		slog.Error("settlement: confirm failed", "order_id", orderID, "error", err)
		return
	}
	if err := s.repo.Put(ctx, o); err != nil {
		slog.Error("settlement: save failed", "order_id", orderID, "error", err)
		return
	}
	s.logTransition(ctx, o, "settlement")
	slog.Info("order confirmed", "order_id", o.ID, "tracking_code", o.TrackingCode)
}

// Get returns one of the user's orders.
func (s *Service) Get(ctx context.Context, userID, orderID int) (*Order, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order: get %d: %w", orderID, err)
	}
	if o == nil || o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

// List returns one page of the user's orders, newest first, optionally
// filtered by status.
func (s *Service) List(ctx context.Context, userID int, status Status, limit, offset int) ([]*Order, Pagination, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("order: list for user %d: %w", userID, err)
	}

	filtered := all[:0]
	for _, o := range all {
		if status == "" || o.Status == status {
			filtered = append(filtered, o)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].ID > filtered[j].ID
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	page := Pagination{
		Total:   len(filtered),
		Limit:   limit,
		Offset:  offset,
		HasMore: len(filtered) > offset+limit,
	}

	if offset >= len(filtered) {
		return []*Order{}, page, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], page, nil
}

// Track returns the delivery projection for an order number. Unlike the
// other operations it is not user-scoped: order numbers are shared with
// recipients.
func (s *Service) Track(ctx context.Context, orderNumber string) (Tracking, error) {
	o, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return Tracking{}, fmt.Errorf("order: track %q: %w", orderNumber, err)
	}
	if o == nil {
		return Tracking{}, ErrNotFound
	}
	return BuildTracking(o, s.now().UTC()), nil
}

// Cancel cancels one of the user's orders. A pending settlement job is
// stopped first, so a cancel in the delay window always wins; once the job
// has fired, the state machine guard decides.
func (s *Service) Cancel(ctx context.Context, userID, orderID int) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("order: cancel %d: %w", orderID, err)
	}
	if o == nil || o.UserID != userID {
		return nil, ErrNotFound
	}

	s.scheduler.Cancel(orderID)

	if err := o.Cancel(s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, fmt.Errorf("order: cancel %d: %w", orderID, err)
	}
	s.logTransition(ctx, o, "user cancel")
	return o, nil
}

// StatsSummary aggregates the user's order counts and paid spend.
func (s *Service) StatsSummary(ctx context.Context, userID int) (Stats, error) {
	all, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, fmt.Errorf("order: stats for user %d: %w", userID, err)
	}

	st := Stats{Total: len(all), TotalSpent: decimal.Zero}
	for _, o := range all {
		switch o.Status {
		case StatusPending:
			st.Pending++
		case StatusConfirmed:
			st.Confirmed++
		case StatusShipped:
			st.Shipped++
		case StatusDelivered:
			st.Delivered++
		case StatusCancelled:
			st.Cancelled++
		}
		if o.PaymentStatus == PaymentPaid {
			st.TotalSpent = st.TotalSpent.Add(o.Total)
		}
	}
	return st, nil
}

// Shutdown stops all pending settlement jobs.
func (s *Service) Shutdown() {
	s.scheduler.Stop()
}

func (s *Service) logTransition(ctx context.Context, o *Order, note string) {
	if s.log == nil {
		return
	}
	entry := &orderlog.Entry{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		TrackingCode:  o.TrackingCode,
		Note:          note,
		OccurredAt:    o.UpdatedAt,
	}
	if err := s.log.Save(ctx, entry); err != nil {
		slog.WarnContext(ctx, "order transition log failed", "order_id", o.ID, "error", err)
	}
}
