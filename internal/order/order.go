// Package order implements order creation, the status state machine, the
// settlement simulation, and the tracking projection.
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an order does not exist or belongs to a
	// different user.
	ErrNotFound = errors.New("order: not found")

	// ErrNotCancellable is returned when a cancel is attempted on an order
	// that has already shipped, been delivered, or been cancelled.
	ErrNotCancellable = errors.New("order: cannot be cancelled in its current status")
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks the settlement side of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod is one of the accepted checkout methods.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// Address is the shipping destination captured at checkout.
type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zipCode"`
}

// Item is a frozen copy of a cart line at checkout time.
type Item struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is an immutable snapshot of a checkout, mutated only through the
// guarded state transitions below.
type Order struct {
	ID            int             `json:"id"`
	UserID        int             `json:"userId"`
	OrderNumber   string          `json:"orderNumber"`
	Items         []Item          `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	Address       Address         `json:"shippingAddress"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Notes         string          `json:"notes"`
	Status        Status          `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	TrackingCode  string          `json:"trackingCode,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ShippingPolicy computes the shipping cost for a subtotal: free above the
// threshold, a flat fee otherwise.
type ShippingPolicy struct {
	Fee           decimal.Decimal
	FreeThreshold decimal.Decimal
}

// Cost returns the shipping fee for the given subtotal. A subtotal exactly
// at the threshold still pays shipping; free shipping starts strictly above.
func (p ShippingPolicy) Cost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeThreshold) {
		return decimal.Zero
	}
	return p.Fee
}

// New builds a pending order from validated checkout input. Per-item
// subtotals and the order totals are derived here; items are assumed to have
// passed boundary validation.
func New(id, userID int, items []Item, addr Address, method PaymentMethod, notes string, shipping ShippingPolicy, now time.Time) *Order {
	frozen := make([]Item, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		it.Subtotal = it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		frozen[i] = it
		subtotal = subtotal.Add(it.Subtotal)
	}

	fee := shipping.Cost(subtotal)
	return &Order{
		ID:            id,
		UserID:        userID,
		OrderNumber:   fmt.Sprintf("HS%d%d", now.UnixMilli(), id),
		Items:         frozen,
		Subtotal:      subtotal,
		Shipping:      fee,
		Total:         subtotal.Add(fee),
		Address:       addr,
		PaymentMethod: method,
		Notes:         notes,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// transitions lists the forward edges of the status machine. Cancellation is
// handled separately because it also flips the payment status.
var transitions = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusPreparing,
	StatusPreparing: StatusShipped,
	StatusShipped:   StatusDelivered,
}

func (o *Order) advance(to Status, now time.Time) error {
	if transitions[o.Status] != to {
		return fmt.Errorf("order %d: invalid transition %s -> %s", o.ID, o.Status, to)
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// Confirm marks the order paid and assigns a tracking code. Only valid from
// pending; the settlement simulation is the sole caller.
func (o *Order) Confirm(trackingCode string, now time.Time) error {
	if err := o.advance(StatusConfirmed, now); err != nil {
		return err
	}
	o.PaymentStatus = PaymentPaid
	o.TrackingCode = trackingCode
	return nil
}

// MarkPreparing moves a confirmed order into fulfilment.
func (o *Order) MarkPreparing(now time.Time) error {
	return o.advance(StatusPreparing, now)
}

// MarkShipped moves a preparing order to shipped.
func (o *Order) MarkShipped(now time.Time) error {
	return o.advance(StatusShipped, now)
}

// MarkDelivered moves a shipped order to its terminal delivered state.
func (o *Order) MarkDelivered(now time.Time) error {
	return o.advance(StatusDelivered, now)
}

// CanCancel reports whether the order may still be cancelled.
func (o *Order) CanCancel() bool {
	switch o.Status {
	case StatusShipped, StatusDelivered, StatusCancelled:
		return false
	}
	return true
}

// Cancel moves the order to its terminal cancelled state and refunds the
// payment. Guarded: fails once the order has shipped, was delivered, or is
// already cancelled, leaving the order unchanged.
func (o *Order) Cancel(now time.Time) error {
	if !o.CanCancel() {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	o.PaymentStatus = PaymentRefunded
	o.UpdatedAt = now
	return nil
}

// Clone returns a deep copy, so stored orders never alias live ones.
func (o *Order) Clone() *Order {
	out := *o
	out.Items = make([]Item, len(o.Items))
	copy(out.Items, o.Items)
	return &out
}

// NewTrackingCode generates a carrier-style code: "BR" plus 9 uppercase
// hex characters.
func NewTrackingCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BR" + raw[:9]
}
