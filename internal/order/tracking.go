package order

import "time"

// TrackingStep is one stage of the delivery progress list.
type TrackingStep struct {
	Status      Status     `json:"status"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        *time.Time `json:"date"`
	Completed   bool       `json:"completed"`
}

// Tracking is the read-only projection served by the public tracking
// endpoint. It is derived from the order on every call, never stored.
type Tracking struct {
	OrderNumber       string         `json:"orderNumber"`
	Status            Status         `json:"status"`
	TrackingCode      string         `json:"trackingCode,omitempty"`
	EstimatedDelivery time.Time      `json:"estimatedDelivery"`
	Steps             []TrackingStep `json:"trackingSteps"`
}

// statusReached reports whether the order has passed the given stage.
func (o *Order) statusReached(stages ...Status) bool {
	for _, s := range stages {
		if o.Status == s {
			return true
		}
	}
	return false
}

// BuildTracking maps the order's status and payment status onto the 5-step
// progress list.
func BuildTracking(o *Order, now time.Time) Tracking {
	created := o.CreatedAt
	var confirmedAt *time.Time
	if o.PaymentStatus == PaymentPaid || o.PaymentStatus == PaymentRefunded {
		t := o.UpdatedAt
		confirmedAt = &t
	}

	stepDate := func(reached bool) *time.Time {
		if !reached {
			return nil
		}
		t := now
		return &t
	}

	preparingDone := o.statusReached(StatusPreparing, StatusShipped, StatusDelivered)
	shippedDone := o.statusReached(StatusShipped, StatusDelivered)
	deliveredDone := o.Status == StatusDelivered

	shippedDesc := "Pedido enviado"
	if o.TrackingCode != "" {
		shippedDesc += " - Código: " + o.TrackingCode
	}

	return Tracking{
		OrderNumber:       o.OrderNumber,
		Status:            o.Status,
		TrackingCode:      o.TrackingCode,
		EstimatedDelivery: o.CreatedAt.Add(7 * 24 * time.Hour),
		Steps: []TrackingStep{
			{
				Status:      StatusPending,
				Title:       "Pedido Recebido",
				Description: "Seu pedido foi recebido e está sendo processado",
				Date:        &created,
				Completed:   true,
			},
			{
				Status:      StatusConfirmed,
				Title:       "Pagamento Confirmado",
				Description: "Pagamento aprovado e pedido confirmado",
				Date:        confirmedAt,
				Completed:   o.PaymentStatus == PaymentPaid,
			},
			{
				Status:      StatusPreparing,
				Title:       "Preparando Pedido",
				Description: "Seus produtos estão sendo separados",
				Date:        stepDate(preparingDone),
				Completed:   preparingDone,
			},
			{
				Status:      StatusShipped,
				Title:       "Pedido Enviado",
				Description: shippedDesc,
				Date:        stepDate(shippedDone),
				Completed:   shippedDone,
			},
			{
				Status:      StatusDelivered,
				Title:       "Entregue",
				Description: "Pedido entregue com sucesso",
				Date:        stepDate(deliveredDone),
				Completed:   deliveredDone,
			},
		},
	}
}
