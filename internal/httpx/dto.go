package httpx

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/order"
)

var zipCodeRe = regexp.MustCompile(`^\d{5}-?\d{3}$`)

const (
	minQuantity = 1
	maxQuantity = 10
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r registerRequest) validate() []FieldError {
	var errs []FieldError
	if len(strings.TrimSpace(r.Name)) < 2 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at least 2 characters"})
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "is required"})
	}
	return errs
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r updateProfileRequest) validate() []FieldError {
	var errs []FieldError
	if r.Name != "" && len(strings.TrimSpace(r.Name)) < 2 {
		errs = append(errs, FieldError{Field: "name", Message: "must be at least 2 characters"})
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			errs = append(errs, FieldError{Field: "email", Message: "must be a valid email address"})
		}
	}
	return errs
}

type addItemRequest struct {
	ProductID int    `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (r addItemRequest) validate() []FieldError {
	var errs []FieldError
	if r.ProductID < 1 {
		errs = append(errs, FieldError{Field: "productId", Message: "must be a positive integer"})
	}
	if r.Quantity < minQuantity || r.Quantity > maxQuantity {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be between 1 and 10"})
	}
	return errs
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r updateItemRequest) validate() []FieldError {
	// Zero removes the line; anything above the per-line cap is rejected.
	if r.Quantity < 0 || r.Quantity > maxQuantity {
		return []FieldError{{Field: "quantity", Message: "must be between 0 and 10"}}
	}
	return nil
}

type orderItemRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type addressRequest struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zipCode"`
}

type createOrderRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress addressRequest     `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

func (r createOrderRequest) validate() []FieldError {
	var errs []FieldError
	if len(r.Items) == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "at least one item is required"})
	}
	for _, it := range r.Items {
		if it.ProductID < 1 {
			errs = append(errs, FieldError{Field: "items.productId", Message: "must be a positive integer"})
			break
		}
		if it.Quantity < minQuantity || it.Quantity > maxQuantity {
			errs = append(errs, FieldError{Field: "items.quantity", Message: "must be between 1 and 10"})
			break
		}
	}
	if strings.TrimSpace(r.ShippingAddress.Street) == "" {
		errs = append(errs, FieldError{Field: "shippingAddress.street", Message: "is required"})
	}
	if strings.TrimSpace(r.ShippingAddress.City) == "" {
		errs = append(errs, FieldError{Field: "shippingAddress.city", Message: "is required"})
	}
	if !zipCodeRe.MatchString(r.ShippingAddress.ZipCode) {
		errs = append(errs, FieldError{Field: "shippingAddress.zipCode", Message: "must match 00000-000"})
	}
	if !order.PaymentMethod(r.PaymentMethod).Valid() {
		errs = append(errs, FieldError{Field: "paymentMethod", Message: "must be one of credit_card, debit_card, pix, boleto"})
	}
	return errs
}
