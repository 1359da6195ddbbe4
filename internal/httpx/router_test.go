package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evolvetech-Johnn/holystreetstore/internal/auth"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/cart"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/catalog"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/money"
	"github.com/Evolvetech-Johnn/holystreetstore/internal/order"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []FieldError    `json:"errors"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	authSvc := auth.NewService(auth.NewMemoryUserStore(auth.SeedAdmin()), []byte("test-secret"), time.Hour)
	products := catalog.NewProvider()
	carts := cart.NewService(cart.NewMemoryRepository(), products, nil)
	orders := order.NewService(
		order.NewMemoryRepository(),
		order.NewScheduler(time.Hour), // never fires within a test
		nil,
		order.ShippingPolicy{
			Fee:           money.MustDecimal("15.90"),
			FreeThreshold: money.MustDecimal("200"),
		},
	)
	t.Cleanup(orders.Shutdown)

	return NewRouter(authSvc, products, carts, orders)
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) (int, testEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func registerUser(t *testing.T, h http.Handler, email string) string {
	t.Helper()

	code, env := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Maria Silva",
		"email":    email,
		"password": "segredo1",
	})
	require.Equal(t, http.StatusCreated, code)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t)

	code, env := doRequest(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestAuthEndpoints(t *testing.T) {
	h := newTestRouter(t)

	token := registerUser(t, h, "maria@example.com")

	t.Run("duplicate email", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name": "Outra Maria", "email": "maria@example.com", "password": "segredo2",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.False(t, env.Success)
	})

	t.Run("validation errors", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/auth/register", "", map[string]any{
			"name": "X", "email": "not-an-email", "password": "123",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Len(t, env.Errors, 3)
	})

	t.Run("login", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "maria@example.com", "password": "segredo1",
		})
		assert.Equal(t, http.StatusOK, code)

		code, _ = doRequest(t, h, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "maria@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("profile", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			User auth.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "maria@example.com", data.User.Email)
	})

	t.Run("update profile", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPut, "/api/auth/profile", token, map[string]any{
			"name": "Maria Souza",
		})
		require.Equal(t, http.StatusOK, code)

		var data struct {
			User auth.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Maria Souza", data.User.Name)
	})

	t.Run("missing token", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodGet, "/api/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("invalid token", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodGet, "/api/auth/profile", "garbage", nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("logout", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodPost, "/api/auth/logout", token, nil)
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestProductEndpoints(t *testing.T) {
	h := newTestRouter(t)

	t.Run("list all", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Products []catalog.Product `json:"products"`
			Total    int               `json:"total"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 5, data.Total)
	})

	t.Run("filter by category", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products?category=Camisetas", "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Products []catalog.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data.Products, 2)
		for _, p := range data.Products {
			assert.Equal(t, "Camisetas", p.Category)
		}
	})

	t.Run("invalid min price", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products?minPrice=abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, env.Errors)
	})

	t.Run("get by id", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products/2", "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Product catalog.Product `json:"product"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Product.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodGet, "/api/products/99", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("featured", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products/featured/list", "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Products []catalog.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.NotEmpty(t, data.Products)
	})

	t.Run("categories", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/products/categories/list", "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Categories []catalog.Category `json:"categories"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Categories, 4)
	})
}

func TestCartEndpoints(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "cart@example.com")

	getCart := func(t *testing.T, env testEnvelope) cart.Cart {
		t.Helper()
		var data struct {
			Cart cart.Cart `json:"cart"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return data.Cart
	}

	t.Run("requires auth", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodGet, "/api/cart", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("starts empty", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/cart", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 0, getCart(t, env).ItemCount)
	})

	var lineID string

	t.Run("add item", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/cart/add", token, map[string]any{
			"productId": 1, "size": "M", "color": "Black", "quantity": 2,
		})
		require.Equal(t, http.StatusOK, code)

		c := getCart(t, env)
		require.Len(t, c.Lines, 1)
		lineID = c.Lines[0].ID
		assert.Equal(t, 2, c.ItemCount)
		// Product 1: price 129.90, original 159.90.
		assert.True(t, c.Subtotal.Equal(decimal.RequireFromString("319.80")), c.Subtotal.String())
		assert.True(t, c.Discount.Equal(decimal.RequireFromString("60.00")), c.Discount.String())
		assert.True(t, c.Total.Equal(decimal.RequireFromString("259.80")), c.Total.String())
	})

	t.Run("quantity out of bounds", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/cart/add", token, map[string]any{
			"productId": 1, "quantity": 11,
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, env.Errors)
	})

	t.Run("unknown product", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodPost, "/api/cart/add", token, map[string]any{
			"productId": 99, "quantity": 1,
		})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("count", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/cart/count", token, nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Count)
	})

	t.Run("update quantity", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPut, "/api/cart/update/"+lineID, token, map[string]any{
			"quantity": 3,
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 3, getCart(t, env).ItemCount)
	})

	t.Run("update unknown line", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodPut, "/api/cart/update/nope", token, map[string]any{
			"quantity": 1,
		})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("remove line", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodDelete, "/api/cart/remove/"+lineID, token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, 0, getCart(t, env).ItemCount)
	})

	t.Run("clear", func(t *testing.T) {
		_, _ = doRequest(t, h, http.MethodPost, "/api/cart/add", token, map[string]any{
			"productId": 5, "quantity": 1,
		})
		code, env := doRequest(t, h, http.MethodDelete, "/api/cart/clear", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.True(t, getCart(t, env).Total.IsZero())
	})
}

func TestOrderEndpoints(t *testing.T) {
	h := newTestRouter(t)
	token := registerUser(t, h, "orders@example.com")

	validAddress := map[string]any{
		"street": "Rua Augusta", "number": "1500", "city": "São Paulo",
		"state": "SP", "zipCode": "01304-001",
	}

	getOrder := func(t *testing.T, env testEnvelope) order.Order {
		t.Helper()
		var data struct {
			Order order.Order `json:"order"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		return data.Order
	}

	var created order.Order

	t.Run("create", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/orders", token, map[string]any{
			"items":           []map[string]any{{"productId": 1, "quantity": 1, "size": "M"}},
			"shippingAddress": validAddress,
			"paymentMethod":   "pix",
		})
		require.Equal(t, http.StatusCreated, code)

		created = getOrder(t, env)
		assert.Equal(t, order.StatusPending, created.Status)
		assert.Equal(t, order.PaymentPending, created.PaymentStatus)
		// 129.90 is below the free-shipping threshold.
		assert.True(t, created.Shipping.Equal(decimal.RequireFromString("15.90")))
		assert.True(t, created.Total.Equal(decimal.RequireFromString("145.80")), created.Total.String())
		assert.NotEmpty(t, created.OrderNumber)
	})

	t.Run("free shipping above threshold", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/orders", token, map[string]any{
			"items":           []map[string]any{{"productId": 2, "quantity": 1}},
			"shippingAddress": validAddress,
			"paymentMethod":   "credit_card",
		})
		require.Equal(t, http.StatusCreated, code)
		assert.True(t, getOrder(t, env).Shipping.IsZero())
	})

	t.Run("validation", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPost, "/api/orders", token, map[string]any{
			"items":           []map[string]any{},
			"shippingAddress": map[string]any{"zipCode": "123"},
			"paymentMethod":   "cash",
		})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, env.Errors)
	})

	t.Run("unknown product", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodPost, "/api/orders", token, map[string]any{
			"items":           []map[string]any{{"productId": 99, "quantity": 1}},
			"shippingAddress": validAddress,
			"paymentMethod":   "pix",
		})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("list", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/orders", token, nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Orders     []order.Order    `json:"orders"`
			Pagination order.Pagination `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Pagination.Total)
	})

	t.Run("get", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/orders/"+itoa(created.ID), token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, created.ID, getOrder(t, env).ID)
	})

	t.Run("get unknown", func(t *testing.T) {
		code, _ := doRequest(t, h, http.MethodGet, "/api/orders/999", token, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("other user cannot see it", func(t *testing.T) {
		other := registerUser(t, h, "intruder@example.com")
		code, _ := doRequest(t, h, http.MethodGet, "/api/orders/"+itoa(created.ID), other, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("track is public", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/orders/track/"+created.OrderNumber, "", nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Tracking order.Tracking `json:"tracking"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, created.OrderNumber, data.Tracking.OrderNumber)
		assert.Len(t, data.Tracking.Steps, 5)
	})

	t.Run("cancel", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodPut, "/api/orders/"+itoa(created.ID)+"/cancel", token, nil)
		require.Equal(t, http.StatusOK, code)

		o := getOrder(t, env)
		assert.Equal(t, order.StatusCancelled, o.Status)
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus)

		code, _ = doRequest(t, h, http.MethodPut, "/api/orders/"+itoa(created.ID)+"/cancel", token, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("stats", func(t *testing.T) {
		code, env := doRequest(t, h, http.MethodGet, "/api/orders/stats/summary", token, nil)
		require.Equal(t, http.StatusOK, code)

		var data struct {
			Stats order.Stats `json:"stats"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, 2, data.Stats.Total)
		assert.Equal(t, 1, data.Stats.Cancelled)
		assert.Equal(t, 1, data.Stats.Pending)
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
