package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lumina-store/config"
	"lumina-store/libs"
	"lumina-store/repositories"
	"lumina-store/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := services.NewCatalogService(context.Background(), repositories.NewStaticProductRepository())
	require.NoError(t, err)
	sessions := services.NewSessionService(repositories.NewMemoryKVStore(), services.SessionOptions{
		Logger: libs.NopLogger(),
	})

	router := NewRouter(&config.Config{}, libs.NopLogger(), Dependencies{
		Catalog:    catalog,
		Sessions:   sessions,
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) newSession() string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/sessions", "", nil)
	require.Equal(s.t, http.StatusCreated, code)
	var out struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(s.t, out.SessionID)
	return out.Token
}

// toReview fills a cart and walks the checkout to the review step.
func (s *testServer) toReview(token string, payment map[string]string) {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 2, "quantity": 1})
	require.Equal(s.t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/checkout", token, nil)
	require.Equal(s.t, http.StatusCreated, code)
	code, _ = s.do(http.MethodPut, "/checkout/shipping", token, map[string]string{"first_name": "Jane", "city": "Lisbon"})
	require.Equal(s.t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/checkout/continue", token, nil)
	require.Equal(s.t, http.StatusOK, code)
	code, _ = s.do(http.MethodPut, "/checkout/payment", token, payment)
	require.Equal(s.t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/checkout/continue", token, nil)
	require.Equal(s.t, http.StatusOK, code)
}

type placeOrderData struct {
	Outcome      string `json:"outcome"`
	Message      string `json:"message"`
	Confirmation *struct {
		OrderID string `json:"order_id"`
		Email   string `json:"email"`
		Total   string `json:"total"`
	} `json:"confirmation"`
	Checkout *struct {
		Stage   string `json:"stage"`
		Blocked bool   `json:"blocked"`
		Error   string `json:"error"`
	} `json:"checkout"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/products?category=Electronics&sort=price-low", "", nil)
	require.Equal(t, http.StatusOK, code)
	products := decode[[]struct {
		ID int `json:"id"`
	}](t, env.Data)
	require.Len(t, products, 3)
	assert.Equal(t, 8, products[0].ID)
	meta := decode[struct {
		Total int    `json:"total"`
		Sort  string `json:"sort"`
	}](t, env.Meta)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, "price-low", meta.Sort)

	code, env = s.do(http.MethodGet, "/products/featured", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 4)

	code, _ = s.do(http.MethodGet, "/products/7", "", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/products/404", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 6)

	code, env = s.do(http.MethodGet, "/categories/electronics", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[struct {
		Products []json.RawMessage `json:"products"`
	}](t, env.Data).Products, 3)
	code, _ = s.do(http.MethodGet, "/categories/toys", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestProductDetail(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/products/8/detail", "", nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[struct {
		DiscountPercent int `json:"discount_percent"`
		Recommendations []struct {
			ID int `json:"id"`
		} `json:"recommendations"`
	}](t, env.Data)
	assert.Equal(t, 34, detail.DiscountPercent)
	require.Len(t, detail.Recommendations, 2)
	assert.Equal(t, 1, detail.Recommendations[0].ID)

	code, _ = s.do(http.MethodGet, "/products/999/detail", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSessionRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	code, _ := s.do(http.MethodPost, "/auth/login", token, map[string]string{"email": "not-an-email", "name": "Jane"})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(http.MethodPost, "/auth/signup", token, map[string]string{"email": "jane@example.com", "name": "Jane", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env := s.do(http.MethodPost, "/auth/signup", token, map[string]string{"email": "jane@example.com", "name": "Jane Doe", "password": "123456"})
	require.Equal(t, http.StatusCreated, code)
	view := decode[struct {
		Authenticated bool `json:"authenticated"`
		User          struct {
			Email string `json:"email"`
		} `json:"user"`
	}](t, env.Data)
	assert.True(t, view.Authenticated)
	assert.Equal(t, "jane@example.com", view.User.Email)

	code, _ = s.do(http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, code)
	_, env = s.do(http.MethodGet, "/auth/me", token, nil)
	assert.False(t, decode[struct {
		Authenticated bool `json:"authenticated"`
	}](t, env.Data).Authenticated)
}

func TestCartRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()

	code, _ := s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 999})
	assert.Equal(t, http.StatusNotFound, code)

	s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 3, "size": "M"})
	s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 3, "size": "L", "quantity": 2})
	code, env := s.do(http.MethodPatch, "/cart/items/3", token, map[string]int{"quantity": 4})
	require.Equal(t, http.StatusOK, code)

	type cartView struct {
		Lines []struct {
			Quantity     int    `json:"quantity"`
			SelectedSize string `json:"selected_size"`
		} `json:"lines"`
		Summary struct {
			ItemCount int    `json:"item_count"`
			Subtotal  string `json:"subtotal"`
			Tax       string `json:"tax"`
		} `json:"summary"`
	}
	cart := decode[cartView](t, env.Data)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 8, cart.Summary.ItemCount)
	assert.Equal(t, "1032", cart.Summary.Subtotal)
	assert.Equal(t, "82.56", cart.Summary.Tax)

	_, env = s.do(http.MethodDelete, "/cart/items/3?size=M", token, nil)
	cart = decode[cartView](t, env.Data)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "L", cart.Lines[0].SelectedSize)

	_, env = s.do(http.MethodDelete, "/cart", token, nil)
	assert.Empty(t, decode[cartView](t, env.Data).Lines)

	code, _ = s.do(http.MethodPost, "/checkout", token, nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestCheckoutSuccess(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.do(http.MethodPost, "/auth/login", token, map[string]string{"email": "jane@example.com", "name": "Jane Doe"})
	s.toReview(token, map[string]string{"method": "card", "card_number": "4242 4242 4242 4242", "cvc": "123"})

	code, env := s.do(http.MethodPost, "/checkout/place-order", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	res := decode[placeOrderData](t, env.Data)
	assert.Equal(t, "succeeded", res.Outcome)
	require.NotNil(t, res.Confirmation)
	assert.Equal(t, "jane@example.com", res.Confirmation.Email)
	assert.Equal(t, "204.12", res.Confirmation.Total)
	assert.Regexp(t, `^LUM-`, res.Confirmation.OrderID)

	_, env = s.do(http.MethodGet, "/cart", token, nil)
	assert.Empty(t, decode[struct {
		Lines []json.RawMessage `json:"lines"`
	}](t, env.Data).Lines)
	code, _ = s.do(http.MethodGet, "/checkout", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCheckoutDeclineThenRetry(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.toReview(token, map[string]string{"method": "card", "card_number": "4242 4242 4242 424", "cvc": "123"})

	code, env := s.do(http.MethodPost, "/checkout/place-order", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	res := decode[placeOrderData](t, env.Data)
	assert.Equal(t, "declined", res.Outcome)
	assert.Equal(t, services.CardDeclinedMessage, res.Message)
	require.NotNil(t, res.Checkout)
	assert.Equal(t, "review", res.Checkout.Stage)

	code, _ = s.do(http.MethodPut, "/checkout/payment", token, map[string]string{"method": "paypal"})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/checkout/place-order", token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCheckoutBlocked(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.toReview(token, map[string]string{"method": "card", "card_number": "123456789", "cvc": "123"})

	code, env := s.do(http.MethodPost, "/checkout/place-order", token, nil)
	require.Equal(t, http.StatusForbidden, code)
	res := decode[placeOrderData](t, env.Data)
	assert.Equal(t, "blocked", res.Outcome)
	assert.Equal(t, services.SecurityAlertMessage, res.Message)
	require.NotNil(t, res.Checkout)
	assert.True(t, res.Checkout.Blocked)

	code, env = s.do(http.MethodPost, "/checkout/back", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, services.SecurityAlertMessage, env.Message)

	code, _ = s.do(http.MethodDelete, "/checkout", token, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/checkout", token, nil)
	assert.Equal(t, http.StatusCreated, code)
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	s := newTestServer(t)
	token := s.newSession()
	s.do(http.MethodPost, "/cart/items", token, map[string]any{"product_id": 1})
	s.do(http.MethodPost, "/checkout", token, nil)
	s.do(http.MethodPost, "/checkout/continue", token, nil)

	code, _ := s.do(http.MethodPut, "/checkout/payment", token, map[string]string{"method": "crypto"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/checkout/place-order", token, nil)
	assert.Equal(t, http.StatusConflict, code)
}
