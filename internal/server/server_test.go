package server

import (
	"encoding/json"
	"testing"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/datamodels/order"
	"github.com/example/storefront/internal/testutil"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func decode(t *testing.T, raw string, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env), raw)
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), raw)
	}
	return env
}

func newTestApp(t *testing.T) (*iris.Application, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := config.DefaultConfig()
	svc := NewServices(db, nil, nil, &cfg.Cart)

	app := iris.New()
	RegisterRoutes(app, svc, &cfg.Cart)
	RegisterAdminRoutes(app, svc)
	return app, db
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	e := httptest.New(t, app)
	env := decode(t, e.GET("/api/health").Expect().Status(iris.StatusOK).Body().Raw(), nil)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "ok", env.Msg)
}

func TestAddToCartCreatesThenMerges(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	p := testutil.CreateProduct(t, db, "Laptop", 1_200_000, "Electronics")

	var first struct {
		ID        int64  `json:"id"`
		SessionID string `json:"sessionId"`
		Quantity  int    `json:"quantity"`
		Product   struct {
			Title string `json:"title"`
		} `json:"product"`
	}
	raw := e.POST("/cart").WithJSON(iris.Map{"productId": p.ID, "quantity": 1}).
		Expect().Status(iris.StatusCreated).Body().Raw()
	decode(t, raw, &first)
	assert.Equal(t, "default-session", first.SessionID)
	assert.Equal(t, 1, first.Quantity)
	assert.Equal(t, "Laptop", first.Product.Title)

	second := first
	raw = e.POST("/cart").WithJSON(iris.Map{"productId": p.ID, "quantity": 2}).
		Expect().Status(iris.StatusOK).Body().Raw()
	decode(t, raw, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	var lines []map[string]interface{}
	decode(t, e.GET("/cart").Expect().Status(iris.StatusOK).Body().Raw(), &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, float64(3), lines[0]["quantity"])
}

func TestAddToCartErrors(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	p := testutil.CreateProduct(t, db, "T-shirt", 150_000, "Clothing")

	env := decode(t, e.POST("/cart").WithJSON(iris.Map{"productId": p.ID, "quantity": 0}).
		Expect().Status(iris.StatusBadRequest).Body().Raw(), nil)
	assert.Equal(t, iris.StatusBadRequest, env.Code)

	e.POST("/cart").WithJSON(iris.Map{"quantity": 1}).Expect().Status(iris.StatusBadRequest)
	e.POST("/cart").WithText("not json").Expect().Status(iris.StatusBadRequest)
	e.POST("/cart").WithJSON(iris.Map{"productId": 9999, "quantity": 1}).Expect().Status(iris.StatusNotFound)

	var lines []map[string]interface{}
	decode(t, e.GET("/cart").Expect().Status(iris.StatusOK).Body().Raw(), &lines)
	assert.Empty(t, lines)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	p := testutil.CreateProduct(t, db, "Smartphone", 800_000, "Electronics")

	e.POST("/cart").WithJSON(iris.Map{"productId": p.ID, "quantity": 1, "sessionId": "a"}).
		Expect().Status(iris.StatusCreated)
	e.POST("/cart").WithJSON(iris.Map{"productId": p.ID, "quantity": 1, "sessionId": "b"}).
		Expect().Status(iris.StatusCreated)

	var lines []map[string]interface{}
	decode(t, e.GET("/cart").WithQuery("sessionId", "a").Expect().Status(iris.StatusOK).Body().Raw(), &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0]["sessionId"])
}

func TestCartQuote(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	laptop := testutil.CreateProduct(t, db, "Laptop", 1_200_000, "Electronics")

	e.POST("/cart").WithJSON(iris.Map{"productId": laptop.ID, "quantity": 1, "sessionId": "q"}).
		Expect().Status(iris.StatusCreated)

	var quote struct {
		Subtotal        float64 `json:"subtotal"`
		DiscountPercent float64 `json:"discountPercent"`
		FinalAmount     float64 `json:"finalAmount"`
	}
	raw := e.GET("/cart/quote").
		WithQuery("sessionId", "q").WithQuery("member", "true").WithQuery("promoCode", "DISKON20").
		Expect().Status(iris.StatusOK).Body().Raw()
	decode(t, raw, &quote)
	assert.Equal(t, float64(1_200_000), quote.Subtotal)
	assert.Equal(t, float64(35), quote.DiscountPercent)
	assert.InDelta(t, 780_000, quote.FinalAmount, 1e-6)
}

func TestDiscountEndpoint(t *testing.T) {
	app, _ := newTestApp(t)
	e := httptest.New(t, app)

	var out struct {
		FinalAmount     float64 `json:"finalAmount"`
		DiscountPercent float64 `json:"discountPercent"`
	}
	raw := e.POST("/api/discount").
		WithJSON(iris.Map{"total": 2_000_000, "isMember": true, "promoCode": "DISKON20"}).
		Expect().Status(iris.StatusOK).Body().Raw()
	decode(t, raw, &out)
	assert.InDelta(t, 1_300_000, out.FinalAmount, 1e-6)
	assert.Equal(t, float64(35), out.DiscountPercent)

	e.POST("/api/discount").WithJSON(iris.Map{"total": -1}).Expect().Status(iris.StatusBadRequest)
	e.POST("/api/discount").WithJSON(iris.Map{"total": "lots"}).Expect().Status(iris.StatusBadRequest)
}

func TestProductRoutes(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	laptop := testutil.CreateProduct(t, db, "Laptop", 1_200_000, "Electronics")
	testutil.CreateProduct(t, db, "Smartphone", 800_000, "Electronics")
	testutil.CreateProduct(t, db, "T-shirt", 150_000, "Clothing")

	var list []struct {
		Title string `json:"title"`
	}
	decode(t, e.GET("/products").Expect().Status(iris.StatusOK).Body().Raw(), &list)
	assert.Len(t, list, 3)

	decode(t, e.GET("/products").WithQuery("category", "Electronics").WithQuery("q", "PHONE").
		Expect().Status(iris.StatusOK).Body().Raw(), &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Smartphone", list[0].Title)

	var categories []string
	decode(t, e.GET("/products/categories").Expect().Status(iris.StatusOK).Body().Raw(), &categories)
	assert.Equal(t, []string{"Clothing", "Electronics"}, categories)

	var one struct {
		ID    int64   `json:"id"`
		Price float64 `json:"price"`
	}
	decode(t, e.GET("/products/{id}", laptop.ID).Expect().Status(iris.StatusOK).Body().Raw(), &one)
	assert.Equal(t, laptop.ID, one.ID)
	assert.Equal(t, float64(1_200_000), one.Price)

	e.GET("/products/424242").Expect().Status(iris.StatusNotFound)
}

func TestAnalyticsRoutes(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	john := testutil.CreateUser(t, db, "John Doe", "john@example.com")
	jane := testutil.CreateUser(t, db, "Jane Smith", "jane@example.com")
	bob := testutil.CreateUser(t, db, "Bob Johnson", "bob@example.com")
	testutil.CreateUser(t, db, "No Orders", "none@example.com")

	testutil.CreateOrder(t, db, john.ID, 1_200_000, order.StatusPending)
	testutil.CreateOrder(t, db, john.ID, 450_000, order.StatusPending)
	testutil.CreateOrder(t, db, jane.ID, 1_500_000, order.StatusPending)
	testutil.CreateOrder(t, db, jane.ID, 300_000, order.StatusPending)
	o5 := testutil.CreateOrder(t, db, bob.ID, 750_000, order.StatusPending)

	var large []struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	decode(t, e.GET("/api/users/large-orders").Expect().Status(iris.StatusOK).Body().Raw(), &large)
	require.Len(t, large, 2)
	assert.Equal(t, john.ID, large[0].ID)
	assert.Equal(t, "jane@example.com", large[1].Email)

	var averages []struct {
		Name         string  `json:"name"`
		AverageOrder float64 `json:"average_order"`
	}
	decode(t, e.GET("/api/users/average-orders").Expect().Status(iris.StatusOK).Body().Raw(), &averages)
	require.Len(t, averages, 4)
	assert.InDelta(t, 825_000, averages[0].AverageOrder, 1e-6)
	assert.InDelta(t, 900_000, averages[1].AverageOrder, 1e-6)
	assert.InDelta(t, 750_000, averages[2].AverageOrder, 1e-6)
	assert.Equal(t, "No Orders", averages[3].Name)
	assert.Zero(t, averages[3].AverageOrder)

	var updated struct {
		UpdatedCount int64 `json:"updatedCount"`
	}
	decode(t, e.POST("/api/orders/update-status").Expect().Status(iris.StatusOK).Body().Raw(), &updated)
	assert.Equal(t, int64(3), updated.UpdatedCount)
	assert.Equal(t, order.StatusCompleted, testutil.OrderStatus(t, db, o5.ID))

	decode(t, e.POST("/api/orders/update-status").Expect().Status(iris.StatusOK).Body().Raw(), &updated)
	assert.Equal(t, int64(0), updated.UpdatedCount)

	var summary struct {
		OrderCount   int     `json:"order_count"`
		AverageOrder float64 `json:"average_order"`
	}
	decode(t, e.GET("/api/users/{id}/orders", jane.ID).Expect().Status(iris.StatusOK).Body().Raw(), &summary)
	assert.Equal(t, 2, summary.OrderCount)
	assert.InDelta(t, 900_000, summary.AverageOrder, 1e-6)

	e.GET("/api/users/424242/orders").Expect().Status(iris.StatusNotFound)
}

func TestStoreFailureMapsTo500(t *testing.T) {
	app, db := newTestApp(t)
	e := httptest.New(t, app)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	env := decode(t, e.GET("/api/users/large-orders").Expect().Status(iris.StatusInternalServerError).Body().Raw(), nil)
	assert.Equal(t, iris.StatusInternalServerError, env.Code)
	assert.Equal(t, "internal error", env.Msg)
}
