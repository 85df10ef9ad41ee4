package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ntarasov/shop_backend/internal/es"
	authmw "github.com/ntarasov/shop_backend/internal/middleware/auth"
	"github.com/ntarasov/shop_backend/internal/models"
	"github.com/ntarasov/shop_backend/internal/repo"
	"github.com/ntarasov/shop_backend/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.GormRepo
	Cart *CartHTTP
	Prod *ProductHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}, &models.RefreshToken{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	r := &repo.GormRepo{DB: db}
	return &testEnv{
		T:    t,
		E:    echo.New(),
		Repo: r,
		Cart: &CartHTTP{Svc: &service.CartService{Repo: r}},
		Prod: &ProductHTTP{Svc: &service.ProductService{Repo: r}, Indexer: &es.Indexer{}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedUser(email string) *models.User {
	user := &models.User{Email: email, PasswordHash: "x", Role: "user"}
	require.NoError(env.T, env.Repo.DB.Create(user).Error)
	return user
}

func (env *testEnv) seedProduct(name, price string, stock int) *models.Product {
	p, err := decimal.NewFromString(price)
	require.NoError(env.T, err)
	product := &models.Product{Name: name, Description: "test", Price: p, Stock: stock}
	require.NoError(env.T, env.Repo.DB.Create(product).Error)
	return product
}

func asUser(c echo.Context, user *models.User) {
	c.Set(authmw.ContextUserID, user.ID.String())
	c.Set(authmw.ContextRole, user.Role)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
