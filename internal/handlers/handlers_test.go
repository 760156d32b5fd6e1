package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/kv"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/storage"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/views"
)

var testSecret = []byte("handlers-test-secret")

type testEnv struct {
	E       *echo.Echo
	Store   *storage.Adapter
	Catalog *service.CatalogService
	Cart    *service.CartService
	Pages   *PageHandler
	API     *APIHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.New(kv.NewMemoryStore())
	catalog := &service.CatalogService{Store: store}
	cart := &service.CartService{Store: store, Catalog: catalog}
	auth, err := service.NewStaticAuthenticator("admin", "admin123")
	require.NoError(t, err)

	renderer, err := views.NewRenderer()
	require.NoError(t, err)
	e := echo.New()
	e.Renderer = renderer

	return &testEnv{
		E:       e,
		Store:   store,
		Catalog: catalog,
		Cart:    cart,
		Pages:   &PageHandler{Catalog: catalog, Cart: cart, Auth: auth, JWTSecret: testSecret},
		API:     &APIHandler{Catalog: catalog, Cart: cart, Auth: auth, JWTSecret: testSecret},
	}
}

func (env *testEnv) doFormRequest(method, path string, form url.Values, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, env.E.NewContext(req, rec)
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	tok, exp, err := tokens.SignAdmin("admin", testSecret, time.Now())
	require.NoError(t, err)
	return &http.Cookie{Name: tokens.AdminCookie, Value: tok, Path: "/", Expires: exp}
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
