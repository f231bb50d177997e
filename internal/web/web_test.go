package web

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canteen-web/internal/api"
	"canteen-web/internal/auth"
	"canteen-web/internal/i18n"
	"canteen-web/internal/session"
	"canteen-web/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// monday is the clock of every test: Monday 2025-03-03
var monday = time.Date(2025, 3, 3, 9, 30, 0, 0, time.Local)

type apiCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
	Auth   string
}

// fakeAPI is a scripted canteen backend
type fakeAPI struct {
	mu     sync.Mutex
	calls  []apiCall
	routes map[string]http.HandlerFunc
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{routes: make(map[string]http.HandlerFunc)}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := apiCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Auth: r.Header.Get("Authorization")}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &call.Body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	h, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	h(w, r)
}

// reply makes the backend answer "METHOD /path" with status and body
func (f *fakeAPI) reply(route string, status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[route] = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	}
}

func (f *fakeAPI) called(route string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method+" "+c.Path == route {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) routesCalled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method+" "+c.Path)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// browser drives the web client and keeps the session cookie between requests
type browser struct {
	t       *testing.T
	engine  *gin.Engine
	backend store.Backend
	bundle  *i18n.Bundle
	api     *fakeAPI
	cookie  *http.Cookie
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return newBrowserWithAPI(t, fake, srv.URL+"/api")
}

func newBrowserWithAPI(t *testing.T, fake *fakeAPI, baseURL string) *browser {
	t.Helper()
	bundle := i18n.MustLoad(i18n.DefaultLang)
	h, err := NewHandler(api.New(baseURL, time.Second), bundle, Config{
		LocationID: "loc-1",
		Now:        func() time.Time { return monday },
		Rand:       rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	backend := store.NewMemory()
	engine := gin.New()
	RegisterRoutes(engine, h, session.NewManager(backend, time.Hour, false))

	b := &browser{t: t, engine: engine, backend: backend, bundle: bundle, api: fake}
	b.get("/login") // opens the session and issues the CSRF token
	return b
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

// post submits a form with the session's CSRF token
func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	token, err := b.store().CSRF(context.Background())
	require.NoError(b.t, err)
	form.Set(session.CSRFField, token)
	return b.do(http.MethodPost, path, form)
}

func (b *browser) store() *store.Store {
	b.t.Helper()
	require.NotNil(b.t, b.cookie, "no session cookie yet")
	return store.New(b.backend, b.cookie.Value)
}

// loginAs puts a token and a profile into the session without going through the backend
func (b *browser) loginAs(role auth.Role) {
	b.t.Helper()
	ctx := context.Background()
	st := b.store()
	require.NoError(b.t, st.SetToken(ctx, "t"))
	require.NoError(b.t, st.SetUser(ctx, &auth.User{ID: "u-" + string(role), Login: string(role), Role: role, DisplayName: "Test " + string(role)}))
}

func (b *browser) flash() *store.Flash {
	b.t.Helper()
	f, err := b.store().PopFlash(context.Background())
	require.NoError(b.t, err)
	return f
}

func (b *browser) text(key string) string {
	return b.bundle.T(i18n.DefaultLang, key)
}

func (b *browser) addToCart(id, name string, price int64) {
	b.t.Helper()
	item := store.CartItem{ID: id, Name: name, Price: decimal.NewFromInt(price)}
	require.NoError(b.t, b.store().AddToCart(context.Background(), item))
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, location, w.Header().Get("Location"))
}

func TestLoginStoresTokenAndOpensMenu(t *testing.T) {
	b := newBrowser(t)
	b.api.reply("POST /api/auth/login", http.StatusOK, map[string]any{
		"access_token": "t",
		"user":         map[string]any{"id": "u1", "login": "student1", "role": "student", "display_name": "Student One"},
	})

	w := b.post("/login", url.Values{"login": {"student1"}, "pin": {"123456"}})
	assertRedirect(t, w, "/menu")

	calls := b.api.called("POST /api/auth/login")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"login": "student1", "pin": "123456"}, calls[0].Body)
	assert.Empty(t, calls[0].Auth)

	sess, err := b.store().Session(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "t", sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, auth.RoleStudent, sess.User.Role)

	f := b.flash()
	require.NotNil(t, f)
	assert.Equal(t, store.FlashSuccess, f.Kind)
	assert.Contains(t, f.Text, "Student One")
}

func TestLoginIssuesFreshSessionID(t *testing.T) {
	b := newBrowser(t)
	const planted = "11111111-2222-3333-4444-555555555555"
	b.cookie = &http.Cookie{Name: session.CookieName, Value: planted}
	b.get("/login")
	require.Equal(t, planted, b.cookie.Value)
	b.addToCart("item-1", "Плов", 900)
	require.NoError(t, b.store().SetLang(context.Background(), "kz"))

	b.api.reply("POST /api/auth/login", http.StatusOK, map[string]any{
		"access_token": "victim-token",
		"user":         map[string]any{"id": "u1", "login": "student1", "role": "student"},
	})
	assertRedirect(t, b.post("/login", url.Values{"login": {"student1"}, "pin": {"123456"}}), "/menu")
	assert.NotEqual(t, planted, b.cookie.Value)

	ctx := context.Background()
	stolen, err := store.New(b.backend, planted).Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, stolen)

	token, _ := b.store().Token(ctx)
	assert.Equal(t, "victim-token", token)
	cart, _ := b.store().Cart(ctx)
	assert.Len(t, cart, 1)
	lang, _ := b.store().Lang(ctx)
	assert.Equal(t, "kz", lang)

	// the old id is gone, so a request with it starts an empty session
	attacker := &browser{t: t, engine: b.engine, backend: b.backend, bundle: b.bundle, api: b.api,
		cookie: &http.Cookie{Name: session.CookieName, Value: planted}}
	assertRedirect(t, attacker.get("/menu"), "/login")
}

func TestLoginRedirectsByRole(t *testing.T) {
	for role, want := range map[string]string{"cook": "/cook", "admin": "/admin", "user": "/menu"} {
		t.Run(role, func(t *testing.T) {
			b := newBrowser(t)
			b.api.reply("POST /api/auth/login", http.StatusOK, map[string]any{
				"access_token": "t",
				"user":         map[string]any{"id": "u1", "login": role, "role": role},
			})
			assertRedirect(t, b.post("/login", url.Values{"login": {role}, "pin": {"1"}}), want)
		})
	}
}

func TestLoginRejected(t *testing.T) {
	b := newBrowser(t)
	b.api.reply("POST /api/auth/login", http.StatusUnauthorized, map[string]string{"error": "invalid_credentials"})

	w := b.post("/login", url.Values{"login": {"student1"}, "pin": {"000000"}})
	assertRedirect(t, w, "/login")

	token, err := b.store().Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	page := b.get("/login")
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), b.text("invalidCredentials"))
}

func TestLoginRequiresBothFields(t *testing.T) {
	b := newBrowser(t)

	assertRedirect(t, b.post("/login", url.Values{"login": {"student1"}}), "/login")
	assert.Empty(t, b.api.routesCalled())
	assert.Equal(t, b.text("loginPinRequired"), b.flash().Text)
}

func TestLoginBackendDown(t *testing.T) {
	fake := newFakeAPI()
	srv := httptest.NewServer(fake)
	srv.Close()
	b := newBrowserWithAPI(t, fake, srv.URL+"/api")

	assertRedirect(t, b.post("/login", url.Values{"login": {"student1"}, "pin": {"123456"}}), "/login")
	f := b.flash()
	require.NotNil(t, f)
	assert.Equal(t, store.FlashError, f.Kind)
	assert.Equal(t, b.text("serverUnavailable"), f.Text)
}

func TestGuardRedirects(t *testing.T) {
	tests := []struct {
		name string
		role auth.Role // "" means logged out
		path string
		want string
	}{
		{"anonymous menu", "", "/menu", "/login"},
		{"anonymous admin", "", "/admin", "/login"},
		{"anonymous unknown", "", "/nowhere", "/login"},
		{"anonymous root", "", "/", "/login"},
		{"cook opens admin", auth.RoleCook, "/admin", "/cook"},
		{"cook opens cart", auth.RoleCook, "/cart", "/cook"},
		{"admin opens cook", auth.RoleAdmin, "/cook", "/admin"},
		{"admin opens checkout", auth.RoleAdmin, "/checkout", "/admin"},
		{"student opens daily menu", auth.RoleStudent, "/daily-menu", "/menu"},
		{"student unknown", auth.RoleStudent, "/nowhere", "/menu"},
		{"cook root", auth.RoleCook, "/", "/cook"},
		{"admin sub path", auth.RoleAdmin, "/admin/users", "/admin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t)
			if tt.role != "" {
				b.loginAs(tt.role)
			}
			assertRedirect(t, b.get(tt.path), tt.want)
		})
	}
}

func TestGuardBlocksForbiddenActions(t *testing.T) {
	b := newBrowser(t)
	b.loginAs(auth.RoleStudent)

	assertRedirect(t, b.post("/cook/orders/ord-1/ready", nil), "/menu")
	assert.Empty(t, b.api.routesCalled())
}

func TestUnknownAPIPathIsJSON(t *testing.T) {
	b := newBrowser(t)
	w := b.get("/api/nothing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"errors":["not found"]`)
}

func TestExpiredTokenLogsOut(t *testing.T) {
	b := newBrowser(t)
	b.loginAs(auth.RoleStudent)
	b.addToCart("item-1", "Плов", 900)
	b.api.reply("GET /api/orders/my", http.StatusUnauthorized, map[string]string{"error": "token_expired"})

	assertRedirect(t, b.get("/my-orders"), "/login")

	ctx := context.Background()
	sess, err := b.store().Session(ctx)
	require.NoError(t, err)
	assert.False(t, sess.LoggedIn())
	assert.Nil(t, sess.User)

	cart, err := b.store().Cart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart, 1)

	page := b.get("/login")
	assert.Contains(t, page.Body.String(), b.text("sessionExpired"))
}

func TestExpiredTokenDuringAction(t *testing.T) {
	b := newBrowser(t)
	b.loginAs(auth.RoleCook)
	b.api.reply("POST /api/cook/orders/ord-1/ready", http.StatusUnauthorized, map[string]string{"error": "unauthorized"})

	assertRedirect(t, b.post("/cook/orders/ord-1/ready", nil), "/login")
	token, _ := b.store().Token(context.Background())
	assert.Empty(t, token)
}

func TestLogoutKeepsCart(t *testing.T) {
	b := newBrowser(t)
	b.loginAs(auth.RoleStudent)
	b.addToCart("item-1", "Плов", 900)

	assertRedirect(t, b.post("/logout", nil), "/login")

	ctx := context.Background()
	token, _ := b.store().Token(ctx)
	assert.Empty(t, token)
	cart, _ := b.store().Cart(ctx)
	assert.Len(t, cart, 1)
}

func TestCSRFIsRequired(t *testing.T) {
	b := newBrowser(t)
	b.loginAs(auth.RoleStudent)
	b.addToCart("item-1", "Плов", 900)

	w := b.do(http.MethodPost, "/cart/remove", url.Values{"id": {"item-1"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = b.do(http.MethodPost, "/cart/remove", url.Values{"id": {"item-1"}, session.CSRFField: {"forged"}})
	assert.Equal(t, http.StatusForbidden, w.Code)

	cart, _ := b.store().Cart(context.Background())
	assert.Len(t, cart, 1)
}

func TestLanguageSwitch(t *testing.T) {
	b := newBrowser(t)

	assertRedirect(t, b.post("/lang", url.Values{"lang": {"en"}, "next": {"/login"}}), "/login")
	lang, _ := b.store().Lang(context.Background())
	assert.Equal(t, "en", lang)
	assert.Contains(t, b.get("/login").Body.String(), "Sign in")

	assertRedirect(t, b.post("/lang", url.Values{"lang": {"xx"}, "next": {"//evil.example"}}), "/")
	lang, _ = b.store().Lang(context.Background())
	assert.Equal(t, i18n.DefaultLang, lang)
}

func TestHandlerDefaultsLocation(t *testing.T) {
	h, err := NewHandler(api.New("http://backend/api", time.Second), i18n.MustLoad(i18n.DefaultLang), Config{})
	require.NoError(t, err)
	assert.Equal(t, "loc-1", h.locationID)
	assert.Equal(t, "loc-1", h.menuQuery(monday).LocationID)
}

func TestLocalPath(t *testing.T) {
	assert.Equal(t, "/menu?date=2025-03-04", localPath("/menu?date=2025-03-04"))
	assert.Equal(t, "/", localPath("https://evil.example"))
	assert.Equal(t, "/", localPath("//evil.example"))
	assert.Equal(t, "/", localPath(`/\evil.example`))
	assert.Equal(t, "/", localPath(""))
}

func TestDateTime(t *testing.T) {
	p := &Page{}
	assert.Equal(t, "03.03.2025 12:00", p.DateTime("2025-03-03T12:00:00"))
	assert.Equal(t, "03.03.2025 12:00", p.DateTime("2025-03-03T12:00:00.123456"))
	assert.Equal(t, "soon", p.DateTime("soon"))
}

func TestShortIDAndOrderLines(t *testing.T) {
	assert.Equal(t, "89abcdef", shortID("0123456789abcdef"))
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "Плов x2, Чай x1", orderLines([]api.OrderLine{{Name: "Плов", Qty: 2}, {Name: "Чай", Qty: 1}}))
}
