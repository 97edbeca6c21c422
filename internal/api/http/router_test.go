package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-roster/internal/api/http/handlers"
	"github.com/spec-kit/staff-roster/internal/auth"
	"github.com/spec-kit/staff-roster/internal/config"
	"github.com/spec-kit/staff-roster/internal/events"
	"github.com/spec-kit/staff-roster/internal/observability"
	"github.com/spec-kit/staff-roster/internal/roster"
	"github.com/spec-kit/staff-roster/internal/service"
	"github.com/spec-kit/staff-roster/internal/store"
)

const (
	testOperatorEmail = "ops@example.com"
	testOperatorPass  = "op-pass"
	testAdminPass     = "admin-pass"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	opHash, err := auth.HashPassword(testOperatorPass, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		AdminPassword:         testAdminPass,
		OperatorEmail:         testOperatorEmail,
		OperatorPasswordHash:  opHash,
	}

	st := store.NewMemoryStore()
	manager := roster.NewManager(roster.Dependencies{
		Store:      st,
		Gate:       auth.NewAdminGate(authCfg),
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	})

	authService := service.NewAuthService(authCfg)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", "memory", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Roster:         handlers.NewRosterHandler(manager),
		Selections:     handlers.NewSelectionHandler(roster.NewSelectionRegistry()),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	payload := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, raw, err)
		}
	}
	return resp, payload
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, payload := doJSON(t, app, http.MethodPost, "/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":%q}`, testOperatorEmail, testOperatorPass), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d: %v", resp.StatusCode, payload)
	}
	token, _ := payload["data"].(map[string]any)["token"].(string)
	if token == "" {
		t.Fatalf("missing token: %v", payload)
	}
	return token
}

func data(t *testing.T, payload map[string]any) map[string]any {
	t.Helper()
	d, ok := payload["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", payload)
	}
	return d
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", "",
		fmt.Sprintf(`{"email":%q,"password":"nope"}`, testOperatorEmail), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRosterRequiresAuth(t *testing.T) {
	app := newTestApp(t)
	resp, _ := doJSON(t, app, http.MethodGet, "/roster/members", "", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMemberLifecycleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	// create
	resp, payload := doJSON(t, app, http.MethodPost, "/roster/members", token,
		`{"name":"Alice","code":"A1","email":"alice@example.com"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d: %v", resp.StatusCode, payload)
	}
	memberID, _ := data(t, payload)["id"].(string)
	if memberID == "" {
		t.Fatalf("missing member id: %v", payload)
	}

	// duplicate code conflicts
	resp, _ = doJSON(t, app, http.MethodPost, "/roster/members", token,
		`{"name":"Bob","code":"A1"}`, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	// edit merges fields
	resp, payload = doJSON(t, app, http.MethodPut, "/roster/members/"+memberID, token,
		`{"name":"Alicia","code":"A1","phone":"555"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status %d: %v", resp.StatusCode, payload)
	}
	if got := data(t, payload)["name"]; got != "Alicia" {
		t.Fatalf("name not updated: %v", got)
	}

	// used codes
	resp, payload = doJSON(t, app, http.MethodGet, "/roster/codes", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("codes status %d", resp.StatusCode)
	}
	codes, _ := payload["data"].([]any)
	if len(codes) != 1 || codes[0] != "A1" {
		t.Fatalf("unexpected codes: %v", codes)
	}

	// delete with wrong password, localized in French
	resp, payload = doJSON(t, app, http.MethodDelete, "/roster/members/"+memberID, token,
		`{"password":"wrong"}`, map[string]string{"Accept-Language": "fr-FR"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %v", resp.StatusCode, payload)
	}
	errObj, _ := payload["error"].(map[string]any)
	if errObj["code"] != "INVALID_ADMIN_PASSWORD" {
		t.Fatalf("unexpected error code: %v", errObj)
	}
	if msg, _ := errObj["message"].(string); !strings.Contains(msg, "mot de passe") {
		t.Fatalf("expected French message, got %q", msg)
	}

	// delete with the right password
	resp, _ = doJSON(t, app, http.MethodDelete, "/roster/members/"+memberID, token,
		fmt.Sprintf(`{"password":%q}`, testAdminPass), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", resp.StatusCode)
	}

	resp, payload = doJSON(t, app, http.MethodGet, "/roster/members", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status %d", resp.StatusCode)
	}
	if members, _ := payload["data"].([]any); len(members) != 0 {
		t.Fatalf("expected empty roster, got %v", members)
	}
}

func TestDiscountFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	_, payload := doJSON(t, app, http.MethodPost, "/roster/members", token,
		`{"name":"Alice","code":"A1"}`, nil)
	memberID := data(t, payload)["id"].(string)

	resp, payload := doJSON(t, app, http.MethodPost, "/roster/members/"+memberID+"/discounts", token,
		`{"amount":50,"reason":"promo"}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add discount status %d: %v", resp.StatusCode, payload)
	}
	discount := data(t, payload)
	if discount["status"] != "active" || discount["amount"].(float64) != 50 || discount["reason"] != "promo" {
		t.Fatalf("unexpected discount: %v", discount)
	}
	discountID := discount["id"].(string)

	resp, payload = doJSON(t, app, http.MethodPost,
		"/roster/members/"+memberID+"/discounts/"+discountID+"/cancel", token,
		`{"reason":"error"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cancel status %d: %v", resp.StatusCode, payload)
	}
	cancelled := data(t, payload)
	if cancelled["status"] != "cancelled" || cancelled["cancellation_reason"] != "error" {
		t.Fatalf("unexpected cancel result: %v", cancelled)
	}
	if cancelled["amount"].(float64) != 50 || cancelled["reason"] != "promo" {
		t.Fatalf("cancel touched unrelated fields: %v", cancelled)
	}

	// history shows the cancelled discount
	resp, payload = doJSON(t, app, http.MethodGet, "/roster/members/"+memberID+"/history", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status %d", resp.StatusCode)
	}
	history := data(t, payload)
	if discounts, _ := history["discounts"].([]any); len(discounts) != 1 {
		t.Fatalf("unexpected history: %v", history)
	}

	// clear history with the admin password
	resp, payload = doJSON(t, app, http.MethodPost, "/roster/members/"+memberID+"/history/clear", token,
		fmt.Sprintf(`{"password":%q}`, testAdminPass), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear status %d: %v", resp.StatusCode, payload)
	}
	clearedHistory := data(t, payload)
	if discounts, _ := clearedHistory["discounts"].([]any); len(discounts) != 0 {
		t.Fatalf("history not cleared: %v", clearedHistory)
	}
}

func TestCommissionToggleOverHTTP(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	_, payload := doJSON(t, app, http.MethodPost, "/roster/members", token,
		`{"name":"Alice","code":"A1"}`, nil)
	memberID := data(t, payload)["id"].(string)

	resp, payload := doJSON(t, app, http.MethodPost, "/roster/members/"+memberID+"/sales", token,
		`{"amount":120}`, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("record sale status %d: %v", resp.StatusCode, payload)
	}
	saleID := data(t, payload)["id"].(string)

	resp, payload = doJSON(t, app, http.MethodPost,
		"/roster/members/"+memberID+"/sales/"+saleID+"/commission", token,
		`{"paid":true}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("commission status %d: %v", resp.StatusCode, payload)
	}
	sale := data(t, payload)
	if sale["commission_paid"] != true {
		t.Fatalf("commission not marked: %v", sale)
	}
}

func TestSelectionEndpoints(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	resp, payload := doJSON(t, app, http.MethodPut, "/ui/selections/deleting", token,
		`{"member_id":"m1"}`, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open status %d: %v", resp.StatusCode, payload)
	}

	resp, payload = doJSON(t, app, http.MethodGet, "/ui/selections/deleting", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", resp.StatusCode)
	}
	if sel := data(t, payload); sel["member_id"] != "m1" {
		t.Fatalf("unexpected selection: %v", sel)
	}

	resp, _ = doJSON(t, app, http.MethodDelete, "/ui/selections/deleting", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("close status %d", resp.StatusCode)
	}

	resp, payload = doJSON(t, app, http.MethodGet, "/ui/selections/deleting", token, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get after close status %d", resp.StatusCode)
	}
	if payload["data"] != nil {
		t.Fatalf("selection survived close: %v", payload)
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/ui/selections/reticulating", token,
		`{"member_id":"m1"}`, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad kind, got %d", resp.StatusCode)
	}
}

func TestHealthLive(t *testing.T) {
	app := newTestApp(t)
	resp, payload := doJSON(t, app, http.MethodGet, "/health/live", "", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("live status %d", resp.StatusCode)
	}
	if payload["status"] != "alive" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
