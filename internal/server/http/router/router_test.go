package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/subediaakash/zomato-mcp/internal/app"
	"github.com/subediaakash/zomato-mcp/internal/chat"
	"github.com/subediaakash/zomato-mcp/internal/config"
	"github.com/subediaakash/zomato-mcp/internal/domain/model"
	pkgAuth "github.com/subediaakash/zomato-mcp/internal/pkg/auth"
	"github.com/subediaakash/zomato-mcp/internal/server/http/dto"
	"github.com/subediaakash/zomato-mcp/internal/server/http/handlers"
	testhelpers "github.com/subediaakash/zomato-mcp/internal/test"
	"github.com/subediaakash/zomato-mcp/internal/usecase"
)

type echoAssistant struct{}

func (echoAssistant) Reply(_ context.Context, userID string, history []chat.Message) (chat.Turn, error) {
	return chat.Turn{Reply: userID + ": " + history[len(history)-1].Content, Rounds: 1}, nil
}

type testServer struct {
	engine *gin.Engine
	health *testhelpers.HealthCheckerStub
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	products := &testhelpers.ProductRepositoryStub{Products: []model.Product{
		{ID: "p1", Name: "Margherita Pizza", Category: model.CategoryVeg, Price: decimal.RequireFromString("299.00")},
		{ID: "p2", Name: "Chicken Biryani", Category: model.CategoryNonVeg, Price: decimal.RequireFromString("399.00")},
	}}
	orders := &testhelpers.OrderRepositoryStub{}
	catalog := usecase.NewCatalogUseCase(products)
	orderUC := usecase.NewOrderUseCase(orders, catalog, logger)
	tokens := testhelpers.StrategyStub{ParseFn: func(token string) (string, error) {
		if !strings.HasPrefix(token, "t-") {
			return "", pkgAuth.ErrInvalidToken
		}
		return strings.TrimPrefix(token, "t-"), nil
	}}
	health := &testhelpers.HealthCheckerStub{}

	facade := app.NewFoodOrderFacade(tokens, catalog, orderUC, echoAssistant{}, health)
	engine := Setup(facade, &config.Config{}, logger)
	gin.SetMode(gin.TestMode)
	return testServer{engine: engine, health: health}
}

func (s testServer) do(t *testing.T, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer t-"+user)
	}
	resp := httptest.NewRecorder()
	s.engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupRequiresAuthentication(t *testing.T) {
	srv := newTestServer(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/orders"},
		{http.MethodPatch, "/api/orders/o1"},
		{http.MethodDelete, "/api/orders/o1"},
		{http.MethodPost, "/api/chat"},
	} {
		if resp := srv.do(t, route.method, route.path, "", nil); resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer forged")
	resp := httptest.NewRecorder()
	srv.engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.Code)
	}
}

func TestSetupOrderLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodGet, "/api/products", "u1", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for products, got %d", resp.Code)
	}

	resp = srv.do(t, http.MethodPost, "/api/orders", "u1", map[string]any{
		"items": []map[string]any{{"productName": "margherita pizza", "quantity": 2}},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created order: %v", err)
	}
	if created.Status != "PENDING" || created.Total != 598 || len(created.Items) != 1 {
		t.Fatalf("unexpected created order: %+v", created)
	}

	resp = srv.do(t, http.MethodPost, "/api/orders", "u1", map[string]any{
		"items": []map[string]any{{"productName": "Sushi"}, {"productName": "sushi"}},
	})
	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), "Missing products: Sushi") {
		t.Fatalf("expected 404 missing products, got %d %s", resp.Code, resp.Body.String())
	}

	resp = srv.do(t, http.MethodGet, "/api/orders/recent?amount=1&unit=days", "u1", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"itemCount":1`) {
		t.Fatalf("expected recent order listing, got %d %s", resp.Code, resp.Body.String())
	}

	orderPath := "/api/orders/" + created.ID
	if resp = srv.do(t, http.MethodGet, orderPath, "u2", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign user, got %d", resp.Code)
	}
	if resp = srv.do(t, http.MethodPatch, orderPath, "u2", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when foreign user cancels, got %d", resp.Code)
	}

	for i := 0; i < 2; i++ {
		resp = srv.do(t, http.MethodPatch, orderPath, "u1", nil)
		if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"status":"CANCELLED"`) || !strings.Contains(resp.Body.String(), `"total":598`) {
			t.Fatalf("cancel #%d: expected cancelled order, got %d %s", i+1, resp.Code, resp.Body.String())
		}
	}

	resp = srv.do(t, http.MethodDelete, orderPath, "u1", nil)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"success":true`) || !strings.Contains(resp.Body.String(), `"total":598`) {
		t.Fatalf("expected delete success, got %d %s", resp.Code, resp.Body.String())
	}
	if resp = srv.do(t, http.MethodGet, orderPath, "u1", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected deleted order to be gone, got %d", resp.Code)
	}
	if resp = srv.do(t, http.MethodDelete, orderPath, "u1", nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected second delete to 404, got %d", resp.Code)
	}
}

func TestSetupChatAndHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := srv.do(t, http.MethodPost, "/api/chat", "u9", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "what did I order?"}},
	})
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), `"reply":"u9: what did I order?"`) {
		t.Fatalf("unexpected chat response: %d %s", resp.Code, resp.Body.String())
	}

	if resp = srv.do(t, http.MethodGet, "/healthz", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("expected healthy service, got %d", resp.Code)
	}
	if srv.health.Calls() != 1 {
		t.Fatalf("expected one health probe, got %d", srv.health.Calls())
	}
}

var _ handlers.FoodOrderFacade = (*app.FoodOrderFacade)(nil)
