package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// TestRouterIntegration_ProtectedRoute_WithMiddlewareChain は
// Operator -> RateLimit のミドルウェアチェーンがchi.Routerで正しく動作することを検証する。
func TestRouterIntegration_ProtectedRoute_WithMiddlewareChain(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     100,
		GeneralBurst:    200,
		BulkRate:        1,
		BulkBurst:       1,
		CleanupInterval: 1 * time.Minute,
	})
	defer rl.Stop()

	r := chi.NewRouter()

	// ヘルスチェックエンドポイント（操作ユーザーID不要）
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// 操作ユーザーIDが必要なルートグループ
	r.Group(func(r chi.Router) {
		r.Use(NewOperatorMiddleware())
		r.Use(rl.GeneralMiddleware())

		r.Get("/api/protected", func(w http.ResponseWriter, r *http.Request) {
			operatorID, _ := OperatorIDFromContext(r.Context())
			json.NewEncoder(w).Encode(map[string]string{"operator_id": operatorID})
		})

		r.With(rl.BulkMiddleware()).Post("/api/bulk", func(w http.ResponseWriter, r *http.Request) {
			operatorID, _ := OperatorIDFromContext(r.Context())
			json.NewEncoder(w).Encode(map[string]string{"operator_id": operatorID, "action": "done"})
		})
	})

	// テスト1: GET /api/protected はヘッダーありで通る
	t.Run("GET_protected_with_operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		req.Header.Set("X-Operator-Id", "operator-router-test")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
		}

		var body map[string]string
		json.NewDecoder(w.Result().Body).Decode(&body)
		if body["operator_id"] != "operator-router-test" {
			t.Errorf("operator_id = %q, want %q", body["operator_id"], "operator-router-test")
		}
	})

	// テスト2: GET /api/protected はヘッダーなしで400
	t.Run("GET_protected_no_operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
		}
	})

	// テスト3: POST /api/bulk はヘッダーありで通る
	t.Run("POST_bulk_with_operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bulk", nil)
		req.Header.Set("X-Operator-Id", "operator-bulk-router")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
		}
	})

	// テスト4: POST /api/bulk はバルク専用レート制限を消費し尽くすと429
	t.Run("POST_bulk_rate_limited", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bulk", nil)
		req.Header.Set("X-Operator-Id", "operator-bulk-router")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusTooManyRequests {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusTooManyRequests)
		}
	})

	// テスト5: POST /api/bulk はヘッダーなしで400（レート制限の前に操作ユーザーチェック）
	t.Run("POST_bulk_no_operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/bulk", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusBadRequest)
		}
	})

	// テスト6: ヘルスチェックエンドポイントは操作ユーザーID不要
	t.Run("health_endpoint_no_operator", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Result().StatusCode != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
		}
	})
}
