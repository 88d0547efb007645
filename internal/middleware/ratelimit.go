package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig はレート制限の設定を保持する。
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // API全般のレート（req/sec）。120/60 = 2 req/sec
	GeneralBurst    int           // API全般のバーストサイズ
	BulkRate        rate.Limit    // バルク作成のレート（req/sec）。10/60
	BulkBurst       int           // バルク作成のバーストサイズ
	CleanupInterval time.Duration // 期限切れエントリのクリーンアップ間隔
}

// DefaultRateLimiterConfig はデフォルトのレート制限設定を返す。
// 要件: API全般 120 req/min/operator、バルク作成 10 req/min/operator
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0), // 2 req/sec
		GeneralBurst:    120,
		BulkRate:        rate.Limit(10.0 / 60.0), // ~0.167 req/sec
		BulkBurst:       10,
		CleanupInterval: 5 * time.Minute,
	}
}

// operatorLimiter は操作ユーザーごとのレートリミッターとアクセス時刻を保持する。
type operatorLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter は操作ユーザーごとのレート制限を管理する。
// API全般のレート制限とバルク作成のレート制限の2種類を提供する。
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*operatorLimiter

	bulkMu       sync.RWMutex
	bulkLimiters map[string]*operatorLimiter

	stopCh chan struct{}
}

// NewRateLimiter は新しいRateLimiterを生成する。
// バックグラウンドで期限切れエントリのクリーンアップを開始する。
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:          config,
		generalLimiters: make(map[string]*operatorLimiter),
		bulkLimiters:    make(map[string]*operatorLimiter),
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop はクリーンアップのバックグラウンドゴルーチンを停止する。
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware はAPI全般のレート制限ミドルウェアを返す。
// リクエストコンテキストに操作ユーザーIDが含まれている必要がある
// （OperatorMiddlewareの後に配置）。
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID, err := OperatorIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusBadRequest,
					"OPERATOR_REQUIRED", "操作ユーザーIDが指定されていません。")
				return
			}

			limiter := rl.getOrCreateGeneralLimiter(operatorID)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("operator_id", operatorID),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BulkMiddleware はバルク作成専用のレート制限ミドルウェアを返す。
// API全般のレート制限とは独立に動作する。
func (rl *RateLimiter) BulkMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID, err := OperatorIDFromContext(r.Context())
			if err != nil {
				WriteErrorResponse(w, http.StatusBadRequest,
					"OPERATOR_REQUIRED", "操作ユーザーIDが指定されていません。")
				return
			}

			limiter := rl.getOrCreateBulkLimiter(operatorID)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.BulkRate)
				slog.Warn("rate limit exceeded",
					slog.String("operator_id", operatorID),
					slog.String("limit_type", "bulk"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount は現在管理されているAPI全般リミッターのエントリ数を返す。
// テストおよびメトリクス用。
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// BulkLimiterCount は現在管理されているバルク作成リミッターのエントリ数を返す。
// テストおよびメトリクス用。
func (rl *RateLimiter) BulkLimiterCount() int {
	rl.bulkMu.RLock()
	defer rl.bulkMu.RUnlock()
	return len(rl.bulkLimiters)
}

// getOrCreateGeneralLimiter は操作ユーザーのAPI全般リミッターを取得または作成する。
func (rl *RateLimiter) getOrCreateGeneralLimiter(operatorID string) *rate.Limiter {
	rl.generalMu.RLock()
	ol, exists := rl.generalLimiters[operatorID]
	rl.generalMu.RUnlock()

	if exists {
		rl.generalMu.Lock()
		ol.lastAccess = time.Now()
		rl.generalMu.Unlock()
		return ol.limiter
	}

	rl.generalMu.Lock()
	defer rl.generalMu.Unlock()

	// ダブルチェック
	if ol, exists := rl.generalLimiters[operatorID]; exists {
		ol.lastAccess = time.Now()
		return ol.limiter
	}

	limiter := rate.NewLimiter(rl.config.GeneralRate, rl.config.GeneralBurst)
	rl.generalLimiters[operatorID] = &operatorLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// getOrCreateBulkLimiter は操作ユーザーのバルク作成リミッターを取得または作成する。
func (rl *RateLimiter) getOrCreateBulkLimiter(operatorID string) *rate.Limiter {
	rl.bulkMu.RLock()
	ol, exists := rl.bulkLimiters[operatorID]
	rl.bulkMu.RUnlock()

	if exists {
		rl.bulkMu.Lock()
		ol.lastAccess = time.Now()
		rl.bulkMu.Unlock()
		return ol.limiter
	}

	rl.bulkMu.Lock()
	defer rl.bulkMu.Unlock()

	// ダブルチェック
	if ol, exists := rl.bulkLimiters[operatorID]; exists {
		ol.lastAccess = time.Now()
		return ol.limiter
	}

	limiter := rate.NewLimiter(rl.config.BulkRate, rl.config.BulkBurst)
	rl.bulkLimiters[operatorID] = &operatorLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop はバックグラウンドで期限切れエントリを定期的にクリーンアップする。
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup は最終アクセス時刻がCleanupIntervalの2倍を超えたエントリを削除する。
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2

	now := time.Now()

	rl.generalMu.Lock()
	for operatorID, ol := range rl.generalLimiters {
		if now.Sub(ol.lastAccess) > ttl {
			delete(rl.generalLimiters, operatorID)
		}
	}
	rl.generalMu.Unlock()

	rl.bulkMu.Lock()
	for operatorID, ol := range rl.bulkLimiters {
		if now.Sub(ol.lastAccess) > ttl {
			delete(rl.bulkLimiters, operatorID)
		}
	}
	rl.bulkMu.Unlock()
}

// writeRateLimitResponse は429 Too Many Requestsレスポンスを書き込む。
// Retry-Afterヘッダーにはトークンが補充されるまでの推定秒数を設定する。
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	// Retry-Afterの算出: 1トークンが補充されるまでの秒数
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":    "RATE_LIMIT_EXCEEDED",
		"message": "リクエストが多すぎます。しばらく待ってから再度お試しください。",
	})
}
