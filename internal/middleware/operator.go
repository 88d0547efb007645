// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
)

// operatorIDHeader は操作ユーザーIDを運ぶリクエストヘッダー名。
const operatorIDHeader = "X-Operator-Id"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// operatorIDContextKey はリクエストコンテキストに操作ユーザーIDを格納するためのキー。
var operatorIDContextKey = contextKey("operator_id")

// NewOperatorMiddleware はX-Operator-Idヘッダーから操作ユーザーIDを読み取り、
// リクエストコンテキストに注入するミドルウェアを返す。
// ヘッダーが空のリクエストには400 Bad Requestを返す。
func NewOperatorMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			operatorID := r.Header.Get(operatorIDHeader)
			if operatorID == "" {
				WriteErrorResponse(w, http.StatusBadRequest,
					"OPERATOR_REQUIRED", "操作ユーザーIDが指定されていません。")
				return
			}

			ctx := context.WithValue(r.Context(), operatorIDContextKey, operatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithOperatorID はコンテキストに操作ユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDContextKey, operatorID)
}

// OperatorIDFromContext はリクエストコンテキストから操作ユーザーIDを取得する。
// NewOperatorMiddlewareによって注入された値を返す。
func OperatorIDFromContext(ctx context.Context) (string, error) {
	operatorID, ok := ctx.Value(operatorIDContextKey).(string)
	if !ok || operatorID == "" {
		return "", fmt.Errorf("操作ユーザーIDがコンテキストに存在しません")
	}
	return operatorID, nil
}
