// Package handler は管理APIのHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/saiyo-admin/internal/middleware"
	"github.com/hitoshi/saiyo-admin/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeInvalidBodyResponse はリクエストボディの解析失敗レスポンスを書き込む。
func writeInvalidBodyResponse(w http.ResponseWriter) {
	middleware.WriteErrorResponse(w, http.StatusBadRequest,
		"INVALID_REQUEST", "リクエストボディの解析に失敗しました。")
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
//
// 変換規則:
//   - RequiredFieldError / FormatError / RangeError / BadRequestError → 400
//   - NotFoundError → 404
//   - ConflictError → 400（重複・依存どちらもBadRequestとして返す）
//   - 上記以外 → 500（詳細はログのみに記録する）
func handleServiceError(w http.ResponseWriter, err error) {
	var requiredErr *model.RequiredFieldError
	if errors.As(err, &requiredErr) {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, "REQUIRED_FIELD", requiredErr.Error())
		return
	}

	var formatErr *model.FormatError
	if errors.As(err, &formatErr) {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, "INVALID_FORMAT", formatErr.Error())
		return
	}

	var rangeErr *model.RangeError
	if errors.As(err, &rangeErr) {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, "OUT_OF_RANGE", rangeErr.Error())
		return
	}

	var badRequestErr *model.BadRequestError
	if errors.As(err, &badRequestErr) {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, "BAD_REQUEST", badRequestErr.Error())
		return
	}

	var notFoundErr *model.NotFoundError
	if errors.As(err, &notFoundErr) {
		middleware.WriteErrorResponse(w, http.StatusNotFound, "NOT_FOUND", notFoundErr.Error())
		return
	}

	var conflictErr *model.ConflictError
	if errors.As(err, &conflictErr) {
		code := "CONFLICT"
		if conflictErr.Kind == model.ConflictDependent {
			code = "DEPENDENT_EXISTS"
		}
		middleware.WriteErrorResponse(w, http.StatusBadRequest, code, conflictErr.Error())
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// operatorID はリクエストコンテキストから操作ユーザーIDを取り出す。
// OperatorMiddlewareの後段で呼ばれる前提のため、欠落時は空文字列を返し
// サービス層の必須検証に委ねる。
func operatorID(r *http.Request) string {
	id, err := middleware.OperatorIDFromContext(r.Context())
	if err != nil {
		return ""
	}
	return id
}
