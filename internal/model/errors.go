// Package model はドメインモデル（値オブジェクト・エンティティ・エラー型）を定義する。
package model

import (
	"errors"
	"fmt"
)

// RequiredFieldError は必須フィールドが空の場合のエラーを表す。
type RequiredFieldError struct {
	Field string // エラーメッセージに表示するフィールド名
}

// Error はerrorインターフェースを実装する。
func (e *RequiredFieldError) Error() string {
	return fmt.Sprintf("%sは必須です。", e.Field)
}

// NewRequiredFieldError は必須フィールドエラーを生成する。
func NewRequiredFieldError(field string) *RequiredFieldError {
	return &RequiredFieldError{Field: field}
}

// FormatError はフィールドの形式が不正な場合のエラーを表す。
type FormatError struct {
	Field  string // フィールド名
	Reason string // 形式不正の理由
}

// Error はerrorインターフェースを実装する。
func (e *FormatError) Error() string {
	return fmt.Sprintf("%sの形式が正しくありません: %s", e.Field, e.Reason)
}

// NewFormatError は形式エラーを生成する。
func NewFormatError(field, reason string) *FormatError {
	return &FormatError{Field: field, Reason: reason}
}

// RangeError は数値が許容範囲外の場合のエラーを表す。
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

// Error はerrorインターフェースを実装する。
func (e *RangeError) Error() string {
	return fmt.Sprintf("%sは%g以上%g以下で指定してください: %g", e.Field, e.Min, e.Max, e.Value)
}

// NewRangeError は範囲外エラーを生成する。
func NewRangeError(field string, value, min, max float64) *RangeError {
	return &RangeError{Field: field, Value: value, Min: min, Max: max}
}

// NotFoundError は対象リソースが存在しない場合のエラーを表す。
type NotFoundError struct {
	Resource string // リソース名（例: 大学、学部）
	ID       string // 検索に使用した識別子
}

// Error はerrorインターフェースを実装する。
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%sが見つかりません: %s", e.Resource, e.ID)
}

// NewNotFoundError は未検出エラーを生成する。
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictKind は競合エラーの種別を表す。
// 重複起因の競合のみがバルク処理でのリカバリ対象となるため、
// メッセージ文字列ではなく種別で判定できるようにする。
type ConflictKind int

const (
	// ConflictDuplicate は一意制約違反（同一キーの行が既に存在する）を示す。
	ConflictDuplicate ConflictKind = iota + 1
	// ConflictDependent は参照している行が存在するため操作できないことを示す。
	ConflictDependent
)

// ConflictError はストレージの競合に起因するエラーを表す。
type ConflictError struct {
	Kind     ConflictKind
	Resource string
	Message  string // ユーザー向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ConflictError) Error() string {
	return e.Message
}

// NewDuplicateError は一意制約違反の競合エラーを生成する。
func NewDuplicateError(resource, message string) *ConflictError {
	return &ConflictError{Kind: ConflictDuplicate, Resource: resource, Message: message}
}

// NewDependentExistsError は依存行が存在するための競合エラーを生成する。
func NewDependentExistsError(resource, message string) *ConflictError {
	return &ConflictError{Kind: ConflictDependent, Resource: resource, Message: message}
}

// IsDuplicateConflict はerrが重複起因の競合エラーかどうかを判定する。
// バルク処理のリカバリ分岐はこの関数のみで判定する。
func IsDuplicateConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr) && conflictErr.Kind == ConflictDuplicate
}

// BadRequestError は入力内容が業務ルール上受け付けられない場合のエラーを表す。
type BadRequestError struct {
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *BadRequestError) Error() string {
	return e.Message
}

// NewBadRequestError は不正リクエストエラーを生成する。
func NewBadRequestError(message string) *BadRequestError {
	return &BadRequestError{Message: message}
}
