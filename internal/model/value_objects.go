package model

import (
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// ID はエンティティの識別子を表す値オブジェクト。
// 構築後は不変で、値による等価比較を行う。
type ID string

// NewID は既存の識別子文字列からIDを構築する。
// 空白のみの値はlabelをフィールド名とした必須エラーになる。
func NewID(value, label string) (ID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewRequiredFieldError(label)
	}
	return ID(trimmed), nil
}

// MintID は新規エンティティ用のIDを採番する。
func MintID() ID {
	return ID(uuid.NewString())
}

// String はID文字列を返す。
func (i ID) String() string {
	return string(i)
}

// IsZero はIDが未設定かどうかを返す。
func (i ID) IsZero() bool {
	return i == ""
}

// Name は名称を表す値オブジェクト。前後の空白を除去した非空文字列。
type Name string

// NewName は名称を検証して構築する。labelはエラーメッセージに表示するフィールド名。
func NewName(value, label string) (Name, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewRequiredFieldError(label)
	}
	return Name(trimmed), nil
}

// String は名称文字列を返す。
func (n Name) String() string {
	return string(n)
}

// Email はメールアドレスを表す値オブジェクト。
type Email string

// NewEmail はメールアドレスを検証して構築する。
func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", NewRequiredFieldError("メールアドレス")
	}
	if len(trimmed) > 254 {
		return "", NewFormatError("メールアドレス", "254文字を超えています")
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", NewFormatError("メールアドレス", trimmed)
	}
	return Email(trimmed), nil
}

// String はメールアドレス文字列を返す。
func (e Email) String() string {
	return string(e)
}

// DeviationScore は偏差値を表す値オブジェクト。0以上100以下に制約される。
type DeviationScore float64

const (
	deviationScoreMin = 0
	deviationScoreMax = 100
)

// NewDeviationScore は偏差値を検証して構築する。
func NewDeviationScore(value float64) (DeviationScore, error) {
	if value < deviationScoreMin || value > deviationScoreMax {
		return 0, NewRangeError("偏差値", value, deviationScoreMin, deviationScoreMax)
	}
	return DeviationScore(value), nil
}

// Float64 は偏差値を返す。
func (d DeviationScore) Float64() float64 {
	return float64(d)
}
