// Package repository はデータ永続化のインターフェースとPostgreSQL実装を提供する。
//
// 各実装はストレージ固有の競合を型付きドメインエラーに変換する:
//   - 一意制約違反 → model.ConflictError (Kind=ConflictDuplicate)
//   - 削除時の外部キー違反 → model.ConflictError (Kind=ConflictDependent)
//   - 作成・更新時の外部キー違反（親が存在しない） → model.NotFoundError
//   - 更新・削除対象が存在しない → model.NotFoundError
//
// 上記以外のエラーは型を変えずにそのまま呼び出し元へ伝播させる。
package repository

import (
	"context"
	"database/sql"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// DBTX は*sql.DBと*sql.Txの両方が満たすクエリ実行インターフェース。
// リポジトリをトランザクション内外どちらでも利用できるようにする。
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// UniversityRepository は大学の永続化インターフェース。
type UniversityRepository interface {
	// FindByID は指定IDの大学を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.University, error)
	// FindByName は大学名で大学を検索する。見つからない場合はnilを返す。
	// バルク作成時の重複競合リカバリで使用する。
	FindByName(ctx context.Context, name string) (*model.University, error)
	// List は大学一覧を作成日時順で返す。
	List(ctx context.Context) ([]*model.University, error)
	// Create は大学を作成する。
	Create(ctx context.Context, university *model.University) error
	// Update は大学を更新する。
	Update(ctx context.Context, university *model.University) error
	// Delete は指定IDの大学を削除する。
	Delete(ctx context.Context, id string) error
}

// UniversityRankRepository は大学ランクの永続化インターフェース。
type UniversityRankRepository interface {
	// FindByUniversityID は大学IDでランクを検索する。見つからない場合はnilを返す。
	FindByUniversityID(ctx context.Context, universityID string) (*model.UniversityRank, error)
	// Create はランクを作成する。
	Create(ctx context.Context, rank *model.UniversityRank) error
	// Update はランクを更新する。
	Update(ctx context.Context, rank *model.UniversityRank) error
	// DeleteByUniversityID は大学IDに紐づくランクを削除する。
	// 存在しない場合は何もしない（単一レコード更新パスのランク省略時削除で使用する）。
	DeleteByUniversityID(ctx context.Context, universityID string) error
}

// FacultyRepository は学部の永続化インターフェース。
type FacultyRepository interface {
	// FindByID は指定IDの学部を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Faculty, error)
	// FindByUniversityAndName は(大学ID, 学部名)で学部を検索する。見つからない場合はnilを返す。
	// バルク作成時の重複競合リカバリで使用する。
	FindByUniversityAndName(ctx context.Context, universityID, name string) (*model.Faculty, error)
	// ListByUniversityID は大学に属する学部一覧を作成日時順で返す。
	ListByUniversityID(ctx context.Context, universityID string) ([]*model.Faculty, error)
	// Create は学部を作成する。
	Create(ctx context.Context, faculty *model.Faculty) error
	// Update は学部を更新する。
	Update(ctx context.Context, faculty *model.Faculty) error
	// Delete は指定IDの学部を削除する。
	Delete(ctx context.Context, id string) error
}

// DeviationValueRepository は偏差値の永続化インターフェース。
type DeviationValueRepository interface {
	// FindByFacultyID は学部IDで偏差値を検索する。見つからない場合はnilを返す。
	FindByFacultyID(ctx context.Context, facultyID string) (*model.DeviationValue, error)
	// Create は偏差値を作成する。
	Create(ctx context.Context, value *model.DeviationValue) error
	// Update は偏差値を更新する。
	Update(ctx context.Context, value *model.DeviationValue) error
	// Delete は指定IDの偏差値を削除する。
	Delete(ctx context.Context, id string) error
}

// InterviewerRepository は面接官の永続化インターフェース。
type InterviewerRepository interface {
	// FindByUserID は主キーであるユーザーIDで面接官を取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Interviewer, error)
	// List は面接官一覧を作成日時順で返す。
	List(ctx context.Context) ([]*model.Interviewer, error)
	// Create は面接官を作成する。
	Create(ctx context.Context, interviewer *model.Interviewer) error
	// Update は面接官を更新する。
	Update(ctx context.Context, interviewer *model.Interviewer) error
	// Delete は指定ユーザーIDの面接官を削除する。
	Delete(ctx context.Context, userID string) error
}

// UserRepository はユーザーの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
	// List はユーザー一覧を作成日時順で返す。
	List(ctx context.Context) ([]*model.User, error)
	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
	// Update はユーザーを更新する。
	Update(ctx context.Context, user *model.User) error
	// Delete は指定IDのユーザーを削除する。
	Delete(ctx context.Context, id string) error
}

// DepartmentRepository は部署の永続化インターフェース。
type DepartmentRepository interface {
	// FindByID は指定IDの部署を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Department, error)
	// List は部署一覧を作成日時順で返す。
	List(ctx context.Context) ([]*model.Department, error)
	// Create は部署を作成する。
	Create(ctx context.Context, department *model.Department) error
	// Update は部署を更新する。
	Update(ctx context.Context, department *model.Department) error
	// Delete は指定IDの部署を削除する。
	// 所属ユーザーが存在する場合はConflictError(Kind=ConflictDependent)を返す。
	Delete(ctx context.Context, id string) error
}

// EventRepository は採用イベントの永続化インターフェース。
type EventRepository interface {
	// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Event, error)
	// List はイベント一覧を開催日時順で返す。
	List(ctx context.Context) ([]*model.Event, error)
	// Create はイベントを作成する。
	Create(ctx context.Context, event *model.Event) error
	// Update はイベントを更新する。
	Update(ctx context.Context, event *model.Event) error
	// Delete は指定IDのイベントを削除する。
	Delete(ctx context.Context, id string) error
}

// TxRepos はトランザクション内で利用できるリポジトリの束。
// バルクオーケストレーションのall-or-nothingパスに渡される。
type TxRepos struct {
	Universities    UniversityRepository
	UniversityRanks UniversityRankRepository
	Faculties       FacultyRepository
	DeviationValues DeviationValueRepository
	Interviewers    InterviewerRepository
}

// TxManager は複数リポジトリ操作を1つのトランザクションで実行する。
// fnがエラーを返した場合は全操作をロールバックする。
type TxManager interface {
	WithinTx(ctx context.Context, fn func(repos TxRepos) error) error
}
