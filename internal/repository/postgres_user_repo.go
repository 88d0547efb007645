package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresUserRepo はPostgreSQLを使用したユーザーリポジトリ。
type PostgresUserRepo struct {
	db DBTX
}

// NewPostgresUserRepo はPostgresUserRepoを生成する。
func NewPostgresUserRepo(db DBTX) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, role, first_name, last_name, gender, department_id,
		        created_at, created_by, updated_at, updated_by
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

// List はユーザー一覧を作成日時順で返す。
func (r *PostgresUserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, role, first_name, last_name, gender, department_id,
		        created_at, created_by, updated_at, updated_by
		 FROM users ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var (
			id, email, role, firstName, lastName, departmentID, createdBy, updatedBy string
			gender                                                                   sql.NullString
			createdAt, updatedAt                                                     time.Time
		)
		if err := rows.Scan(&id, &email, &role, &firstName, &lastName, &gender, &departmentID,
			&createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("ユーザー行の読み取りに失敗しました: %w", err)
		}
		user, err := model.RestoreUser(id, email, role, firstName, lastName, gender.String, departmentID, model.AuditStamp{
			CreatedAt: createdAt, CreatedBy: createdBy,
			UpdatedAt: updatedAt, UpdatedBy: updatedBy,
		})
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ユーザー一覧の読み取りに失敗しました: %w", err)
	}
	return users, nil
}

// Create はユーザーを作成する。
// メールアドレスが既に存在する場合は重複競合エラー、
// 部署が存在しない場合はNotFoundErrorを返す。
func (r *PostgresUserRepo) Create(ctx context.Context, user *model.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, role, first_name, last_name, gender, department_id,
		                    created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		user.ID().String(), user.Email().String(), user.Role().String(),
		user.FirstName().String(), user.LastName().String(), nullableGender(user.Gender()),
		user.DepartmentID().String(),
		user.CreatedAt(), user.CreatedBy().String(),
		user.UpdatedAt(), user.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("ユーザー", "このメールアドレスは既に登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("部署", user.DepartmentID().String())
		}
		return fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はユーザーを更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresUserRepo) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $2, role = $3, first_name = $4, last_name = $5,
		        gender = $6, department_id = $7, updated_at = $8, updated_by = $9
		 WHERE id = $1`,
		user.ID().String(), user.Email().String(), user.Role().String(),
		user.FirstName().String(), user.LastName().String(), nullableGender(user.Gender()),
		user.DepartmentID().String(),
		user.UpdatedAt(), user.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("ユーザー", "このメールアドレスは既に登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("部署", user.DepartmentID().String())
		}
		return fmt.Errorf("ユーザーの更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "ユーザー", user.ID().String())
}

// Delete は指定IDのユーザーを削除する。
func (r *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewDependentExistsError("ユーザー", "このユーザーを参照するデータが存在するため削除できません。")
		}
		return fmt.Errorf("ユーザーの削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "ユーザー", id)
}

// nullableGender は未設定の性別をNULLとして保存するための変換を行う。
func nullableGender(g model.Gender) sql.NullString {
	if g == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: g.String(), Valid: true}
}

// scanUser は1行のスキャン結果からユーザーエンティティを復元する。
func scanUser(row *sql.Row) (*model.User, error) {
	var (
		id, email, role, firstName, lastName, departmentID, createdBy, updatedBy string
		gender                                                                   sql.NullString
		createdAt, updatedAt                                                     time.Time
	)
	err := row.Scan(&id, &email, &role, &firstName, &lastName, &gender, &departmentID,
		&createdAt, &createdBy, &updatedAt, &updatedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	return model.RestoreUser(id, email, role, firstName, lastName, gender.String, departmentID, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// compile-time interface check
var _ UserRepository = (*PostgresUserRepo)(nil)
