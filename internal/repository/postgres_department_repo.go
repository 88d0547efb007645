package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresDepartmentRepo はPostgreSQLを使用した部署リポジトリ。
type PostgresDepartmentRepo struct {
	db DBTX
}

// NewPostgresDepartmentRepo はPostgresDepartmentRepoを生成する。
func NewPostgresDepartmentRepo(db DBTX) *PostgresDepartmentRepo {
	return &PostgresDepartmentRepo{db: db}
}

// FindByID は指定IDの部署を取得する。見つからない場合はnilを返す。
func (r *PostgresDepartmentRepo) FindByID(ctx context.Context, id string) (*model.Department, error) {
	var (
		deptID, name, createdBy, updatedBy string
		createdAt, updatedAt               time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, created_by, updated_at, updated_by
		 FROM departments WHERE id = $1`,
		id,
	).Scan(&deptID, &name, &createdAt, &createdBy, &updatedAt, &updatedBy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("部署の取得に失敗しました: %w", err)
	}
	return model.RestoreDepartment(deptID, name, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// List は部署一覧を作成日時順で返す。
func (r *PostgresDepartmentRepo) List(ctx context.Context) ([]*model.Department, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, created_by, updated_at, updated_by
		 FROM departments ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("部署一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var departments []*model.Department
	for rows.Next() {
		var (
			id, name, createdBy, updatedBy string
			createdAt, updatedAt           time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("部署行の読み取りに失敗しました: %w", err)
		}
		department, err := model.RestoreDepartment(id, name, model.AuditStamp{
			CreatedAt: createdAt, CreatedBy: createdBy,
			UpdatedAt: updatedAt, UpdatedBy: updatedBy,
		})
		if err != nil {
			return nil, err
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("部署一覧の読み取りに失敗しました: %w", err)
	}
	return departments, nil
}

// Create は部署を作成する。
func (r *PostgresDepartmentRepo) Create(ctx context.Context, department *model.Department) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (id, name, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		department.ID().String(), department.Name().String(),
		department.CreatedAt(), department.CreatedBy().String(),
		department.UpdatedAt(), department.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("部署", "この部署名は既に登録されています。")
		}
		return fmt.Errorf("部署の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は部署を更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresDepartmentRepo) Update(ctx context.Context, department *model.Department) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE departments SET name = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		department.ID().String(), department.Name().String(),
		department.UpdatedAt(), department.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("部署", "この部署名は既に登録されています。")
		}
		return fmt.Errorf("部署の更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "部署", department.ID().String())
}

// Delete は指定IDの部署を削除する。
// 所属ユーザーが存在する場合は依存競合エラーを返す。
func (r *PostgresDepartmentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewDependentExistsError("部署", "所属ユーザーが存在するため削除できません。")
		}
		return fmt.Errorf("部署の削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "部署", id)
}

// compile-time interface check
var _ DepartmentRepository = (*PostgresDepartmentRepo)(nil)
