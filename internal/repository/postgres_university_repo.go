package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresUniversityRepo はPostgreSQLを使用した大学リポジトリ。
type PostgresUniversityRepo struct {
	db DBTX
}

// NewPostgresUniversityRepo はPostgresUniversityRepoを生成する。
func NewPostgresUniversityRepo(db DBTX) *PostgresUniversityRepo {
	return &PostgresUniversityRepo{db: db}
}

// FindByID は指定IDの大学を取得する。見つからない場合はnilを返す。
func (r *PostgresUniversityRepo) FindByID(ctx context.Context, id string) (*model.University, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, created_by, updated_at, updated_by
		 FROM universities WHERE id = $1`,
		id,
	)
	return scanUniversity(row)
}

// FindByName は大学名で大学を検索する。見つからない場合はnilを返す。
func (r *PostgresUniversityRepo) FindByName(ctx context.Context, name string) (*model.University, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, created_by, updated_at, updated_by
		 FROM universities WHERE name = $1`,
		name,
	)
	return scanUniversity(row)
}

// List は大学一覧を作成日時順で返す。
func (r *PostgresUniversityRepo) List(ctx context.Context) ([]*model.University, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at, created_by, updated_at, updated_by
		 FROM universities ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("大学一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var universities []*model.University
	for rows.Next() {
		var (
			id, name, createdBy, updatedBy string
			createdAt, updatedAt           time.Time
		)
		if err := rows.Scan(&id, &name, &createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("大学行の読み取りに失敗しました: %w", err)
		}
		university, err := model.RestoreUniversity(id, name, model.AuditStamp{
			CreatedAt: createdAt, CreatedBy: createdBy,
			UpdatedAt: updatedAt, UpdatedBy: updatedBy,
		})
		if err != nil {
			return nil, err
		}
		universities = append(universities, university)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("大学一覧の読み取りに失敗しました: %w", err)
	}
	return universities, nil
}

// Create は大学を作成する。大学名が既に存在する場合は重複競合エラーを返す。
func (r *PostgresUniversityRepo) Create(ctx context.Context, university *model.University) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO universities (id, name, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		university.ID().String(), university.Name().String(),
		university.CreatedAt(), university.CreatedBy().String(),
		university.UpdatedAt(), university.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("大学", "この大学名は既に登録されています。")
		}
		return fmt.Errorf("大学の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は大学を更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresUniversityRepo) Update(ctx context.Context, university *model.University) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE universities SET name = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		university.ID().String(), university.Name().String(),
		university.UpdatedAt(), university.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("大学", "この大学名は既に登録されています。")
		}
		return fmt.Errorf("大学の更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "大学", university.ID().String())
}

// Delete は指定IDの大学を削除する。
func (r *PostgresUniversityRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewDependentExistsError("大学", "この大学を参照するデータが存在するため削除できません。")
		}
		return fmt.Errorf("大学の削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "大学", id)
}

// scanUniversity は1行のスキャン結果から大学エンティティを復元する。
func scanUniversity(row *sql.Row) (*model.University, error) {
	var (
		id, name, createdBy, updatedBy string
		createdAt, updatedAt           time.Time
	)
	err := row.Scan(&id, &name, &createdAt, &createdBy, &updatedAt, &updatedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("大学の取得に失敗しました: %w", err)
	}
	return model.RestoreUniversity(id, name, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// requireRowAffected は更新・削除が1行も適用されなかった場合にNotFoundErrorへ変換する。
func requireRowAffected(result sql.Result, resource, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("影響行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return model.NewNotFoundError(resource, id)
	}
	return nil
}

// compile-time interface check
var _ UniversityRepository = (*PostgresUniversityRepo)(nil)
