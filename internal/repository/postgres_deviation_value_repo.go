package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresDeviationValueRepo はPostgreSQLを使用した偏差値リポジトリ。
type PostgresDeviationValueRepo struct {
	db DBTX
}

// NewPostgresDeviationValueRepo はPostgresDeviationValueRepoを生成する。
func NewPostgresDeviationValueRepo(db DBTX) *PostgresDeviationValueRepo {
	return &PostgresDeviationValueRepo{db: db}
}

// FindByFacultyID は学部IDで偏差値を検索する。見つからない場合はnilを返す。
func (r *PostgresDeviationValueRepo) FindByFacultyID(ctx context.Context, facultyID string) (*model.DeviationValue, error) {
	var (
		id, facID, createdBy, updatedBy string
		score                           float64
		createdAt, updatedAt            time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, faculty_id, score, created_at, created_by, updated_at, updated_by
		 FROM deviation_values WHERE faculty_id = $1`,
		facultyID,
	).Scan(&id, &facID, &score, &createdAt, &createdBy, &updatedAt, &updatedBy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	return model.RestoreDeviationValue(id, facID, score, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// Create は偏差値を作成する。
// 学部に既に偏差値が存在する場合は重複競合エラー、
// 学部が存在しない場合はNotFoundErrorを返す。
func (r *PostgresDeviationValueRepo) Create(ctx context.Context, value *model.DeviationValue) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deviation_values (id, faculty_id, score, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		value.ID().String(), value.FacultyID().String(), value.Score().Float64(),
		value.CreatedAt(), value.CreatedBy().String(),
		value.UpdatedAt(), value.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("偏差値", "この学部の偏差値は既に登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("学部", value.FacultyID().String())
		}
		return fmt.Errorf("偏差値の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は偏差値を更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresDeviationValueRepo) Update(ctx context.Context, value *model.DeviationValue) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE deviation_values SET score = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		value.ID().String(), value.Score().Float64(),
		value.UpdatedAt(), value.UpdatedBy().String(),
	)
	if err != nil {
		return fmt.Errorf("偏差値の更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "偏差値", value.ID().String())
}

// Delete は指定IDの偏差値を削除する。
func (r *PostgresDeviationValueRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deviation_values WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("偏差値の削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "偏差値", id)
}

// compile-time interface check
var _ DeviationValueRepository = (*PostgresDeviationValueRepo)(nil)
