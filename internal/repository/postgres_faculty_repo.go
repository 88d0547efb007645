package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresFacultyRepo はPostgreSQLを使用した学部リポジトリ。
type PostgresFacultyRepo struct {
	db DBTX
}

// NewPostgresFacultyRepo はPostgresFacultyRepoを生成する。
func NewPostgresFacultyRepo(db DBTX) *PostgresFacultyRepo {
	return &PostgresFacultyRepo{db: db}
}

// FindByID は指定IDの学部を取得する。見つからない場合はnilを返す。
func (r *PostgresFacultyRepo) FindByID(ctx context.Context, id string) (*model.Faculty, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, university_id, name, created_at, created_by, updated_at, updated_by
		 FROM faculties WHERE id = $1`,
		id,
	)
	return scanFaculty(row)
}

// FindByUniversityAndName は(大学ID, 学部名)で学部を検索する。見つからない場合はnilを返す。
func (r *PostgresFacultyRepo) FindByUniversityAndName(ctx context.Context, universityID, name string) (*model.Faculty, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, university_id, name, created_at, created_by, updated_at, updated_by
		 FROM faculties WHERE university_id = $1 AND name = $2`,
		universityID, name,
	)
	return scanFaculty(row)
}

// ListByUniversityID は大学に属する学部一覧を作成日時順で返す。
func (r *PostgresFacultyRepo) ListByUniversityID(ctx context.Context, universityID string) ([]*model.Faculty, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, university_id, name, created_at, created_by, updated_at, updated_by
		 FROM faculties WHERE university_id = $1 ORDER BY created_at ASC`,
		universityID,
	)
	if err != nil {
		return nil, fmt.Errorf("学部一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var faculties []*model.Faculty
	for rows.Next() {
		var (
			id, univID, name, createdBy, updatedBy string
			createdAt, updatedAt                   time.Time
		)
		if err := rows.Scan(&id, &univID, &name, &createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("学部行の読み取りに失敗しました: %w", err)
		}
		faculty, err := model.RestoreFaculty(id, univID, name, model.AuditStamp{
			CreatedAt: createdAt, CreatedBy: createdBy,
			UpdatedAt: updatedAt, UpdatedBy: updatedBy,
		})
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("学部一覧の読み取りに失敗しました: %w", err)
	}
	return faculties, nil
}

// Create は学部を作成する。
// (大学ID, 学部名)が既に存在する場合は重複競合エラー、
// 大学が存在しない場合はNotFoundErrorを返す。
func (r *PostgresFacultyRepo) Create(ctx context.Context, faculty *model.Faculty) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO faculties (id, university_id, name, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		faculty.ID().String(), faculty.UniversityID().String(), faculty.Name().String(),
		faculty.CreatedAt(), faculty.CreatedBy().String(),
		faculty.UpdatedAt(), faculty.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("学部", "この学部名は既に登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("大学", faculty.UniversityID().String())
		}
		return fmt.Errorf("学部の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は学部を更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresFacultyRepo) Update(ctx context.Context, faculty *model.Faculty) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE faculties SET name = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		faculty.ID().String(), faculty.Name().String(),
		faculty.UpdatedAt(), faculty.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("学部", "この学部名は既に登録されています。")
		}
		return fmt.Errorf("学部の更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "学部", faculty.ID().String())
}

// Delete は指定IDの学部を削除する。
func (r *PostgresFacultyRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM faculties WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewDependentExistsError("学部", "この学部を参照するデータが存在するため削除できません。")
		}
		return fmt.Errorf("学部の削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "学部", id)
}

// scanFaculty は1行のスキャン結果から学部エンティティを復元する。
func scanFaculty(row *sql.Row) (*model.Faculty, error) {
	var (
		id, univID, name, createdBy, updatedBy string
		createdAt, updatedAt                   time.Time
	)
	err := row.Scan(&id, &univID, &name, &createdAt, &createdBy, &updatedAt, &updatedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("学部の取得に失敗しました: %w", err)
	}
	return model.RestoreFaculty(id, univID, name, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// compile-time interface check
var _ FacultyRepository = (*PostgresFacultyRepo)(nil)
