package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresUniversityRankRepo はPostgreSQLを使用した大学ランクリポジトリ。
type PostgresUniversityRankRepo struct {
	db DBTX
}

// NewPostgresUniversityRankRepo はPostgresUniversityRankRepoを生成する。
func NewPostgresUniversityRankRepo(db DBTX) *PostgresUniversityRankRepo {
	return &PostgresUniversityRankRepo{db: db}
}

// FindByUniversityID は大学IDでランクを検索する。見つからない場合はnilを返す。
func (r *PostgresUniversityRankRepo) FindByUniversityID(ctx context.Context, universityID string) (*model.UniversityRank, error) {
	var (
		id, univID, rank, createdBy, updatedBy string
		createdAt, updatedAt                   time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, university_id, rank, created_at, created_by, updated_at, updated_by
		 FROM university_ranks WHERE university_id = $1`,
		universityID,
	).Scan(&id, &univID, &rank, &createdAt, &createdBy, &updatedAt, &updatedBy)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("大学ランクの取得に失敗しました: %w", err)
	}
	return model.RestoreUniversityRank(id, univID, rank, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// Create はランクを作成する。
// 大学が存在しない場合はNotFoundError、既にランクが存在する場合は重複競合エラーを返す。
func (r *PostgresUniversityRankRepo) Create(ctx context.Context, rank *model.UniversityRank) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO university_ranks (id, university_id, rank, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rank.ID().String(), rank.UniversityID().String(), rank.Rank().String(),
		rank.CreatedAt(), rank.CreatedBy().String(),
		rank.UpdatedAt(), rank.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("大学ランク", "この大学のランクは既に登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("大学", rank.UniversityID().String())
		}
		return fmt.Errorf("大学ランクの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はランクを更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresUniversityRankRepo) Update(ctx context.Context, rank *model.UniversityRank) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE university_ranks SET rank = $2, updated_at = $3, updated_by = $4 WHERE id = $1`,
		rank.ID().String(), rank.Rank().String(),
		rank.UpdatedAt(), rank.UpdatedBy().String(),
	)
	if err != nil {
		return fmt.Errorf("大学ランクの更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "大学ランク", rank.ID().String())
}

// DeleteByUniversityID は大学IDに紐づくランクを削除する。存在しない場合は何もしない。
func (r *PostgresUniversityRankRepo) DeleteByUniversityID(ctx context.Context, universityID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM university_ranks WHERE university_id = $1`,
		universityID,
	)
	if err != nil {
		return fmt.Errorf("大学ランクの削除に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ UniversityRankRepository = (*PostgresUniversityRankRepo)(nil)
