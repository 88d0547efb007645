package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresEventRepo はPostgreSQLを使用した採用イベントリポジトリ。
type PostgresEventRepo struct {
	db DBTX
}

// NewPostgresEventRepo はPostgresEventRepoを生成する。
func NewPostgresEventRepo(db DBTX) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

// FindByID は指定IDのイベントを取得する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, kind, department_id, held_at, venue,
		        created_at, created_by, updated_at, updated_by
		 FROM events WHERE id = $1`,
		id,
	)
	return scanEvent(row)
}

// List はイベント一覧を開催日時順で返す。
func (r *PostgresEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, department_id, held_at, venue,
		        created_at, created_by, updated_at, updated_by
		 FROM events ORDER BY held_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		var (
			id, name, kind, departmentID, createdBy, updatedBy string
			venue                                              sql.NullString
			heldAt, createdAt, updatedAt                       time.Time
		)
		if err := rows.Scan(&id, &name, &kind, &departmentID, &heldAt, &venue,
			&createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
			return nil, fmt.Errorf("イベント行の読み取りに失敗しました: %w", err)
		}
		event, err := model.RestoreEvent(id, name, kind, departmentID, heldAt, venue.String, model.AuditStamp{
			CreatedAt: createdAt, CreatedBy: createdBy,
			UpdatedAt: updatedAt, UpdatedBy: updatedBy,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("イベント一覧の読み取りに失敗しました: %w", err)
	}
	return events, nil
}

// Create はイベントを作成する。主催部署が存在しない場合はNotFoundErrorを返す。
func (r *PostgresEventRepo) Create(ctx context.Context, event *model.Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, name, kind, department_id, held_at, venue,
		                     created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID().String(), event.Name().String(), event.Kind().String(),
		event.DepartmentID().String(), event.HeldAt(), nullableString(event.Venue()),
		event.CreatedAt(), event.CreatedBy().String(),
		event.UpdatedAt(), event.UpdatedBy().String(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("部署", event.DepartmentID().String())
		}
		return fmt.Errorf("イベントの作成に失敗しました: %w", err)
	}
	return nil
}

// Update はイベントを更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresEventRepo) Update(ctx context.Context, event *model.Event) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET name = $2, kind = $3, department_id = $4, held_at = $5, venue = $6,
		        updated_at = $7, updated_by = $8
		 WHERE id = $1`,
		event.ID().String(), event.Name().String(), event.Kind().String(),
		event.DepartmentID().String(), event.HeldAt(), nullableString(event.Venue()),
		event.UpdatedAt(), event.UpdatedBy().String(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("部署", event.DepartmentID().String())
		}
		return fmt.Errorf("イベントの更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "イベント", event.ID().String())
}

// Delete は指定IDのイベントを削除する。
func (r *PostgresEventRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("イベントの削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "イベント", id)
}

// nullableString は空文字列をNULLとして保存するための変換を行う。
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// scanEvent は1行のスキャン結果からイベントエンティティを復元する。
func scanEvent(row *sql.Row) (*model.Event, error) {
	var (
		id, name, kind, departmentID, createdBy, updatedBy string
		venue                                              sql.NullString
		heldAt, createdAt, updatedAt                       time.Time
	)
	err := row.Scan(&id, &name, &kind, &departmentID, &heldAt, &venue,
		&createdAt, &createdBy, &updatedAt, &updatedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	return model.RestoreEvent(id, name, kind, departmentID, heldAt, venue.String, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// compile-time interface check
var _ EventRepository = (*PostgresEventRepo)(nil)
