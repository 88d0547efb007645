package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// PostgresInterviewerRepo はPostgreSQLを使用した面接官リポジトリ。
type PostgresInterviewerRepo struct {
	db DBTX
}

// NewPostgresInterviewerRepo はPostgresInterviewerRepoを生成する。
func NewPostgresInterviewerRepo(db DBTX) *PostgresInterviewerRepo {
	return &PostgresInterviewerRepo{db: db}
}

// FindByUserID は主キーであるユーザーIDで面接官を取得する。見つからない場合はnilを返す。
func (r *PostgresInterviewerRepo) FindByUserID(ctx context.Context, userID string) (*model.Interviewer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, category, university_id, faculty_id, created_at, created_by, updated_at, updated_by
		 FROM interviewers WHERE user_id = $1`,
		userID,
	)
	return scanInterviewer(row)
}

// List は面接官一覧を作成日時順で返す。
func (r *PostgresInterviewerRepo) List(ctx context.Context) ([]*model.Interviewer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, category, university_id, faculty_id, created_at, created_by, updated_at, updated_by
		 FROM interviewers ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("面接官一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var interviewers []*model.Interviewer
	for rows.Next() {
		interviewer, err := scanInterviewerRow(rows)
		if err != nil {
			return nil, err
		}
		interviewers = append(interviewers, interviewer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("面接官一覧の読み取りに失敗しました: %w", err)
	}
	return interviewers, nil
}

// Create は面接官を作成する。
// 同一ユーザーの面接官が既に存在する場合は重複競合エラー、
// 参照先のユーザーが存在しない場合はNotFoundErrorを返す。
func (r *PostgresInterviewerRepo) Create(ctx context.Context, interviewer *model.Interviewer) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO interviewers (user_id, category, university_id, faculty_id, created_at, created_by, updated_at, updated_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		interviewer.UserID().String(), interviewer.Category().String(),
		nullableID(interviewer.UniversityID()), nullableID(interviewer.FacultyID()),
		interviewer.CreatedAt(), interviewer.CreatedBy().String(),
		interviewer.UpdatedAt(), interviewer.UpdatedBy().String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewDuplicateError("面接官", "このユーザーは既に面接官として登録されています。")
		}
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("ユーザー", interviewer.UserID().String())
		}
		return fmt.Errorf("面接官の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は面接官を更新する。対象が存在しない場合はNotFoundErrorを返す。
func (r *PostgresInterviewerRepo) Update(ctx context.Context, interviewer *model.Interviewer) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE interviewers SET category = $2, university_id = $3, faculty_id = $4, updated_at = $5, updated_by = $6
		 WHERE user_id = $1`,
		interviewer.UserID().String(), interviewer.Category().String(),
		nullableID(interviewer.UniversityID()), nullableID(interviewer.FacultyID()),
		interviewer.UpdatedAt(), interviewer.UpdatedBy().String(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.NewNotFoundError("大学または学部", interviewer.UniversityID().String())
		}
		return fmt.Errorf("面接官の更新に失敗しました: %w", err)
	}
	return requireRowAffected(result, "面接官", interviewer.UserID().String())
}

// Delete は指定ユーザーIDの面接官を削除する。
func (r *PostgresInterviewerRepo) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM interviewers WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("面接官の削除に失敗しました: %w", err)
	}
	return requireRowAffected(result, "面接官", userID)
}

// nullableID は未設定のIDをNULLとして保存するための変換を行う。
func nullableID(id model.ID) sql.NullString {
	if id.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

// scanInterviewer は1行のスキャン結果から面接官エンティティを復元する。
func scanInterviewer(row *sql.Row) (*model.Interviewer, error) {
	var (
		userID, category, createdBy, updatedBy string
		universityID, facultyID                sql.NullString
		createdAt, updatedAt                   time.Time
	)
	err := row.Scan(&userID, &category, &universityID, &facultyID, &createdAt, &createdBy, &updatedAt, &updatedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("面接官の取得に失敗しました: %w", err)
	}
	return model.RestoreInterviewer(userID, category, universityID.String, facultyID.String, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// scanInterviewerRow は複数行クエリの現在行から面接官エンティティを復元する。
func scanInterviewerRow(rows *sql.Rows) (*model.Interviewer, error) {
	var (
		userID, category, createdBy, updatedBy string
		universityID, facultyID                sql.NullString
		createdAt, updatedAt                   time.Time
	)
	if err := rows.Scan(&userID, &category, &universityID, &facultyID, &createdAt, &createdBy, &updatedAt, &updatedBy); err != nil {
		return nil, fmt.Errorf("面接官行の読み取りに失敗しました: %w", err)
	}
	return model.RestoreInterviewer(userID, category, universityID.String, facultyID.String, model.AuditStamp{
		CreatedAt: createdAt, CreatedBy: createdBy,
		UpdatedAt: updatedAt, UpdatedBy: updatedBy,
	})
}

// compile-time interface check
var _ InterviewerRepository = (*PostgresInterviewerRepo)(nil)
