package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresTxManager は*sql.DBのトランザクションでTxManagerを実装する。
type PostgresTxManager struct {
	db *sql.DB
}

// NewPostgresTxManager はPostgresTxManagerを生成する。
func NewPostgresTxManager(db *sql.DB) *PostgresTxManager {
	return &PostgresTxManager{db: db}
}

// WithinTx はトランザクションを開始し、トランザクション束縛のリポジトリ束を
// fnに渡して実行する。fnがエラーを返した場合は全操作をロールバックする。
func (m *PostgresTxManager) WithinTx(ctx context.Context, fn func(repos TxRepos) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	repos := TxRepos{
		Universities:    NewPostgresUniversityRepo(tx),
		UniversityRanks: NewPostgresUniversityRankRepo(tx),
		Faculties:       NewPostgresFacultyRepo(tx),
		DeviationValues: NewPostgresDeviationValueRepo(tx),
		Interviewers:    NewPostgresInterviewerRepo(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ TxManager = (*PostgresTxManager)(nil)
