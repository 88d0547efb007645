package interviewer

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// --- モック ---

// mockTxManager は渡されたリポジトリ束でfnを直接実行し、
// fnがエラーを返した場合はロールバック扱いにする。
type mockTxManager struct {
	repos      repository.TxRepos
	rolledBack bool
}

func (m *mockTxManager) WithinTx(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := fn(m.repos); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

type mockBulkRecorder struct {
	created int
	failed  int
}

func (m *mockBulkRecorder) RecordBulkItemCreated(entity string) { m.created++ }
func (m *mockBulkRecorder) RecordBulkItemFailed(entity string)  { m.failed++ }

// --- テスト ---

// TestBulkService_BulkCreate は全項目が1つのトランザクション内で作成されることを検証する。
func TestBulkService_BulkCreate(t *testing.T) {
	var createdIDs []string
	txManager := &mockTxManager{repos: repository.TxRepos{
		Interviewers: &mockInterviewerRepo{
			createFn: func(ctx context.Context, interviewer *model.Interviewer) error {
				createdIDs = append(createdIDs, interviewer.UserID().String())
				return nil
			},
		},
	}}
	recorder := &mockBulkRecorder{}
	svc := NewBulkService(txManager, recorder)

	results, err := svc.BulkCreate(context.Background(), BulkCommand{
		OperatorID: "operator-1",
		Items: []Item{
			{UserID: "user-1", Category: "フロント"},
			{UserID: "user-2", Category: "現場社員", UniversityID: "univ-1", FacultyID: "faculty-1"},
		},
	})
	if err != nil {
		t.Fatalf("BulkCreate returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if len(createdIDs) != 2 || createdIDs[0] != "user-1" || createdIDs[1] != "user-2" {
		t.Errorf("created = %v, want [user-1 user-2] in input order", createdIDs)
	}
	if recorder.created != 2 {
		t.Errorf("recorder.created = %d, want 2", recorder.created)
	}
}

// TestBulkService_BulkCreate_AnyFailureRollsBackAll はいずれかの項目の失敗で
// バッチ全体がロールバックすることを検証する。
func TestBulkService_BulkCreate_AnyFailureRollsBackAll(t *testing.T) {
	txManager := &mockTxManager{repos: repository.TxRepos{
		Interviewers: &mockInterviewerRepo{
			createFn: func(ctx context.Context, interviewer *model.Interviewer) error {
				if interviewer.UserID().String() == "user-2" {
					return model.NewDuplicateError("面接官", "この面接官は既に登録されています。")
				}
				return nil
			},
		},
	}}
	recorder := &mockBulkRecorder{}
	svc := NewBulkService(txManager, recorder)

	results, err := svc.BulkCreate(context.Background(), BulkCommand{
		OperatorID: "operator-1",
		Items: []Item{
			{UserID: "user-1", Category: "フロント"},
			{UserID: "user-2", Category: "フロント"},
			{UserID: "user-3", Category: "フロント"},
		},
	})
	if err == nil {
		t.Fatal("BulkCreate returned nil, want error")
	}
	if results != nil {
		t.Errorf("results = %v, want nil", results)
	}
	if !txManager.rolledBack {
		t.Error("expected the transaction to be rolled back")
	}
	if recorder.failed != 1 || recorder.created != 0 {
		t.Errorf("recorder = created:%d failed:%d, want created:0 failed:1",
			recorder.created, recorder.failed)
	}
}

// TestBulkService_BulkUpdate は全項目が更新されることを検証する。
func TestBulkService_BulkUpdate(t *testing.T) {
	existing := map[string]*model.Interviewer{
		"user-1": testInterviewer(t, "user-1", "フロント"),
		"user-2": testInterviewer(t, "user-2", "フロント"),
	}
	updatedCount := 0
	txManager := &mockTxManager{repos: repository.TxRepos{
		Interviewers: &mockInterviewerRepo{
			findByUserIDFn: func(ctx context.Context, userID string) (*model.Interviewer, error) {
				return existing[userID], nil
			},
			updateFn: func(ctx context.Context, interviewer *model.Interviewer) error {
				updatedCount++
				return nil
			},
		},
	}}
	svc := NewBulkService(txManager, nil)

	results, err := svc.BulkUpdate(context.Background(), BulkCommand{
		OperatorID: "operator-2",
		Items: []Item{
			{UserID: "user-1", Category: "現場社員"},
			{UserID: "user-2", Category: "現場社員"},
		},
	})
	if err != nil {
		t.Fatalf("BulkUpdate returned error: %v", err)
	}
	if updatedCount != 2 {
		t.Errorf("updatedCount = %d, want 2", updatedCount)
	}
	for i, interviewer := range results {
		if interviewer.Category().String() != "現場社員" {
			t.Errorf("results[%d].Category = %q, want 現場社員", i, interviewer.Category().String())
		}
	}
}

// TestBulkService_BulkUpdate_MissingUserRejectsBatch は1件でも面接官として
// 存在しないユーザーIDがあればバッチ全体が拒否されることを検証する。
func TestBulkService_BulkUpdate_MissingUserRejectsBatch(t *testing.T) {
	existing := testInterviewer(t, "user-1", "フロント")
	updatedCount := 0
	txManager := &mockTxManager{repos: repository.TxRepos{
		Interviewers: &mockInterviewerRepo{
			findByUserIDFn: func(ctx context.Context, userID string) (*model.Interviewer, error) {
				if userID == "user-1" {
					return existing, nil
				}
				return nil, nil
			},
			updateFn: func(ctx context.Context, interviewer *model.Interviewer) error {
				updatedCount++
				return nil
			},
		},
	}}
	svc := NewBulkService(txManager, nil)

	_, err := svc.BulkUpdate(context.Background(), BulkCommand{
		OperatorID: "operator-1",
		Items: []Item{
			{UserID: "user-1", Category: "現場社員"},
			{UserID: "unknown-user", Category: "現場社員"},
		},
	})
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("BulkUpdate returned %v, want NotFoundError", err)
	}
	if notFound.ID != "unknown-user" {
		t.Errorf("NotFoundError.ID = %q, want unknown-user", notFound.ID)
	}
	if !txManager.rolledBack {
		t.Error("expected the transaction to be rolled back")
	}
}

// TestBulkService_EmptyItems は項目なしがBadRequestErrorになることを検証する。
func TestBulkService_EmptyItems(t *testing.T) {
	svc := NewBulkService(&mockTxManager{}, nil)

	_, err := svc.BulkCreate(context.Background(), BulkCommand{OperatorID: "operator-1"})
	var badRequest *model.BadRequestError
	if !errors.As(err, &badRequest) {
		t.Fatalf("BulkCreate returned %v, want BadRequestError", err)
	}

	_, err = svc.BulkUpdate(context.Background(), BulkCommand{OperatorID: "operator-1"})
	if !errors.As(err, &badRequest) {
		t.Fatalf("BulkUpdate returned %v, want BadRequestError", err)
	}
}
