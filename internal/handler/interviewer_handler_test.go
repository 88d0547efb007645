package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/interviewer"
	"github.com/hitoshi/saiyo-admin/internal/model"
)

// --- モック定義 ---

type mockInterviewerService struct {
	getFn    func(ctx context.Context, userID string) (*model.Interviewer, error)
	listFn   func(ctx context.Context) ([]*model.Interviewer, error)
	createFn func(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error)
	updateFn func(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error)
	deleteFn func(ctx context.Context, userID string) error
}

func (m *mockInterviewerService) Get(ctx context.Context, userID string) (*model.Interviewer, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockInterviewerService) List(ctx context.Context) ([]*model.Interviewer, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockInterviewerService) Create(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error) {
	if m.createFn != nil {
		return m.createFn(ctx, operatorID, item)
	}
	return nil, nil
}
func (m *mockInterviewerService) Update(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, operatorID, item)
	}
	return nil, nil
}
func (m *mockInterviewerService) Delete(ctx context.Context, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return nil
}

type mockInterviewerBulk struct {
	bulkCreateFn func(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error)
	bulkUpdateFn func(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error)
}

func (m *mockInterviewerBulk) BulkCreate(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error) {
	if m.bulkCreateFn != nil {
		return m.bulkCreateFn(ctx, cmd)
	}
	return nil, nil
}
func (m *mockInterviewerBulk) BulkUpdate(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error) {
	if m.bulkUpdateFn != nil {
		return m.bulkUpdateFn(ctx, cmd)
	}
	return nil, nil
}

// --- テストヘルパー ---

func newInterviewer(t *testing.T, userID, category string) *model.Interviewer {
	t.Helper()
	operator, err := model.NewID("operator-1", "操作ユーザーID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	uid, err := model.NewID(userID, "ユーザーID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	i, err := model.NewInterviewer(uid, category, "", "", operator)
	if err != nil {
		t.Fatalf("NewInterviewer failed: %v", err)
	}
	return i
}

// --- テスト ---

func TestInterviewerHandler_CreateInterviewer_Success(t *testing.T) {
	created := newInterviewer(t, "user-1", "フロント")
	svc := &mockInterviewerService{
		createFn: func(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error) {
			if operatorID != "operator-1" {
				t.Errorf("operatorID = %q, want operator-1", operatorID)
			}
			if item.Category != "フロント" {
				t.Errorf("Category = %q, want フロント", item.Category)
			}
			return created, nil
		},
	}
	h := NewInterviewerHandler(svc, &mockInterviewerBulk{})

	body := `{"user_id": "user-1", "category": "フロント"}`
	req := httptest.NewRequest(http.MethodPost, "/api/interviewers", bytes.NewBufferString(body))
	req = withOperatorID(req, "operator-1")
	w := httptest.NewRecorder()

	h.CreateInterviewer(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

// TestInterviewerHandler_UpdateInterviewer_UserIDFromPath はボディのuser_idより
// URLパラメータが優先されることを検証する。
func TestInterviewerHandler_UpdateInterviewer_UserIDFromPath(t *testing.T) {
	updated := newInterviewer(t, "user-1", "現場社員")
	svc := &mockInterviewerService{
		updateFn: func(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error) {
			if item.UserID != "user-1" {
				t.Errorf("UserID = %q, want user-1 from the URL", item.UserID)
			}
			return updated, nil
		},
	}
	h := NewInterviewerHandler(svc, &mockInterviewerBulk{})

	body := `{"user_id": "other-user", "category": "現場社員"}`
	req := httptest.NewRequest(http.MethodPut, "/api/interviewers/user-1", bytes.NewBufferString(body))
	req = withOperatorID(req, "operator-1")
	req = withChiURLParam(req, "userId", "user-1")
	w := httptest.NewRecorder()

	h.UpdateInterviewer(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestInterviewerHandler_BulkCreate_Success(t *testing.T) {
	bulk := &mockInterviewerBulk{
		bulkCreateFn: func(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error) {
			if len(cmd.Items) != 2 {
				t.Fatalf("len(Items) = %d, want 2", len(cmd.Items))
			}
			return []*model.Interviewer{
				newInterviewer(t, "user-1", "フロント"),
				newInterviewer(t, "user-2", "現場社員"),
			}, nil
		},
	}
	h := NewInterviewerHandler(&mockInterviewerService{}, bulk)

	body := `{"interviewers": [
		{"user_id": "user-1", "category": "フロント"},
		{"user_id": "user-2", "category": "現場社員"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/interviewers/bulk", bytes.NewBufferString(body))
	req = withOperatorID(req, "operator-1")
	w := httptest.NewRecorder()

	h.BulkCreateInterviewers(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	var resp []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("len(response) = %d, want 2", len(resp))
	}
}

// TestInterviewerHandler_BulkUpdate_MissingUserIs404 は存在しないユーザーIDを
// 含むバルク更新がバッチ全体404で失敗することを検証する。
func TestInterviewerHandler_BulkUpdate_MissingUserIs404(t *testing.T) {
	bulk := &mockInterviewerBulk{
		bulkUpdateFn: func(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error) {
			return nil, model.NewNotFoundError("面接官", "unknown-user")
		},
	}
	h := NewInterviewerHandler(&mockInterviewerService{}, bulk)

	body := `{"interviewers": [
		{"user_id": "user-1", "category": "現場社員"},
		{"user_id": "unknown-user", "category": "現場社員"}
	]}`
	req := httptest.NewRequest(http.MethodPut, "/api/interviewers/bulk", bytes.NewBufferString(body))
	req = withOperatorID(req, "operator-1")
	w := httptest.NewRecorder()

	h.BulkUpdateInterviewers(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	respBody := decodeErrorResponse(t, w)
	if respBody["code"] != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", respBody["code"])
	}
}
