package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/interviewer"
	"github.com/hitoshi/saiyo-admin/internal/model"
)

// InterviewerServiceInterface は面接官ハンドラーが必要とするサービスインターフェース。
type InterviewerServiceInterface interface {
	Get(ctx context.Context, userID string) (*model.Interviewer, error)
	List(ctx context.Context) ([]*model.Interviewer, error)
	Create(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error)
	Update(ctx context.Context, operatorID string, item interviewer.Item) (*model.Interviewer, error)
	Delete(ctx context.Context, userID string) error
}

// InterviewerBulkInterface は面接官バルク作成・更新のインターフェース。
type InterviewerBulkInterface interface {
	BulkCreate(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error)
	BulkUpdate(ctx context.Context, cmd interviewer.BulkCommand) ([]*model.Interviewer, error)
}

// InterviewerHandler は面接官管理のHTTPハンドラー。
type InterviewerHandler struct {
	service InterviewerServiceInterface
	bulk    InterviewerBulkInterface
}

// NewInterviewerHandler はInterviewerHandlerを生成する。
func NewInterviewerHandler(service InterviewerServiceInterface, bulk InterviewerBulkInterface) *InterviewerHandler {
	return &InterviewerHandler{
		service: service,
		bulk:    bulk,
	}
}

// interviewerItem は面接官の作成・更新1件分のボディ。
type interviewerItem struct {
	UserID       string `json:"user_id"`
	Category     string `json:"category"`
	UniversityID string `json:"university_id,omitempty"`
	FacultyID    string `json:"faculty_id,omitempty"`
}

// interviewerBulkRequest は面接官バルク作成・更新リクエストのボディ。
type interviewerBulkRequest struct {
	Interviewers []interviewerItem `json:"interviewers"`
}

// interviewerResponse は面接官情報のAPIレスポンス。
type interviewerResponse struct {
	UserID       string    `json:"user_id"`
	Category     string    `json:"category"`
	UniversityID string    `json:"university_id,omitempty"`
	FacultyID    string    `json:"faculty_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListInterviewers は面接官一覧を返す。
// GET /api/interviewers
func (h *InterviewerHandler) ListInterviewers(w http.ResponseWriter, r *http.Request) {
	interviewers, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInterviewerResponses(interviewers))
}

// GetInterviewer は面接官詳細を取得する。
// GET /api/interviewers/:userId
func (h *InterviewerHandler) GetInterviewer(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	found, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInterviewerResponse(found))
}

// CreateInterviewer は面接官を1件作成する。
// POST /api/interviewers
func (h *InterviewerHandler) CreateInterviewer(w http.ResponseWriter, r *http.Request) {
	var req interviewerItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	created, err := h.service.Create(r.Context(), operatorID(r), toInterviewerItem(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInterviewerResponse(created))
}

// UpdateInterviewer は面接官を1件更新する。
// PUT /api/interviewers/:userId
func (h *InterviewerHandler) UpdateInterviewer(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req interviewerItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}
	req.UserID = userID

	updated, err := h.service.Update(r.Context(), operatorID(r), toInterviewerItem(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInterviewerResponse(updated))
}

// DeleteInterviewer は面接官を削除する。
// DELETE /api/interviewers/:userId
func (h *InterviewerHandler) DeleteInterviewer(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	if err := h.service.Delete(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCreateInterviewers は面接官の一括作成を処理する。
// バッチ全体を1つのトランザクションで実行する。
// POST /api/interviewers/bulk
func (h *InterviewerHandler) BulkCreateInterviewers(w http.ResponseWriter, r *http.Request) {
	var req interviewerBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	results, err := h.bulk.BulkCreate(r.Context(), interviewer.BulkCommand{
		OperatorID: operatorID(r),
		Items:      toInterviewerItems(req.Interviewers),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInterviewerResponses(results))
}

// BulkUpdateInterviewers は面接官の一括更新を処理する。
// いずれかのユーザーIDが存在しない場合はバッチ全体が404で失敗する。
// PUT /api/interviewers/bulk
func (h *InterviewerHandler) BulkUpdateInterviewers(w http.ResponseWriter, r *http.Request) {
	var req interviewerBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	results, err := h.bulk.BulkUpdate(r.Context(), interviewer.BulkCommand{
		OperatorID: operatorID(r),
		Items:      toInterviewerItems(req.Interviewers),
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInterviewerResponses(results))
}

// --- ヘルパー関数 ---

func toInterviewerItem(req interviewerItem) interviewer.Item {
	return interviewer.Item{
		UserID:       req.UserID,
		Category:     req.Category,
		UniversityID: req.UniversityID,
		FacultyID:    req.FacultyID,
	}
}

func toInterviewerItems(reqs []interviewerItem) []interviewer.Item {
	items := make([]interviewer.Item, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, toInterviewerItem(req))
	}
	return items
}

// toInterviewerResponse はmodel.InterviewerからAPIレスポンスに変換する。
func toInterviewerResponse(i *model.Interviewer) interviewerResponse {
	return interviewerResponse{
		UserID:       i.UserID().String(),
		Category:     i.Category().String(),
		UniversityID: i.UniversityID().String(),
		FacultyID:    i.FacultyID().String(),
		CreatedAt:    i.CreatedAt(),
		UpdatedAt:    i.UpdatedAt(),
	}
}

func toInterviewerResponses(interviewers []*model.Interviewer) []interviewerResponse {
	responses := make([]interviewerResponse, 0, len(interviewers))
	for _, i := range interviewers {
		responses = append(responses, toInterviewerResponse(i))
	}
	return responses
}
