package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/faculty"
	"github.com/hitoshi/saiyo-admin/internal/university"
)

// UniversityServiceInterface は大学ハンドラーが必要とするサービスインターフェース。
type UniversityServiceInterface interface {
	Get(ctx context.Context, id string) (*university.Detail, error)
	List(ctx context.Context) ([]university.Detail, error)
	Create(ctx context.Context, cmd university.CreateCommand) (*university.Detail, error)
	Update(ctx context.Context, id string, cmd university.UpdateCommand) (*university.Detail, error)
	Delete(ctx context.Context, id string) error
}

// UniversityBulkInterface は大学バルク作成のインターフェース。
type UniversityBulkInterface interface {
	BulkCreate(ctx context.Context, cmd university.BulkCreateCommand) (*university.BulkResult, error)
}

// UniversityHandler は大学管理のHTTPハンドラー。
type UniversityHandler struct {
	service UniversityServiceInterface
	bulk    UniversityBulkInterface
}

// NewUniversityHandler はUniversityHandlerを生成する。
func NewUniversityHandler(service UniversityServiceInterface, bulk UniversityBulkInterface) *UniversityHandler {
	return &UniversityHandler{
		service: service,
		bulk:    bulk,
	}
}

// universityRequest は大学作成・更新リクエストのボディ。
type universityRequest struct {
	Name string `json:"name"`
	Rank string `json:"rank,omitempty"`
}

// bulkFacultyItem はバルク作成リクエスト内の学部1件。
type bulkFacultyItem struct {
	Name           string   `json:"name"`
	DeviationValue *float64 `json:"deviation_value,omitempty"`
}

// universityBulkRequest は大学バルク作成リクエストのボディ。
type universityBulkRequest struct {
	Name      string            `json:"name"`
	Rank      string            `json:"rank,omitempty"`
	Faculties []bulkFacultyItem `json:"faculties,omitempty"`
}

// universityResponse は大学情報のAPIレスポンス。
type universityResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rank      string    `json:"rank,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// universityBulkResponse は大学バルク作成のAPIレスポンス。
type universityBulkResponse struct {
	University universityResponse    `json:"university"`
	Adopted    bool                  `json:"adopted"`
	Faculties  []facultyItemResponse `json:"faculties,omitempty"`
}

// ListUniversities は大学一覧を返す。
// GET /api/universities
func (h *UniversityHandler) ListUniversities(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]universityResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, toUniversityResponse(&detail))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetUniversity は大学詳細を取得する。
// GET /api/universities/:id
func (h *UniversityHandler) GetUniversity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUniversityResponse(detail))
}

// CreateUniversity は大学を作成する。
// POST /api/universities
func (h *UniversityHandler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req universityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	detail, err := h.service.Create(r.Context(), university.CreateCommand{
		OperatorID: operatorID(r),
		Name:       req.Name,
		Rank:       req.Rank,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUniversityResponse(detail))
}

// UpdateUniversity は大学を更新する。
// rankを省略したリクエストは既存ランクの削除として扱う。
// PUT /api/universities/:id
func (h *UniversityHandler) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req universityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	detail, err := h.service.Update(r.Context(), id, university.UpdateCommand{
		OperatorID: operatorID(r),
		Name:       req.Name,
		Rank:       req.Rank,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUniversityResponse(detail))
}

// DeleteUniversity は大学を削除する。
// DELETE /api/universities/:id
func (h *UniversityHandler) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCreateUniversity は大学・ランク・学部の一括登録を処理する。
// POST /api/universities/bulk
func (h *UniversityHandler) BulkCreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req universityBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	items := make([]faculty.BulkItem, 0, len(req.Faculties))
	for _, item := range req.Faculties {
		items = append(items, faculty.BulkItem{
			Name:           item.Name,
			DeviationScore: item.DeviationValue,
		})
	}

	result, err := h.bulk.BulkCreate(r.Context(), university.BulkCreateCommand{
		OperatorID: operatorID(r),
		Name:       req.Name,
		Rank:       req.Rank,
		Faculties:  items,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := universityBulkResponse{
		University: toUniversityResponse(&university.Detail{
			University: result.University,
			Rank:       result.Rank,
		}),
		Adopted: result.Adopted,
	}
	for _, item := range result.Faculties {
		resp.Faculties = append(resp.Faculties, toFacultyItemResponse(item))
	}
	writeJSON(w, http.StatusCreated, resp)
}

// toUniversityResponse はuniversity.DetailからAPIレスポンスに変換する。
func toUniversityResponse(detail *university.Detail) universityResponse {
	resp := universityResponse{
		ID:        detail.University.ID().String(),
		Name:      detail.University.Name().String(),
		CreatedAt: detail.University.CreatedAt(),
		UpdatedAt: detail.University.UpdatedAt(),
	}
	if detail.Rank != nil {
		resp.Rank = detail.Rank.Rank().String()
	}
	return resp
}
