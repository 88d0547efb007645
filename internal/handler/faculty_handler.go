package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/faculty"
	"github.com/hitoshi/saiyo-admin/internal/model"
)

// FacultyServiceInterface は学部ハンドラーが必要とするサービスインターフェース。
type FacultyServiceInterface interface {
	Get(ctx context.Context, id string) (*faculty.Detail, error)
	ListByUniversity(ctx context.Context, universityID string) ([]faculty.Detail, error)
	Create(ctx context.Context, cmd faculty.CreateCommand) (*model.Faculty, error)
	Update(ctx context.Context, id string, cmd faculty.UpdateCommand) (*model.Faculty, error)
	Delete(ctx context.Context, id string) error
	CreateDeviationValue(ctx context.Context, cmd faculty.DeviationValueCommand) (*model.DeviationValue, error)
	UpdateDeviationValue(ctx context.Context, cmd faculty.DeviationValueCommand) (*model.DeviationValue, error)
	DeleteDeviationValue(ctx context.Context, facultyID string) error
}

// FacultyBulkInterface は学部バルク作成のインターフェース。
type FacultyBulkInterface interface {
	BulkCreate(ctx context.Context, cmd faculty.BulkCreateCommand) ([]faculty.ItemResult, error)
}

// FacultyHandler は学部管理のHTTPハンドラー。
type FacultyHandler struct {
	service FacultyServiceInterface
	bulk    FacultyBulkInterface
}

// NewFacultyHandler はFacultyHandlerを生成する。
func NewFacultyHandler(service FacultyServiceInterface, bulk FacultyBulkInterface) *FacultyHandler {
	return &FacultyHandler{
		service: service,
		bulk:    bulk,
	}
}

// facultyRequest は学部作成・更新リクエストのボディ。
type facultyRequest struct {
	Name string `json:"name"`
}

// facultyBulkRequest は学部バルク作成リクエストのボディ。
type facultyBulkRequest struct {
	Faculties []bulkFacultyItem `json:"faculties"`
}

// deviationValueRequest は偏差値登録・更新リクエストのボディ。
type deviationValueRequest struct {
	Value float64 `json:"value"`
}

// facultyResponse は学部情報のAPIレスポンス。
type facultyResponse struct {
	ID             string    `json:"id"`
	UniversityID   string    `json:"university_id"`
	Name           string    `json:"name"`
	DeviationValue *float64  `json:"deviation_value,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// facultyItemResponse はバルク作成結果1件のAPIレスポンス。
type facultyItemResponse struct {
	facultyResponse
	Adopted bool `json:"adopted"`
}

// deviationValueResponse は偏差値情報のAPIレスポンス。
type deviationValueResponse struct {
	ID        string    `json:"id"`
	FacultyID string    `json:"faculty_id"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListFaculties は大学配下の学部一覧を返す。
// GET /api/universities/:id/faculties
func (h *FacultyHandler) ListFaculties(w http.ResponseWriter, r *http.Request) {
	universityID := chi.URLParam(r, "id")

	details, err := h.service.ListByUniversity(r.Context(), universityID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]facultyResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, toFacultyDetailResponse(&detail))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetFaculty は学部詳細を取得する。
// GET /api/faculties/:id
func (h *FacultyHandler) GetFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFacultyDetailResponse(detail))
}

// CreateFaculty は大学配下に学部を作成する。
// POST /api/universities/:id/faculties
func (h *FacultyHandler) CreateFaculty(w http.ResponseWriter, r *http.Request) {
	universityID := chi.URLParam(r, "id")

	var req facultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	created, err := h.service.Create(r.Context(), faculty.CreateCommand{
		OperatorID:   operatorID(r),
		UniversityID: universityID,
		Name:         req.Name,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toFacultyResponse(created, nil))
}

// UpdateFaculty は学部名を更新する。
// PUT /api/faculties/:id
func (h *FacultyHandler) UpdateFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req facultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	updated, err := h.service.Update(r.Context(), id, faculty.UpdateCommand{
		OperatorID: operatorID(r),
		Name:       req.Name,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFacultyResponse(updated, nil))
}

// DeleteFaculty は学部を削除する。
// DELETE /api/faculties/:id
func (h *FacultyHandler) DeleteFaculty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCreateFaculties は大学配下への学部一括登録を処理する。
// POST /api/universities/:id/faculties/bulk
func (h *FacultyHandler) BulkCreateFaculties(w http.ResponseWriter, r *http.Request) {
	universityID := chi.URLParam(r, "id")

	var req facultyBulkRequest
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

	results, err := h.bulk.BulkCreate(r.Context(), faculty.BulkCreateCommand{
		OperatorID:   operatorID(r),
		UniversityID: universityID,
		Items:        items,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]facultyItemResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, toFacultyItemResponse(result))
	}
	writeJSON(w, http.StatusCreated, responses)
}

// CreateDeviationValue は学部の偏差値を登録する。
// 既に登録済みの学部には400を返す（バルクパスのアップサートとは異なる）。
// POST /api/faculties/:id/deviation-value
func (h *FacultyHandler) CreateDeviationValue(w http.ResponseWriter, r *http.Request) {
	facultyID := chi.URLParam(r, "id")

	var req deviationValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	deviation, err := h.service.CreateDeviationValue(r.Context(), faculty.DeviationValueCommand{
		OperatorID: operatorID(r),
		FacultyID:  facultyID,
		Score:      req.Value,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeviationValueResponse(deviation))
}

// UpdateDeviationValue は学部の偏差値を更新する。
// PUT /api/faculties/:id/deviation-value
func (h *FacultyHandler) UpdateDeviationValue(w http.ResponseWriter, r *http.Request) {
	facultyID := chi.URLParam(r, "id")

	var req deviationValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	deviation, err := h.service.UpdateDeviationValue(r.Context(), faculty.DeviationValueCommand{
		OperatorID: operatorID(r),
		FacultyID:  facultyID,
		Score:      req.Value,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDeviationValueResponse(deviation))
}

// DeleteDeviationValue は学部の偏差値を削除する。
// DELETE /api/faculties/:id/deviation-value
func (h *FacultyHandler) DeleteDeviationValue(w http.ResponseWriter, r *http.Request) {
	facultyID := chi.URLParam(r, "id")

	if err := h.service.DeleteDeviationValue(r.Context(), facultyID); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toFacultyResponse は学部エンティティと偏差値からAPIレスポンスに変換する。
func toFacultyResponse(f *model.Faculty, deviation *model.DeviationValue) facultyResponse {
	resp := facultyResponse{
		ID:           f.ID().String(),
		UniversityID: f.UniversityID().String(),
		Name:         f.Name().String(),
		CreatedAt:    f.CreatedAt(),
		UpdatedAt:    f.UpdatedAt(),
	}
	if deviation != nil {
		score := deviation.Score().Float64()
		resp.DeviationValue = &score
	}
	return resp
}

// toDeviationValueResponse は偏差値エンティティからAPIレスポンスに変換する。
func toDeviationValueResponse(d *model.DeviationValue) deviationValueResponse {
	return deviationValueResponse{
		ID:        d.ID().String(),
		FacultyID: d.FacultyID().String(),
		Value:     d.Score().Float64(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}

// toFacultyDetailResponse はfaculty.DetailからAPIレスポンスに変換する。
func toFacultyDetailResponse(detail *faculty.Detail) facultyResponse {
	return toFacultyResponse(detail.Faculty, detail.DeviationValue)
}

// toFacultyItemResponse はバルク作成結果1件をAPIレスポンスに変換する。
func toFacultyItemResponse(result faculty.ItemResult) facultyItemResponse {
	return facultyItemResponse{
		facultyResponse: toFacultyResponse(result.Faculty, result.DeviationValue),
		Adopted:         result.Adopted,
	}
}
