package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// DepartmentServiceInterface は部署ハンドラーが必要とするサービスインターフェース。
type DepartmentServiceInterface interface {
	Get(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]*model.Department, error)
	Create(ctx context.Context, operatorID, name string) (*model.Department, error)
	Update(ctx context.Context, id, operatorID, name string) (*model.Department, error)
	Delete(ctx context.Context, id string) error
}

// DepartmentHandler は部署管理のHTTPハンドラー。
type DepartmentHandler struct {
	service DepartmentServiceInterface
}

// NewDepartmentHandler はDepartmentHandlerを生成する。
func NewDepartmentHandler(service DepartmentServiceInterface) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// departmentRequest は部署作成・更新リクエストのボディ。
type departmentRequest struct {
	Name string `json:"name"`
}

// departmentResponse は部署情報のAPIレスポンス。
type departmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListDepartments は部署一覧を返す。
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]departmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, toDepartmentResponse(d))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetDepartment は部署詳細を取得する。
// GET /api/departments/:id
func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepartmentResponse(found))
}

// CreateDepartment は部署を作成する。
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	created, err := h.service.Create(r.Context(), operatorID(r), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDepartmentResponse(created))
}

// UpdateDepartment は部署名を更新する。
// PUT /api/departments/:id
func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	updated, err := h.service.Update(r.Context(), id, operatorID(r), req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDepartmentResponse(updated))
}

// DeleteDepartment は部署を削除する。
// 所属ユーザーが存在する場合は400（DEPENDENT_EXISTS）を返す。
// DELETE /api/departments/:id
func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toDepartmentResponse はmodel.DepartmentからAPIレスポンスに変換する。
func toDepartmentResponse(d *model.Department) departmentResponse {
	return departmentResponse{
		ID:        d.ID().String(),
		Name:      d.Name().String(),
		CreatedAt: d.CreatedAt(),
		UpdatedAt: d.UpdatedAt(),
	}
}
