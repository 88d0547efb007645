package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/user"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, operatorID string, item user.Item) (*model.User, error)
	Update(ctx context.Context, id string, cmd user.UpdateCommand) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// UserBulkInterface はユーザーバルク作成のインターフェース。
type UserBulkInterface interface {
	BulkCreate(ctx context.Context, cmd user.BulkCreateCommand) (*user.BulkResult, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
	bulk    UserBulkInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface, bulk UserBulkInterface) *UserHandler {
	return &UserHandler{
		service: service,
		bulk:    bulk,
	}
}

// userItem はユーザー作成・更新1件分のボディ。
type userItem struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Gender       string `json:"gender,omitempty"`
	DepartmentID string `json:"department_id"`
}

// userBulkRequest はユーザーバルク作成リクエストのボディ。
type userBulkRequest struct {
	Users []userItem `json:"users"`
}

// userResponse はユーザー情報のAPIレスポンス。
type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Gender       string    `json:"gender,omitempty"`
	DepartmentID string    `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// userBulkFailure はバルク作成で失敗した項目のAPIレスポンス。
type userBulkFailure struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// userBulkResponse はユーザーバルク作成のAPIレスポンス。
// 成功した項目と失敗した項目を併記する。
type userBulkResponse struct {
	Users    []userResponse    `json:"users"`
	Failures []userBulkFailure `json:"failures,omitempty"`
}

// ListUsers はユーザー一覧を返す。
// GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetUser はユーザー詳細を取得する。
// GET /api/users/:id
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(found))
}

// CreateUser はユーザーを1件作成する。
// POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	created, err := h.service.Create(r.Context(), operatorID(r), toUserItem(req))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

// UpdateUser はユーザーを更新する。
// PUT /api/users/:id
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req userItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	updated, err := h.service.Update(r.Context(), id, user.UpdateCommand{
		OperatorID:   operatorID(r),
		Email:        req.Email,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// DeleteUser はユーザーを削除する。
// DELETE /api/users/:id
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkCreateUsers はユーザーの一括作成を処理する。
// ベストエフォート方式で、失敗した項目はスキップして結果に併記する。
// POST /api/users/bulk
func (h *UserHandler) BulkCreateUsers(w http.ResponseWriter, r *http.Request) {
	var req userBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	items := make([]user.Item, 0, len(req.Users))
	for _, item := range req.Users {
		items = append(items, toUserItem(item))
	}

	result, err := h.bulk.BulkCreate(r.Context(), user.BulkCreateCommand{
		OperatorID: operatorID(r),
		Items:      items,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := userBulkResponse{Users: make([]userResponse, 0, len(result.Users))}
	for _, u := range result.Users {
		resp.Users = append(resp.Users, toUserResponse(u))
	}
	for _, failure := range result.Failures {
		resp.Failures = append(resp.Failures, userBulkFailure{
			Index:   failure.Index,
			Message: failure.Message,
		})
	}
	writeJSON(w, http.StatusCreated, resp)
}

// --- ヘルパー関数 ---

func toUserItem(req userItem) user.Item {
	return user.Item{
		Email:        req.Email,
		Role:         req.Role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Gender:       req.Gender,
		DepartmentID: req.DepartmentID,
	}
}

// toUserResponse はmodel.UserからAPIレスポンスに変換する。
func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID().String(),
		Email:        u.Email().String(),
		Role:         u.Role().String(),
		FirstName:    u.FirstName().String(),
		LastName:     u.LastName().String(),
		Gender:       u.Gender().String(),
		DepartmentID: u.DepartmentID().String(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}
