package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/saiyo-admin/internal/event"
	"github.com/hitoshi/saiyo-admin/internal/model"
)

// EventServiceInterface はイベントハンドラーが必要とするサービスインターフェース。
type EventServiceInterface interface {
	Get(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	Create(ctx context.Context, cmd event.CreateCommand) (*model.Event, error)
	Update(ctx context.Context, id string, cmd event.UpdateCommand) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler は採用イベント管理のHTTPハンドラー。
type EventHandler struct {
	service EventServiceInterface
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(service EventServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// eventCreateRequest はイベント作成リクエストのボディ。
type eventCreateRequest struct {
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	DepartmentID string    `json:"department_id"`
	HeldAt       time.Time `json:"held_at"`
	Venue        string    `json:"venue,omitempty"`
}

// eventUpdateRequest はイベント更新リクエストのボディ。
type eventUpdateRequest struct {
	Name   string    `json:"name"`
	HeldAt time.Time `json:"held_at"`
	Venue  string    `json:"venue,omitempty"`
}

// eventResponse はイベント情報のAPIレスポンス。
type eventResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	DepartmentID string    `json:"department_id"`
	HeldAt       time.Time `json:"held_at"`
	Venue        string    `json:"venue,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListEvents はイベント一覧を開催日時順で返す。
// GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]eventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetEvent はイベント詳細を取得する。
// GET /api/events/:id
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(found))
}

// CreateEvent はイベントを作成する。
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	created, err := h.service.Create(r.Context(), event.CreateCommand{
		OperatorID:   operatorID(r),
		Name:         req.Name,
		Kind:         req.Kind,
		DepartmentID: req.DepartmentID,
		HeldAt:       req.HeldAt,
		Venue:        req.Venue,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventResponse(created))
}

// UpdateEvent はイベントの名称・開催日時・会場を更新する。
// PUT /api/events/:id
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	updated, err := h.service.Update(r.Context(), id, event.UpdateCommand{
		OperatorID: operatorID(r),
		Name:       req.Name,
		HeldAt:     req.HeldAt,
		Venue:      req.Venue,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(updated))
}

// DeleteEvent はイベントを削除する。
// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// toEventResponse はmodel.EventからAPIレスポンスに変換する。
func toEventResponse(e *model.Event) eventResponse {
	return eventResponse{
		ID:           e.ID().String(),
		Name:         e.Name().String(),
		Kind:         e.Kind().String(),
		DepartmentID: e.DepartmentID().String(),
		HeldAt:       e.HeldAt(),
		Venue:        e.Venue(),
		CreatedAt:    e.CreatedAt(),
		UpdatedAt:    e.UpdatedAt(),
	}
}
