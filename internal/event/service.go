// Package event は採用イベント管理のドメインロジックを提供する。
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// CreateCommand はイベント作成の入力。
type CreateCommand struct {
	OperatorID   string
	Name         string
	Kind         string
	DepartmentID string
	HeldAt       time.Time
	Venue        string // 任意
}

// UpdateCommand はイベント更新の入力。
type UpdateCommand struct {
	OperatorID string
	Name       string
	HeldAt     time.Time
	Venue      string
}

// Service は採用イベント管理のサービス層。
type Service struct {
	eventRepo repository.EventRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(eventRepo repository.EventRepository) *Service {
	return &Service{eventRepo: eventRepo}
}

// Get は指定IDのイベントを取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewNotFoundError("イベント", id)
	}
	return event, nil
}

// List はイベント一覧を開催日時順で返す。
func (s *Service) List(ctx context.Context) ([]*model.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("イベント一覧の取得に失敗しました: %w", err)
	}
	return events, nil
}

// Create はイベントを作成する。
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*model.Event, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	departmentID, err := model.NewID(cmd.DepartmentID, "部署ID")
	if err != nil {
		return nil, err
	}
	event, err := model.NewEvent(cmd.Name, cmd.Kind, departmentID, cmd.HeldAt, cmd.Venue, operator)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update はイベントの名称・開催日時・会場を更新する。
func (s *Service) Update(ctx context.Context, id string, cmd UpdateCommand) (*model.Event, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("イベントの取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewNotFoundError("イベント", id)
	}
	if err := event.ChangeName(cmd.Name, operator); err != nil {
		return nil, err
	}
	if err := event.Reschedule(cmd.HeldAt, operator); err != nil {
		return nil, err
	}
	if err := event.ChangeVenue(cmd.Venue, operator); err != nil {
		return nil, err
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete は指定IDのイベントを削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
