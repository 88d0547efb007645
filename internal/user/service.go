// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// Item はユーザー作成1件分の入力。
type Item struct {
	Email        string
	Role         string
	FirstName    string
	LastName     string
	Gender       string // 任意
	DepartmentID string
}

// UpdateCommand はユーザー更新の入力。
type UpdateCommand struct {
	OperatorID   string
	Email        string
	Role         string
	FirstName    string
	LastName     string
	Gender       string
	DepartmentID string
}

// Service はユーザー管理のサービス層。
// 単一レコードのCRUDを提供する。バッチ系はBulkServiceが担う。
type Service struct {
	userRepo repository.UserRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// Get は指定IDのユーザーを取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("ユーザー", id)
	}
	return user, nil
}

// List はユーザー一覧を返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ユーザー一覧の取得に失敗しました: %w", err)
	}
	return users, nil
}

// Create はユーザーを1件作成する。
func (s *Service) Create(ctx context.Context, operatorID string, item Item) (*model.User, error) {
	operator, err := model.NewID(operatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	user, err := buildUser(item, operator)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update はユーザーを更新する。
func (s *Service) Update(ctx context.Context, id string, cmd UpdateCommand) (*model.User, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("ユーザー", id)
	}
	if err := user.ChangeEmail(cmd.Email, operator); err != nil {
		return nil, err
	}
	if err := user.ChangeRole(cmd.Role, operator); err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(cmd.FirstName, cmd.LastName, cmd.Gender, operator); err != nil {
		return nil, err
	}
	if err := user.ChangeDepartment(cmd.DepartmentID, operator); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete は指定IDのユーザーを削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// buildUser は入力1件からユーザーエンティティを構築する。
func buildUser(item Item, operator model.ID) (*model.User, error) {
	departmentID, err := model.NewID(item.DepartmentID, "部署ID")
	if err != nil {
		return nil, err
	}
	return model.NewUser(item.Email, item.Role, item.FirstName, item.LastName, item.Gender, departmentID, operator)
}
