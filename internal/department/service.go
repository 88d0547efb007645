// Package department は部署管理のドメインロジックを提供する。
package department

import (
	"context"
	"fmt"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// Service は部署管理のサービス層。
type Service struct {
	departmentRepo repository.DepartmentRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(departmentRepo repository.DepartmentRepository) *Service {
	return &Service{departmentRepo: departmentRepo}
}

// Get は指定IDの部署を取得する。
func (s *Service) Get(ctx context.Context, id string) (*model.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("部署の取得に失敗しました: %w", err)
	}
	if department == nil {
		return nil, model.NewNotFoundError("部署", id)
	}
	return department, nil
}

// List は部署一覧を返す。
func (s *Service) List(ctx context.Context) ([]*model.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("部署一覧の取得に失敗しました: %w", err)
	}
	return departments, nil
}

// Create は部署を作成する。
func (s *Service) Create(ctx context.Context, operatorID, name string) (*model.Department, error) {
	operator, err := model.NewID(operatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	department, err := model.NewDepartment(name, operator)
	if err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Update は部署名を変更する。
func (s *Service) Update(ctx context.Context, id, operatorID, name string) (*model.Department, error) {
	operator, err := model.NewID(operatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("部署の取得に失敗しました: %w", err)
	}
	if department == nil {
		return nil, model.NewNotFoundError("部署", id)
	}
	if err := department.ChangeName(name, operator); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete は指定IDの部署を削除する。
// 所属ユーザーが存在する場合はConflictErrorを返す。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}
