// Package faculty は学部と偏差値管理のドメインロジックを提供する。
package faculty

import (
	"context"
	"fmt"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// Detail は学部と付随する偏差値をまとめた応答用オブジェクト。
type Detail struct {
	Faculty        *model.Faculty
	DeviationValue *model.DeviationValue // 偏差値未登録の場合はnil
}

// CreateCommand は学部作成の入力。
type CreateCommand struct {
	OperatorID   string
	UniversityID string
	Name         string
}

// UpdateCommand は学部更新の入力。
type UpdateCommand struct {
	OperatorID string
	Name       string
}

// DeviationValueCommand は偏差値の作成・更新の入力。
type DeviationValueCommand struct {
	OperatorID string
	FacultyID  string
	Score      float64
}

// Service は学部管理のサービス層。
// 単一レコードのCRUDと偏差値の登録・更新を提供する。
type Service struct {
	facultyRepo   repository.FacultyRepository
	deviationRepo repository.DeviationValueRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	facultyRepo repository.FacultyRepository,
	deviationRepo repository.DeviationValueRepository,
) *Service {
	return &Service{
		facultyRepo:   facultyRepo,
		deviationRepo: deviationRepo,
	}
}

// Get は指定IDの学部を偏差値付きで取得する。
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	faculty, err := s.facultyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("学部の取得に失敗しました: %w", err)
	}
	if faculty == nil {
		return nil, model.NewNotFoundError("学部", id)
	}
	deviation, err := s.deviationRepo.FindByFacultyID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	return &Detail{Faculty: faculty, DeviationValue: deviation}, nil
}

// ListByUniversity は大学に属する学部一覧を偏差値付きで返す。
func (s *Service) ListByUniversity(ctx context.Context, universityID string) ([]Detail, error) {
	faculties, err := s.facultyRepo.ListByUniversityID(ctx, universityID)
	if err != nil {
		return nil, fmt.Errorf("学部一覧の取得に失敗しました: %w", err)
	}
	details := make([]Detail, 0, len(faculties))
	for _, faculty := range faculties {
		deviation, err := s.deviationRepo.FindByFacultyID(ctx, faculty.ID().String())
		if err != nil {
			return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
		}
		details = append(details, Detail{Faculty: faculty, DeviationValue: deviation})
	}
	return details, nil
}

// Create は学部を作成する。
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*model.Faculty, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	universityID, err := model.NewID(cmd.UniversityID, "大学ID")
	if err != nil {
		return nil, err
	}
	faculty, err := model.NewFaculty(universityID, cmd.Name, operator)
	if err != nil {
		return nil, err
	}
	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// Update は学部を更新する。
func (s *Service) Update(ctx context.Context, id string, cmd UpdateCommand) (*model.Faculty, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	faculty, err := s.facultyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("学部の取得に失敗しました: %w", err)
	}
	if faculty == nil {
		return nil, model.NewNotFoundError("学部", id)
	}
	if err := faculty.ChangeName(cmd.Name, operator); err != nil {
		return nil, err
	}
	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// Delete は指定IDの学部を削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.facultyRepo.Delete(ctx, id)
}

// CreateDeviationValue は学部に偏差値を新規登録する。
// 既に登録されている場合はBadRequestErrorを返す。
// バルク作成パスが既存値を黙って上書きするのとは意図的に異なる方針で、
// 単一レコードの作成ではエントリの二重登録を明示的に拒否する。
func (s *Service) CreateDeviationValue(ctx context.Context, cmd DeviationValueCommand) (*model.DeviationValue, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	facultyID, err := model.NewID(cmd.FacultyID, "学部ID")
	if err != nil {
		return nil, err
	}
	existing, err := s.deviationRepo.FindByFacultyID(ctx, facultyID.String())
	if err != nil {
		return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewBadRequestError("この学部の偏差値は既に登録されています。")
	}
	deviation, err := model.NewDeviationValue(facultyID, cmd.Score, operator)
	if err != nil {
		return nil, err
	}
	if err := s.deviationRepo.Create(ctx, deviation); err != nil {
		return nil, err
	}
	return deviation, nil
}

// UpdateDeviationValue は学部の既存偏差値を更新する。
func (s *Service) UpdateDeviationValue(ctx context.Context, cmd DeviationValueCommand) (*model.DeviationValue, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	deviation, err := s.deviationRepo.FindByFacultyID(ctx, cmd.FacultyID)
	if err != nil {
		return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	if deviation == nil {
		return nil, model.NewNotFoundError("偏差値", cmd.FacultyID)
	}
	if err := deviation.ChangeScore(cmd.Score, operator); err != nil {
		return nil, err
	}
	if err := s.deviationRepo.Update(ctx, deviation); err != nil {
		return nil, err
	}
	return deviation, nil
}

// DeleteDeviationValue は学部の偏差値を削除する。
func (s *Service) DeleteDeviationValue(ctx context.Context, facultyID string) error {
	deviation, err := s.deviationRepo.FindByFacultyID(ctx, facultyID)
	if err != nil {
		return fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	if deviation == nil {
		return model.NewNotFoundError("偏差値", facultyID)
	}
	return s.deviationRepo.Delete(ctx, deviation.ID().String())
}
