// Package interviewer は面接官管理のドメインロジックを提供する。
package interviewer

import (
	"context"
	"fmt"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// Item は面接官の作成・更新1件分の入力。
type Item struct {
	UserID       string
	Category     string
	UniversityID string // 任意
	FacultyID    string // 任意
}

// Service は面接官管理のサービス層。
// 単一レコードのCRUDを提供する。バッチ系はBulkServiceが担う。
type Service struct {
	interviewerRepo repository.InterviewerRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(interviewerRepo repository.InterviewerRepository) *Service {
	return &Service{interviewerRepo: interviewerRepo}
}

// Get は指定ユーザーIDの面接官を取得する。
func (s *Service) Get(ctx context.Context, userID string) (*model.Interviewer, error) {
	interviewer, err := s.interviewerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("面接官の取得に失敗しました: %w", err)
	}
	if interviewer == nil {
		return nil, model.NewNotFoundError("面接官", userID)
	}
	return interviewer, nil
}

// List は面接官一覧を返す。
func (s *Service) List(ctx context.Context) ([]*model.Interviewer, error) {
	interviewers, err := s.interviewerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("面接官一覧の取得に失敗しました: %w", err)
	}
	return interviewers, nil
}

// Create は面接官を1件作成する。
func (s *Service) Create(ctx context.Context, operatorID string, item Item) (*model.Interviewer, error) {
	operator, err := model.NewID(operatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	interviewer, err := buildInterviewer(item, operator)
	if err != nil {
		return nil, err
	}
	if err := s.interviewerRepo.Create(ctx, interviewer); err != nil {
		return nil, err
	}
	return interviewer, nil
}

// Update は面接官を1件更新する。
func (s *Service) Update(ctx context.Context, operatorID string, item Item) (*model.Interviewer, error) {
	operator, err := model.NewID(operatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	interviewer, err := applyItem(ctx, s.interviewerRepo, item, operator)
	if err != nil {
		return nil, err
	}
	if err := s.interviewerRepo.Update(ctx, interviewer); err != nil {
		return nil, err
	}
	return interviewer, nil
}

// Delete は指定ユーザーIDの面接官を削除する。
func (s *Service) Delete(ctx context.Context, userID string) error {
	return s.interviewerRepo.Delete(ctx, userID)
}

// buildInterviewer は入力1件から面接官エンティティを構築する。
func buildInterviewer(item Item, operator model.ID) (*model.Interviewer, error) {
	userID, err := model.NewID(item.UserID, "ユーザーID")
	if err != nil {
		return nil, err
	}
	return model.NewInterviewer(userID, item.Category, item.UniversityID, item.FacultyID, operator)
}

// applyItem は既存の面接官を読み込んで入力1件の内容を適用する。
// 対象が存在しない場合はNotFoundErrorを返す。
func applyItem(
	ctx context.Context,
	repo repository.InterviewerRepository,
	item Item,
	operator model.ID,
) (*model.Interviewer, error) {
	interviewer, err := repo.FindByUserID(ctx, item.UserID)
	if err != nil {
		return nil, fmt.Errorf("面接官の取得に失敗しました: %w", err)
	}
	if interviewer == nil {
		return nil, model.NewNotFoundError("面接官", item.UserID)
	}
	if err := interviewer.ChangeCategory(item.Category, operator); err != nil {
		return nil, err
	}
	if err := interviewer.ChangeEducationalBackground(item.UniversityID, item.FacultyID, operator); err != nil {
		return nil, err
	}
	return interviewer, nil
}
