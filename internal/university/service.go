// Package university は大学管理のドメインロジックを提供する。
package university

import (
	"context"
	"fmt"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// Detail は大学と付随するランクをまとめた応答用オブジェクト。
type Detail struct {
	University *model.University
	Rank       *model.UniversityRank // ランク未設定の場合はnil
}

// CreateCommand は大学作成の入力。
type CreateCommand struct {
	OperatorID string
	Name       string
	Rank       string // 任意。空文字列の場合はランクを登録しない。
}

// UpdateCommand は大学更新の入力。
type UpdateCommand struct {
	OperatorID string
	Name       string
	Rank       string // 空文字列の場合は既存ランクを削除する。
}

// Service は大学管理のサービス層。
// 単一レコードのCRUDを提供する。バッチ系はBulkServiceが担う。
type Service struct {
	universityRepo repository.UniversityRepository
	rankRepo       repository.UniversityRankRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	universityRepo repository.UniversityRepository,
	rankRepo repository.UniversityRankRepository,
) *Service {
	return &Service{
		universityRepo: universityRepo,
		rankRepo:       rankRepo,
	}
}

// Get は指定IDの大学をランク付きで取得する。
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	university, err := s.universityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("大学の取得に失敗しました: %w", err)
	}
	if university == nil {
		return nil, model.NewNotFoundError("大学", id)
	}
	rank, err := s.rankRepo.FindByUniversityID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("大学ランクの取得に失敗しました: %w", err)
	}
	return &Detail{University: university, Rank: rank}, nil
}

// List は大学一覧をランク付きで返す。
func (s *Service) List(ctx context.Context) ([]Detail, error) {
	universities, err := s.universityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("大学一覧の取得に失敗しました: %w", err)
	}
	details := make([]Detail, 0, len(universities))
	for _, university := range universities {
		rank, err := s.rankRepo.FindByUniversityID(ctx, university.ID().String())
		if err != nil {
			return nil, fmt.Errorf("大学ランクの取得に失敗しました: %w", err)
		}
		details = append(details, Detail{University: university, Rank: rank})
	}
	return details, nil
}

// Create は大学を作成する。Rankが指定されている場合はランクも併せて登録する。
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Detail, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	university, err := model.NewUniversity(cmd.Name, operator)
	if err != nil {
		return nil, err
	}
	if err := s.universityRepo.Create(ctx, university); err != nil {
		return nil, err
	}

	detail := &Detail{University: university}
	if cmd.Rank != "" {
		rank, err := model.NewUniversityRank(university.ID(), cmd.Rank, operator)
		if err != nil {
			return nil, err
		}
		if err := s.rankRepo.Create(ctx, rank); err != nil {
			return nil, err
		}
		detail.Rank = rank
	}
	return detail, nil
}

// Update は大学を更新する。
// Rankが空文字列の場合、既存ランクは削除される。バルク作成パスとは
// 意図的に異なる挙動であり、単一レコード更新ではランク省略を
// 「ランク設定の解除」として扱う。
func (s *Service) Update(ctx context.Context, id string, cmd UpdateCommand) (*Detail, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	university, err := s.universityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("大学の取得に失敗しました: %w", err)
	}
	if university == nil {
		return nil, model.NewNotFoundError("大学", id)
	}
	if err := university.ChangeName(cmd.Name, operator); err != nil {
		return nil, err
	}
	if err := s.universityRepo.Update(ctx, university); err != nil {
		return nil, err
	}

	detail := &Detail{University: university}
	if cmd.Rank == "" {
		if err := s.rankRepo.DeleteByUniversityID(ctx, id); err != nil {
			return nil, err
		}
		return detail, nil
	}

	rank, err := upsertRank(ctx, s.rankRepo, university.ID(), cmd.Rank, operator)
	if err != nil {
		return nil, err
	}
	detail.Rank = rank
	return detail, nil
}

// Delete は指定IDの大学を削除する。
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.universityRepo.Delete(ctx, id)
}

// upsertRank は大学にランクを登録、または既存ランクを更新する。
// 単一レコードパスとバルクパスで共有する。
func upsertRank(
	ctx context.Context,
	rankRepo repository.UniversityRankRepository,
	universityID model.ID,
	rank string,
	operator model.ID,
) (*model.UniversityRank, error) {
	existing, err := rankRepo.FindByUniversityID(ctx, universityID.String())
	if err != nil {
		return nil, fmt.Errorf("大学ランクの取得に失敗しました: %w", err)
	}
	if existing == nil {
		created, err := model.NewUniversityRank(universityID, rank, operator)
		if err != nil {
			return nil, err
		}
		if err := rankRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}
	if err := existing.ChangeRank(rank, operator); err != nil {
		return nil, err
	}
	if err := rankRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
