package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// BulkRecorder はバルク処理の結果を記録するメトリクスインターフェース。
type BulkRecorder interface {
	RecordBulkItemCreated(entity string)
	RecordBulkItemFailed(entity string)
}

// BulkCreateCommand はユーザーバルク作成の入力。
type BulkCreateCommand struct {
	OperatorID string
	Items      []Item
}

// ItemFailure はバルク作成で失敗した項目の記録。
type ItemFailure struct {
	Index   int    // 入力リスト内の位置
	Message string // 失敗理由
}

// BulkResult はユーザーバルク作成の結果。
// 成功した項目と失敗した項目を併記し、どちらが混在しても
// 呼び出し全体はエラーにならない。
type BulkResult struct {
	Users    []*model.User
	Failures []ItemFailure
}

// BulkService はユーザーのバルク作成を提供する。
//
// 各項目を独立して試行するベストエフォート方式。失敗した項目は
// 理由を記録してスキップし、残りの項目の処理を続行する。
// 面接官バルクのall-or-nothing方式とは意図的に異なる。
type BulkService struct {
	userRepo repository.UserRepository
	recorder BulkRecorder
}

// NewBulkService はBulkServiceの新しいインスタンスを生成する。
// recorderはnilを許容する（メトリクスを記録しない）。
func NewBulkService(userRepo repository.UserRepository, recorder BulkRecorder) *BulkService {
	return &BulkService{userRepo: userRepo, recorder: recorder}
}

// BulkCreate は複数のユーザーを一括作成する。
//
// 項目ごとに構築と作成を試行し、失敗した項目（入力不正、メールアドレス
// 重複など）は位置と理由を記録してスキップする。作成に成功したユーザーは
// ストレージから読み直して返す。失敗はエラーとして伝播させず、
// 結果のFailuresで報告する。
func (s *BulkService) BulkCreate(ctx context.Context, cmd BulkCreateCommand) (*BulkResult, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	if len(cmd.Items) == 0 {
		return nil, model.NewBadRequestError("ユーザーが指定されていません。")
	}

	result := &BulkResult{}
	createdIDs := make([]model.ID, 0, len(cmd.Items))
	for i, item := range cmd.Items {
		id, err := s.createItem(ctx, item, operator)
		if err != nil {
			s.recordFailed()
			slog.Warn("ユーザーバルク作成の項目が失敗したためスキップします",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			result.Failures = append(result.Failures, ItemFailure{Index: i, Message: err.Error()})
			continue
		}
		s.recordCreated()
		createdIDs = append(createdIDs, id)
	}

	// 作成に成功したユーザーをストレージから読み直す
	for _, id := range createdIDs {
		user, err := s.userRepo.FindByID(ctx, id.String())
		if err != nil {
			return nil, fmt.Errorf("作成済みユーザーの取得に失敗しました: %w", err)
		}
		if user == nil {
			return nil, model.NewNotFoundError("ユーザー", id.String())
		}
		result.Users = append(result.Users, user)
	}

	slog.Info("ユーザーバルク作成が完了しました",
		slog.Int("created", len(result.Users)),
		slog.Int("failed", len(result.Failures)),
	)
	return result, nil
}

// createItem は1項目の構築と作成を試行し、作成したユーザーのIDを返す。
func (s *BulkService) createItem(ctx context.Context, item Item, operator model.ID) (model.ID, error) {
	user, err := buildUser(item, operator)
	if err != nil {
		return "", err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID(), nil
}

func (s *BulkService) recordCreated() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemCreated("user")
	}
}

func (s *BulkService) recordFailed() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemFailed("user")
	}
}
