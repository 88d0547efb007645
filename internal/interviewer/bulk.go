package interviewer

import (
	"context"
	"log/slog"

	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// BulkRecorder はバルク処理の結果を記録するメトリクスインターフェース。
type BulkRecorder interface {
	RecordBulkItemCreated(entity string)
	RecordBulkItemFailed(entity string)
}

// BulkCommand は面接官バルク作成・更新の入力。
type BulkCommand struct {
	OperatorID string
	Items      []Item
}

// BulkService は面接官のバルク作成・更新を提供する。
//
// バッチ全体を1つのトランザクションで実行するall-or-nothing方式。
// どの項目のエラーもバッチ全体をロールバックさせ、部分適用は起きない。
type BulkService struct {
	txManager repository.TxManager
	recorder  BulkRecorder
}

// NewBulkService はBulkServiceの新しいインスタンスを生成する。
// recorderはnilを許容する（メトリクスを記録しない）。
func NewBulkService(txManager repository.TxManager, recorder BulkRecorder) *BulkService {
	return &BulkService{txManager: txManager, recorder: recorder}
}

// BulkCreate は複数の面接官を1つのトランザクションで一括作成する。
// いずれかの項目が失敗した場合、バッチ全体をロールバックする。
func (s *BulkService) BulkCreate(ctx context.Context, cmd BulkCommand) ([]*model.Interviewer, error) {
	operator, items, err := validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	results := make([]*model.Interviewer, 0, len(items))
	err = s.txManager.WithinTx(ctx, func(repos repository.TxRepos) error {
		for _, item := range items {
			interviewer, err := buildInterviewer(item, operator)
			if err != nil {
				return err
			}
			if err := repos.Interviewers.Create(ctx, interviewer); err != nil {
				return err
			}
			results = append(results, interviewer)
		}
		return nil
	})
	if err != nil {
		s.recordFailed()
		return nil, err
	}

	s.recordCreated(len(results))
	slog.Info("面接官バルク作成が完了しました", slog.Int("total", len(results)))
	return results, nil
}

// BulkUpdate は複数の面接官を1つのトランザクションで一括更新する。
// いずれかのユーザーIDが面接官として存在しない場合、NotFoundErrorで
// バッチ全体をロールバックする。部分適用は起きない。
func (s *BulkService) BulkUpdate(ctx context.Context, cmd BulkCommand) ([]*model.Interviewer, error) {
	operator, items, err := validateCommand(cmd)
	if err != nil {
		return nil, err
	}

	results := make([]*model.Interviewer, 0, len(items))
	err = s.txManager.WithinTx(ctx, func(repos repository.TxRepos) error {
		for _, item := range items {
			interviewer, err := applyItem(ctx, repos.Interviewers, item, operator)
			if err != nil {
				return err
			}
			if err := repos.Interviewers.Update(ctx, interviewer); err != nil {
				return err
			}
			results = append(results, interviewer)
		}
		return nil
	})
	if err != nil {
		s.recordFailed()
		return nil, err
	}

	s.recordCreated(len(results))
	slog.Info("面接官バルク更新が完了しました", slog.Int("total", len(results)))
	return results, nil
}

// validateCommand は操作ユーザーIDと項目リストの有無を検証する。
func validateCommand(cmd BulkCommand) (model.ID, []Item, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return "", nil, err
	}
	if len(cmd.Items) == 0 {
		return "", nil, model.NewBadRequestError("面接官が指定されていません。")
	}
	return operator, cmd.Items, nil
}

func (s *BulkService) recordCreated(n int) {
	if s.recorder == nil {
		return
	}
	for i := 0; i < n; i++ {
		s.recorder.RecordBulkItemCreated("interviewer")
	}
}

func (s *BulkService) recordFailed() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemFailed("interviewer")
	}
}
