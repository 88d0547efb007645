package university

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/saiyo-admin/internal/faculty"
	"github.com/hitoshi/saiyo-admin/internal/model"
	"github.com/hitoshi/saiyo-admin/internal/repository"
)

// FacultyBulkCreator は学部のバルク作成インターフェース。
type FacultyBulkCreator interface {
	BulkCreate(ctx context.Context, cmd faculty.BulkCreateCommand) ([]faculty.ItemResult, error)
}

// BulkRecorder はバルク処理の結果を記録するメトリクスインターフェース。
type BulkRecorder interface {
	RecordBulkItemCreated(entity string)
	RecordBulkItemAdopted(entity string)
	RecordBulkItemFailed(entity string)
}

// BulkCreateCommand は大学バルク作成の入力。
type BulkCreateCommand struct {
	OperatorID string
	Name       string
	Rank       string // 任意。空文字列の場合は既存ランクに触れない。
	Faculties  []faculty.BulkItem
}

// BulkResult は大学バルク作成の結果。
type BulkResult struct {
	University *model.University
	Rank       *model.UniversityRank // 解決済みのランク。未設定の場合はnil
	Adopted    bool                  // 既存大学を採用（重複リカバリ）した場合true
	Faculties  []faculty.ItemResult
}

// BulkService は大学のバルク作成を提供する。
//
// 大学とランクの解決は1つのトランザクション内で行い、途中のエラーは
// 全体をロールバックさせる。学部の一括作成はコミット後に逐次実行する。
type BulkService struct {
	txManager   repository.TxManager
	facultyBulk FacultyBulkCreator
	recorder    BulkRecorder
}

// NewBulkService はBulkServiceの新しいインスタンスを生成する。
// recorderはnilを許容する（メトリクスを記録しない）。
func NewBulkService(
	txManager repository.TxManager,
	facultyBulk FacultyBulkCreator,
	recorder BulkRecorder,
) *BulkService {
	return &BulkService{
		txManager:   txManager,
		facultyBulk: facultyBulk,
		recorder:    recorder,
	}
}

// BulkCreate は大学を名前で検索または作成し、ランクと学部を一括登録する。
//
// トランザクション内の手順:
//  1. 大学の作成を試行する。大学名の重複競合の場合は名前で既存行を
//     読み直して採用する。それ以外のエラーはロールバックさせる。
//  2. Rankが指定されている場合のみランクを登録・更新する。省略時は
//     既存ランクに一切触れない。単一レコード更新パスの「省略は削除」
//     とは意図的に異なる挙動で、バルク取込が手動設定済みのランクを
//     破壊しないようにしている。
//
// コミット後、Facultiesが指定されていれば学部のバルク作成を実行する。
// 学部側のエラーは大学・ランクの登録結果を取り消さない。
func (s *BulkService) BulkCreate(ctx context.Context, cmd BulkCreateCommand) (*BulkResult, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	err = s.txManager.WithinTx(ctx, func(repos repository.TxRepos) error {
		university, adopted, err := findOrCreateUniversity(ctx, repos.Universities, cmd.Name, operator)
		if err != nil {
			return err
		}
		result.University = university
		result.Adopted = adopted

		if cmd.Rank == "" {
			existing, err := repos.UniversityRanks.FindByUniversityID(ctx, university.ID().String())
			if err != nil {
				return fmt.Errorf("大学ランクの取得に失敗しました: %w", err)
			}
			result.Rank = existing
			return nil
		}

		rank, err := upsertRank(ctx, repos.UniversityRanks, university.ID(), cmd.Rank, operator)
		if err != nil {
			return err
		}
		result.Rank = rank
		return nil
	})
	if err != nil {
		s.recordFailed()
		return nil, err
	}

	if result.Adopted {
		s.recordAdopted()
	} else {
		s.recordCreated()
	}
	slog.Info("大学バルク作成が完了しました",
		slog.String("university_id", result.University.ID().String()),
		slog.Bool("adopted", result.Adopted),
		slog.Int("faculties", len(cmd.Faculties)),
	)

	if len(cmd.Faculties) == 0 {
		return result, nil
	}

	facultyResults, err := s.facultyBulk.BulkCreate(ctx, faculty.BulkCreateCommand{
		OperatorID:   cmd.OperatorID,
		UniversityID: result.University.ID().String(),
		Items:        cmd.Faculties,
	})
	if err != nil {
		return nil, err
	}
	result.Faculties = facultyResults
	return result, nil
}

// findOrCreateUniversity は大学の作成を試行し、名前の重複競合の場合は
// 既存行を読み直して採用する。
func findOrCreateUniversity(
	ctx context.Context,
	universityRepo repository.UniversityRepository,
	name string,
	operator model.ID,
) (*model.University, bool, error) {
	university, err := model.NewUniversity(name, operator)
	if err != nil {
		return nil, false, err
	}

	createErr := universityRepo.Create(ctx, university)
	if createErr == nil {
		return university, false, nil
	}
	if !model.IsDuplicateConflict(createErr) {
		return nil, false, createErr
	}

	// 重複リカバリ: 競合相手が他のフィールドを更新している可能性があるため、
	// 手元の参照を信用せず必ず正とする行を読み直す
	existing, err := universityRepo.FindByName(ctx, university.Name().String())
	if err != nil {
		return nil, false, fmt.Errorf("既存大学の再取得に失敗しました: %w", err)
	}
	if existing == nil {
		// 競合を検出したのに行が消えている場合は元のエラーをそのまま返す
		return nil, false, createErr
	}

	slog.Info("重複大学を検出したため既存行を採用します",
		slog.String("university_id", existing.ID().String()),
		slog.String("name", existing.Name().String()),
	)
	return existing, true, nil
}

func (s *BulkService) recordCreated() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemCreated("university")
	}
}

func (s *BulkService) recordAdopted() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemAdopted("university")
	}
}

func (s *BulkService) recordFailed() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemFailed("university")
	}
}
