package faculty

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
	RecordBulkItemAdopted(entity string)
	RecordBulkItemFailed(entity string)
}

// BulkItem はバルク作成の1項目。
type BulkItem struct {
	Name           string
	DeviationScore *float64 // 任意。指定時は作成後に偏差値を登録・更新する。
}

// BulkCreateCommand は学部バルク作成の入力。
type BulkCreateCommand struct {
	OperatorID   string
	UniversityID string
	Items        []BulkItem
}

// ItemResult はバルク作成の1項目の結果。
type ItemResult struct {
	Faculty        *model.Faculty
	DeviationValue *model.DeviationValue // 偏差値指定がなく既存値もない場合はnil
	Adopted        bool                  // 既存学部を採用（重複リカバリ）した場合true
}

// BulkService は学部のバルク作成を提供する。
//
// 各項目は共有トランザクションを持たない逐次的な個別試行として処理する。
// 重複起因の競合のみリカバリ対象とし、既存行を読み直して採用する。
// それ以外のエラーは呼び出し全体を中断させる。
type BulkService struct {
	facultyRepo   repository.FacultyRepository
	deviationRepo repository.DeviationValueRepository
	recorder      BulkRecorder
}

// NewBulkService はBulkServiceの新しいインスタンスを生成する。
// recorderはnilを許容する（メトリクスを記録しない）。
func NewBulkService(
	facultyRepo repository.FacultyRepository,
	deviationRepo repository.DeviationValueRepository,
	recorder BulkRecorder,
) *BulkService {
	return &BulkService{
		facultyRepo:   facultyRepo,
		deviationRepo: deviationRepo,
		recorder:      recorder,
	}
}

// BulkCreate は大学配下に複数の学部を一括作成する。
//
// まず全項目の入力を検証し、1件でも不正があれば何も書き込まずに失敗する。
// その後、項目ごとに作成を試行する:
//   - 成功した場合、偏差値の指定があれば登録する。
//   - 学部名の重複競合の場合、(大学ID, 学部名)で既存行を読み直して採用し、
//     偏差値の指定があれば既存学部の偏差値を登録・更新する。
//   - それ以外のエラーは呼び出し全体を中断させる。
//
// 戻り値は新規作成分が入力順、リカバリで採用した分が発見順で並ぶ。
func (s *BulkService) BulkCreate(ctx context.Context, cmd BulkCreateCommand) ([]ItemResult, error) {
	operator, err := model.NewID(cmd.OperatorID, "操作ユーザーID")
	if err != nil {
		return nil, err
	}
	universityID, err := model.NewID(cmd.UniversityID, "大学ID")
	if err != nil {
		return nil, err
	}
	if len(cmd.Items) == 0 {
		return nil, model.NewBadRequestError("学部が指定されていません。")
	}

	// 事前検証: 書き込み前に全項目の入力不正を検出する
	faculties := make([]*model.Faculty, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		faculty, err := model.NewFaculty(universityID, item.Name, operator)
		if err != nil {
			return nil, err
		}
		if item.DeviationScore != nil {
			if _, err := model.NewDeviationScore(*item.DeviationScore); err != nil {
				return nil, err
			}
		}
		faculties = append(faculties, faculty)
	}

	results := make([]ItemResult, 0, len(cmd.Items))
	for i, item := range cmd.Items {
		result, err := s.createItem(ctx, universityID, faculties[i], item, operator)
		if err != nil {
			s.recordFailed()
			return nil, err
		}
		results = append(results, *result)
	}

	slog.Info("学部バルク作成が完了しました",
		slog.String("university_id", universityID.String()),
		slog.Int("total", len(results)),
	)
	return results, nil
}

// createItem は1項目の作成を試行する。重複競合の場合は既存行を採用する。
func (s *BulkService) createItem(
	ctx context.Context,
	universityID model.ID,
	faculty *model.Faculty,
	item BulkItem,
	operator model.ID,
) (*ItemResult, error) {
	err := s.facultyRepo.Create(ctx, faculty)
	if err == nil {
		result := &ItemResult{Faculty: faculty}
		if item.DeviationScore != nil {
			deviation, err := s.upsertDeviationValue(ctx, faculty.ID(), *item.DeviationScore, operator)
			if err != nil {
				return nil, err
			}
			result.DeviationValue = deviation
		}
		s.recordCreated()
		return result, nil
	}

	if !model.IsDuplicateConflict(err) {
		return nil, err
	}

	// 重複リカバリ: 競合相手が他のフィールドを更新している可能性があるため、
	// 手元の参照を信用せず必ず正とする行を読み直す
	existing, findErr := s.facultyRepo.FindByUniversityAndName(ctx, universityID.String(), faculty.Name().String())
	if findErr != nil {
		return nil, fmt.Errorf("既存学部の再取得に失敗しました: %w", findErr)
	}
	if existing == nil {
		// 競合を検出したのに行が消えている場合は元のエラーをそのまま返す
		return nil, err
	}

	slog.Info("重複学部を検出したため既存行を採用します",
		slog.String("university_id", universityID.String()),
		slog.String("faculty_id", existing.ID().String()),
		slog.String("name", existing.Name().String()),
	)

	result := &ItemResult{Faculty: existing, Adopted: true}
	if item.DeviationScore != nil {
		deviation, err := s.upsertDeviationValue(ctx, existing.ID(), *item.DeviationScore, operator)
		if err != nil {
			return nil, err
		}
		result.DeviationValue = deviation
	}
	s.recordAdopted()
	return result, nil
}

// upsertDeviationValue は学部の偏差値を登録、または既存値を更新する。
func (s *BulkService) upsertDeviationValue(
	ctx context.Context,
	facultyID model.ID,
	score float64,
	operator model.ID,
) (*model.DeviationValue, error) {
	existing, err := s.deviationRepo.FindByFacultyID(ctx, facultyID.String())
	if err != nil {
		return nil, fmt.Errorf("偏差値の取得に失敗しました: %w", err)
	}
	if existing == nil {
		created, err := model.NewDeviationValue(facultyID, score, operator)
		if err != nil {
			return nil, err
		}
		if err := s.deviationRepo.Create(ctx, created); err != nil {
			return nil, err
		}
		return created, nil
	}
	if err := existing.ChangeScore(score, operator); err != nil {
		return nil, err
	}
	if err := s.deviationRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *BulkService) recordCreated() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemCreated("faculty")
	}
}

func (s *BulkService) recordAdopted() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemAdopted("faculty")
	}
}

func (s *BulkService) recordFailed() {
	if s.recorder != nil {
		s.recorder.RecordBulkItemFailed("faculty")
	}
}
