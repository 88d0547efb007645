package university

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// --- モック ---

type mockUniversityRepo struct {
	findByIDFn   func(ctx context.Context, id string) (*model.University, error)
	findByNameFn func(ctx context.Context, name string) (*model.University, error)
	listFn       func(ctx context.Context) ([]*model.University, error)
	createFn     func(ctx context.Context, university *model.University) error
	updateFn     func(ctx context.Context, university *model.University) error
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockUniversityRepo) FindByID(ctx context.Context, id string) (*model.University, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUniversityRepo) FindByName(ctx context.Context, name string) (*model.University, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(ctx, name)
	}
	return nil, nil
}
func (m *mockUniversityRepo) List(ctx context.Context) ([]*model.University, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockUniversityRepo) Create(ctx context.Context, university *model.University) error {
	if m.createFn != nil {
		return m.createFn(ctx, university)
	}
	return nil
}
func (m *mockUniversityRepo) Update(ctx context.Context, university *model.University) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, university)
	}
	return nil
}
func (m *mockUniversityRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRankRepo struct {
	findByUniversityIDFn   func(ctx context.Context, universityID string) (*model.UniversityRank, error)
	createFn               func(ctx context.Context, rank *model.UniversityRank) error
	updateFn               func(ctx context.Context, rank *model.UniversityRank) error
	deleteByUniversityIDFn func(ctx context.Context, universityID string) error
}

func (m *mockRankRepo) FindByUniversityID(ctx context.Context, universityID string) (*model.UniversityRank, error) {
	if m.findByUniversityIDFn != nil {
		return m.findByUniversityIDFn(ctx, universityID)
	}
	return nil, nil
}
func (m *mockRankRepo) Create(ctx context.Context, rank *model.UniversityRank) error {
	if m.createFn != nil {
		return m.createFn(ctx, rank)
	}
	return nil
}
func (m *mockRankRepo) Update(ctx context.Context, rank *model.UniversityRank) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, rank)
	}
	return nil
}
func (m *mockRankRepo) DeleteByUniversityID(ctx context.Context, universityID string) error {
	if m.deleteByUniversityIDFn != nil {
		return m.deleteByUniversityIDFn(ctx, universityID)
	}
	return nil
}

// --- テストヘルパー ---

func testUniversity(t *testing.T, name string) *model.University {
	t.Helper()
	operator, err := model.NewID("operator-1", "操作ユーザーID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	university, err := model.NewUniversity(name, operator)
	if err != nil {
		t.Fatalf("NewUniversity failed: %v", err)
	}
	return university
}

func testRank(t *testing.T, university *model.University, rank string) *model.UniversityRank {
	t.Helper()
	operator, err := model.NewID("operator-1", "操作ユーザーID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	universityRank, err := model.NewUniversityRank(university.ID(), rank, operator)
	if err != nil {
		t.Fatalf("NewUniversityRank failed: %v", err)
	}
	return universityRank
}

// --- テスト ---

// TestService_Get は大学がランク付きで取得できることを検証する。
func TestService_Get(t *testing.T) {
	university := testUniversity(t, "東京大学")
	rank := testRank(t, university, "S")

	svc := NewService(
		&mockUniversityRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.University, error) {
				return university, nil
			},
		},
		&mockRankRepo{
			findByUniversityIDFn: func(ctx context.Context, universityID string) (*model.UniversityRank, error) {
				return rank, nil
			},
		},
	)

	detail, err := svc.Get(context.Background(), university.ID().String())
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !detail.University.Equals(university) {
		t.Error("expected the found university to be returned")
	}
	if detail.Rank == nil || detail.Rank.Rank().String() != "S" {
		t.Errorf("Rank = %v, want S", detail.Rank)
	}
}

// TestService_Get_NotFound は存在しない大学の取得がNotFoundErrorになることを検証する。
func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&mockUniversityRepo{}, &mockRankRepo{})

	_, err := svc.Get(context.Background(), "nonexistent")
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get returned %v, want NotFoundError", err)
	}
}

// TestService_Create_WithRank はランク指定付きの作成で大学とランクが登録されることを検証する。
func TestService_Create_WithRank(t *testing.T) {
	var createdRank *model.UniversityRank
	svc := NewService(
		&mockUniversityRepo{},
		&mockRankRepo{
			createFn: func(ctx context.Context, rank *model.UniversityRank) error {
				createdRank = rank
				return nil
			},
		},
	)

	detail, err := svc.Create(context.Background(), CreateCommand{
		OperatorID: "operator-1",
		Name:       "京都大学",
		Rank:       "A",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if detail.University.Name().String() != "京都大学" {
		t.Errorf("Name = %q, want 京都大学", detail.University.Name().String())
	}
	if createdRank == nil {
		t.Fatal("expected rank Create to be called")
	}
	if detail.Rank.Rank().String() != "A" {
		t.Errorf("Rank = %q, want A", detail.Rank.Rank().String())
	}
}

// TestService_Create_WithoutRank はランク省略時にランクが登録されないことを検証する。
func TestService_Create_WithoutRank(t *testing.T) {
	rankCreated := false
	svc := NewService(
		&mockUniversityRepo{},
		&mockRankRepo{
			createFn: func(ctx context.Context, rank *model.UniversityRank) error {
				rankCreated = true
				return nil
			},
		},
	)

	detail, err := svc.Create(context.Background(), CreateCommand{
		OperatorID: "operator-1",
		Name:       "京都大学",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rankCreated {
		t.Error("expected no rank to be created when Rank is omitted")
	}
	if detail.Rank != nil {
		t.Errorf("Rank = %v, want nil", detail.Rank)
	}
}

// TestService_Create_InvalidName は不正な大学名の作成がリポジトリに届く前に失敗することを検証する。
func TestService_Create_InvalidName(t *testing.T) {
	createCalled := false
	svc := NewService(
		&mockUniversityRepo{
			createFn: func(ctx context.Context, university *model.University) error {
				createCalled = true
				return nil
			},
		},
		&mockRankRepo{},
	)

	_, err := svc.Create(context.Background(), CreateCommand{OperatorID: "operator-1", Name: ""})
	var required *model.RequiredFieldError
	if !errors.As(err, &required) {
		t.Fatalf("Create returned %v, want RequiredFieldError", err)
	}
	if createCalled {
		t.Error("expected Create not to reach the repository")
	}
}

// TestService_Update_RankOmittedDeletesRank は単一レコード更新でランク省略が
// 既存ランクの削除として扱われることを検証する。
func TestService_Update_RankOmittedDeletesRank(t *testing.T) {
	university := testUniversity(t, "東京大学")
	deletedUniversityID := ""
	svc := NewService(
		&mockUniversityRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.University, error) {
				return university, nil
			},
		},
		&mockRankRepo{
			deleteByUniversityIDFn: func(ctx context.Context, universityID string) error {
				deletedUniversityID = universityID
				return nil
			},
		},
	)

	detail, err := svc.Update(context.Background(), university.ID().String(), UpdateCommand{
		OperatorID: "operator-2",
		Name:       "東京大学",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if deletedUniversityID != university.ID().String() {
		t.Errorf("expected DeleteByUniversityID to be called for %s, got %q",
			university.ID().String(), deletedUniversityID)
	}
	if detail.Rank != nil {
		t.Errorf("Rank = %v, want nil", detail.Rank)
	}
}

// TestService_Update_RankProvidedUpdatesExisting はランク指定時に既存ランクが更新されることを検証する。
func TestService_Update_RankProvidedUpdatesExisting(t *testing.T) {
	university := testUniversity(t, "東京大学")
	existing := testRank(t, university, "B")
	rankUpdated := false
	rankDeleted := false
	svc := NewService(
		&mockUniversityRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.University, error) {
				return university, nil
			},
		},
		&mockRankRepo{
			findByUniversityIDFn: func(ctx context.Context, universityID string) (*model.UniversityRank, error) {
				return existing, nil
			},
			updateFn: func(ctx context.Context, rank *model.UniversityRank) error {
				rankUpdated = true
				return nil
			},
			deleteByUniversityIDFn: func(ctx context.Context, universityID string) error {
				rankDeleted = true
				return nil
			},
		},
	)

	detail, err := svc.Update(context.Background(), university.ID().String(), UpdateCommand{
		OperatorID: "operator-2",
		Name:       "東京大学",
		Rank:       "S",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !rankUpdated {
		t.Error("expected rank Update to be called")
	}
	if rankDeleted {
		t.Error("expected DeleteByUniversityID not to be called")
	}
	if detail.Rank.Rank().String() != "S" {
		t.Errorf("Rank = %q, want S", detail.Rank.Rank().String())
	}
}

// TestService_Update_RankProvidedCreatesWhenMissing はランク未登録の大学への
// ランク指定更新で新規登録されることを検証する。
func TestService_Update_RankProvidedCreatesWhenMissing(t *testing.T) {
	university := testUniversity(t, "東京大学")
	rankCreated := false
	svc := NewService(
		&mockUniversityRepo{
			findByIDFn: func(ctx context.Context, id string) (*model.University, error) {
				return university, nil
			},
		},
		&mockRankRepo{
			createFn: func(ctx context.Context, rank *model.UniversityRank) error {
				rankCreated = true
				return nil
			},
		},
	)

	detail, err := svc.Update(context.Background(), university.ID().String(), UpdateCommand{
		OperatorID: "operator-2",
		Name:       "東京大学",
		Rank:       "C",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !rankCreated {
		t.Error("expected rank Create to be called")
	}
	if detail.Rank.Rank().String() != "C" {
		t.Errorf("Rank = %q, want C", detail.Rank.Rank().String())
	}
}

// TestService_Update_NotFound は存在しない大学の更新がNotFoundErrorになることを検証する。
func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(&mockUniversityRepo{}, &mockRankRepo{})

	_, err := svc.Update(context.Background(), "nonexistent", UpdateCommand{
		OperatorID: "operator-1",
		Name:       "東京大学",
	})
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Update returned %v, want NotFoundError", err)
	}
}

// TestService_Delete はリポジトリのエラーがそのまま伝播することを検証する。
func TestService_Delete(t *testing.T) {
	dependent := model.NewDependentExistsError("大学", "この大学を参照するデータが存在するため削除できません。")
	svc := NewService(
		&mockUniversityRepo{
			deleteFn: func(ctx context.Context, id string) error {
				return dependent
			},
		},
		&mockRankRepo{},
	)

	err := svc.Delete(context.Background(), "univ-1")
	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Delete returned %v, want ConflictError", err)
	}
	if conflict.Kind != model.ConflictDependent {
		t.Errorf("Kind = %v, want ConflictDependent", conflict.Kind)
	}
}
