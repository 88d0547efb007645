package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.User, error)
	listFn     func(ctx context.Context) ([]*model.User, error)
	createFn   func(ctx context.Context, user *model.User) error
	updateFn   func(ctx context.Context, user *model.User) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- テストヘルパー ---

func testUser(t *testing.T, email string) *model.User {
	t.Helper()
	operator, err := model.NewID("operator-1", "操作ユーザーID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	departmentID, err := model.NewID("dept-1", "部署ID")
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	user, err := model.NewUser(email, "user", "太郎", "山田", "male", departmentID, operator)
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	return user
}

// --- テスト ---

// TestService_Get_NotFound は存在しないユーザーの取得がNotFoundErrorになることを検証する。
func TestService_Get_NotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.Get(context.Background(), "nonexistent")
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Get returned %v, want NotFoundError", err)
	}
}

// TestService_Create はユーザーが作成されることを検証する。
func TestService_Create(t *testing.T) {
	var created *model.User
	svc := NewService(&mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	})

	user, err := svc.Create(context.Background(), "operator-1", Item{
		Email:        "taro@example.com",
		Role:         "user",
		FirstName:    "太郎",
		LastName:     "山田",
		DepartmentID: "dept-1",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to reach the repository")
	}
	if user.Email().String() != "taro@example.com" {
		t.Errorf("Email = %q, want taro@example.com", user.Email().String())
	}
	if user.Role().String() != "user" {
		t.Errorf("Role = %q, want user", user.Role().String())
	}
}

// TestService_Create_DuplicateEmail はメールアドレス重複の競合がそのまま
// 伝播することを検証する。
func TestService_Create_DuplicateEmail(t *testing.T) {
	svc := NewService(&mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.NewDuplicateError("ユーザー", "このメールアドレスは既に登録されています。")
		},
	})

	_, err := svc.Create(context.Background(), "operator-1", Item{
		Email:        "taro@example.com",
		Role:         "user",
		FirstName:    "太郎",
		LastName:     "山田",
		DepartmentID: "dept-1",
	})
	if !model.IsDuplicateConflict(err) {
		t.Fatalf("Create returned %v, want duplicate conflict", err)
	}
}

// TestService_Update は全フィールドの変更が適用されることを検証する。
func TestService_Update(t *testing.T) {
	existing := testUser(t, "taro@example.com")
	updated := false
	svc := NewService(&mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, user *model.User) error {
			updated = true
			return nil
		},
	})

	user, err := svc.Update(context.Background(), existing.ID().String(), UpdateCommand{
		OperatorID:   "operator-2",
		Email:        "jiro@example.com",
		Role:         "admin",
		FirstName:    "次郎",
		LastName:     "山田",
		Gender:       "male",
		DepartmentID: "dept-2",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated {
		t.Error("expected Update to reach the repository")
	}
	if user.Email().String() != "jiro@example.com" {
		t.Errorf("Email = %q, want jiro@example.com", user.Email().String())
	}
	if user.Role().String() != "admin" {
		t.Errorf("Role = %q, want admin", user.Role().String())
	}
	if user.DepartmentID().String() != "dept-2" {
		t.Errorf("DepartmentID = %q, want dept-2", user.DepartmentID().String())
	}
}

// TestService_Update_NotFound は存在しないユーザーの更新がNotFoundErrorになることを検証する。
func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.Update(context.Background(), "nonexistent", UpdateCommand{
		OperatorID: "operator-1",
		Email:      "taro@example.com",
		Role:       "user",
		FirstName:  "太郎",
		LastName:   "山田",
	})
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Update returned %v, want NotFoundError", err)
	}
}

// TestService_Delete は削除時の依存競合がそのまま伝播することを検証する。
func TestService_Delete(t *testing.T) {
	svc := NewService(&mockUserRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return model.NewDependentExistsError("ユーザー", "このユーザーを参照するデータが存在するため削除できません。")
		},
	})

	err := svc.Delete(context.Background(), "user-1")
	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Delete returned %v, want ConflictError", err)
	}
	if conflict.Kind != model.ConflictDependent {
		t.Errorf("Kind = %v, want ConflictDependent", conflict.Kind)
	}
}
