package department

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

// --- モック ---

type mockDepartmentRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Department, error)
	listFn     func(ctx context.Context) ([]*model.Department, error)
	createFn   func(ctx context.Context, department *model.Department) error
	updateFn   func(ctx context.Context, department *model.Department) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockDepartmentRepo) FindByID(ctx context.Context, id string) (*model.Department, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockDepartmentRepo) List(ctx context.Context) ([]*model.Department, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockDepartmentRepo) Create(ctx context.Context, department *model.Department) error {
	if m.createFn != nil {
		return m.createFn(ctx, department)
	}
	return nil
}
func (m *mockDepartmentRepo) Update(ctx context.Context, department *model.Department) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, department)
	}
	return nil
}
func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- テスト ---

// TestService_Create は部署が作成されることを検証する。
func TestService_Create(t *testing.T) {
	var created *model.Department
	svc := NewService(&mockDepartmentRepo{
		createFn: func(ctx context.Context, department *model.Department) error {
			created = department
			return nil
		},
	})

	department, err := svc.Create(context.Background(), "operator-1", "人事部")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to reach the repository")
	}
	if department.Name().String() != "人事部" {
		t.Errorf("Name = %q, want 人事部", department.Name().String())
	}
}

// TestService_Create_EmptyName は部署名なしの作成がRequiredFieldErrorになることを検証する。
func TestService_Create_EmptyName(t *testing.T) {
	svc := NewService(&mockDepartmentRepo{})

	_, err := svc.Create(context.Background(), "operator-1", "")
	var required *model.RequiredFieldError
	if !errors.As(err, &required) {
		t.Fatalf("Create returned %v, want RequiredFieldError", err)
	}
	if required.Field != "部署名" {
		t.Errorf("Field = %q, want 部署名", required.Field)
	}
}

// TestService_Update_NotFound は存在しない部署の更新がNotFoundErrorになることを検証する。
func TestService_Update_NotFound(t *testing.T) {
	svc := NewService(&mockDepartmentRepo{})

	_, err := svc.Update(context.Background(), "nonexistent", "operator-1", "総務部")
	var notFound *model.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Update returned %v, want NotFoundError", err)
	}
}

// TestService_Delete_DependentUsers は所属ユーザーが存在する部署の削除が
// 依存競合として伝播することを検証する。
func TestService_Delete_DependentUsers(t *testing.T) {
	svc := NewService(&mockDepartmentRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return model.NewDependentExistsError("部署", "この部署に所属するユーザーが存在するため削除できません。")
		},
	})

	err := svc.Delete(context.Background(), "dept-1")
	var conflict *model.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Delete returned %v, want ConflictError", err)
	}
	if conflict.Kind != model.ConflictDependent {
		t.Errorf("Kind = %v, want ConflictDependent", conflict.Kind)
	}
}
