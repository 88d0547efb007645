package repository

import (
	"errors"
	"testing"

	"github.com/hitoshi/saiyo-admin/internal/model"
)

func TestNewPostgresUniversityRepo(t *testing.T) {
	var _ UniversityRepository = (*PostgresUniversityRepo)(nil)

	repo := NewPostgresUniversityRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresUniversityRepo() returned nil")
	}
}

func TestNewPostgresUniversityRankRepo(t *testing.T) {
	var _ UniversityRankRepository = (*PostgresUniversityRankRepo)(nil)

	repo := NewPostgresUniversityRankRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresUniversityRankRepo() returned nil")
	}
}

func TestNewPostgresFacultyRepo(t *testing.T) {
	var _ FacultyRepository = (*PostgresFacultyRepo)(nil)

	repo := NewPostgresFacultyRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresFacultyRepo() returned nil")
	}
}

func TestNewPostgresDeviationValueRepo(t *testing.T) {
	var _ DeviationValueRepository = (*PostgresDeviationValueRepo)(nil)

	repo := NewPostgresDeviationValueRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresDeviationValueRepo() returned nil")
	}
}

func TestNewPostgresInterviewerRepo(t *testing.T) {
	var _ InterviewerRepository = (*PostgresInterviewerRepo)(nil)

	repo := NewPostgresInterviewerRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresInterviewerRepo() returned nil")
	}
}

func TestNewPostgresUserRepo(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)

	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresUserRepo() returned nil")
	}
}

func TestNewPostgresDepartmentRepo(t *testing.T) {
	var _ DepartmentRepository = (*PostgresDepartmentRepo)(nil)

	repo := NewPostgresDepartmentRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresDepartmentRepo() returned nil")
	}
}

func TestNewPostgresEventRepo(t *testing.T) {
	var _ EventRepository = (*PostgresEventRepo)(nil)

	repo := NewPostgresEventRepo(nil)
	if repo == nil {
		t.Fatal("NewPostgresEventRepo() returned nil")
	}
}

// fakeResult はsql.Resultの最小実装。
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestRequireRowAffected(t *testing.T) {
	t.Run("1行適用された場合はnil", func(t *testing.T) {
		if err := requireRowAffected(fakeResult{rows: 1}, "大学", "univ-1"); err != nil {
			t.Errorf("requireRowAffected() = %v, want nil", err)
		}
	})

	t.Run("0行の場合はNotFoundError", func(t *testing.T) {
		err := requireRowAffected(fakeResult{rows: 0}, "大学", "univ-1")
		var notFound *model.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("requireRowAffected() = %v, want NotFoundError", err)
		}
		if notFound.Resource != "大学" {
			t.Errorf("Resource = %q, want %q", notFound.Resource, "大学")
		}
	})

	t.Run("影響行数の取得に失敗した場合はエラー", func(t *testing.T) {
		err := requireRowAffected(fakeResult{err: errors.New("driver error")}, "大学", "univ-1")
		if err == nil {
			t.Fatal("requireRowAffected() = nil, want error")
		}
		var notFound *model.NotFoundError
		if errors.As(err, &notFound) {
			t.Errorf("requireRowAffected() = %v, want non-NotFoundError", err)
		}
	})
}
