package model

import (
	"errors"
	"testing"
)

func TestNewDepartment(t *testing.T) {
	op := testOperator(t)

	d, err := NewDepartment("人事部", op)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.ID().IsZero() {
		t.Error("expected minted ID")
	}
	if d.Name().String() != "人事部" {
		t.Errorf("name = %q, want %q", d.Name(), "人事部")
	}

	var reqErr *RequiredFieldError
	if _, err := NewDepartment("  ", op); !errors.As(err, &reqErr) {
		t.Error("empty name should return RequiredFieldError")
	} else if reqErr.Field != "部署名" {
		t.Errorf("Field = %q, want %q", reqErr.Field, "部署名")
	}
}

func TestDepartment_ChangeName_NoOp(t *testing.T) {
	op := testOperator(t)
	d, _ := NewDepartment("人事部", op)
	before := d.UpdatedAt()

	if err := d.ChangeName("人事部", op); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !d.UpdatedAt().Equal(before) {
		t.Error("no-op change should not touch updatedAt")
	}

	if err := d.ChangeName("採用企画部", op); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.Name().String() != "採用企画部" {
		t.Errorf("name = %q, want %q", d.Name(), "採用企画部")
	}
}

func TestRestoreDepartment_Revalidates(t *testing.T) {
	d, err := RestoreDepartment("dept-1", "人事部", testStamp())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if d.ID().String() != "dept-1" {
		t.Errorf("id = %q, want %q", d.ID(), "dept-1")
	}

	if _, err := RestoreDepartment("", "人事部", testStamp()); err == nil {
		t.Error("restore with empty ID should fail")
	}
}
