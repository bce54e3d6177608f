package cart

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresLines(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery(`SELECT cart FROM users`).WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow(`{"3":1,"1":2,"9":1}`))
	mock.ExpectQuery(`FROM product p`).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "categoryName"}).AddRow(1, "Tivi").AddRow(3, ""))

	got, err := repo.Lines(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []LineView{{ProductID: 1, SubcategoryLabel: "Tivi"}, {ProductID: 3}, {ProductID: 9}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines = %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresLines_MissingUserIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT cart FROM users`).WithArgs(5).WillReturnError(sql.ErrNoRows)
	got, err := NewPostgresRepository(db).Lines(context.Background(), 5)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty lines, got %v %v", got, err)
	}
}

func TestPostgresLines_LegacyArrayCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT cart FROM users`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"cart"}).AddRow(`[4,4,2]`))
	mock.ExpectQuery(`FROM product p`).WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "categoryName"}).AddRow(2, "Loa").AddRow(4, "Quạt"))

	got, err := NewPostgresRepository(db).Lines(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ProductID != 2 || got[1].SubcategoryLabel != "Quạt" {
		t.Fatalf("unexpected lines %+v", got)
	}
}

func TestPostgresClearCart_UnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET cart = '\{\}'::jsonb`).WithArgs("2026-01-01T00:00:00Z", 8).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := NewPostgresRepository(db).ClearCart(8, "2026-01-01T00:00:00Z"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
