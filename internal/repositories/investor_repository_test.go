package repositories

import (
	"testing"

	"loyaltyadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestInvestorListWithSearchAndAggregates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%ahmed%").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(97, 125000.5))

	mock.ExpectQuery("FROM investors").
		WithArgs("%ahmed%", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "email", "invested_amount", "currency", "share_percent", "created_at",
		}).
			AddRow(4, "Ahmed Ali", "0500000001", "ahmed@example.com", 50000.0, "SAR", 12.5, "2025-01-01 10:00:00").
			AddRow(7, "Ahmed Omar", "0500000002", "", 75000.5, "SAR", 20.0, "2025-02-01 10:00:00"))

	repo := InvestorRepository{DB: db}
	page, err := repo.List(
		ListParams{Page: 1, Limit: 100, SortBy: "fullName", SortOrder: "asc"},
		InvestorFilter{FullName: "ahmed"},
	)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	if page.Total != 97 || page.TotalPages != 1 {
		t.Fatalf("totals wrong: %+v", page)
	}
	if page.TotalInvested != 125000.5 {
		t.Fatalf("aggregate wrong: %v", page.TotalInvested)
	}
	if len(page.Items) != 2 || page.Items[0].FullName != "Ahmed Ali" {
		t.Fatalf("items wrong: %+v", page.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvestorDeleteManySingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM investors WHERE id IN").
		WithArgs(int64(4), int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := InvestorRepository{DB: db}
	affected, err := repo.DeleteMany([]int64{4, 7, 9})
	if err != nil {
		t.Fatalf("DeleteMany returned error: %v", err)
	}
	if affected != 3 {
		t.Fatalf("affected = %d, want 3", affected)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvestorDeleteManyRejectsEmptySet(t *testing.T) {
	repo := InvestorRepository{}
	if _, err := repo.DeleteMany(nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInvestorCreateMapsDuplicateToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO investors").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	repo := InvestorRepository{DB: db}
	if _, err := repo.Create(Investor{FullName: "Ahmed", Currency: "sar"}); !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestInvestorUpdateMissingRowIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE investors").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := InvestorRepository{DB: db}
	if err := repo.Update(999, Investor{FullName: "Ahmed"}); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
