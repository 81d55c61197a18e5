package services

import (
	"strings"
	"testing"

	"loyaltyadmin/internal/domain"
	"loyaltyadmin/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestImportInvestors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO investors").
		WithArgs("Ahmed Ali", "0501112222", "ahmed@example.com", 50000.0, "SAR", 12.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO investors").
		WithArgs("Sara Noor", "0503334444", nil, 7500.0, "USD", 2.0).
		WillReturnResult(sqlmock.NewResult(2, 1))

	svc := ImportService{InvestorRepo: repositories.InvestorRepository{DB: db}}

	csv := strings.Join([]string{
		"fullName,phone,email,investedAmount,currency,sharePercent",
		"Ahmed Ali,0501112222,ahmed@example.com,50000,sar,12.5",
		"Sara Noor,0503334444,,7500,USD,2",
	}, "\n")

	n, err := svc.ImportInvestors(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportInvestors returned error: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported = %d, want 2", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportInvestorsBadHeader(t *testing.T) {
	svc := ImportService{}
	_, err := svc.ImportInvestors(strings.NewReader("name,phone\nAhmed,0501112222\n"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportInvestorsBadAmount(t *testing.T) {
	svc := ImportService{}
	csv := "fullName,phone,email,investedAmount,currency,sharePercent\nAhmed,0501112222,,abc,SAR,1\n"
	_, err := svc.ImportInvestors(strings.NewReader(csv))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("error should name the offending row, got %v", err)
	}
}

func TestImportCustomersEmptyFile(t *testing.T) {
	svc := ImportService{}
	if _, err := svc.ImportCustomers(strings.NewReader("")); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestImportCustomers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO customers").
		WithArgs("Lina Omar", "0505556666", nil, int64(120), 3400.0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	svc := ImportService{CustomerRepo: repositories.CustomerRepository{DB: db}}

	csv := "fullName,phone,email,points,totalSpent\nLina Omar,0505556666,,120,3400\n"
	n, err := svc.ImportCustomers(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCustomers returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("imported = %d, want 1", n)
	}
}
