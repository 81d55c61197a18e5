package repositories

import (
	"testing"

	"loyaltyadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRewardDecideApprovesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE rewards SET status").
		WithArgs(RewardApproved, int64(5), RewardPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := RewardRepository{DB: db}
	if err := repo.Decide(5, true); err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRewardDecideAlreadyDecidedIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE rewards SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM rewards").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(RewardApproved))

	repo := RewardRepository{DB: db}
	if err := repo.Decide(5, false); !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRewardDecideMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE rewards SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM rewards").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	repo := RewardRepository{DB: db}
	if err := repo.Decide(404, true); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestRewardCreateRejectsNonPositivePoints(t *testing.T) {
	repo := RewardRepository{}
	if _, err := repo.Create(Reward{CustomerID: 1, Points: 0}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
