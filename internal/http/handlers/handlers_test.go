package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "loyaltyadmin/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() { intconfig.DB = prev })

	r := gin.New()
	api := r.Group("/api")
	api.GET("/investors/:page", GetInvestors)
	api.DELETE("/investors", DeleteInvestors)
	api.PATCH("/rewards/:id/approve", ApproveReward)
	api.POST("/customers/import", ImportCustomers)
	return r, mock
}

func TestGetInvestorsEnvelope(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\), COALESCE\\(SUM\\(invested_amount\\),0\\) FROM investors").
		WithArgs("%ahmed%").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(1, 50000.0))
	mock.ExpectQuery("SELECT id, full_name").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "full_name", "phone", "email", "invested_amount", "currency", "share_percent", "created_at",
		}).AddRow(7, "Ahmed Ali", "0501112222", "", 50000.0, "SAR", 12.5, "2026-01-10 09:00:00"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/investors/1?limit=100&sortBy=fullName&sortOrder=asc&fullName=ahmed", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body struct {
		Investors           []map[string]any `json:"investors"`
		TotalInvestors      int              `json:"totalInvestors"`
		TotalPages          int              `json:"totalPages"`
		TotalInvestedAmount float64          `json:"totalInvestedAmount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.TotalInvestors != 1 || len(body.Investors) != 1 {
		t.Fatalf("unexpected envelope: %s", w.Body.String())
	}
	if body.TotalInvestedAmount != 50000.0 {
		t.Fatalf("totalInvestedAmount = %v", body.TotalInvestedAmount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteInvestorsBulk(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec("DELETE FROM investors WHERE id IN").
		WithArgs(int64(4), int64(7), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/investors", strings.NewReader(`{"ids":[4,7,9]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"deletedCount":3`) {
		t.Fatalf("deletedCount missing: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportCustomersEndpoint(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec("INSERT INTO customers").
		WithArgs("Lina Omar", "0505556666", nil, int64(120), 3400.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO audit_logs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "customers.csv")
	if err != nil {
		t.Fatalf("build multipart body: %v", err)
	}
	part.Write([]byte("fullName,phone,email,points,totalSpent\nLina Omar,0505556666,,120,3400\n"))
	mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/customers/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"importedCount":1`) {
		t.Fatalf("importedCount missing: %s", w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportCustomersRequiresFile(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/customers/import", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestApproveRewardConflict(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectExec("UPDATE rewards SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM rewards").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/rewards/5/approve", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}
