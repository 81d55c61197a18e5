package handlers

import (
	"fmt"
	"io"
	"net/http"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 8 << 20 // 8 MiB

// POST /api/investors/import. The CSV arrives as multipart field "file".
func ImportInvestors(c *gin.Context) {
	f, ok := openImportFile(c)
	if !ok {
		return
	}
	defer f.Close()

	svc := services.ImportService{RequestID: middleware.GetRequestID(c)}
	imported, err := svc.ImportInvestors(f)
	finishImport(c, "investors", imported, err)
}

// POST /api/customers/import
func ImportCustomers(c *gin.Context) {
	f, ok := openImportFile(c)
	if !ok {
		return
	}
	defer f.Close()

	svc := services.ImportService{RequestID: middleware.GetRequestID(c)}
	imported, err := svc.ImportCustomers(f)
	finishImport(c, "customers", imported, err)
}

func finishImport(c *gin.Context, table string, imported int, err error) {
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	audit := services.AuditService{RequestID: middleware.GetRequestID(c)}
	audit.Record(actorName(c), table, table, "import", fmt.Sprintf("count=%d", imported))
	c.JSON(http.StatusOK, gin.H{"importedCount": imported, "message": "import completed"})
}

func openImportFile(c *gin.Context) (io.ReadCloser, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "multipart field 'file' is required", err)
		return nil, false
	}
	if header.Size > maxImportSize {
		RespondError(c, http.StatusBadRequest, "file too large", nil)
		return nil, false
	}
	f, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "cannot read uploaded file", err)
		return nil, false
	}
	return f, true
}
