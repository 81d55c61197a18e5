package handlers

import (
	"fmt"
	"net/http"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
)

func invoiceAudit(c *gin.Context) services.AuditService {
	return services.AuditService{RequestID: middleware.GetRequestID(c)}
}

func invoiceFilter(c *gin.Context) (repositories.InvoiceFilter, bool) {
	fromDate, ok := dateQuery(c, "fromDate")
	if !ok {
		return repositories.InvoiceFilter{}, false
	}
	toDate, ok := dateQuery(c, "toDate")
	if !ok {
		return repositories.InvoiceFilter{}, false
	}
	return repositories.InvoiceFilter{
		Search:   c.Query("search"),
		Currency: c.Query("currency"),
		FromDate: fromDate,
		ToDate:   toDate,
	}, true
}

// GET /api/invoices/:page
func GetInvoices(c *gin.Context) {
	p := ParseListParams(c)
	f, ok := invoiceFilter(c)
	if !ok {
		return
	}

	page, err := repositories.InvoiceRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"invoices":      page.Items,
		"totalInvoices": page.Total,
		"totalPages":    page.TotalPages,
		"totalAmount":   page.TotalAmount,
	})
}

// GET /api/invoices/report renders currency totals over the same filter set
// as the listing, as a PDF attachment.
func GetInvoiceReportPDF(c *gin.Context) {
	f, ok := invoiceFilter(c)
	if !ok {
		return
	}
	svc := services.ReportsService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.InvoiceSummaryPDF(f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// POST /api/invoices
func CreateInvoice(c *gin.Context) {
	var inv repositories.Invoice
	if !BindJSONOrError(c, &inv) {
		return
	}
	id, err := repositories.InvoiceRepository{}.Create(inv)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceAudit(c).Record(actorName(c), "invoices", "invoices", "create", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "invoice created"})
}

// PATCH /api/invoices/:id
func UpdateInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var inv repositories.Invoice
	if !BindJSONOrError(c, &inv) {
		return
	}
	if err := (repositories.InvoiceRepository{}).Update(id, inv); err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceAudit(c).Record(actorName(c), "invoices", "invoices", "update", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "invoice updated"})
}

// DELETE /api/invoices/:id
func DeleteInvoice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.InvoiceRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceAudit(c).Record(actorName(c), "invoices", "invoices", "delete", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "invoice deleted"})
}

// DELETE /api/invoices with body {"ids":[...]}
func DeleteInvoices(c *gin.Context) {
	var payload idsPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	deleted, err := repositories.InvoiceRepository{}.DeleteMany(payload.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	invoiceAudit(c).Record(actorName(c), "invoices", "invoices", "bulk_delete", fmt.Sprintf("count=%d", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted, "message": "invoices deleted"})
}
