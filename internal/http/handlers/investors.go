package handlers

import (
	"fmt"
	"net/http"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
)

func investorAudit(c *gin.Context) services.AuditService {
	return services.AuditService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/investors/:page
func GetInvestors(c *gin.Context) {
	p := ParseListParams(c)
	f := repositories.InvestorFilter{
		FullName: c.Query("fullName"),
		Currency: c.Query("currency"),
		Phone:    c.Query("phone"),
	}

	page, err := repositories.InvestorRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors":           page.Items,
		"totalInvestors":      page.Total,
		"totalPages":          page.TotalPages,
		"totalInvestedAmount": page.TotalInvested,
	})
}

// GET /api/investors/one/:id
func GetInvestorByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	inv, err := repositories.InvestorRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// POST /api/investors
func CreateInvestor(c *gin.Context) {
	var inv repositories.Investor
	if !BindJSONOrError(c, &inv) {
		return
	}
	id, err := repositories.InvestorRepository{}.Create(inv)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	investorAudit(c).Record(actorName(c), "investors", "investors", "create", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "investor created"})
}

// PATCH /api/investors/:id
func UpdateInvestor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var inv repositories.Investor
	if !BindJSONOrError(c, &inv) {
		return
	}
	if err := (repositories.InvestorRepository{}).Update(id, inv); err != nil {
		RespondDomainError(c, err)
		return
	}
	investorAudit(c).Record(actorName(c), "investors", "investors", "update", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "investor updated"})
}

// DELETE /api/investors/:id
func DeleteInvestor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.InvestorRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	investorAudit(c).Record(actorName(c), "investors", "investors", "delete", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "investor deleted"})
}

// DELETE /api/investors with body {"ids":[...]} removes the whole set in one
// statement.
func DeleteInvestors(c *gin.Context) {
	var payload idsPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	deleted, err := repositories.InvestorRepository{}.DeleteMany(payload.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	investorAudit(c).Record(actorName(c), "investors", "investors", "bulk_delete", fmt.Sprintf("count=%d", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted, "message": "investors deleted"})
}
