package handlers

import (
	"fmt"
	"net/http"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
)

func customerAudit(c *gin.Context) services.AuditService {
	return services.AuditService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/customers/:page
func GetCustomers(c *gin.Context) {
	p := ParseListParams(c)
	f := repositories.CustomerFilter{
		FullName:  c.Query("fullName"),
		Phone:     c.Query("phone"),
		MinPoints: c.Query("minPoints"),
	}

	page, err := repositories.CustomerRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customers":      page.Items,
		"totalCustomers": page.Total,
		"totalPages":     page.TotalPages,
		"totalPoints":    page.TotalPoints,
	})
}

// POST /api/customers
func CreateCustomer(c *gin.Context) {
	var cust repositories.Customer
	if !BindJSONOrError(c, &cust) {
		return
	}
	id, err := repositories.CustomerRepository{}.Create(cust)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	customerAudit(c).Record(actorName(c), "customers", "customers", "create", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "customer created"})
}

// PATCH /api/customers/:id
func UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cust repositories.Customer
	if !BindJSONOrError(c, &cust) {
		return
	}
	if err := (repositories.CustomerRepository{}).Update(id, cust); err != nil {
		RespondDomainError(c, err)
		return
	}
	customerAudit(c).Record(actorName(c), "customers", "customers", "update", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "customer updated"})
}

// DELETE /api/customers/:id
func DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.CustomerRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	customerAudit(c).Record(actorName(c), "customers", "customers", "delete", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "customer deleted"})
}

// DELETE /api/customers with body {"ids":[...]}
func DeleteCustomers(c *gin.Context) {
	var payload idsPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	deleted, err := repositories.CustomerRepository{}.DeleteMany(payload.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	customerAudit(c).Record(actorName(c), "customers", "customers", "bulk_delete", fmt.Sprintf("count=%d", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted, "message": "customers deleted"})
}
