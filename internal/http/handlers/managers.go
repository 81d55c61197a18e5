package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"loyaltyadmin/internal/domain"
	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func managerAudit(c *gin.Context) services.AuditService {
	return services.AuditService{RequestID: middleware.GetRequestID(c)}
}

// managerPayload carries the plaintext password on create/update. It is
// hashed here and never stored or echoed back.
type managerPayload struct {
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (p managerPayload) toManager() (repositories.Manager, error) {
	m := repositories.Manager{
		FullName: p.FullName,
		UserName: p.UserName,
		Phone:    p.Phone,
		Role:     p.Role,
	}
	if pw := strings.TrimSpace(p.Password); pw != "" {
		if len(pw) < 8 {
			return m, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return m, domain.InternalError{Msg: "failed to hash password", Err: err}
		}
		m.PasswordHash = string(hash)
	}
	return m, nil
}

// GET /api/managers/:page
func GetManagers(c *gin.Context) {
	p := ParseListParams(c)
	f := repositories.ManagerFilter{
		FullName: c.Query("fullName"),
		Role:     c.Query("role"),
	}

	page, err := repositories.ManagerRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"managers":      page.Items,
		"totalManagers": page.Total,
		"totalPages":    page.TotalPages,
	})
}

// POST /api/managers
func CreateManager(c *gin.Context) {
	var payload managerPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	if strings.TrimSpace(payload.Password) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "password", Msg: "must not be empty"})
		return
	}
	m, err := payload.toManager()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	id, err := repositories.ManagerRepository{}.Create(m)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	managerAudit(c).Record(actorName(c), "managers", "managers", "create", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "manager created"})
}

// PATCH /api/managers/:id. An empty password leaves the stored hash alone.
func UpdateManager(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload managerPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	m, err := payload.toManager()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := (repositories.ManagerRepository{}).Update(id, m); err != nil {
		RespondDomainError(c, err)
		return
	}
	managerAudit(c).Record(actorName(c), "managers", "managers", "update", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "manager updated"})
}

// DELETE /api/managers/:id
func DeleteManager(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.ManagerRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	managerAudit(c).Record(actorName(c), "managers", "managers", "delete", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "manager deleted"})
}

// DELETE /api/managers with body {"ids":[...]}
func DeleteManagers(c *gin.Context) {
	var payload idsPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	deleted, err := repositories.ManagerRepository{}.DeleteMany(payload.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	managerAudit(c).Record(actorName(c), "managers", "managers", "bulk_delete", fmt.Sprintf("count=%d", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted, "message": "managers deleted"})
}
