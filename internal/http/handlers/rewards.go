package handlers

import (
	"fmt"
	"net/http"

	"loyaltyadmin/internal/http/middleware"
	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/services"

	"github.com/gin-gonic/gin"
)

func rewardAudit(c *gin.Context) services.AuditService {
	return services.AuditService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/rewards/:page
func GetRewards(c *gin.Context) {
	p := ParseListParams(c)
	f := repositories.RewardFilter{
		CustomerName: c.Query("customerName"),
		Status:       c.Query("status"),
	}

	page, err := repositories.RewardRepository{}.List(p, f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rewards":      page.Items,
		"totalRewards": page.Total,
		"totalPages":   page.TotalPages,
		"totalPoints":  page.TotalPoints,
	})
}

// POST /api/rewards
func CreateReward(c *gin.Context) {
	var rw repositories.Reward
	if !BindJSONOrError(c, &rw) {
		return
	}
	id, err := repositories.RewardRepository{}.Create(rw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rewardAudit(c).Record(actorName(c), "rewards", "rewards", "create", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "reward request created"})
}

// PATCH /api/rewards/:id/approve
func ApproveReward(c *gin.Context) {
	decideReward(c, true)
}

// PATCH /api/rewards/:id/reject
func RejectReward(c *gin.Context) {
	decideReward(c, false)
}

func decideReward(c *gin.Context, approve bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.RewardRepository{}).Decide(id, approve); err != nil {
		RespondDomainError(c, err)
		return
	}
	action := "reject"
	message := "reward rejected"
	if approve {
		action = "approve"
		message = "reward approved"
	}
	rewardAudit(c).Record(actorName(c), "rewards", "rewards", action, fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": message})
}

// DELETE /api/rewards/:id
func DeleteReward(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := (repositories.RewardRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	rewardAudit(c).Record(actorName(c), "rewards", "rewards", "delete", fmt.Sprintf("id=%d", id))
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "reward deleted"})
}

// DELETE /api/rewards with body {"ids":[...]}
func DeleteRewards(c *gin.Context) {
	var payload idsPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	deleted, err := repositories.RewardRepository{}.DeleteMany(payload.IDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rewardAudit(c).Record(actorName(c), "rewards", "rewards", "bulk_delete", fmt.Sprintf("count=%d", deleted))
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted, "message": "rewards deleted"})
}
