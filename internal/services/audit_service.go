package services

import (
	"fmt"
	"log"

	"loyaltyadmin/internal/repositories"
	"loyaltyadmin/internal/utils"
)

// AuditService writes an audit row for every mutating request. Failures are
// logged and swallowed so a broken audit table never blocks the mutation
// itself.
type AuditService struct {
	Repo      repositories.AuditLogRepository
	RequestID string
	Insert    func(repositories.AuditLog) error
}

func (s AuditService) Record(userName, tableName, screen, action, detail string) {
	entry := repositories.AuditLog{
		UserName:  userName,
		TableName: tableName,
		Screen:    screen,
		Action:    action,
		Detail:    detail,
	}
	insert := s.Insert
	if insert == nil {
		insert = s.Repo.Insert
	}
	if err := insert(entry); err != nil {
		log.Printf("[AUDIT] request_id=%s insert_failed table=%s action=%s err=%v",
			s.RequestID, tableName, action, err)
		return
	}
	utils.LogEvent(s.RequestID, "audit", action, fmt.Sprintf("table=%s screen=%s", tableName, screen))
}
