package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
)

type AuditLog struct {
	ID        int64  `json:"id"`
	UserName  string `json:"userName"`
	TableName string `json:"table"`
	Screen    string `json:"screen"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type AuditLogFilter struct {
	TableName string
	Screen    string
	UserName  string
	FromDate  string // YYYY-MM-DD
	ToDate    string // YYYY-MM-DD
}

type AuditLogPage struct {
	Items      []AuditLog
	Total      int
	TotalPages int
}

var auditLogSortColumns = map[string]string{
	"id":        "id",
	"userName":  "user_name",
	"table":     "table_name",
	"screen":    "screen",
	"action":    "action",
	"createdAt": "created_at",
}

type AuditLogRepository struct {
	DB *sql.DB
}

func (r AuditLogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuditLogRepository) List(p ListParams, f AuditLogFilter) (AuditLogPage, error) {
	out := AuditLogPage{Items: []AuditLog{}}
	offset := p.Normalize()

	var w whereClause
	if v := strings.TrimSpace(f.TableName); v != "" {
		w.and("table_name = ?", v)
	}
	if v := strings.TrimSpace(f.Screen); v != "" {
		w.and("screen = ?", v)
	}
	w.andLike("user_name", f.UserName)
	if from := strings.TrimSpace(f.FromDate); from != "" {
		w.and("created_at >= ?", from+" 00:00:00")
	}
	if to := strings.TrimSpace(f.ToDate); to != "" {
		w.and("created_at <= ?", to+" 23:59:59")
	}

	db := r.db()
	if err := db.QueryRow(`SELECT COUNT(*) FROM audit_logs`+w.clause(), w.args...).Scan(&out.Total); err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT id, user_name, table_name, screen, action, COALESCE(detail,''),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM audit_logs` + w.clause() + p.OrderClause(auditLogSortColumns, "id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry AuditLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserName,
			&entry.TableName,
			&entry.Screen,
			&entry.Action,
			&entry.Detail,
			&entry.CreatedAt,
		); err != nil {
			return out, err
		}
		out.Items = append(out.Items, entry)
	}
	return out, rows.Err()
}

func (r AuditLogRepository) Insert(entry AuditLog) error {
	_, err := r.db().Exec(`
		INSERT INTO audit_logs (user_name, table_name, screen, action, detail, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		strings.TrimSpace(entry.UserName),
		entry.TableName,
		entry.Screen,
		entry.Action,
		nullIfEmpty(entry.Detail),
	)
	return err
}
