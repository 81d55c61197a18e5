package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
	"loyaltyadmin/internal/domain"
)

type Manager struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	UserName  string `json:"userName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`
}

type ManagerFilter struct {
	FullName string // free-text search
	Role     string
}

type ManagerPage struct {
	Items      []Manager
	Total      int
	TotalPages int
}

var managerSortColumns = map[string]string{
	"id":        "id",
	"fullName":  "full_name",
	"userName":  "user_name",
	"role":      "role",
	"createdAt": "created_at",
}

type ManagerRepository struct {
	DB *sql.DB
}

func (r ManagerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ManagerRepository) List(p ListParams, f ManagerFilter) (ManagerPage, error) {
	out := ManagerPage{Items: []Manager{}}
	offset := p.Normalize()

	var w whereClause
	w.andLike("full_name", f.FullName)
	if role := strings.TrimSpace(f.Role); role != "" {
		w.and("role = ?", role)
	}

	db := r.db()
	if err := db.QueryRow(`SELECT COUNT(*) FROM managers`+w.clause(), w.args...).Scan(&out.Total); err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT id, full_name, user_name, COALESCE(phone,''), COALESCE(role,'staff'),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM managers` + w.clause() + p.OrderClause(managerSortColumns, "id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var m Manager
		if err := rows.Scan(&m.ID, &m.FullName, &m.UserName, &m.Phone, &m.Role, &m.CreatedAt); err != nil {
			return out, err
		}
		out.Items = append(out.Items, m)
	}
	return out, rows.Err()
}

func (r ManagerRepository) Create(m Manager) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO managers (full_name, user_name, phone, role, password_hash)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(m.FullName),
		strings.TrimSpace(m.UserName),
		strings.TrimSpace(m.Phone),
		strings.TrimSpace(m.Role),
		m.PasswordHash,
	)
	if err != nil {
		return 0, mapMySQLError(err, "manager")
	}
	return res.LastInsertId()
}

// Update changes profile fields; the password hash is only touched when a
// new one is provided.
func (r ManagerRepository) Update(id int64, m Manager) error {
	set := []string{"full_name = ?", "user_name = ?", "phone = ?", "role = ?"}
	args := []any{
		strings.TrimSpace(m.FullName),
		strings.TrimSpace(m.UserName),
		strings.TrimSpace(m.Phone),
		strings.TrimSpace(m.Role),
	}
	if m.PasswordHash != "" {
		set = append(set, "password_hash = ?")
		args = append(args, m.PasswordHash)
	}
	args = append(args, id)

	res, err := r.db().Exec(
		`UPDATE managers SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return mapMySQLError(err, "manager")
	}
	return requireAffected(res, "manager")
}

func (r ManagerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM managers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "manager")
}

func (r ManagerRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError{Field: "ids", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(
		`DELETE FROM managers WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
