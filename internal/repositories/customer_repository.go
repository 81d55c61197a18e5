package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
	"loyaltyadmin/internal/domain"
)

type Customer struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"fullName"`
	Phone      string  `json:"phone"`
	Email      string  `json:"email,omitempty"`
	Points     int64   `json:"points"`
	TotalSpent float64 `json:"totalSpent"`
	CreatedAt  string  `json:"createdAt"`
}

type CustomerFilter struct {
	FullName  string // free-text search
	Phone     string
	MinPoints string // numeric string from the query, empty means unset
}

type CustomerPage struct {
	Items       []Customer
	Total       int
	TotalPages  int
	TotalPoints int64
}

var customerSortColumns = map[string]string{
	"id":         "id",
	"fullName":   "full_name",
	"phone":      "phone",
	"points":     "points",
	"totalSpent": "total_spent",
	"createdAt":  "created_at",
}

type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CustomerRepository) List(p ListParams, f CustomerFilter) (CustomerPage, error) {
	out := CustomerPage{Items: []Customer{}}
	offset := p.Normalize()

	var w whereClause
	w.andLike("full_name", f.FullName)
	w.andLike("phone", f.Phone)
	if min := strings.TrimSpace(f.MinPoints); min != "" {
		w.and("points >= ?", min)
	}

	db := r.db()
	err := db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(points),0) FROM customers`+w.clause(),
		w.args...,
	).Scan(&out.Total, &out.TotalPoints)
	if err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT id, full_name, COALESCE(phone,''), COALESCE(email,''),
		       COALESCE(points,0), COALESCE(total_spent,0),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM customers` + w.clause() + p.OrderClause(customerSortColumns, "id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var cust Customer
		if err := rows.Scan(
			&cust.ID,
			&cust.FullName,
			&cust.Phone,
			&cust.Email,
			&cust.Points,
			&cust.TotalSpent,
			&cust.CreatedAt,
		); err != nil {
			return out, err
		}
		out.Items = append(out.Items, cust)
	}
	return out, rows.Err()
}

func (r CustomerRepository) Create(cust Customer) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO customers (full_name, phone, email, points, total_spent)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(cust.FullName),
		strings.TrimSpace(cust.Phone),
		nullIfEmpty(cust.Email),
		cust.Points,
		cust.TotalSpent,
	)
	if err != nil {
		return 0, mapMySQLError(err, "customer")
	}
	return res.LastInsertId()
}

func (r CustomerRepository) Update(id int64, cust Customer) error {
	res, err := r.db().Exec(`
		UPDATE customers
		SET full_name = ?, phone = ?, email = ?, points = ?, total_spent = ?
		WHERE id = ?`,
		strings.TrimSpace(cust.FullName),
		strings.TrimSpace(cust.Phone),
		nullIfEmpty(cust.Email),
		cust.Points,
		cust.TotalSpent,
		id,
	)
	if err != nil {
		return mapMySQLError(err, "customer")
	}
	return requireAffected(res, "customer")
}

func (r CustomerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "customer")
}

func (r CustomerRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError{Field: "ids", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(
		`DELETE FROM customers WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
