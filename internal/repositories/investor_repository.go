package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
	"loyaltyadmin/internal/domain"

	"github.com/go-sql-driver/mysql"
)

type Investor struct {
	ID             int64   `json:"id"`
	FullName       string  `json:"fullName"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email,omitempty"`
	InvestedAmount float64 `json:"investedAmount"`
	Currency       string  `json:"currency"`
	SharePercent   float64 `json:"sharePercent"`
	CreatedAt      string  `json:"createdAt"`
}

// InvestorFilter is the advanced-filter slice of the investor listing.
type InvestorFilter struct {
	FullName string // free-text search
	Currency string
	Phone    string
}

// InvestorPage is one listing page plus the totals over the filtered set.
type InvestorPage struct {
	Items         []Investor
	Total         int
	TotalPages    int
	TotalInvested float64
}

var investorSortColumns = map[string]string{
	"id":             "id",
	"fullName":       "full_name",
	"phone":          "phone",
	"investedAmount": "invested_amount",
	"sharePercent":   "share_percent",
	"createdAt":      "created_at",
}

type InvestorRepository struct {
	DB *sql.DB
}

func (r InvestorRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InvestorRepository) List(p ListParams, f InvestorFilter) (InvestorPage, error) {
	out := InvestorPage{Items: []Investor{}}
	offset := p.Normalize()

	var w whereClause
	w.andLike("full_name", f.FullName)
	w.andLike("phone", f.Phone)
	if c := strings.TrimSpace(f.Currency); c != "" {
		w.and("currency = ?", c)
	}

	db := r.db()
	err := db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(invested_amount),0) FROM investors`+w.clause(),
		w.args...,
	).Scan(&out.Total, &out.TotalInvested)
	if err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT id, full_name, COALESCE(phone,''), COALESCE(email,''),
		       COALESCE(invested_amount,0), COALESCE(currency,'SAR'),
		       COALESCE(share_percent,0),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM investors` + w.clause() + p.OrderClause(investorSortColumns, "id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var inv Investor
		if err := rows.Scan(
			&inv.ID,
			&inv.FullName,
			&inv.Phone,
			&inv.Email,
			&inv.InvestedAmount,
			&inv.Currency,
			&inv.SharePercent,
			&inv.CreatedAt,
		); err != nil {
			return out, err
		}
		out.Items = append(out.Items, inv)
	}
	return out, rows.Err()
}

func (r InvestorRepository) GetByID(id int64) (Investor, error) {
	var inv Investor
	err := r.db().QueryRow(`
		SELECT id, full_name, COALESCE(phone,''), COALESCE(email,''),
		       COALESCE(invested_amount,0), COALESCE(currency,'SAR'),
		       COALESCE(share_percent,0),
		       DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s')
		FROM investors WHERE id = ?`, id).Scan(
		&inv.ID, &inv.FullName, &inv.Phone, &inv.Email,
		&inv.InvestedAmount, &inv.Currency, &inv.SharePercent, &inv.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return inv, domain.NotFoundError{Resource: "investor"}
	}
	return inv, err
}

func (r InvestorRepository) Create(inv Investor) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO investors (full_name, phone, email, invested_amount, currency, share_percent)
		VALUES (?, ?, ?, ?, ?, ?)`,
		strings.TrimSpace(inv.FullName),
		strings.TrimSpace(inv.Phone),
		nullIfEmpty(inv.Email),
		inv.InvestedAmount,
		strings.ToUpper(strings.TrimSpace(inv.Currency)),
		inv.SharePercent,
	)
	if err != nil {
		return 0, mapMySQLError(err, "investor")
	}
	return res.LastInsertId()
}

func (r InvestorRepository) Update(id int64, inv Investor) error {
	res, err := r.db().Exec(`
		UPDATE investors
		SET full_name = ?, phone = ?, email = ?, invested_amount = ?, currency = ?, share_percent = ?
		WHERE id = ?`,
		strings.TrimSpace(inv.FullName),
		strings.TrimSpace(inv.Phone),
		nullIfEmpty(inv.Email),
		inv.InvestedAmount,
		strings.ToUpper(strings.TrimSpace(inv.Currency)),
		inv.SharePercent,
		id,
	)
	if err != nil {
		return mapMySQLError(err, "investor")
	}
	return requireAffected(res, "investor")
}

func (r InvestorRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM investors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "investor")
}

// DeleteMany removes the whole id set in one statement.
func (r InvestorRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError{Field: "ids", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(
		`DELETE FROM investors WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullIfEmpty(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// mapMySQLError turns duplicate-key violations into domain conflicts.
func mapMySQLError(err error, resource string) error {
	if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
		return domain.ConflictError{Resource: resource, Msg: "duplicate entry"}
	}
	return err
}

func requireAffected(res sql.Result, resource string) error {
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
