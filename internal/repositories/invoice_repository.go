package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
	"loyaltyadmin/internal/domain"
)

type Invoice struct {
	ID            int64   `json:"id"`
	InvoiceNumber string  `json:"invoiceNumber"`
	CustomerID    int64   `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	ItemCount     int     `json:"itemCount"`
	CreatedAt     string  `json:"createdAt"`
}

type InvoiceFilter struct {
	Search   string // matches invoice number or customer name
	Currency string
	FromDate string // YYYY-MM-DD
	ToDate   string // YYYY-MM-DD
}

type InvoicePage struct {
	Items       []Invoice
	Total       int
	TotalPages  int
	TotalAmount float64
}

// CurrencyTotal is one line of the invoice summary report.
type CurrencyTotal struct {
	Currency string
	Count    int
	Amount   float64
}

var invoiceSortColumns = map[string]string{
	"id":            "i.id",
	"invoiceNumber": "i.invoice_number",
	"customerName":  "c.full_name",
	"amount":        "i.amount",
	"createdAt":     "i.created_at",
}

type InvoiceRepository struct {
	DB *sql.DB
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InvoiceRepository) filterClause(f InvoiceFilter) whereClause {
	var w whereClause
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + term + "%"
		w.and("(i.invoice_number LIKE ? OR c.full_name LIKE ?)", like, like)
	}
	if c := strings.TrimSpace(f.Currency); c != "" {
		w.and("i.currency = ?", c)
	}
	if from := strings.TrimSpace(f.FromDate); from != "" {
		w.and("i.created_at >= ?", from+" 00:00:00")
	}
	if to := strings.TrimSpace(f.ToDate); to != "" {
		w.and("i.created_at <= ?", to+" 23:59:59")
	}
	return w
}

func (r InvoiceRepository) List(p ListParams, f InvoiceFilter) (InvoicePage, error) {
	out := InvoicePage{Items: []Invoice{}}
	offset := p.Normalize()
	w := r.filterClause(f)

	db := r.db()
	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(i.amount),0)
		FROM invoices i JOIN customers c ON c.id = i.customer_id`+w.clause(),
		w.args...,
	).Scan(&out.Total, &out.TotalAmount)
	if err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT i.id, i.invoice_number, i.customer_id, c.full_name,
		       i.amount, COALESCE(i.currency,'SAR'), COALESCE(i.item_count,0),
		       DATE_FORMAT(i.created_at, '%Y-%m-%d %H:%i:%s')
		FROM invoices i JOIN customers c ON c.id = i.customer_id` +
		w.clause() + p.OrderClause(invoiceSortColumns, "i.id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var inv Invoice
		if err := rows.Scan(
			&inv.ID,
			&inv.InvoiceNumber,
			&inv.CustomerID,
			&inv.CustomerName,
			&inv.Amount,
			&inv.Currency,
			&inv.ItemCount,
			&inv.CreatedAt,
		); err != nil {
			return out, err
		}
		out.Items = append(out.Items, inv)
	}
	return out, rows.Err()
}

// TotalsByCurrency feeds the PDF summary report: one row per currency over
// the filtered set.
func (r InvoiceRepository) TotalsByCurrency(f InvoiceFilter) ([]CurrencyTotal, error) {
	w := r.filterClause(f)
	rows, err := r.db().Query(`
		SELECT COALESCE(i.currency,'SAR'), COUNT(*), COALESCE(SUM(i.amount),0)
		FROM invoices i JOIN customers c ON c.id = i.customer_id`+
		w.clause()+` GROUP BY i.currency ORDER BY i.currency`,
		w.args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CurrencyTotal{}
	for rows.Next() {
		var t CurrencyTotal
		if err := rows.Scan(&t.Currency, &t.Count, &t.Amount); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r InvoiceRepository) Create(inv Invoice) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO invoices (invoice_number, customer_id, amount, currency, item_count)
		VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(inv.InvoiceNumber),
		inv.CustomerID,
		inv.Amount,
		strings.ToUpper(strings.TrimSpace(inv.Currency)),
		inv.ItemCount,
	)
	if err != nil {
		return 0, mapMySQLError(err, "invoice")
	}
	return res.LastInsertId()
}

func (r InvoiceRepository) Update(id int64, inv Invoice) error {
	res, err := r.db().Exec(`
		UPDATE invoices
		SET invoice_number = ?, customer_id = ?, amount = ?, currency = ?, item_count = ?
		WHERE id = ?`,
		strings.TrimSpace(inv.InvoiceNumber),
		inv.CustomerID,
		inv.Amount,
		strings.ToUpper(strings.TrimSpace(inv.Currency)),
		inv.ItemCount,
		id,
	)
	if err != nil {
		return mapMySQLError(err, "invoice")
	}
	return requireAffected(res, "invoice")
}

func (r InvoiceRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "invoice")
}

func (r InvoiceRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError{Field: "ids", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(
		`DELETE FROM invoices WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
