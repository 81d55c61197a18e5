package repositories

import (
	"database/sql"
	"strings"

	intconfig "loyaltyadmin/internal/config"
	"loyaltyadmin/internal/domain"
)

const (
	RewardPending  = "pending"
	RewardApproved = "approved"
	RewardRejected = "rejected"
)

type Reward struct {
	ID           int64  `json:"id"`
	CustomerID   int64  `json:"customerId"`
	CustomerName string `json:"customerName"`
	Points       int64  `json:"points"`
	Status       string `json:"status"`
	RequestedAt  string `json:"requestedAt"`
	DecidedAt    string `json:"decidedAt,omitempty"`
}

type RewardFilter struct {
	CustomerName string // free-text search
	Status       string
}

type RewardPage struct {
	Items       []Reward
	Total       int
	TotalPages  int
	TotalPoints int64
}

var rewardSortColumns = map[string]string{
	"id":           "r.id",
	"customerName": "c.full_name",
	"points":       "r.points",
	"status":       "r.status",
	"requestedAt":  "r.requested_at",
}

type RewardRepository struct {
	DB *sql.DB
}

func (r RewardRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RewardRepository) List(p ListParams, f RewardFilter) (RewardPage, error) {
	out := RewardPage{Items: []Reward{}}
	offset := p.Normalize()

	var w whereClause
	w.andLike("c.full_name", f.CustomerName)
	if status := strings.TrimSpace(f.Status); status != "" {
		w.and("r.status = ?", status)
	}

	db := r.db()
	err := db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(r.points),0)
		FROM rewards r JOIN customers c ON c.id = r.customer_id`+w.clause(),
		w.args...,
	).Scan(&out.Total, &out.TotalPoints)
	if err != nil {
		return out, err
	}
	out.TotalPages = TotalPages(out.Total, p.Limit)

	query := `
		SELECT r.id, r.customer_id, c.full_name, r.points, r.status,
		       DATE_FORMAT(r.requested_at, '%Y-%m-%d %H:%i:%s'),
		       COALESCE(DATE_FORMAT(r.decided_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM rewards r JOIN customers c ON c.id = r.customer_id` +
		w.clause() + p.OrderClause(rewardSortColumns, "r.id") + ` LIMIT ? OFFSET ?`

	rows, err := db.Query(query, append(w.args, p.Limit, offset)...)
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var rw Reward
		if err := rows.Scan(
			&rw.ID,
			&rw.CustomerID,
			&rw.CustomerName,
			&rw.Points,
			&rw.Status,
			&rw.RequestedAt,
			&rw.DecidedAt,
		); err != nil {
			return out, err
		}
		out.Items = append(out.Items, rw)
	}
	return out, rows.Err()
}

func (r RewardRepository) Create(rw Reward) (int64, error) {
	if rw.Points <= 0 {
		return 0, domain.ValidationError{Field: "points", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`
		INSERT INTO rewards (customer_id, points, status, requested_at)
		VALUES (?, ?, ?, NOW())`,
		rw.CustomerID, rw.Points, RewardPending,
	)
	if err != nil {
		return 0, mapMySQLError(err, "reward")
	}
	return res.LastInsertId()
}

// Decide resolves a pending reward. Deciding an already-decided reward is a
// conflict, not an overwrite.
func (r RewardRepository) Decide(id int64, approve bool) error {
	status := RewardRejected
	if approve {
		status = RewardApproved
	}
	res, err := r.db().Exec(`
		UPDATE rewards SET status = ?, decided_at = NOW()
		WHERE id = ? AND status = ?`,
		status, id, RewardPending,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		var current string
		err := r.db().QueryRow(`SELECT status FROM rewards WHERE id = ?`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return domain.NotFoundError{Resource: "reward"}
		}
		if err != nil {
			return err
		}
		return domain.ConflictError{Resource: "reward", Msg: "already " + current}
	}
	return nil
}

func (r RewardRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "reward")
}

func (r RewardRepository) DeleteMany(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError{Field: "ids", Msg: "must not be empty"}
	}
	res, err := r.db().Exec(
		`DELETE FROM rewards WHERE id IN (`+placeholders(len(ids))+`)`,
		int64Args(ids)...,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
