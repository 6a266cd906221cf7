package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bankapi/internal/core"

	_ "modernc.org/sqlite"
)

// Store provides access to the bank's relational schema: users,
// credits, payments, the category dictionary and plans.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the sqlite database at dbPath and applies
// migrations. Connectivity failures wrap core.ErrStoreUnavailable.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", core.ErrStoreUnavailable, err)
	}

	// An in-memory sqlite database exists per connection; keep one.
	if strings.Contains(dbPath, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", core.ErrStoreUnavailable, err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InsertUser adds a user. Users, credits and payments are managed by
// the upstream banking system; these inserts exist for seeding.
func (s *Store) InsertUser(ctx context.Context, u core.User) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (login, registration_date) VALUES (?, ?)`,
		u.Login, u.RegistrationDate.String())
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return res.LastInsertId()
}

// InsertCredit adds a credit for a user.
func (s *Store) InsertCredit(ctx context.Context, c core.Credit) (int64, error) {
	var actualReturned any
	if c.ActualReturnDate != nil {
		actualReturned = c.ActualReturnDate.String()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO credits (user_id, issuance_date, return_date, actual_return_date, body, percent)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.IssuanceDate.String(), c.ReturnDate.String(), actualReturned, c.Body, c.Percent)
	if err != nil {
		return 0, fmt.Errorf("insert credit: %w", err)
	}
	return res.LastInsertId()
}

// InsertPayment adds a payment against a credit.
func (s *Store) InsertPayment(ctx context.Context, p core.Payment) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (credit_id, type_id, sum, payment_date)
		VALUES (?, ?, ?, ?)`,
		p.CreditID, p.TypeID, p.Sum, p.PaymentDate.String())
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	return res.LastInsertId()
}

// CreditsByUser returns all credits of a user in primary-key order.
func (s *Store) CreditsByUser(ctx context.Context, userID int64) ([]core.Credit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, issuance_date, return_date, actual_return_date, body, percent
		FROM credits
		WHERE user_id = ?
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query credits for user %d: %w", userID, err)
	}
	defer rows.Close()

	var credits []core.Credit
	for rows.Next() {
		var (
			c              core.Credit
			issued, due    string
			actualReturned sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.UserID, &issued, &due, &actualReturned, &c.Body, &c.Percent); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		if c.IssuanceDate, err = core.ParseDate(issued); err != nil {
			return nil, fmt.Errorf("credit %d issuance date: %w", c.ID, err)
		}
		if c.ReturnDate, err = core.ParseDate(due); err != nil {
			return nil, fmt.Errorf("credit %d return date: %w", c.ID, err)
		}
		if actualReturned.Valid {
			d, err := core.ParseDate(actualReturned.String)
			if err != nil {
				return nil, fmt.Errorf("credit %d actual return date: %w", c.ID, err)
			}
			c.ActualReturnDate = &d
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// PaymentsSumByCredit returns the total of all payments made against a
// credit, regardless of type.
func (s *Store) PaymentsSumByCredit(ctx context.Context, creditID int64) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum), 0) FROM payments WHERE credit_id = ?`, creditID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments for credit %d: %w", creditID, err)
	}
	return total, nil
}

// PaymentsSumByCreditAndType returns the payment total of one type
// (principal or interest) for a credit.
func (s *Store) PaymentsSumByCreditAndType(ctx context.Context, creditID, typeID int64) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum), 0) FROM payments WHERE credit_id = ? AND type_id = ?`,
		creditID, typeID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments for credit %d type %d: %w", creditID, typeID, err)
	}
	return total, nil
}

// CategoryByName resolves a dictionary entry by its name. Unknown
// names yield core.ErrUnknownCategory.
func (s *Store) CategoryByName(ctx context.Context, name string) (core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM dictionary WHERE name = ?`, name).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("%w: %q", core.ErrUnknownCategory, name)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("query category %q: %w", name, err)
	}
	return c, nil
}

// CategoryByID resolves a dictionary entry by id.
func (s *Store) CategoryByID(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM dictionary WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, fmt.Errorf("%w: id %d", core.ErrUnknownCategory, id)
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("query category %d: %w", id, err)
	}
	return c, nil
}

// PlanExists reports whether a plan already exists for the given
// period and category.
func (s *Store) PlanExists(ctx context.Context, period core.Date, categoryID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM plans WHERE period = ? AND category_id = ?)`,
		period.String(), categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check plan existence: %w", err)
	}
	return exists, nil
}

// InsertPlans inserts a validated batch of plans in one transaction.
// A crash or failure mid-batch leaves zero new rows. The table's
// UNIQUE(period, category_id) constraint is the final authority on
// duplicates; a violation surfaces as a core.ValidationError.
func (s *Store) InsertPlans(ctx context.Context, plans []core.Plan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert plans: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO plans (period, sum, category_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert plan: %w", err)
	}
	defer stmt.Close()

	for _, p := range plans {
		if _, err := stmt.ExecContext(ctx, p.Period.String(), p.Sum, p.CategoryID); err != nil {
			if isUniqueViolation(err) {
				return &core.ValidationError{Messages: []string{
					fmt.Sprintf("plan with period %s and category id %d already exists", p.Period, p.CategoryID),
				}}
			}
			return fmt.Errorf("insert plan %s/%d: %w", p.Period, p.CategoryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert plans: %w", err)
	}

	slog.InfoContext(ctx, "Plans inserted", "count", len(plans))
	return nil
}

// PlansBetween returns plans whose period lies in [from, to], in
// primary-key order.
func (s *Store) PlansBetween(ctx context.Context, from, to core.Date) ([]core.Plan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, period, sum, category_id
		FROM plans
		WHERE period BETWEEN ? AND ?
		ORDER BY id`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query plans between %s and %s: %w", from, to, err)
	}
	defer rows.Close()

	var plans []core.Plan
	for rows.Next() {
		var (
			p      core.Plan
			period string
		)
		if err := rows.Scan(&p.ID, &period, &p.Sum, &p.CategoryID); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		if p.Period, err = core.ParseDate(period); err != nil {
			return nil, fmt.Errorf("plan %d period: %w", p.ID, err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// CreditsSumBetween returns the total principal issued in [from, to].
func (s *Store) CreditsSumBetween(ctx context.Context, from, to core.Date) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(body), 0) FROM credits WHERE issuance_date BETWEEN ? AND ?`,
		from.String(), to.String()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum credits between %s and %s: %w", from, to, err)
	}
	return total, nil
}

// PaymentsSumBetween returns the total of payments made in [from, to].
func (s *Store) PaymentsSumBetween(ctx context.Context, from, to core.Date) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum), 0) FROM payments WHERE payment_date BETWEEN ? AND ?`,
		from.String(), to.String()).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments between %s and %s: %w", from, to, err)
	}
	return total, nil
}

// CreditsSumByYear returns the total principal issued in a year.
func (s *Store) CreditsSumByYear(ctx context.Context, year int) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(body), 0) FROM credits WHERE strftime('%Y', issuance_date) = ?`,
		fmt.Sprintf("%04d", year)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum credits for year %d: %w", year, err)
	}
	return total, nil
}

// PaymentsSumByYear returns the total of payments made in a year.
func (s *Store) PaymentsSumByYear(ctx context.Context, year int) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sum), 0) FROM payments WHERE strftime('%Y', payment_date) = ?`,
		fmt.Sprintf("%04d", year)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum payments for year %d: %w", year, err)
	}
	return total, nil
}

// PlanSumByMonth returns the planned sum for one category in one month.
func (s *Store) PlanSumByMonth(ctx context.Context, year, month int, categoryID int64) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(sum), 0)
		FROM plans
		WHERE strftime('%Y', period) = ? AND strftime('%m', period) = ? AND category_id = ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), categoryID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum plans for %02d.%04d category %d: %w", month, year, categoryID, err)
	}
	return total, nil
}

// CreditStatsByMonth returns the count and principal total of credits
// issued in one month.
func (s *Store) CreditStatsByMonth(ctx context.Context, year, month int) (int, float64, error) {
	var (
		count int
		total float64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(body), 0)
		FROM credits
		WHERE strftime('%Y', issuance_date) = ? AND strftime('%m', issuance_date) = ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).Scan(&count, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("credit stats for %02d.%04d: %w", month, year, err)
	}
	return count, total, nil
}

// PaymentStatsByMonth returns the count and total of payments made in
// one month.
func (s *Store) PaymentStatsByMonth(ctx context.Context, year, month int) (int, float64, error) {
	var (
		count int
		total float64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(sum), 0)
		FROM payments
		WHERE strftime('%Y', payment_date) = ? AND strftime('%m', payment_date) = ?`,
		fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month)).Scan(&count, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("payment stats for %02d.%04d: %w", month, year, err)
	}
	return count, total, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
