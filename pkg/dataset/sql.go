package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"rfm-segmentation/pkg/models"
)

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open accepts URL-style DSNs (mysql://, mariadb://, postgres://) and native
// driver DSNs, and returns a pinged connection plus the DSN actually used.
func Open(dsn string) (*sql.DB, string, error) {
	driver, driverDSN, err := normalizeDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open(driver, driverDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("ping: %w", err)
	}
	return db, driverDSN, nil
}

// normalizeDSN maps mariadb:// and mysql:// URLs to the MySQL driver format;
// postgres URLs pass through to pgx, anything else to the MySQL driver as-is.
func normalizeDSN(dsn string) (driver, out string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, nil
	case strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return "", "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", "", fmt.Errorf("incomplete dsn (user/host/db)")
		}
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=false&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return "mysql", dsn, nil
}

// QueryOrders reads the orders table into raw order records. Timestamps are
// scanned as nullable strings so SQL and CSV sources feed the cleaner the
// same way.
func QueryOrders(ctx context.Context, db *sql.DB, table string) ([]models.OrderRecord, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid orders table %q", table)
	}
	q := fmt.Sprintf(`
		SELECT order_id, customer_id,
		       order_purchase_timestamp, order_approved_at,
		       order_delivered_carrier_date, order_delivered_customer_date,
		       order_estimated_delivery_date
		FROM %s
	`, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []models.OrderRecord
	for rows.Next() {
		var r models.OrderRecord
		var purchase, approved, carrier, customer, estim sql.NullString
		if err := rows.Scan(&r.OrderID, &r.CustomerID,
			&purchase, &approved, &carrier, &customer, &estim); err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}
		r.PurchaseTimestamp = purchase.String
		r.ApprovedAt = approved.String
		r.CarrierDate = carrier.String
		r.CustomerDate = customer.String
		r.EstimatedDate = estim.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryPayments reads the payments table into installment records.
func QueryPayments(ctx context.Context, db *sql.DB, table string) ([]models.PaymentRecord, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid payments table %q", table)
	}
	q := fmt.Sprintf(`SELECT order_id, payment_sequential, payment_value FROM %s`, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var out []models.PaymentRecord
	for rows.Next() {
		var (
			p   models.PaymentRecord
			seq sql.NullInt64
			val sql.NullFloat64
		)
		if err := rows.Scan(&p.OrderID, &seq, &val); err != nil {
			return nil, fmt.Errorf("scan payments: %w", err)
		}
		if seq.Valid {
			p.Sequential = int(seq.Int64)
		}
		if val.Valid {
			p.Value = val.Float64
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
