// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/models"
)

// Source yields the raw transaction rows of one dataset. Implementations do
// not validate rows; the Loader does that at the boundary.
type Source interface {
	// Load reads every row. It is called once at startup and again on each
	// manual reload.
	Load(ctx context.Context) ([]models.Transaction, error)

	// Name identifies the source in metrics and logs.
	Name() string

	Close() error
}

// NewSource builds the Source selected by cfg.Source. Remote sources are
// wrapped in a BreakerSource configured from breaker.
func NewSource(cfg *config.DatasetConfig, breaker *config.BreakerConfig) (Source, error) {
	var (
		src Source
		err error
	)

	switch cfg.Source {
	case config.SourceCSV, config.SourceParquet, config.SourceDuckDB:
		return NewDuckDBSource(cfg)
	case config.SourcePostgres:
		src, err = NewPostgresSource(cfg.DSN, cfg.Table)
	case config.SourceMySQL:
		src, err = NewMySQLSource(cfg.DSN, cfg.Table)
	case config.SourceMongoDB:
		src, err = NewMongoSource(cfg.DSN, cfg.Database, cfg.Collection)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
	if err != nil {
		return nil, err
	}
	return NewBreakerSource(src, breaker), nil
}

// Flattened export column names shared by every SQL source and the
// MongoDB document layout.
const (
	colOrderID           = "order_id"
	colCustomerID        = "customer_id"
	colPurchaseTimestamp = "order_purchase_timestamp"
	colEstimatedDelivery = "order_estimated_delivery_date"
	colProductCategory   = "product_category_name_english"
	colOrderItemID       = "order_item_id"
	colPaymentValue      = "payment_value"
	colPaymentType       = "payment_type"
	colCustomerState     = "customer_state"
	colGeoLat            = "geolocation_lat"
	colGeoLng            = "geolocation_lng"
	colGeoCity           = "geolocation_city"
	colGeoState          = "geolocation_state"
)

// dialect selects the cast syntax used in the projection query.
type dialect int

const (
	dialectDuckDB dialect = iota
	dialectPostgres
	dialectMySQL
)

func (d dialect) text(col string) string {
	switch d {
	case dialectPostgres:
		return "CAST(" + col + " AS TEXT)"
	case dialectMySQL:
		return "CAST(" + col + " AS CHAR)"
	default:
		return "CAST(" + col + " AS VARCHAR)"
	}
}

func (d dialect) timestamp(col string) string {
	switch d {
	case dialectPostgres:
		return "CAST(" + col + " AS TIMESTAMP)"
	case dialectMySQL:
		return "CAST(" + col + " AS DATETIME)"
	default:
		return "TRY_CAST(" + col + " AS TIMESTAMP)"
	}
}

func (d dialect) float(col string) string {
	switch d {
	case dialectPostgres:
		return "CAST(" + col + " AS DOUBLE PRECISION)"
	case dialectMySQL:
		return "CAST(" + col + " AS DECIMAL(20,8))"
	default:
		return "TRY_CAST(" + col + " AS DOUBLE)"
	}
}

func (d dialect) integer(col string) string {
	switch d {
	case dialectPostgres:
		return "CAST(" + col + " AS INTEGER)"
	case dialectMySQL:
		return "CAST(" + col + " AS SIGNED)"
	default:
		return "TRY_CAST(" + col + " AS INTEGER)"
	}
}

// selectTransactions builds the projection over from. The column order
// matches scanRow.dest.
func selectTransactions(d dialect, from string) string {
	cols := []string{
		d.text(colOrderID),
		d.text(colCustomerID),
		d.timestamp(colPurchaseTimestamp),
		d.timestamp(colEstimatedDelivery),
		d.text(colProductCategory),
		d.integer(colOrderItemID),
		d.float(colPaymentValue),
		d.text(colPaymentType),
		d.text(colCustomerState),
		d.float(colGeoLat),
		d.float(colGeoLng),
		d.text(colGeoCity),
		d.text(colGeoState),
	}
	return "SELECT " + strings.Join(cols, ", ") + " FROM " + from
}

// rowScanner is satisfied by *sql.Rows and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRow holds one projected row before conversion.
type scanRow struct {
	orderID           sql.NullString
	customerID        sql.NullString
	purchasedAt       sql.NullTime
	estimatedDelivery sql.NullTime
	category          sql.NullString
	itemID            sql.NullInt64
	payment           sql.NullFloat64
	paymentType       sql.NullString
	customerState     sql.NullString
	lat               sql.NullFloat64
	lng               sql.NullFloat64
	city              sql.NullString
	geoState          sql.NullString
}

func (r *scanRow) dest() []any {
	return []any{
		&r.orderID, &r.customerID, &r.purchasedAt, &r.estimatedDelivery,
		&r.category, &r.itemID, &r.payment, &r.paymentType, &r.customerState,
		&r.lat, &r.lng, &r.city, &r.geoState,
	}
}

// transaction converts the scanned row. A NULL payment becomes NaN and a
// NULL purchase time the zero time, so the Loader rejects both.
func (r *scanRow) transaction() models.Transaction {
	tx := models.Transaction{
		OrderID:         r.orderID.String,
		CustomerID:      r.customerID.String,
		ProductCategory: r.category.String,
		ItemQuantity:    int(r.itemID.Int64),
		PaymentValue:    math.NaN(),
		PaymentType:     models.ParsePaymentType(r.paymentType.String),
		CustomerState:   r.customerState.String,
	}
	if r.purchasedAt.Valid {
		tx.PurchasedAt = r.purchasedAt.Time.UTC()
	}
	if r.estimatedDelivery.Valid {
		est := r.estimatedDelivery.Time.UTC()
		tx.EstimatedDelivery = &est
	}
	if r.payment.Valid {
		tx.PaymentValue = r.payment.Float64
	}
	if r.lat.Valid && r.lng.Valid {
		tx.Location = &models.Location{
			Lat:   r.lat.Float64,
			Lng:   r.lng.Float64,
			City:  r.city.String,
			State: r.geoState.String,
		}
	}
	return tx
}

// scanTransactions drains rows through next and scan. It is shared by the
// database/sql and pgx based sources.
func scanTransactions(next func() bool, scanner rowScanner, errFn func() error) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, 1024)
	var row scanRow
	for next() {
		row = scanRow{}
		if err := scanner.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row %d: %w", len(out)+1, err)
		}
		out = append(out, row.transaction())
	}
	if err := errFn(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return out, nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
