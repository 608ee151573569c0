// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/models"
)

const sampleCSV = `order_id,customer_id,order_purchase_timestamp,order_estimated_delivery_date,product_category_name_english,order_item_id,payment_value,payment_type,customer_state,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state
o1,A,2018-03-01 10:00:00,2018-03-10 00:00:00,toys,1,30.0,credit_card,SP,-23.5,-46.6,sao paulo,SP
o2,A,2018-03-02 11:00:00,2018-03-12 00:00:00,,2,40.0,boleto,SP,,,,
o3,B,2018-03-02 12:00:00,,bed_bath_table,1,100.0,voucher,RJ,-22.9,-43.2,rio de janeiro,RJ
`

// writeSampleCSV writes the three-row export to a temp dir and returns its path.
func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("failed to write sample csv: %v", err)
	}
	return path
}

func byOrderID(rows []models.Transaction) map[string]models.Transaction {
	out := make(map[string]models.Transaction, len(rows))
	for _, r := range rows {
		out[r.OrderID] = r
	}
	return out
}

// assertSampleRows checks the conversion of the sample export.
func assertSampleRows(t *testing.T, rows []models.Transaction) {
	t.Helper()

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	got := byOrderID(rows)

	o1 := got["o1"]
	if !o1.PurchasedAt.Equal(time.Date(2018, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("o1 purchased at %v", o1.PurchasedAt)
	}
	if o1.CustomerID != "A" || o1.ProductCategory != "toys" || o1.PaymentValue != 30 {
		t.Errorf("o1 = %+v", o1)
	}
	if o1.PaymentType != models.PaymentCreditCard {
		t.Errorf("o1 payment type = %q", o1.PaymentType)
	}
	if o1.Location == nil || o1.Location.City != "sao paulo" || o1.Location.Lat != -23.5 {
		t.Errorf("o1 location = %+v", o1.Location)
	}
	if o1.EstimatedDelivery == nil {
		t.Error("o1 estimated delivery should be set")
	}

	o2 := got["o2"]
	if o2.ProductCategory != "" {
		t.Errorf("missing category should load as empty string, got %q", o2.ProductCategory)
	}
	if o2.Location != nil {
		t.Errorf("row without coordinates should have nil location, got %+v", o2.Location)
	}
	if o2.ItemQuantity != 2 {
		t.Errorf("o2 item quantity = %d, want 2", o2.ItemQuantity)
	}

	o3 := got["o3"]
	if o3.EstimatedDelivery != nil {
		t.Errorf("o3 estimated delivery should be nil, got %v", o3.EstimatedDelivery)
	}
	if o3.PaymentType != models.PaymentVoucher || o3.CustomerState != "RJ" {
		t.Errorf("o3 = %+v", o3)
	}
}

func TestDuckDBSource_CSV(t *testing.T) {
	cfg := &config.DatasetConfig{Source: config.SourceCSV, Path: writeSampleCSV(t), Threads: 1}

	src, err := NewDuckDBSource(cfg)
	if err != nil {
		t.Fatalf("NewDuckDBSource() error = %v", err)
	}
	defer closeQuietly(src)

	if src.Name() != "csv" {
		t.Errorf("Name() = %q, want csv", src.Name())
	}

	rows, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	assertSampleRows(t, rows)
}

func TestDuckDBSource_ParquetAndTable(t *testing.T) {
	csvPath := writeSampleCSV(t)
	dir := t.TempDir()
	parquetPath := filepath.Join(dir, "transactions.parquet")
	dbPath := filepath.Join(dir, "shop.duckdb")

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		t.Fatalf("failed to open duckdb: %v", err)
	}
	setup := []string{
		"CREATE TABLE transactions AS SELECT * FROM read_csv_auto(" + quoteLiteral(csvPath) + ", header=true)",
		"COPY transactions TO " + quoteLiteral(parquetPath) + " (FORMAT PARQUET)",
	}
	for _, stmt := range setup {
		if _, err := conn.Exec(stmt); err != nil {
			closeQuietly(conn)
			t.Fatalf("setup %q failed: %v", stmt, err)
		}
	}
	if err := conn.Close(); err != nil {
		t.Fatalf("failed to close setup connection: %v", err)
	}

	tests := []struct {
		name string
		cfg  *config.DatasetConfig
	}{
		{"parquet", &config.DatasetConfig{Source: config.SourceParquet, Path: parquetPath}},
		{"duckdb table", &config.DatasetConfig{Source: config.SourceDuckDB, Path: dbPath, Table: "transactions"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewDuckDBSource(tt.cfg)
			if err != nil {
				t.Fatalf("NewDuckDBSource() error = %v", err)
			}
			defer closeQuietly(src)

			rows, err := src.Load(context.Background())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			assertSampleRows(t, rows)
		})
	}
}

func TestDuckDBSource_MissingFile(t *testing.T) {
	_, err := NewDuckDBSource(&config.DatasetConfig{Source: config.SourceCSV, Path: "/no/such/file.csv"})
	if err == nil {
		t.Fatal("NewDuckDBSource() should fail for a missing file")
	}
}

func TestNewSourceAndLoader_CSVEndToEnd(t *testing.T) {
	cfg := &config.DatasetConfig{
		Source:      config.SourceCSV,
		Path:        writeSampleCSV(t),
		LoadTimeout: 30 * time.Second,
	}

	src, err := NewSource(cfg, &config.BreakerConfig{MaxRequests: 1, Timeout: time.Minute, FailureRatio: 0.5})
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	defer closeQuietly(src)

	if _, wrapped := src.(*BreakerSource); wrapped {
		t.Error("file sources should not be wrapped in a circuit breaker")
	}

	table, err := NewLoader(src, cfg).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	info := table.Info()
	if info.Rows != 3 || info.MinDate != "2018-03-01" || info.MaxDate != "2018-03-02" {
		t.Errorf("Info() = %+v", info)
	}
}
