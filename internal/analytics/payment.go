// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"sort"

	"github.com/tomtom215/marketscope/internal/models"
)

// PaymentMetric selects the cell value of a payment matrix.
type PaymentMetric string

const (
	PaymentByValue PaymentMetric = "value"
	PaymentByCount PaymentMetric = "count"
)

var paymentColumn = func() map[models.PaymentType]int {
	m := make(map[models.PaymentType]int, len(models.PaymentTypes))
	for i, pt := range models.PaymentTypes {
		m[pt] = i
	}
	return m
}()

// PaymentValueMatrix sums payment value per state and payment type.
func PaymentValueMatrix(rows []models.Transaction) models.PaymentMatrix {
	return PaymentMatrix(rows, PaymentByValue)
}

// PaymentCountMatrix counts transactions per state and payment type.
func PaymentCountMatrix(rows []models.Transaction) models.PaymentMatrix {
	return PaymentMatrix(rows, PaymentByCount)
}

// PaymentMatrix cross-tabulates state against payment type. Every column of
// the closed payment set is present with absent cells as zero. Rows are
// sorted by their total descending, ties by state ascending.
func PaymentMatrix(rows []models.Transaction, metric PaymentMetric) models.PaymentMatrix {
	cells := make(map[string][]float64)
	for i := range rows {
		tx := &rows[i]
		state := keyOr(tx.CustomerState)
		values, ok := cells[state]
		if !ok {
			values = make([]float64, len(models.PaymentTypes))
			cells[state] = values
		}
		col, ok := paymentColumn[tx.PaymentType]
		if !ok {
			col = paymentColumn[models.PaymentNotDefined]
		}
		if metric == PaymentByCount {
			values[col]++
		} else {
			values[col] += tx.PaymentValue
		}
	}

	type totalled struct {
		row   models.PaymentRow
		total float64
	}
	ordered := make([]totalled, 0, len(cells))
	for state, values := range cells {
		var total float64
		for _, v := range values {
			total += v
		}
		ordered = append(ordered, totalled{row: models.PaymentRow{State: state, Values: values}, total: total})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].total != ordered[j].total {
			return ordered[i].total > ordered[j].total
		}
		return ordered[i].row.State < ordered[j].row.State
	})

	columns := make([]models.PaymentType, len(models.PaymentTypes))
	copy(columns, models.PaymentTypes)
	out := models.PaymentMatrix{Columns: columns, Rows: make([]models.PaymentRow, 0, len(ordered))}
	for _, o := range ordered {
		out.Rows = append(out.Rows, o.row)
	}
	return out
}
