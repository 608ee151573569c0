// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package models

import (
	"time"
)

// DateLayout is the calendar-date wire format used by every date field and
// query parameter.
const DateLayout = "2006-01-02"

// PaymentType is the enumerated payment method of a transaction.
type PaymentType string

const (
	PaymentCreditCard PaymentType = "credit_card"
	PaymentBoleto     PaymentType = "boleto"
	PaymentVoucher    PaymentType = "voucher"
	PaymentDebitCard  PaymentType = "debit_card"
	PaymentNotDefined PaymentType = "not_defined"
)

// PaymentTypes is the closed set of payment types, in column order for the
// payment matrices.
var PaymentTypes = []PaymentType{
	PaymentCreditCard,
	PaymentBoleto,
	PaymentVoucher,
	PaymentDebitCard,
	PaymentNotDefined,
}

// ParsePaymentType maps a raw source value onto the closed set. Anything
// outside the set is reported as not_defined.
func ParsePaymentType(raw string) PaymentType {
	for _, pt := range PaymentTypes {
		if string(pt) == raw {
			return pt
		}
	}
	return PaymentNotDefined
}

// Location is the customer geolocation attached to a transaction row.
type Location struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

// Transaction is one order line item, the input granularity of every
// aggregation.
//
// ItemQuantity carries the raw order_item_id column. It is summed as the
// item-volume metric.
type Transaction struct {
	OrderID           string      `json:"order_id"`
	CustomerID        string      `json:"customer_id"`
	PurchasedAt       time.Time   `json:"order_purchase_timestamp"`
	EstimatedDelivery *time.Time  `json:"order_estimated_delivery_date,omitempty"`
	ProductCategory   string      `json:"product_category"`
	ItemQuantity      int         `json:"order_item_id"`
	PaymentValue      float64     `json:"payment_value"`
	PaymentType       PaymentType `json:"payment_type"`
	CustomerState     string      `json:"customer_state"`
	Location          *Location   `json:"location,omitempty"`
}
