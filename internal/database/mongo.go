// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package database

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/models"
)

// mongoDisconnectTimeout bounds Close.
const mongoDisconnectTimeout = 10 * time.Second

// MongoSource reads transaction documents from one MongoDB collection.
type MongoSource struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoSource creates a client for dsn. The driver connects lazily.
func NewMongoSource(dsn, database, collection string) (*MongoSource, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(dsn))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}
	return &MongoSource{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}, nil
}

// Name returns "mongodb".
func (s *MongoSource) Name() string { return config.SourceMongoDB }

// Load decodes every document in the collection.
func (s *MongoSource) Load(ctx context.Context) ([]models.Transaction, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query mongodb collection %s: %w", s.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Transaction, 0, 1024)
	for cursor.Next(ctx) {
		var doc mongoTransaction
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %d: %w", len(out)+1, err)
		}
		out = append(out, doc.transaction())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mongodb cursor: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoSource) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoDisconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoTransaction mirrors one flattened export row. Imports made with
// mongoimport keep numbers and timestamps as strings, so those fields use
// lenient decoders.
type mongoTransaction struct {
	OrderID           string     `bson:"order_id"`
	CustomerID        string     `bson:"customer_id"`
	PurchaseTimestamp flexTime   `bson:"order_purchase_timestamp"`
	EstimatedDelivery flexTime   `bson:"order_estimated_delivery_date"`
	ProductCategory   string     `bson:"product_category_name_english"`
	OrderItemID       flexNumber `bson:"order_item_id"`
	PaymentValue      flexNumber `bson:"payment_value"`
	PaymentType       string     `bson:"payment_type"`
	CustomerState     string     `bson:"customer_state"`
	GeoLat            flexNumber `bson:"geolocation_lat"`
	GeoLng            flexNumber `bson:"geolocation_lng"`
	GeoCity           string     `bson:"geolocation_city"`
	GeoState          string     `bson:"geolocation_state"`
}

func (d *mongoTransaction) transaction() models.Transaction {
	tx := models.Transaction{
		OrderID:         d.OrderID,
		CustomerID:      d.CustomerID,
		PurchasedAt:     d.PurchaseTimestamp.Time,
		ProductCategory: d.ProductCategory,
		ItemQuantity:    int(d.OrderItemID.Value),
		PaymentValue:    math.NaN(),
		PaymentType:     models.ParsePaymentType(d.PaymentType),
		CustomerState:   d.CustomerState,
	}
	if d.PaymentValue.Valid {
		tx.PaymentValue = d.PaymentValue.Value
	}
	if d.EstimatedDelivery.Valid {
		est := d.EstimatedDelivery.Time
		tx.EstimatedDelivery = &est
	}
	if d.GeoLat.Valid && d.GeoLng.Valid {
		tx.Location = &models.Location{
			Lat:   d.GeoLat.Value,
			Lng:   d.GeoLng.Value,
			City:  d.GeoCity,
			State: d.GeoState,
		}
	}
	return tx
}

// timestampLayouts are tried in order for string timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	models.DateLayout,
}

// parseTimestamp parses the export's timestamp strings as UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// flexTime decodes a BSON datetime or a timestamp string.
type flexTime struct {
	Time  time.Time
	Valid bool
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (f *flexTime) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = flexTime{}
		return nil
	case bsontype.DateTime:
		ms, ok := raw.DateTimeOK()
		if !ok {
			return fmt.Errorf("malformed datetime")
		}
		*f = flexTime{Time: time.UnixMilli(ms).UTC(), Valid: true}
		return nil
	case bsontype.String:
		s, _ := raw.StringValueOK()
		if strings.TrimSpace(s) == "" {
			*f = flexTime{}
			return nil
		}
		ts, err := parseTimestamp(s)
		if err != nil {
			return err
		}
		*f = flexTime{Time: ts, Valid: true}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into a timestamp", t)
	}
}

// flexNumber decodes a BSON double, int32, int64 or numeric string.
type flexNumber struct {
	Value float64
	Valid bool
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (f *flexNumber) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*f = flexNumber{}
	case bsontype.Double:
		v, _ := raw.DoubleOK()
		*f = flexNumber{Value: v, Valid: true}
	case bsontype.Int32:
		v, _ := raw.Int32OK()
		*f = flexNumber{Value: float64(v), Valid: true}
	case bsontype.Int64:
		v, _ := raw.Int64OK()
		*f = flexNumber{Value: float64(v), Valid: true}
	case bsontype.String:
		s, _ := raw.StringValueOK()
		s = strings.TrimSpace(s)
		if s == "" {
			*f = flexNumber{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*f = flexNumber{Value: v, Valid: true}
	default:
		return fmt.Errorf("cannot decode %s into a number", t)
	}
	return nil
}
