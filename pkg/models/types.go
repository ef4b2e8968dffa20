package models

import (
	"time"
)

/*
LOAD → raw rows as read from the orders and payments sources.
*/

// OrderRecord is one order row exactly as read from the source. Timestamps
// stay raw strings here; the cleaning stage decides what is parseable.
type OrderRecord struct {
	OrderID           string
	CustomerID        string
	PurchaseTimestamp string
	ApprovedAt        string
	CarrierDate       string
	CustomerDate      string
	EstimatedDate     string
}

// PaymentRecord is one payment installment row. OrderID is not unique: an
// order paid in N installments produces N rows.
type PaymentRecord struct {
	OrderID    string
	Sequential int
	Value      float64
}

/*
CLEAN → orders that passed the completeness rule, with parsed dates.
*/

// CleanOrder is an order whose approved, carrier-delivery and
// customer-delivery timestamps are all present and parseable. Purchase and
// EstimatedDelivery are nil when missing or malformed; Month and Year are
// derived from Purchase for the trend feeds (zero when Purchase is nil).
type CleanOrder struct {
	OrderID           string
	CustomerID        string
	Purchase          *time.Time
	Approved          time.Time
	CarrierDelivery   time.Time
	CustomerDelivery  time.Time
	EstimatedDelivery *time.Time
	Month             time.Month
	Year              int
}

/*
COMPUTE → joined rows, per-customer metrics and reporting rows.
*/

// JoinedRow is one (order, installment) pair from the inner join of cleaned
// orders with payments.
type JoinedRow struct {
	OrderID         string
	CustomerID      string
	CarrierDelivery time.Time
	Sequential      int
	Value           float64
}

// CustomerRFM holds the raw recency/frequency/monetary values for one
// customer plus the segment columns filled in by the scorer and classifier.
type CustomerRFM struct {
	CustomerID   string  `json:"customer_id"`
	RecencyDays  int     `json:"recency_days"`
	Frequency    int     `json:"frequency"`
	Monetary     float64 `json:"monetary"`
	RSegment     int     `json:"r_segment"`
	FSegment     int     `json:"f_segment"`
	MSegment     int     `json:"m_segment"`
	RFMScore     string  `json:"rfm_score"`
	CustomerType string  `json:"customer_type"`
}

// SegmentBucket is one row of the segment distribution.
type SegmentBucket struct {
	CustomerType string  `json:"customer_type"`
	Customers    int     `json:"customers"`
	Percentage   float64 `json:"percentage"`
}

/*
CONFIG → parameters passed to the pipeline.
*/

// Config carries the run options handed to the pipeline.
type Config struct {
	Progress bool // render a progress bar over the pipeline stages
}
