package rfm

import (
	"errors"
	"sort"
	"time"

	"rfm-segmentation/pkg/models"
)

var (
	// ErrEmptyDataset means no orders survived cleaning, so the reference
	// instant is undefined.
	ErrEmptyDataset = errors.New("rfm: no orders survived cleaning")

	// ErrInsufficientData means fewer than 3 distinct customers reached the
	// scorer and the quantile boundaries degenerate.
	ErrInsufficientData = errors.New("rfm: fewer than 3 distinct customers")
)

const day = 24 * time.Hour

// ReferenceInstant is the fixed recency anchor for a run: one day past the
// latest carrier delivery across all cleaned orders. Never wall-clock time.
func ReferenceInstant(orders []models.CleanOrder) (time.Time, error) {
	if len(orders) == 0 {
		return time.Time{}, ErrEmptyDataset
	}
	latest := orders[0].CarrierDelivery
	for _, o := range orders[1:] {
		if o.CarrierDelivery.After(latest) {
			latest = o.CarrierDelivery
		}
	}
	return latest.Add(day), nil
}

// Join inner-joins cleaned orders with payment installments on order id.
// One row per installment: frequency downstream counts installments, not
// orders. Orders without payments and payments without orders drop out.
func Join(orders []models.CleanOrder, payments []models.PaymentRecord) []models.JoinedRow {
	byOrder := make(map[string]models.CleanOrder, len(orders))
	for _, o := range orders {
		byOrder[o.OrderID] = o
	}
	out := make([]models.JoinedRow, 0, len(payments))
	for _, p := range payments {
		o, ok := byOrder[p.OrderID]
		if !ok {
			continue
		}
		out = append(out, models.JoinedRow{
			OrderID:         p.OrderID,
			CustomerID:      o.CustomerID,
			CarrierDelivery: o.CarrierDelivery,
			Sequential:      p.Sequential,
			Value:           p.Value,
		})
	}
	return out
}

// Aggregate groups joined rows by customer and computes the raw R/F/M
// values. Recency counts whole days between the reference instant and the
// customer's most recent carrier delivery across all their orders; the
// reference construction guarantees it is never negative. Output is sorted
// by customer id so identical inputs always yield identical tables.
func Aggregate(rows []models.JoinedRow, reference time.Time) []models.CustomerRFM {
	type acc struct {
		last  time.Time
		count int
		sum   float64
	}
	byCustomer := make(map[string]*acc)
	for _, r := range rows {
		a := byCustomer[r.CustomerID]
		if a == nil {
			a = &acc{last: r.CarrierDelivery}
			byCustomer[r.CustomerID] = a
		} else if r.CarrierDelivery.After(a.last) {
			a.last = r.CarrierDelivery
		}
		a.count++
		a.sum += r.Value
	}

	out := make([]models.CustomerRFM, 0, len(byCustomer))
	for id, a := range byCustomer {
		out = append(out, models.CustomerRFM{
			CustomerID:  id,
			RecencyDays: int(reference.Sub(a.last) / day),
			Frequency:   a.count,
			Monetary:    a.sum,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}
