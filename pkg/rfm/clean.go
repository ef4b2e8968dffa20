package rfm

import (
	"strings"
	"time"

	"rfm-segmentation/pkg/models"
)

// timestampLayouts are tried in order when parsing source timestamps.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// parseTimestamp returns nil for empty or malformed values: parse failures
// become nulls, never errors, and the drop rule decides what happens next.
func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// Clean drops every order missing any of the three delivery-chain
// timestamps (approved, delivered-to-carrier, delivered-to-customer) and
// derives the purchase month and year used by the trend feeds. Pure; input
// order is preserved but nothing downstream relies on it.
func Clean(orders []models.OrderRecord) []models.CleanOrder {
	out := make([]models.CleanOrder, 0, len(orders))
	for _, o := range orders {
		approved := parseTimestamp(o.ApprovedAt)
		carrier := parseTimestamp(o.CarrierDate)
		customer := parseTimestamp(o.CustomerDate)
		if approved == nil || carrier == nil || customer == nil {
			continue
		}
		c := models.CleanOrder{
			OrderID:           o.OrderID,
			CustomerID:        o.CustomerID,
			Purchase:          parseTimestamp(o.PurchaseTimestamp),
			Approved:          *approved,
			CarrierDelivery:   *carrier,
			CustomerDelivery:  *customer,
			EstimatedDelivery: parseTimestamp(o.EstimatedDate),
		}
		if c.Purchase != nil {
			c.Month = c.Purchase.Month()
			c.Year = c.Purchase.Year()
		}
		out = append(out, c)
	}
	return out
}
