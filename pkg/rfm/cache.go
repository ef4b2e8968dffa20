package rfm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"

	"rfm-segmentation/pkg/models"
)

// resultCache memoizes the most recent pipeline result, keyed by a
// fingerprint of the input records. It is populated on the first Run,
// returns the cached result for identical inputs, and a new fingerprint
// evicts the previous entry.
type resultCache struct {
	mu  sync.Mutex
	key string
	res *Result
}

func (c *resultCache) get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.res != nil && c.key == key {
		return c.res, true
	}
	return nil, false
}

func (c *resultCache) put(key string, r *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.res = r
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
	c.res = nil
}

// Fingerprint identifies the input tables by content: a SHA-256 over every
// raw field in row order. Identical sources hash identically regardless of
// where they were loaded from.
func Fingerprint(orders []models.OrderRecord, payments []models.PaymentRecord) string {
	h := sha256.New()
	for _, o := range orders {
		fmt.Fprintf(h, "o|%s|%s|%s|%s|%s|%s|%s\n",
			o.OrderID, o.CustomerID, o.PurchaseTimestamp, o.ApprovedAt,
			o.CarrierDate, o.CustomerDate, o.EstimatedDate)
	}
	for _, p := range payments {
		fmt.Fprintf(h, "p|%s|%d|%s\n",
			p.OrderID, p.Sequential, strconv.FormatFloat(p.Value, 'g', -1, 64))
	}
	return hex.EncodeToString(h.Sum(nil))
}
