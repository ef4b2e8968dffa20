package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"rfm-segmentation/pkg/models"
)

// Required columns per source. Anything extra in the file is ignored.
var (
	OrderColumns = []string{
		"order_id",
		"customer_id",
		"order_purchase_timestamp",
		"order_approved_at",
		"order_delivered_carrier_date",
		"order_delivered_customer_date",
		"order_estimated_delivery_date",
	}
	PaymentColumns = []string{
		"order_id",
		"payment_sequential",
		"payment_value",
	}
)

// SchemaError reports a required column missing from a source.
type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s: missing required column %q", e.Source, e.Column)
}

func checkColumns(source string, have, want []string) error {
	present := make(map[string]bool, len(have))
	for _, n := range have {
		present[n] = true
	}
	for _, c := range want {
		if !present[c] {
			return &SchemaError{Source: source, Column: c}
		}
	}
	return nil
}

// LoadOrdersCSV reads the orders source from disk. The handle is released
// as soon as the table is in memory.
func LoadOrdersCSV(path string) ([]models.OrderRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders source: %w", err)
	}
	defer f.Close()
	return ReadOrders(f)
}

// LoadPaymentsCSV reads the payments source from disk.
func LoadPaymentsCSV(path string) ([]models.PaymentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payments source: %w", err)
	}
	defer f.Close()
	return ReadPayments(f)
}

// ReadOrders parses an orders CSV into raw order records. All order columns
// are forced to string: timestamp validity is the cleaner's call, not the
// loader's.
func ReadOrders(r io.Reader) ([]models.OrderRecord, error) {
	types := make(map[string]series.Type, len(OrderColumns))
	for _, c := range OrderColumns {
		types[c] = series.String
	}
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("read orders: %w", df.Error())
	}
	if err := checkColumns("orders", df.Names(), OrderColumns); err != nil {
		return nil, err
	}

	cols := make(map[string]series.Series, len(OrderColumns))
	for _, name := range OrderColumns {
		cols[name] = df.Col(name)
	}
	out := make([]models.OrderRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		out = append(out, models.OrderRecord{
			OrderID:           strAt(cols["order_id"], i),
			CustomerID:        strAt(cols["customer_id"], i),
			PurchaseTimestamp: strAt(cols["order_purchase_timestamp"], i),
			ApprovedAt:        strAt(cols["order_approved_at"], i),
			CarrierDate:       strAt(cols["order_delivered_carrier_date"], i),
			CustomerDate:      strAt(cols["order_delivered_customer_date"], i),
			EstimatedDate:     strAt(cols["order_estimated_delivery_date"], i),
		})
	}
	return out, nil
}

// ReadPayments parses a payments CSV into payment installment records.
func ReadPayments(r io.Reader) ([]models.PaymentRecord, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.WithTypes(map[string]series.Type{
			"order_id":           series.String,
			"payment_sequential": series.Int,
			"payment_value":      series.Float,
		}),
	)
	if df.Error() != nil {
		return nil, fmt.Errorf("read payments: %w", df.Error())
	}
	if err := checkColumns("payments", df.Names(), PaymentColumns); err != nil {
		return nil, err
	}

	ids := df.Col("order_id")
	seqs := df.Col("payment_sequential")
	vals := df.Col("payment_value")
	out := make([]models.PaymentRecord, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		p := models.PaymentRecord{OrderID: strAt(ids, i)}
		if e := seqs.Elem(i); !e.IsNA() {
			if n, err := e.Int(); err == nil {
				p.Sequential = n
			}
		}
		if e := vals.Elem(i); !e.IsNA() {
			p.Value = e.Float()
		}
		out = append(out, p)
	}
	return out, nil
}

func strAt(s series.Series, i int) string {
	e := s.Elem(i)
	if e.IsNA() {
		return ""
	}
	return e.String()
}
