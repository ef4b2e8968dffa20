package dataset

import (
	"errors"
	"strings"
	"testing"
)

const ordersHeader = "order_id,customer_id,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date"

func TestReadOrders_Valid(t *testing.T) {
	csv := ordersHeader + "\n" +
		"o1,c1,2017-10-02 10:56:33,2017-10-02 11:07:15,2017-10-04 19:55:00,2017-10-10 21:25:13,2017-10-18 00:00:00\n" +
		"o2,c2,2017-10-03 09:00:00,,2017-10-05 12:00:00,2017-10-11 08:30:00,2017-10-19 00:00:00\n"
	got, err := ReadOrders(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].OrderID != "o1" || got[0].CustomerID != "c1" {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[0].CarrierDate != "2017-10-04 19:55:00" {
		t.Fatalf("carrier date not preserved: %q", got[0].CarrierDate)
	}
	// Missing approved-at must survive loading as an empty string; dropping
	// the row is the cleaner's job.
	if got[1].ApprovedAt != "" {
		t.Fatalf("expected empty approved-at, got %q", got[1].ApprovedAt)
	}
}

func TestReadOrders_MissingColumn(t *testing.T) {
	csv := "order_id,customer_id\no1,c1\n"
	_, err := ReadOrders(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected schema error, got nil")
	}
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if se.Source != "orders" {
		t.Fatalf("got source %q, want orders", se.Source)
	}
	if se.Column != "order_purchase_timestamp" {
		t.Fatalf("got column %q, want order_purchase_timestamp", se.Column)
	}
}

func TestReadOrders_EmptySource(t *testing.T) {
	// A source with no data rows fails at load time; the pipeline never
	// sees it.
	if _, err := ReadOrders(strings.NewReader(ordersHeader + "\n")); err == nil {
		t.Fatal("expected error for empty source, got nil")
	}
}

func TestReadPayments_Valid(t *testing.T) {
	csv := "order_id,payment_sequential,payment_value\n" +
		"o1,1,99.33\n" +
		"o1,2,24.39\n" +
		"o2,1,65.71\n"
	got, err := ReadPayments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3", len(got))
	}
	if got[1].OrderID != "o1" || got[1].Sequential != 2 {
		t.Fatalf("unexpected second installment: %+v", got[1])
	}
	if got[2].Value != 65.71 {
		t.Fatalf("got value %v, want 65.71", got[2].Value)
	}
}

func TestReadPayments_MissingColumn(t *testing.T) {
	csv := "order_id,payment_value\no1,10.0\n"
	_, err := ReadPayments(strings.NewReader(csv))
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if se.Source != "payments" || se.Column != "payment_sequential" {
		t.Fatalf("unexpected schema error: %+v", se)
	}
}

func TestLoadOrdersCSV_MissingFile(t *testing.T) {
	_, err := LoadOrdersCSV("testdata/does_not_exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
