package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"rfm-segmentation/pkg/config"
	"rfm-segmentation/pkg/dataset"
	"rfm-segmentation/pkg/models"
	"rfm-segmentation/pkg/report"
	"rfm-segmentation/pkg/rfm"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "YAML config file")
	ordersPath := flag.String("orders", "", "orders CSV path (overrides config)")
	paymentsPath := flag.String("payments", "", "payments CSV path (overrides config)")
	dsn := flag.String("dsn", os.Getenv("RFM_DSN"), "SQL DSN (mysql://, mariadb:// or postgres://) instead of CSV sources")
	outDir := flag.String("out", "", "report output folder (overrides config)")
	noExport := flag.Bool("no-export", false, "print the distribution only, skip JSON reports")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *ordersPath != "" {
		cfg.Sources.OrdersCSV = *ordersPath
	}
	if *paymentsPath != "" {
		cfg.Sources.PaymentsCSV = *paymentsPath
	}
	if *dsn != "" {
		cfg.Sources.DSN = *dsn
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	logger := newLogger(cfg.LogLevel, *verbose)
	defer logger.Sync()

	orders, payments, err := loadSources(cfg, logger)
	if err != nil {
		logger.Fatal("load sources", zap.Error(err))
	}

	pipe := rfm.New(logger, models.Config{Progress: cfg.Progress})
	res, err := pipe.Run(orders, payments)
	if err != nil {
		logger.Fatal("pipeline", zap.Error(err))
	}

	fmt.Printf("%-24s %10s %12s\n", "customer_type", "customers", "percentage")
	for _, b := range res.Distribution {
		fmt.Printf("%-24s %10d %11.2f%%\n", b.CustomerType, b.Customers, b.Percentage)
	}

	if *noExport {
		return
	}
	runID := report.NewRunID()
	exports := []struct {
		name string
		data interface{}
	}{
		{"customer_rfm", res.Customers},
		{"segment_distribution", res.Distribution},
	}
	for _, e := range exports {
		filename := report.TimestampedFilename(cfg.Output.Dir, e.name)
		if err := report.ExportJSON(filename, runID, e.name, e.data); err != nil {
			logger.Fatal("export report", zap.String("report", e.name), zap.Error(err))
		}
		logger.Info("exported report", zap.String("report", e.name), zap.String("file", filename))
	}
}

func loadSources(cfg *config.Config, logger *zap.Logger) ([]models.OrderRecord, []models.PaymentRecord, error) {
	if cfg.Sources.DSN != "" {
		db, dsnUsed, err := dataset.Open(cfg.Sources.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		defer db.Close()
		logger.Info("connected", zap.String("dsn", dsnUsed))

		ctx := context.Background()
		orders, err := dataset.QueryOrders(ctx, db, cfg.Sources.OrdersTable)
		if err != nil {
			return nil, nil, err
		}
		payments, err := dataset.QueryPayments(ctx, db, cfg.Sources.PaymentsTable)
		if err != nil {
			return nil, nil, err
		}
		return orders, payments, nil
	}

	orders, err := dataset.LoadOrdersCSV(cfg.Sources.OrdersCSV)
	if err != nil {
		return nil, nil, err
	}
	payments, err := dataset.LoadPaymentsCSV(cfg.Sources.PaymentsCSV)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("loaded sources",
		zap.String("orders", cfg.Sources.OrdersCSV), zap.Int("order_rows", len(orders)),
		zap.String("payments", cfg.Sources.PaymentsCSV), zap.Int("payment_rows", len(payments)))
	return orders, payments, nil
}

func newLogger(level string, verbose bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if verbose || level == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}
