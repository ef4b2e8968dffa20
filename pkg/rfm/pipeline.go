package rfm

import (
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"rfm-segmentation/pkg/models"
)

// Result is everything the presentation layer reads: the labeled RFM table,
// the segment distribution, the run's boundaries and anchor, and the
// cleaned orders the trend feeds are derived from.
type Result struct {
	Reference    time.Time              `json:"reference_instant"`
	Customers    []models.CustomerRFM   `json:"customers"`
	Distribution []models.SegmentBucket `json:"distribution"`
	Thresholds   Thresholds             `json:"thresholds"`
	CleanOrders  []models.CleanOrder    `json:"-"`
}

// Pipeline runs clean → aggregate → score → classify → summarize as one
// synchronous batch. Results are memoized per input fingerprint, so
// repeated runs over identical sources skip recomputation.
type Pipeline struct {
	logger *zap.Logger
	cfg    models.Config
	cache  resultCache
}

func New(logger *zap.Logger, cfg models.Config) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{logger: logger, cfg: cfg}
}

const stageCount = 5

// Run executes the full pipeline over the raw input tables. Loading and
// cleaning problems abort with no partial result; classification gaps do
// not, they surface as the Unclassified distribution bucket.
func (p *Pipeline) Run(orders []models.OrderRecord, payments []models.PaymentRecord) (*Result, error) {
	key := Fingerprint(orders, payments)
	if r, ok := p.cache.get(key); ok {
		p.logger.Debug("pipeline cache hit", zap.String("fingerprint", key[:12]))
		return r, nil
	}

	var bar *progressbar.ProgressBar
	if p.cfg.Progress {
		bar = progressbar.Default(stageCount)
	}
	step := func() {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	cleaned := Clean(orders)
	p.logger.Info("cleaned orders",
		zap.Int("read", len(orders)),
		zap.Int("kept", len(cleaned)))
	step()

	reference, err := ReferenceInstant(cleaned)
	if err != nil {
		return nil, err
	}
	joined := Join(cleaned, payments)
	table := Aggregate(joined, reference)
	p.logger.Info("aggregated customers",
		zap.Int("joined_rows", len(joined)),
		zap.Int("customers", len(table)),
		zap.Time("reference", reference))
	step()

	table, thresholds, err := Score(table)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("scored customers",
		zap.Float64("r_low", thresholds.RLow),
		zap.Float64("r_high", thresholds.RHigh),
		zap.Float64("m_low", thresholds.MLow),
		zap.Float64("m_high", thresholds.MHigh))
	step()

	table = Classify(table)
	step()

	dist := Distribution(table)
	step()

	r := &Result{
		Reference:    reference,
		Customers:    table,
		Distribution: dist,
		Thresholds:   thresholds,
		CleanOrders:  cleaned,
	}
	p.cache.put(key, r)
	return r, nil
}

// Invalidate drops the memoized result so the next Run recomputes even for
// inputs with the same fingerprint.
func (p *Pipeline) Invalidate() {
	p.cache.clear()
}
