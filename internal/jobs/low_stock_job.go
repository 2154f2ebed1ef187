package jobs

import (
	"context"
	"log/slog"

	"routex/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// LowStockJob periodically sweeps the stock ledger and reports products whose
// available quantity dropped below the replenishment threshold. Runs every
// minute so dispatchers notice shortages before they block new shipments.
type LowStockJob struct {
	handler   queries.GetLowStockProductsQueryHandler
	threshold int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewLowStockJob creates a new low stock sweep. A threshold of zero falls back
// to the query's default.
func NewLowStockJob(
	handler queries.GetLowStockProductsQueryHandler,
	threshold int,
	logger *slog.Logger,
) *LowStockJob {
	return &LowStockJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "low_stock_job"),
	}
}

// Start begins the low stock sweep to run once a minute.
func (j *LowStockJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetLowStockProductsQuery(j.threshold)
		if err != nil {
			j.logger.ErrorContext(ctx, "Low stock sweep misconfigured", "error", err)
			return
		}

		products, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Low stock sweep failed", "error", err)
			return
		}

		for _, lowStockProduct := range products {
			j.logger.WarnContext(ctx, "Product stock below threshold",
				"product_id", lowStockProduct.ID.String(),
				"name", lowStockProduct.Name,
				"stock_qty", lowStockProduct.StockQty,
				"threshold", query.Threshold(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock sweep started (running every minute)")
	return nil
}

// Stop stops the low stock sweep.
func (j *LowStockJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Low stock sweep stopped")
}
