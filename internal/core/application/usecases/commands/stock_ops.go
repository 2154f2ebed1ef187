package commands

import (
	"context"
	"fmt"

	"routex/internal/core/domain/services"
	"routex/internal/core/ports"
)

// applyStockOps executes a reservation plan against the product ledger inside
// the caller's transaction. Releases come before reserves in every plan the
// planner emits, so a product swap frees stock before taking it.
func applyStockOps(ctx context.Context, repo ports.ProductRepository, ops []services.StockOp) error {
	for _, op := range ops {
		switch op.Kind {
		case services.StockOpReserve:
			if err := repo.Reserve(ctx, op.ProductID, op.Quantity); err != nil {
				return err
			}
		case services.StockOpRelease:
			if err := repo.Release(ctx, op.ProductID, op.Quantity); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown stock operation kind %q", op.Kind)
		}
	}
	return nil
}
