package commands_test

import (
	"testing"
	"time"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/customer"
	"routex/internal/core/domain/model/driver"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/core/domain/model/product"
	"routex/internal/core/domain/model/shipment"
	"routex/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func managerActor(t *testing.T) account.Actor {
	t.Helper()
	actor, err := account.NewActor(kernel.NewUUID(), account.RoleManager)
	require.NoError(t, err)
	return actor
}

func driverActor(t *testing.T, id kernel.UUID) account.Actor {
	t.Helper()
	actor, err := account.NewActor(id, account.RoleDriver)
	require.NoError(t, err)
	return actor
}

func makeProduct(t *testing.T, id kernel.UUID, stockQty int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, "Basmati Rice", decimal.NewFromInt(25), product.DefaultUnit, stockQty)
	require.NoError(t, err)
	return p
}

func makeDriver(t *testing.T, id kernel.UUID, isActive bool) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(id, "Sam Carter", isActive)
	require.NoError(t, err)
	return d
}

func makeCustomer(t *testing.T, id kernel.UUID, addresses ...string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(id, "Acme Foods", "+100200300", addresses)
	require.NoError(t, err)
	return c
}

func makeWarehouse(t *testing.T, id kernel.UUID) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(id, "Central", "Dock 4")
	require.NoError(t, err)
	return w
}

func makeShipment(
	t *testing.T,
	id kernel.UUID,
	productID kernel.UUID,
	driverID *kernel.UUID,
	quantity int,
	status shipment.Status,
) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(
		id,
		productID,
		kernel.NewUUID(),
		kernel.NewUUID(),
		driverID,
		"Dock 4",
		quantity,
		"",
		status,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}
