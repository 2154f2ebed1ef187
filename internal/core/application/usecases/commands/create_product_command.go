package commands

import (
	"errors"

	"routex/internal/core/domain/model/account"
	"routex/internal/core/domain/model/kernel"
	"routex/internal/pkg/errs"
	"routex/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCreateProductCommandIsNotConstructed is returned when the command was
// not created through its constructor.
var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a request to add a product to the catalog.
// An empty unit defaults to the product package's default at construction of
// the aggregate.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	actor     account.Actor
	productID kernel.UUID
	name      string
	price     decimal.Decimal
	unit      string
	stockQty  int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to add a product.
func NewCreateProductCommand(
	actor account.Actor,
	productID kernel.UUID,
	name string,
	price decimal.Decimal,
	unit string,
	stockQty int,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		unit:  unit,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setProductID(productID),
		cmd.setName(name),
		cmd.setPrice(price),
		cmd.setStockQty(stockQty),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// Actor returns the authenticated caller.
func (c CreateProductCommand) Actor() account.Actor {
	return c.actor
}

// ProductID returns the identifier for the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// Name returns the product name.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Price returns the unit price.
func (c CreateProductCommand) Price() decimal.Decimal {
	return c.price
}

// Unit returns the unit of measure, possibly empty.
func (c CreateProductCommand) Unit() string {
	return c.unit
}

// StockQty returns the initial available stock.
func (c CreateProductCommand) StockQty() int {
	return c.stockQty
}

func (c *CreateProductCommand) setActor(actor account.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateProductCommand) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.productID = id
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *CreateProductCommand) setPrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return errs.NewValueIsInvalidError("price")
	}
	c.price = price
	return nil
}

func (c *CreateProductCommand) setStockQty(stockQty int) error {
	if stockQty < 0 {
		return errs.NewValueIsInvalidError("stockQty")
	}
	c.stockQty = stockQty
	return nil
}
