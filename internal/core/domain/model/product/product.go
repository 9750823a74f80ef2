// Package product contains the Product aggregate, which owns the stock count
// for each catalog item. Stock is mutated only through Reserve and Release so
// the stock >= 0 invariant can never be bypassed.
package product

import (
	"errors"
	"fmt"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through NewProduct or RestoreProduct.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")

	// ErrInsufficientStock is the sentinel for InsufficientStockError values.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError indicates that a reservation asked for more units
// than the product has on hand. It carries the product name because the
// rejection surfaced to the customer names the product, not its ID.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product: %s", e.ProductName)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// Product is the aggregate behind the inventory ledger.
//
// Invariants:
//   - stock is never negative
//   - stock changes only through Reserve and Release
//   - price uses fixed-point decimal arithmetic, never floats
type Product struct {
	id          kernel.UUID
	name        string
	description string
	price       decimal.Decimal
	stock       int
	supplierID  kernel.UUID

	isConstructed bool
}

// NewProduct creates a product with validated name, non-negative price and
// stock, and a supplier reference.
func NewProduct(id kernel.UUID, name, description string, price decimal.Decimal, stock int, supplierID kernel.UUID) (*Product, error) {
	p := &Product{
		description:   description,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
		p.setStock(stock),
		p.setSupplierID(supplierID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id kernel.UUID, name, description string, price decimal.Decimal, stock int, supplierID kernel.UUID) (*Product, error) {
	return NewProduct(id, name, description, price, stock, supplierID)
}

// Validate ensures the product was created through a factory function.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Description returns the product description.
func (p *Product) Description() string {
	return p.description
}

// Price returns the current unit price. Orders snapshot this value at
// creation time; later price changes never affect existing orders.
func (p *Product) Price() decimal.Decimal {
	return p.price
}

// Stock returns the number of units on hand.
func (p *Product) Stock() int {
	return p.stock
}

// SupplierID returns the owning supplier's user ID.
func (p *Product) SupplierID() kernel.UUID {
	return p.supplierID
}

// Reserve decrements stock by quantity. Returns InsufficientStockError when
// fewer than quantity units are on hand; stock is left untouched in that
// case. The caller is responsible for running the reservation inside the
// same transaction as the order it belongs to.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if p.stock < quantity {
		return &InsufficientStockError{ProductName: p.name}
	}

	p.stock -= quantity
	return nil
}

// Release returns quantity units to stock, undoing a reservation.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	p.stock += quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price.String()))
	}
	p.price = price
	return nil
}

func (p *Product) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsInvalidErrorWithCause("stock",
			fmt.Errorf("%d is negative", stock))
	}
	p.stock = stock
	return nil
}

func (p *Product) setSupplierID(supplierID kernel.UUID) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	p.supplierID = supplierID
	return nil
}
