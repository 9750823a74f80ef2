package order

import (
	"errors"
	"fmt"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line, exclusively owned by its Order. The price is a
// snapshot of the product price multiplied by the quantity, taken when the
// order was created; later product price changes never affect it.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int
	price     decimal.Decimal

	isConstructed bool
}

// NewItem creates an order line from the product's current unit price.
// The line price is computed here as unitPrice * quantity and frozen.
func NewItem(id, productID kernel.UUID, quantity int, unitPrice decimal.Decimal) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	if unitPrice.IsNegative() {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice.String()))
	}
	item.price = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	return item, nil
}

// RestoreItem reconstructs an order line from persistence with its already
// frozen line price.
func RestoreItem(id, productID kernel.UUID, quantity int, price decimal.Decimal) (Item, error) {
	item := Item{isConstructed: true}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	item.price = price
	return item, nil
}

// Validate ensures the item was created through a factory function.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the ordered unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// Price returns the frozen line total (unit price snapshot * quantity).
func (i Item) Price() decimal.Decimal {
	return i.price
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
