package product_test

import (
	"testing"

	"ecommerce/internal/core/domain/model/kernel"
	"ecommerce/internal/core/domain/model/product"
	"ecommerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, stock int) *product.Product {
	t.Helper()

	p, err := product.NewProduct(
		kernel.NewUUID(),
		"Widget",
		"a widget",
		decimal.NewFromFloat(19.99),
		stock,
		kernel.NewUUID(),
	)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p := newTestProduct(t, 5)

		assert.Equal(t, "Widget", p.Name())
		assert.Equal(t, 5, p.Stock())
		assert.True(t, p.Price().Equal(decimal.NewFromFloat(19.99)))
		require.NoError(t, p.Validate())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "", "", decimal.Zero, 0, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "Widget", "", decimal.NewFromInt(-1), 0, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("negative stock", func(t *testing.T) {
		_, err := product.NewProduct(kernel.NewUUID(), "Widget", "", decimal.Zero, -1, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("decrements stock", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.Reserve(2))

		assert.Equal(t, 3, p.Stock())
	})

	t.Run("insufficient stock leaves stock untouched", func(t *testing.T) {
		p := newTestProduct(t, 5)

		err := p.Reserve(10)

		require.Error(t, err)
		assert.ErrorIs(t, err, product.ErrInsufficientStock)

		var stockErr *product.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Widget", stockErr.ProductName)
		assert.Equal(t, 5, p.Stock())
	})

	t.Run("exact stock drains to zero", func(t *testing.T) {
		p := newTestProduct(t, 5)

		require.NoError(t, p.Reserve(5))

		assert.Equal(t, 0, p.Stock())
		assert.ErrorIs(t, p.Reserve(1), product.ErrInsufficientStock)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		p := newTestProduct(t, 5)

		assert.ErrorIs(t, p.Reserve(0), errs.ErrValueIsInvalid)
		assert.ErrorIs(t, p.Reserve(-1), errs.ErrValueIsInvalid)
		assert.Equal(t, 5, p.Stock())
	})
}

func TestProduct_Release(t *testing.T) {
	p := newTestProduct(t, 3)

	require.NoError(t, p.Release(2))

	assert.Equal(t, 5, p.Stock())
	assert.ErrorIs(t, p.Release(0), errs.ErrValueIsInvalid)
}

func TestProduct_Validate_NotConstructed(t *testing.T) {
	var p product.Product

	assert.Equal(t, product.ErrProductIsNotConstructed, p.Validate())
}
