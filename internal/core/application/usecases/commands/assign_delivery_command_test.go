package commands_test

import (
	"testing"

	"ecommerce/internal/core/application/usecases/commands"
	"ecommerce/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignDeliveryCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewAssignDeliveryCommand(orderID)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
}

func TestNewAssignDeliveryCommand_EmptyID(t *testing.T) {
	_, err := commands.NewAssignDeliveryCommand(kernel.UUID{})
	require.Error(t, err)
}

func TestAssignDeliveryCommand_ValidateZeroValue(t *testing.T) {
	var cmd commands.AssignDeliveryCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrAssignDeliveryCommandIsNotConstructed)
}
