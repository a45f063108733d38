package statemachine_test

import (
	"testing"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, s := range statemachine.AllStatuses {
		assert.True(t, statemachine.IsValid(s), "%s should be valid", s)
	}
	assert.False(t, statemachine.IsValid("Teleported"))
	assert.False(t, statemachine.IsValid("pending"), "status matching is case sensitive")
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, statemachine.IsTerminal(models.StatusCompleted))
	assert.True(t, statemachine.IsTerminal(models.StatusCancelled))
	for _, s := range []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
	} {
		assert.False(t, statemachine.IsTerminal(s), "%s is not terminal", s)
	}
}

func TestCanTransition(t *testing.T) {
	nonTerminal := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusPreparing,
		models.StatusOutForDelivery,
	}

	t.Run("non-terminal to anything", func(t *testing.T) {
		for _, from := range nonTerminal {
			for _, to := range statemachine.AllStatuses {
				assert.NoError(t, statemachine.CanTransition(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("terminal to nothing, including itself", func(t *testing.T) {
		for _, from := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
			for _, to := range statemachine.AllStatuses {
				err := statemachine.CanTransition(from, to)
				assert.ErrorIs(t, err, statemachine.ErrTerminalState, "%s -> %s", from, to)
			}
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		err := statemachine.CanTransition(models.StatusPending, "Teleported")
		assert.ErrorIs(t, err, statemachine.ErrUnknownStatus)
	})
}
