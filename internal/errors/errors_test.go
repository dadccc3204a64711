package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "fleetstock/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantCategory string
	}{
		{"validation", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unauthorized", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{"negative stock", apperror.NewNegativeStockError(10, -15, -5), http.StatusUnprocessableEntity, "NEGATIVE_STOCK"},
		{"transaction", apperror.NewTransactionError("x", stderrors.New("boom")), http.StatusInternalServerError, "TRANSACTION_ERROR"},
		{"internal", apperror.NewInternalError("x", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"plain", stderrors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
		{"wrapped", fmt.Errorf("ctx: %w", apperror.NewNotFoundError("x")), http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCategory, category)
		})
	}
}

func TestMapToHTTPStatus_HidesServerErrorDetails(t *testing.T) {
	err := apperror.NewDBError("Falha ao atualizar peça", stderrors.New("pq: connection refused"))

	_, _, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, apperror.GenericServerMessage, message)
	assert.NotContains(t, message, "pq:")
}

func TestNegativeStockError_Details(t *testing.T) {
	err := apperror.NewNegativeStockError(10, -15, -5)

	details := apperror.DetailsOf(fmt.Errorf("wrap: %w", err))

	assert.Equal(t, 10, details["currentStock"])
	assert.Equal(t, -15, details["requestedAdjustment"])
	assert.Equal(t, -5, details["wouldResult"])
	assert.Nil(t, apperror.DetailsOf(apperror.NewValidationError("x")))
}

func TestTransactionError_Unwraps(t *testing.T) {
	cause := stderrors.New("deadlock detected")
	err := apperror.NewTransactionError("commit", cause)

	assert.ErrorIs(t, err, cause)
}
