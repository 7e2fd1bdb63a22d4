package errors

import (
	"errors"

	"github.com/grx1242064203-bit/net-worth-analysis-tool/internal/services"
)

// FromService translates a service-layer error into the APIError rendered to
// clients. Unrecognized errors collapse to a generic 500 so internals never
// leak into responses.
func FromService(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrProductNotFound):
		return NewWithDetails(ErrProductNotFound.StatusCode, ErrProductNotFound.ErrorCode, ErrProductNotFound.Message, err.Error())
	case errors.Is(err, services.ErrNoProducts):
		return NewWithDetails(ErrNotFound.StatusCode, "NO_PRODUCTS", "No products available for this operation", err.Error())
	case errors.Is(err, services.ErrInvalidRange):
		return NewWithDetails(ErrInvalidRange.StatusCode, ErrInvalidRange.ErrorCode, ErrInvalidRange.Message, err.Error())
	case errors.Is(err, services.ErrInvalidCategory):
		return ErrValidation("category", err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		return InvalidRequestWithError(err)
	default:
		return ErrInternalServer
	}
}
