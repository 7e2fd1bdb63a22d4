package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/grx1242064203-bit/net-worth-analysis-tool/internal/errors"
)

// renderError writes a structured error envelope with the error's status.
func renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		apierrors.WriteError(w, apiErr)
	}
}

// validationError flattens validator.v10 failures into the API's validation
// error shape.
func validationError(err error) *apierrors.APIError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.InvalidRequestWithError(err)
	}
	fields := make([]apierrors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
