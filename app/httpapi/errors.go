package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// The first matching entry wins.
var errorMappings = []errorMapping{
	{core.ErrInvalidAmount, http.StatusBadRequest, "InvalidAmount", "Datos de pago inválidos"},
	{circulation.ErrNegativeAmount, http.StatusBadRequest, "InvalidAmount", "Datos de pago inválidos"},
	{circulation.ErrOutOfStock, http.StatusBadRequest, "OutOfStock", "No hay copias disponibles de este libro"},
	{core.ErrUserInactive, http.StatusBadRequest, "UserInactive", "El usuario no está activo"},
	{core.ErrAlreadyReturned, http.StatusBadRequest, "AlreadyReturned", "Este préstamo ya fue devuelto"},
	{core.ErrLoanStillActive, http.StatusBadRequest, "LoanStillActive",
		"No se puede eliminar un préstamo activo. Devuelve el libro primero."},
	{core.ErrAuthorHasBooks, http.StatusBadRequest, "AuthorHasBooks",
		"No se puede eliminar el autor porque tiene libros asociados"},
	{core.ErrBookHasActiveLoans, http.StatusBadRequest, "BookHasActiveLoans",
		"No se puede eliminar el libro porque tiene préstamos activos"},
	{core.ErrUserHasActiveLoans, http.StatusBadRequest, "UserHasActiveLoans",
		"No se puede eliminar el usuario porque tiene préstamos activos"},
	{core.ErrCopiesOnLoanExceedTotal, http.StatusBadRequest, "CopiesOnLoanExceedTotal",
		"El total de copias no puede ser menor que las copias prestadas"},
	{core.ErrInvalidSignature, http.StatusBadRequest, "InvalidSignature", "Invalid signature"},
	{circulation.ErrAuthorNotFound, http.StatusNotFound, "AuthorNotFound", "Autor no encontrado"},
	{circulation.ErrBookNotFound, http.StatusNotFound, "BookNotFound", "Libro no encontrado"},
	{circulation.ErrUserNotFound, http.StatusNotFound, "UserNotFound", "Usuario no encontrado"},
	{circulation.ErrLoanNotFound, http.StatusNotFound, "LoanNotFound", "Préstamo no encontrado"},
	{circulation.ErrPaymentNotFound, http.StatusNotFound, "PaymentNotFound", "Pago no encontrado"},
	{core.ErrPaymentProviderRejected, http.StatusBadGateway, "PaymentProviderRejected",
		"El proveedor de pagos rechazó la solicitud"},
	{core.ErrPaymentProviderUnavailable, http.StatusServiceUnavailable, "PaymentProviderUnavailable",
		"El proveedor de pagos no está disponible"},
	{circulation.ErrConcurrencyConflict, http.StatusServiceUnavailable, "ConcurrencyConflict",
		"El sistema está ocupado, intenta de nuevo"},
	{context.DeadlineExceeded, http.StatusServiceUnavailable, "Timeout",
		"El sistema está ocupado, intenta de nuevo"},
}

var internalError = ErrorResponse{Error: "Error interno del servidor", Code: "Internal"}

// errorResponseFor maps err to a status code and a body that is safe to show to the caller.
func errorResponseFor(err error) (int, ErrorResponse) {
	var validationErr core.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, ErrorResponse{Error: validationErr.Message, Code: "ValidationFailed"}
	}

	if errors.Is(err, core.ErrValidationFailed) {
		return http.StatusBadRequest, ErrorResponse{Error: "Datos inválidos", Code: "ValidationFailed"}
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, ErrorResponse{Error: m.message, Code: m.code}
		}
	}

	return http.StatusInternalServerError, internalError
}

func respondError(c *gin.Context, err error) {
	status, body := errorResponseFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

func respondInvalidInput(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "ValidationFailed"})
}
