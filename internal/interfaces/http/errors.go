package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
)

// writeError traduce un error de dominio a la respuesta HTTP. Los errores con
// estructura (stock insuficiente, pago insuficiente) viajan con Details para
// que el punto de venta pueda mostrar el faltante exacto.
func writeError(c *fiber.Ctx, err error) error {
	var insufficientStock *domain.InsufficientStockError
	if errors.As(err, &insufficientStock) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficientStock.Error(),
			Details: insufficientStock,
		})
	}
	var underpayment *domain.UnderpaymentError
	if errors.As(err, &underpayment) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "PAYMENT_INSUFFICIENT",
			Message: underpayment.Error(),
			Details: underpayment,
		})
	}

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return badRequest(c, "EMPTY_CART", err)
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		return badRequest(c, "INVALID_QUANTITY", err)
	case errors.Is(err, domain.ErrInvalidPercent):
		return badRequest(c, "INVALID_PERCENT", err)
	case errors.Is(err, domain.ErrUnderpayment):
		return badRequest(c, "PAYMENT_INSUFFICIENT", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, "VALIDATION", err)
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrDuplicateCode):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
