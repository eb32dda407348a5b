package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/pricing"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// CommitInvoiceUseCase convierte un carrito validado en una factura persistida
// más el débito de inventario, como unidad atómica. Un commit fallido no deja
// rastro alguno, así que reintentar el mismo carrito es seguro.
type CommitInvoiceUseCase struct {
	txRunner     TxRunner
	ledger       *inventory.Ledger
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository // lecturas fuera de la tx
	log          *logger.Logger
}

// NewCommitInvoiceUseCase construye el caso de uso.
func NewCommitInvoiceUseCase(
	txRunner TxRunner,
	ledger *inventory.Ledger,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	log *logger.Logger,
) *CommitInvoiceUseCase {
	return &CommitInvoiceUseCase{
		txRunner:     txRunner,
		ledger:       ledger,
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		log:          log,
	}
}

// Commit valida el carrito, calcula la cascada de precios (descuento global y
// luego impuesto por línea), verifica el pago y persiste cabecera + líneas con
// snapshot congelado + débito de stock en una sola transacción.
//
// El débito corre primero dentro de la tx porque GetForUpdate deja las filas de
// producto bloqueadas: el precio y la tasa con que se calcula cada línea son
// exactamente los vigentes al momento del commit, sin carrera con ediciones de
// producto concurrentes. Cualquier error posterior (pago insuficiente incluido)
// revierte también el débito.
func (uc *CommitInvoiceUseCase) Commit(ctx context.Context, in dto.CommitInvoiceRequest) (*dto.InvoiceResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := pricing.ValidatePercent(in.GlobalDiscountPercent); err != nil {
		return nil, err
	}
	if in.PaymentMethod == "" || in.PaidAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	items := make([]inventory.Item, 0, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return nil, domain.ErrNonPositiveQuantity
		}
		items = append(items, inventory.Item{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	// Validar cliente (fuera de la tx, solo lectura)
	if in.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || !customer.Active {
			return nil, domain.ErrCustomerNotFound
		}
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	var inv *entity.Invoice
	var lines []*entity.InvoiceLine

	err := uc.txRunner.RunSale(ctx, func(
		stockRepo repository.StockRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Bloquear, verificar y debitar stock (todo-o-nada)
		products, err := uc.ledger.DebitInTx(stockRepo, items)
		if err != nil {
			return err
		}

		// 2) Cascada de precios con los valores vigentes de las filas bloqueadas
		pricingLines := make([]pricing.Line, 0, len(in.Lines))
		for _, l := range in.Lines {
			p := products[l.ProductID]
			pricingLines = append(pricingLines, pricing.Line{
				UnitPrice: p.Price,
				Quantity:  l.Quantity,
				TaxRate:   p.TaxRate,
			})
		}
		totals, perLine, err := pricing.Compute(pricingLines, in.GlobalDiscountPercent)
		if err != nil {
			return err
		}

		// 3) Verificación de pago; el faltante viaja en el error
		if in.PaidAmount.LessThan(totals.GrandTotal) {
			return &domain.UnderpaymentError{
				GrandTotal: totals.GrandTotal,
				PaidAmount: in.PaidAmount,
				Shortfall:  totals.GrandTotal.Sub(in.PaidAmount),
			}
		}

		// 4) Cabecera y líneas con snapshot congelado del producto
		inv = &entity.Invoice{
			ID:            invoiceID,
			Datetime:      now,
			CustomerID:    in.CustomerID,
			Subtotal:      totals.Subtotal,
			DiscountTotal: totals.DiscountTotal,
			TaxTotal:      totals.TaxTotal,
			GrandTotal:    totals.GrandTotal,
			PaymentMethod: in.PaymentMethod,
			PaidAmount:    in.PaidAmount,
			ChangeDue:     in.PaidAmount.Sub(totals.GrandTotal),
			Notes:         in.Notes,
			CreatedAt:     now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		lines = lines[:0]
		for i, l := range in.Lines {
			p := products[l.ProductID]
			line := &entity.InvoiceLine{
				ID:          uuid.New().String(),
				InvoiceID:   invoiceID,
				ProductID:   p.ID,
				ProductCode: p.Code,
				ProductName: p.Name,
				Quantity:    l.Quantity,
				UnitPrice:   p.Price,
				TaxRate:     p.TaxRate,
				LineTotal:   perLine[i].LineTotal,
			}
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("grand_total", inv.GrandTotal.StringFixed(2)).
		Int("lines", len(lines)).
		Str("payment_method", inv.PaymentMethod).
		Msg("venta confirmada")

	return toInvoiceResponse(inv, lines), nil
}

// GetInvoice obtiene una factura confirmada con sus líneas.
func (uc *CommitInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines), nil
}

// toInvoiceResponse mapea a DTO redondeando los montos a 2 decimales
// (el redondeo ocurre solo en esta frontera; lo persistido conserva precisión).
func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		Datetime:      inv.Datetime.Format(dto.DateTimeFormat),
		CustomerID:    inv.CustomerID,
		Subtotal:      inv.Subtotal.Round(2),
		DiscountTotal: inv.DiscountTotal.Round(2),
		TaxTotal:      inv.TaxTotal.Round(2),
		GrandTotal:    inv.GrandTotal.Round(2),
		PaymentMethod: inv.PaymentMethod,
		PaidAmount:    inv.PaidAmount.Round(2),
		ChangeDue:     inv.ChangeDue.Round(2),
		Notes:         inv.Notes,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ProductID:   l.ProductID,
			ProductCode: l.ProductCode,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			TaxRate:     l.TaxRate,
			LineTotal:   l.LineTotal.Round(2),
		})
	}
	return resp
}
