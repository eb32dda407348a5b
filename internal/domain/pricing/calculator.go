package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Line entrada de cálculo: precio unitario, cantidad y tasa de impuesto (%).
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  decimal.Decimal
	TaxRate   decimal.Decimal
}

// LineTotals resultado por línea. Todos los montos a precisión completa;
// el redondeo a 2 decimales ocurre solo en la frontera de presentación.
type LineTotals struct {
	Base      decimal.Decimal // precio × cantidad
	Discount  decimal.Decimal // base - base descontada
	Tax       decimal.Decimal // base descontada × tasa/100
	LineTotal decimal.Decimal // base descontada + impuesto
}

// Totals agregados de la factura (sumas elemento a elemento de las líneas).
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
}

// ValidatePercent verifica que un porcentaje esté en [0,100].
func ValidatePercent(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return domain.ErrInvalidPercent
	}
	return nil
}

// ComputeLine aplica la cascada descuento-luego-impuesto a una línea:
//
//	base            = precio × cantidad
//	base descontada = base × (1 - descuento/100)
//	impuesto        = base descontada × tasa/100
//	total línea     = base descontada + impuesto
//
// El descuento global se aplica uniformemente a todas las líneas; no existe
// descuento por línea.
func ComputeLine(l Line, globalDiscountPercent decimal.Decimal) (LineTotals, error) {
	if !l.Quantity.IsPositive() {
		return LineTotals{}, domain.ErrNonPositiveQuantity
	}
	if err := ValidatePercent(globalDiscountPercent); err != nil {
		return LineTotals{}, err
	}
	if err := ValidatePercent(l.TaxRate); err != nil {
		return LineTotals{}, err
	}

	base := l.UnitPrice.Mul(l.Quantity)
	discountFactor := decimal.NewFromInt(1).Sub(globalDiscountPercent.Div(hundred))
	discountedBase := base.Mul(discountFactor)
	tax := discountedBase.Mul(l.TaxRate).Div(hundred)

	return LineTotals{
		Base:      base,
		Discount:  base.Sub(discountedBase),
		Tax:       tax,
		LineTotal: discountedBase.Add(tax),
	}, nil
}

// Compute calcula las líneas y sus agregados. Devuelve los totales por línea en
// el mismo orden de entrada.
func Compute(lines []Line, globalDiscountPercent decimal.Decimal) (Totals, []LineTotals, error) {
	perLine := make([]LineTotals, 0, len(lines))
	var t Totals
	for _, l := range lines {
		lt, err := ComputeLine(l, globalDiscountPercent)
		if err != nil {
			return Totals{}, nil, err
		}
		perLine = append(perLine, lt)
		t.Subtotal = t.Subtotal.Add(lt.Base)
		t.DiscountTotal = t.DiscountTotal.Add(lt.Discount)
		t.TaxTotal = t.TaxTotal.Add(lt.Tax)
		t.GrandTotal = t.GrandTotal.Add(lt.LineTotal)
	}
	return t, perLine, nil
}
