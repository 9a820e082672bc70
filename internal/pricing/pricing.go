// Package pricing derives displayed prices and stock availability text from
// product records. Pure functions, no failure modes.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FinalPrice computes precio * (1 - porcentajeOferta/100), rounded half-up to
// two decimals. Every consumer renders through this one policy; individual
// views never truncate or re-round.
func FinalPrice(precio, porcentajeOferta decimal.Decimal) decimal.Decimal {
	return precio.Mul(hundred.Sub(porcentajeOferta)).Div(hundred).Round(2)
}

// AvailabilityLabel classifies stock for display: the unit count while any
// stock remains, "Agotado" once it runs out.
func AvailabilityLabel(cantidad int) string {
	if cantidad > 0 {
		return fmt.Sprintf("%d unidades disponibles", cantidad)
	}
	return "Agotado"
}
