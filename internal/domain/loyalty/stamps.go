// Package loyalty contiene la aritmética pura del programa de carimbos.
//
// Conviven dos mecanismos de acumulación independientes y NO unificados:
// el carimbo manual por visita (+1) y la acumulación por gasto al entregar
// la orden (floor(total/10)). Unificarlos es una decisión de producto
// pendiente, no un bug.
package loyalty

import "github.com/shopspring/decimal"

// DefaultCycle largo del ciclo de carimbos si el tenant no configura otro.
const DefaultCycle = 10

// pointsPerCurrency un punto por cada 10 unidades de moneda gastadas.
var pointsPerCurrency = decimal.NewFromInt(10)

// Carimbos devuelve los carimbos visibles del ciclo actual: points mod cycle.
func Carimbos(points, cycle int) int {
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	return points % cycle
}

// Rewards devuelve la cantidad de lavados gratis disponibles: points div cycle.
func Rewards(points, cycle int) int {
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	return points / cycle
}

// CycleCompleted indica si el último carimbo cerró un ciclo completo:
// el saldo es múltiplo de cycle y mayor que cero.
func CycleCompleted(points, cycle int) bool {
	if cycle <= 0 {
		cycle = DefaultCycle
	}
	return points > 0 && points%cycle == 0
}

// PointsForSpend puntos acumulados al entregar una orden: floor(total / 10).
// Totales negativos o cero no acumulan.
func PointsForSpend(total decimal.Decimal) int {
	if !total.GreaterThan(decimal.Zero) {
		return 0
	}
	return int(total.Div(pointsPerCurrency).IntPart())
}
