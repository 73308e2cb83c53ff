// Package scenario implements the import cost simulator: CIF calculation,
// ICMS and product taxes, and config-driven scenario totals ranked with the
// same ordering as the dataset ranking.
package scenario

import (
	"fmt"
	"strings"

	"import-scenario-analyzer/internal/model"
)

// ICMS applies to DI and DDC customs regimes at 18% of CIF.
const icmsRate = 0.18

// ComputeCIF converts the USD amounts at the quote's exchange rate and adds
// the BRL freight fees: CIF = (FOB + intl freight) × rate + fees.
func ComputeCIF(q model.CIFQuote) (float64, error) {
	if q.ExchangeRate <= 0 && (q.FOBUSD > 0 || q.IntlFreightUSD > 0) {
		return 0, fmt.Errorf("exchange rate must be positive, got %v", q.ExchangeRate)
	}
	return (q.FOBUSD+q.IntlFreightUSD)*q.ExchangeRate + q.FreightFeesBRL, nil
}

// ICMSFor returns the ICMS amount for a scenario: 18% of CIF under DI or
// DDC, zero under DTA (goods clear customs inland).
func ICMSFor(scenarioID string, cif float64) float64 {
	if strings.Contains(scenarioID, "DI") || strings.Contains(scenarioID, "DDC") {
		return cif * icmsRate
	}
	return 0
}

// ProductTaxes computes the cascading product taxes on top of CIF:
// II on CIF, IPI on CIF+II, PIS and COFINS on CIF+II+IPI.
func ProductTaxes(rates model.ProductTaxRates, cif float64) model.TaxBreakdown {
	ii := cif * rates.II / 100

	ipiBase := cif + ii
	ipi := ipiBase * rates.IPI / 100

	pisCofinsBase := cif + ii + ipi
	pis := pisCofinsBase * rates.PIS / 100
	cofins := pisCofinsBase * rates.COFINS / 100

	return model.TaxBreakdown{
		II:     ii,
		IPI:    ipi,
		PIS:    pis,
		COFINS: cofins,
		Total:  ii + ipi + pis + cofins,
	}
}

// FieldCost evaluates one configured cost field. Percentage fields charge on
// their base amount; USD bases (FOB, international freight) are converted at
// the exchange rate first. Occupancy-prorated fields scale by the container
// occupancy fraction.
func FieldCost(field model.CostField, quote model.CIFQuote, cif, occupancy float64) (float64, error) {
	var cost float64

	switch field.Type {
	case model.CostFieldFixed, "":
		cost = field.Value
	case model.CostFieldPercentage:
		var base float64
		switch field.Base {
		case model.BaseCIF, "":
			base = cif
		case model.BaseFOB:
			base = quote.FOBUSD * quote.ExchangeRate
		case model.BaseIntlFreight:
			base = quote.IntlFreightUSD * quote.ExchangeRate
		default:
			return 0, fmt.Errorf("unknown percentage base: %s", field.Base)
		}
		cost = base * field.Rate
	default:
		return 0, fmt.Errorf("unknown cost field type: %s", field.Type)
	}

	if field.RateByOccupancy {
		cost *= occupancy
	}
	return cost, nil
}
