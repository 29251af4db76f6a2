package pricing

import (
	"fmt"
	"time"
)

// SavingsPlanRate is one flattened discounted rate: a term rate joined with
// the attributes of the savings plan product it belongs to.
type SavingsPlanRate struct {
	SKU                 string
	EffectiveDate       time.Time
	Attributes          *SavingsPlanProductAttributes
	LeaseContractLength LeaseContractLength
	Rate                SavingsPlanTermRate
}

// PivotSavingsPlans reshapes a savings plan offer file into flat rows, one
// per discounted rate, joining product attributes by SKU. A term whose SKU
// has no product entry is an error: the document is internally inconsistent.
func PivotSavingsPlans(resp SavingsPlanListResponse) ([]SavingsPlanRate, error) {
	attributes := make(map[string]*SavingsPlanProductAttributes, len(resp.Products))
	for i := range resp.Products {
		product := &resp.Products[i]
		attributes[product.SKU] = &product.Attributes
	}

	var pivoted []SavingsPlanRate
	for _, term := range resp.Terms.SavingsPlan {
		attrs, ok := attributes[term.SKU]
		if !ok {
			return nil, fmt.Errorf("no product attributes for savings plan sku %s", term.SKU)
		}
		for _, rate := range term.Rates {
			pivoted = append(pivoted, SavingsPlanRate{
				SKU:                 term.SKU,
				EffectiveDate:       term.EffectiveDate,
				Attributes:          attrs,
				LeaseContractLength: term.LeaseContractLength,
				Rate:                rate,
			})
		}
	}
	return pivoted, nil
}
