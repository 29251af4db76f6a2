package pricing

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContractLength is the commitment term of a reserved or savings plan offer.
type ContractLength string

const (
	OneYear   ContractLength = "1yr"
	ThreeYear ContractLength = "3yr"
)

// UnmarshalJSON accepts the wire spellings the Price List API emits, with and
// without the embedded space.
func (c *ContractLength) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "1yr", "1 yr":
		*c = OneYear
	case "3yr", "3 yr":
		*c = ThreeYear
	default:
		return fmt.Errorf("unknown contract length %q", s)
	}
	return nil
}

// PurchaseOption is the upfront payment structure of an offer.
type PurchaseOption string

const (
	NoUpfront      PurchaseOption = "No Upfront"
	PartialUpfront PurchaseOption = "Partial Upfront"
	AllUpfront     PurchaseOption = "All Upfront"
)

// UnmarshalJSON accepts the wire spellings of the purchase option, including
// the space-free variants used by savings plan documents.
func (p *PurchaseOption) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "No Upfront", "NoUpfront":
		*p = NoUpfront
	case "Partial Upfront", "PartialUpfront":
		*p = PartialUpfront
	case "All Upfront", "AllUpfront":
		*p = AllUpfront
	default:
		return fmt.Errorf("unknown purchase option %q", s)
	}
	return nil
}

// OfferingClass distinguishes standard from convertible reserved instances.
type OfferingClass string

const (
	OfferingClassStandard    OfferingClass = "standard"
	OfferingClassConvertible OfferingClass = "convertible"
)

// Currency is the ISO currency code of a rate. The bulk documents only carry
// USD today.
type Currency string

const USD Currency = "USD"

// ServiceIndexResponse is the top-level offer index listing every service
// with published pricing.
type ServiceIndexResponse struct {
	FormatVersion   string                  `json:"formatVersion"`
	PublicationDate time.Time               `json:"publicationDate"`
	Offers          map[string]ServiceOffer `json:"offers"`
}

// ServiceOffer describes one service's entry in the offer index.
type ServiceOffer struct {
	OfferCode                  string `json:"offerCode"`
	VersionIndexURL            string `json:"versionIndexUrl,omitempty"`
	CurrentVersionURL          string `json:"currentVersionUrl,omitempty"`
	CurrentRegionIndexURL      string `json:"currentRegionIndexUrl,omitempty"`
	SavingsPlanVersionIndexURL string `json:"savingsPlanVersionIndexUrl,omitempty"`
	CurrentSavingsPlanIndexURL string `json:"currentSavingsPlanIndexUrl,omitempty"`
}

// RegionIndexResponse lists the current offer file per region for one
// service.
type RegionIndexResponse struct {
	FormatVersion   string                      `json:"formatVersion"`
	PublicationDate time.Time                   `json:"publicationDate"`
	Regions         map[string]RegionIndexEntry `json:"regions"`
}

// RegionIndexEntry points at the current offer file for one region.
type RegionIndexEntry struct {
	RegionCode        string   `json:"regionCode"`
	CurrentVersionURL OfferRef `json:"currentVersionUrl"`
}

// PricingListResponse is a full offer file: products and their OnDemand and
// Reserved terms.
type PricingListResponse struct {
	FormatVersion   string                    `json:"formatVersion"`
	PublicationDate time.Time                 `json:"publicationDate"`
	Version         string                    `json:"version"`
	Products        map[string]PricingProduct `json:"products"`
	Terms           PricingTerms              `json:"terms"`
}

// PricingProduct is one SKU with its free-form attribute map.
type PricingProduct struct {
	ProductFamily string            `json:"productFamily"`
	SKU           string            `json:"sku"`
	Attributes    map[string]string `json:"attributes"`
}

// PricingTerms groups offerings by purchase model, then by SKU and offer
// term code.
type PricingTerms struct {
	OnDemand map[string]map[string]PriceOffering[map[string]string] `json:"OnDemand"`
	Reserved map[string]map[string]PriceOffering[RITermAttributes]  `json:"Reserved"`
}

// PriceOffering is one term of one SKU. T carries the term attributes, which
// are free-form strings for OnDemand terms and structured for Reserved ones.
type PriceOffering[T any] struct {
	OfferTermCode   string                    `json:"offerTermCode"`
	SKU             string                    `json:"sku"`
	EffectiveDate   time.Time                 `json:"effectiveDate"`
	PriceDimensions map[string]PriceDimension `json:"priceDimensions"`
	TermAttributes  T                         `json:"termAttributes"`
}

// PriceDimension is one billable dimension of an offering.
type PriceDimension struct {
	RateCode     string            `json:"rateCode"`
	Description  string            `json:"description"`
	Unit         string            `json:"unit"`
	PricePerUnit map[string]string `json:"pricePerUnit"`
}

// RITermAttributes are the structured attributes of a Reserved term.
type RITermAttributes struct {
	LeaseContractLength ContractLength `json:"LeaseContractLength"`
	OfferingClass       OfferingClass  `json:"OfferingClass"`
	PurchaseOption      PurchaseOption `json:"PurchaseOption"`
}

// SavingsPlanListResponse is a full savings plan offer file.
type SavingsPlanListResponse struct {
	FormatVersion   string               `json:"formatVersion"`
	PublicationDate time.Time            `json:"publicationDate"`
	Version         string               `json:"version"`
	Products        []SavingsPlanProduct `json:"products"`
	Terms           SavingsPlanTerms     `json:"terms"`
}

// SavingsPlanProduct is one purchasable savings plan SKU.
type SavingsPlanProduct struct {
	SKU           string                       `json:"sku"`
	ProductFamily string                       `json:"productFamily"`
	ServiceCode   string                       `json:"serviceCode"`
	UsageType     string                       `json:"usageType"`
	Operation     string                       `json:"operation"`
	Attributes    SavingsPlanProductAttributes `json:"attributes"`
}

// SavingsPlanProductAttributes describe the scope and commitment of a
// savings plan product.
type SavingsPlanProductAttributes struct {
	PurchaseOption PurchaseOption `json:"purchaseOption"`
	ProductFamily  string         `json:"productFamily"`
	RegionCode     string         `json:"regionCode,omitempty"`
	ServiceCode    string         `json:"serviceCode"`
	Granularity    string         `json:"granularity"`
	InstanceType   string         `json:"instanceType,omitempty"`
	LocationType   string         `json:"locationType"`
	PurchaseTerm   ContractLength `json:"purchaseTerm"`
	Location       string         `json:"location"`
	UsageType      string         `json:"usageType"`
}

// SavingsPlanTerms holds the term list of a savings plan offer file.
type SavingsPlanTerms struct {
	SavingsPlan []SavingsPlanTerm `json:"savingsPlan"`
}

// SavingsPlanTerm is one savings plan with its discounted rates.
type SavingsPlanTerm struct {
	SKU                 string                `json:"sku"`
	Description         string                `json:"description"`
	EffectiveDate       time.Time             `json:"effectiveDate"`
	LeaseContractLength LeaseContractLength   `json:"leaseContractLength"`
	Rates               []SavingsPlanTermRate `json:"rates"`
}

// LeaseContractLength is the structured commitment length of a savings plan
// term.
type LeaseContractLength struct {
	Duration int    `json:"duration"`
	Unit     string `json:"unit"`
}

// SavingsPlanTermRate is one discounted rate within a savings plan term.
type SavingsPlanTermRate struct {
	DiscountedSKU         string         `json:"discountedSku"`
	DiscountedUsageType   string         `json:"discountedUsageType"`
	DiscountedOperation   string         `json:"discountedOperation"`
	DiscountedServiceCode string         `json:"discountedServiceCode"`
	RateCode              string         `json:"rateCode"`
	Unit                  string         `json:"unit"`
	DiscountedRate        DiscountedRate `json:"discountedRate"`
}

// DiscountedRate is the price of a discounted rate.
type DiscountedRate struct {
	Price    string   `json:"price"`
	Currency Currency `json:"currency"`
}
