package pricing

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// offerResourcePattern matches the resource paths the bulk API embeds in its
// index documents: /{prefix}/v1.0/aws/{service}/{version}/{region}/{filename}.
var offerResourcePattern = regexp.MustCompile(`^/([^/]+)/v1\.0/aws/([^/]+)/([^/]+)/([^/]+)/([^/]+)$`)

// OfferRef identifies one offer file under the offers prefix.
type OfferRef struct {
	ServiceCode  string
	OfferVersion string
	Region       string
	Filename     string
}

// Path returns the request path of the offer file, without leading slash.
func (r OfferRef) Path() string {
	return fmt.Sprintf("offers/v1.0/aws/%s/%s/%s/%s", r.ServiceCode, r.OfferVersion, r.Region, r.Filename)
}

// Tag returns the stable cache name of the offer file.
func (r OfferRef) Tag() string {
	return fmt.Sprintf("%s-%s-%s", r.Region, r.ServiceCode, r.OfferVersion)
}

// ParseOfferRef parses an offer resource path such as
// "/offers/v1.0/aws/AmazonEC2/20240312153724/ap-northeast-1/index.json".
func ParseOfferRef(path string) (OfferRef, error) {
	service, version, region, filename, err := parseOfferResource(path)
	if err != nil {
		return OfferRef{}, err
	}
	return OfferRef{
		ServiceCode:  service,
		OfferVersion: version,
		Region:       region,
		Filename:     filename,
	}, nil
}

// MarshalJSON encodes the ref as its resource path, the form it appears in on
// the wire and in cached artifacts.
func (r OfferRef) MarshalJSON() ([]byte, error) {
	return json.Marshal("/" + r.Path())
}

// UnmarshalJSON decodes a ref from its resource path.
func (r *OfferRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseOfferRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SavingsPlanRef identifies one savings plan offer file under the
// savingsPlan prefix.
type SavingsPlanRef struct {
	ServiceCode  string
	OfferVersion string
	Region       string
	Filename     string
}

// Path returns the request path of the savings plan file, without leading
// slash.
func (r SavingsPlanRef) Path() string {
	return fmt.Sprintf("savingsPlan/v1.0/aws/%s/%s/%s/%s", r.ServiceCode, r.OfferVersion, r.Region, r.Filename)
}

// Tag returns the stable cache name of the savings plan file.
func (r SavingsPlanRef) Tag() string {
	return fmt.Sprintf("%s-%s-%s", r.Region, r.ServiceCode, r.OfferVersion)
}

// ParseSavingsPlanRef parses a savings plan resource path.
func ParseSavingsPlanRef(path string) (SavingsPlanRef, error) {
	service, version, region, filename, err := parseOfferResource(path)
	if err != nil {
		return SavingsPlanRef{}, err
	}
	return SavingsPlanRef{
		ServiceCode:  service,
		OfferVersion: version,
		Region:       region,
		Filename:     filename,
	}, nil
}

// MarshalJSON encodes the ref as its resource path.
func (r SavingsPlanRef) MarshalJSON() ([]byte, error) {
	return json.Marshal("/" + r.Path())
}

// UnmarshalJSON decodes a ref from its resource path.
func (r *SavingsPlanRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSavingsPlanRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func parseOfferResource(path string) (service, version, region, filename string, err error) {
	m := offerResourcePattern.FindStringSubmatch(path)
	if m == nil {
		return "", "", "", "", fmt.Errorf("invalid offer resource path: %q", path)
	}
	return m[2], m[3], m[4], m[5], nil
}
