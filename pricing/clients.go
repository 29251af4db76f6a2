package pricing

import (
	"context"
	"net/http"

	"github.com/tariffhound/tariffhound/filecache"
)

// ServiceIndexClient loads the top-level offer index. The index has no
// logical partition, so its cache key is the content fingerprint alone.
type ServiceIndexClient struct {
	hc      *http.Client
	baseURL string
}

var _ filecache.Loadable[struct{}, ServiceIndexResponse] = (*ServiceIndexClient)(nil)

// NewServiceIndexClient builds a client against the given base URL. A nil
// http.Client or empty base URL selects the defaults.
func NewServiceIndexClient(hc *http.Client, baseURL string) *ServiceIndexClient {
	return &ServiceIndexClient{hc: normalizeClient(hc), baseURL: normalizeBaseURL(baseURL)}
}

func (c *ServiceIndexClient) CacheKey(ctx context.Context, _ struct{}) (filecache.Key, error) {
	hash, err := probeETag(ctx, c.hc, c.url())
	if err != nil {
		return filecache.Key{}, err
	}
	return filecache.Key{ContentHash: hash}, nil
}

func (c *ServiceIndexClient) Load(ctx context.Context, _ struct{}) (ServiceIndexResponse, error) {
	return getJSON[ServiceIndexResponse](ctx, c.hc, c.url())
}

func (c *ServiceIndexClient) CategoryKey() string {
	return "aws/bulk/service_index"
}

func (c *ServiceIndexClient) url() string {
	return c.baseURL + "/offers/v1.0/aws/index.json"
}

// RegionIndexClient loads the region index of one service. The service code
// partitions the cache; the ETag detects republication.
type RegionIndexClient struct {
	hc      *http.Client
	baseURL string
}

var _ filecache.Loadable[string, RegionIndexResponse] = (*RegionIndexClient)(nil)

// NewRegionIndexClient builds a client against the given base URL. A nil
// http.Client or empty base URL selects the defaults.
func NewRegionIndexClient(hc *http.Client, baseURL string) *RegionIndexClient {
	return &RegionIndexClient{hc: normalizeClient(hc), baseURL: normalizeBaseURL(baseURL)}
}

func (c *RegionIndexClient) CacheKey(ctx context.Context, serviceCode string) (filecache.Key, error) {
	hash, err := probeETag(ctx, c.hc, c.url(serviceCode))
	if err != nil {
		return filecache.Key{}, err
	}
	return filecache.Key{ContentKey: serviceCode, ContentHash: hash}, nil
}

func (c *RegionIndexClient) Load(ctx context.Context, serviceCode string) (RegionIndexResponse, error) {
	return getJSON[RegionIndexResponse](ctx, c.hc, c.url(serviceCode))
}

func (c *RegionIndexClient) CategoryKey() string {
	return "aws/bulk/region_index"
}

func (c *RegionIndexClient) url(serviceCode string) string {
	return c.baseURL + "/offers/v1.0/aws/" + serviceCode + "/current/region_index.json"
}

// OfferFileClient loads one versioned offer file. The region-service-version
// tag partitions the cache.
type OfferFileClient struct {
	hc      *http.Client
	baseURL string
}

var _ filecache.Loadable[OfferRef, PricingListResponse] = (*OfferFileClient)(nil)

// NewOfferFileClient builds a client against the given base URL. A nil
// http.Client or empty base URL selects the defaults.
func NewOfferFileClient(hc *http.Client, baseURL string) *OfferFileClient {
	return &OfferFileClient{hc: normalizeClient(hc), baseURL: normalizeBaseURL(baseURL)}
}

func (c *OfferFileClient) CacheKey(ctx context.Context, ref OfferRef) (filecache.Key, error) {
	hash, err := probeETag(ctx, c.hc, c.baseURL+"/"+ref.Path())
	if err != nil {
		return filecache.Key{}, err
	}
	return filecache.Key{ContentKey: ref.Tag(), ContentHash: hash}, nil
}

func (c *OfferFileClient) Load(ctx context.Context, ref OfferRef) (PricingListResponse, error) {
	return getJSON[PricingListResponse](ctx, c.hc, c.baseURL+"/"+ref.Path())
}

func (c *OfferFileClient) CategoryKey() string {
	return "aws/bulk/pricing_list"
}

// SavingsPlanClient loads one versioned savings plan offer file.
type SavingsPlanClient struct {
	hc      *http.Client
	baseURL string
}

var _ filecache.Loadable[SavingsPlanRef, SavingsPlanListResponse] = (*SavingsPlanClient)(nil)

// NewSavingsPlanClient builds a client against the given base URL. A nil
// http.Client or empty base URL selects the defaults.
func NewSavingsPlanClient(hc *http.Client, baseURL string) *SavingsPlanClient {
	return &SavingsPlanClient{hc: normalizeClient(hc), baseURL: normalizeBaseURL(baseURL)}
}

func (c *SavingsPlanClient) CacheKey(ctx context.Context, ref SavingsPlanRef) (filecache.Key, error) {
	hash, err := probeETag(ctx, c.hc, c.baseURL+"/"+ref.Path())
	if err != nil {
		return filecache.Key{}, err
	}
	return filecache.Key{ContentKey: ref.Tag(), ContentHash: hash}, nil
}

func (c *SavingsPlanClient) Load(ctx context.Context, ref SavingsPlanRef) (SavingsPlanListResponse, error) {
	return getJSON[SavingsPlanListResponse](ctx, c.hc, c.baseURL+"/"+ref.Path())
}

func (c *SavingsPlanClient) CategoryKey() string {
	return "aws/bulk/savings_plan_list"
}
