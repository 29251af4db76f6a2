package awsmeta

import (
	"context"
	"sort"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tariffhound/tariffhound/filecache"
)

// InstanceTypesInput selects which instance types to describe. An empty
// filter describes every type.
type InstanceTypesInput struct {
	InstanceTypes []string
}

// InstanceTypesLoadable adapts EC2Client to the filecache capability. The
// SDK exposes no content fingerprint, so freshness is governed purely by the
// engine's max age.
type InstanceTypesLoadable struct {
	client *EC2Client
}

var _ filecache.Loadable[InstanceTypesInput, map[string]ec2types.InstanceTypeInfo] = (*InstanceTypesLoadable)(nil)

// NewInstanceTypesLoadable wraps the given client for caching.
func NewInstanceTypesLoadable(client *EC2Client) *InstanceTypesLoadable {
	return &InstanceTypesLoadable{client: client}
}

func (l *InstanceTypesLoadable) CacheKey(_ context.Context, input InstanceTypesInput) (filecache.Key, error) {
	if len(input.InstanceTypes) == 0 {
		return filecache.Key{ContentKey: "all"}, nil
	}
	// Order of the filter must not change the key.
	sorted := append([]string(nil), input.InstanceTypes...)
	sort.Strings(sorted)
	return filecache.Key{ContentKey: filecache.Fingerprint(sorted...)}, nil
}

func (l *InstanceTypesLoadable) Load(ctx context.Context, input InstanceTypesInput) (map[string]ec2types.InstanceTypeInfo, error) {
	return l.client.DescribeInstanceTypes(ctx, input.InstanceTypes)
}

func (l *InstanceTypesLoadable) CategoryKey() string {
	return "aws/sdk/instance_types"
}

// CacheParametersLoadable adapts ElastiCacheClient to the filecache
// capability, keyed by parameter group family.
type CacheParametersLoadable struct {
	client *ElastiCacheClient
}

var _ filecache.Loadable[string, TypeSpecificParameters] = (*CacheParametersLoadable)(nil)

// NewCacheParametersLoadable wraps the given client for caching.
func NewCacheParametersLoadable(client *ElastiCacheClient) *CacheParametersLoadable {
	return &CacheParametersLoadable{client: client}
}

func (l *CacheParametersLoadable) CacheKey(_ context.Context, family string) (filecache.Key, error) {
	return filecache.Key{ContentKey: family}, nil
}

func (l *CacheParametersLoadable) Load(ctx context.Context, family string) (TypeSpecificParameters, error) {
	return l.client.TypeSpecificParameters(ctx, family)
}

func (l *CacheParametersLoadable) CategoryKey() string {
	return "aws/sdk/cache_parameters"
}
