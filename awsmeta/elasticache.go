package awsmeta

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticache"
	cachetypes "github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/sirupsen/logrus"

	"github.com/tariffhound/tariffhound/clientset"
)

// parameterRegion is where engine default parameters are queried; the
// defaults do not vary by region.
const parameterRegion = "us-east-1"

// DescribeEngineDefaultParametersAPI is the slice of the ElastiCache API the
// client depends on.
type DescribeEngineDefaultParametersAPI interface {
	DescribeEngineDefaultParameters(ctx context.Context, params *elasticache.DescribeEngineDefaultParametersInput, optFns ...func(*elasticache.Options)) (*elasticache.DescribeEngineDefaultParametersOutput, error)
}

// TypeSpecificParameters maps instance type to parameter name to parameter
// value.
type TypeSpecificParameters map[string]map[string]string

// ElastiCacheClient queries engine default parameters that vary by cache
// node type.
type ElastiCacheClient struct {
	set *clientset.Set[aws.Config, DescribeEngineDefaultParametersAPI]
}

// NewElastiCacheClient builds a client over the given base configuration.
func NewElastiCacheClient(cfg aws.Config) *ElastiCacheClient {
	return newElastiCacheClient(cfg, func(base aws.Config, region string) DescribeEngineDefaultParametersAPI {
		regional := base.Copy()
		regional.Region = region
		return elasticache.NewFromConfig(regional)
	})
}

func newElastiCacheClient(cfg aws.Config, factory clientset.Factory[aws.Config, DescribeEngineDefaultParametersAPI]) *ElastiCacheClient {
	return &ElastiCacheClient{set: clientset.New(cfg, factory)}
}

// RedisTypeSpecificParameters returns the node-type-specific engine defaults
// of the current Redis parameter group family.
func (c *ElastiCacheClient) RedisTypeSpecificParameters(ctx context.Context) (TypeSpecificParameters, error) {
	return c.TypeSpecificParameters(ctx, "redis7")
}

// MemcachedTypeSpecificParameters returns the node-type-specific engine
// defaults of the current Memcached parameter group family.
func (c *ElastiCacheClient) MemcachedTypeSpecificParameters(ctx context.Context) (TypeSpecificParameters, error) {
	return c.TypeSpecificParameters(ctx, "memcached1.6")
}

// TypeSpecificParameters returns the engine defaults of the given parameter
// group family, pivoted to instance type → parameter name → value.
func (c *ElastiCacheClient) TypeSpecificParameters(ctx context.Context, family string) (TypeSpecificParameters, error) {
	client := c.set.Get(parameterRegion)

	parameters, err := describeEngineDefaultParameters(ctx, client, family)
	if err != nil {
		return nil, err
	}

	result := make(TypeSpecificParameters)
	for _, parameter := range parameters {
		if parameter.ParameterName == nil {
			continue
		}
		name := *parameter.ParameterName
		for _, value := range parameter.CacheNodeTypeSpecificValues {
			if value.CacheNodeType == nil || value.Value == nil {
				continue
			}
			byName, ok := result[*value.CacheNodeType]
			if !ok {
				byName = make(map[string]string)
				result[*value.CacheNodeType] = byName
			}
			byName[name] = *value.Value
		}
	}
	return result, nil
}

func describeEngineDefaultParameters(ctx context.Context, client DescribeEngineDefaultParametersAPI, family string) ([]cachetypes.CacheNodeTypeSpecificParameter, error) {
	logrus.WithField("family", family).Debug("requesting DescribeEngineDefaultParameters")

	input := &elasticache.DescribeEngineDefaultParametersInput{
		CacheParameterGroupFamily: aws.String(family),
	}

	var parameters []cachetypes.CacheNodeTypeSpecificParameter
	for {
		out, err := client.DescribeEngineDefaultParameters(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("DescribeEngineDefaultParameters for %s: %w", family, err)
		}
		if out.EngineDefaults == nil {
			return parameters, nil
		}
		parameters = append(parameters, out.EngineDefaults.CacheNodeTypeSpecificParameters...)

		if out.EngineDefaults.Marker == nil {
			return parameters, nil
		}
		input = &elasticache.DescribeEngineDefaultParametersInput{
			CacheParameterGroupFamily: aws.String(family),
			Marker:                    out.EngineDefaults.Marker,
		}
	}
}
