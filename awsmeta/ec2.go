package awsmeta

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tariffhound/tariffhound/clientset"
)

// DescribeInstanceTypesAPI is the slice of the EC2 API the client depends
// on.
type DescribeInstanceTypesAPI interface {
	DescribeInstanceTypes(ctx context.Context, params *ec2.DescribeInstanceTypesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstanceTypesOutput, error)
}

// EC2Client queries instance type inventory across the major regions,
// reusing one SDK client per region.
type EC2Client struct {
	set     *clientset.Set[aws.Config, DescribeInstanceTypesAPI]
	regions []string
}

// NewEC2Client builds a client over the given base configuration, querying
// the major regions. Regional SDK clients are constructed lazily, one per
// region.
func NewEC2Client(cfg aws.Config) *EC2Client {
	return NewEC2ClientForRegions(cfg, MajorRegions)
}

// NewEC2ClientForRegions builds a client that queries the given regions
// instead of the major regions.
func NewEC2ClientForRegions(cfg aws.Config, regions []string) *EC2Client {
	c := newEC2Client(cfg, func(base aws.Config, region string) DescribeInstanceTypesAPI {
		regional := base.Copy()
		regional.Region = region
		return ec2.NewFromConfig(regional)
	})
	c.regions = regions
	return c
}

func newEC2Client(cfg aws.Config, factory clientset.Factory[aws.Config, DescribeInstanceTypesAPI]) *EC2Client {
	return &EC2Client{
		set:     clientset.New(cfg, factory),
		regions: MajorRegions,
	}
}

// DescribeAllInstanceTypes returns every instance type visible from the
// major regions, keyed by instance type name.
func (c *EC2Client) DescribeAllInstanceTypes(ctx context.Context) (map[string]ec2types.InstanceTypeInfo, error) {
	return c.DescribeInstanceTypes(ctx, nil)
}

// DescribeInstanceTypes queries the configured regions concurrently and
// merges the results into one map keyed by instance type name. A type
// offered in several regions keeps the first region's record, in region
// order. An empty filter returns every type.
func (c *EC2Client) DescribeInstanceTypes(ctx context.Context, instanceTypes []string) (map[string]ec2types.InstanceTypeInfo, error) {
	perRegion := make([]map[string]ec2types.InstanceTypeInfo, len(c.regions))

	g, ctx := errgroup.WithContext(ctx)
	for i, region := range c.regions {
		i, region := i, region
		client := c.set.Get(region)
		g.Go(func() error {
			types, err := describeInstanceTypes(ctx, client, region, instanceTypes)
			if err != nil {
				return err
			}
			perRegion[i] = types
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]ec2types.InstanceTypeInfo)
	for _, types := range perRegion {
		for name, info := range types {
			if _, ok := merged[name]; !ok {
				merged[name] = info
			}
		}
	}
	return merged, nil
}

func describeInstanceTypes(ctx context.Context, client DescribeInstanceTypesAPI, region string, instanceTypes []string) (map[string]ec2types.InstanceTypeInfo, error) {
	input := &ec2.DescribeInstanceTypesInput{}
	for _, name := range instanceTypes {
		input.InstanceTypes = append(input.InstanceTypes, ec2types.InstanceType(name))
	}

	result := make(map[string]ec2types.InstanceTypeInfo)
	for {
		logrus.WithField("region", region).Debug("requesting DescribeInstanceTypes page")
		out, err := client.DescribeInstanceTypes(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("DescribeInstanceTypes in %s: %w", region, err)
		}

		logrus.WithFields(logrus.Fields{
			"region": region,
			"count":  len(out.InstanceTypes),
		}).Debug("received instance types")
		for _, info := range out.InstanceTypes {
			result[string(info.InstanceType)] = info
		}

		if out.NextToken == nil {
			return result, nil
		}
		input = &ec2.DescribeInstanceTypesInput{
			InstanceTypes: input.InstanceTypes,
			NextToken:     out.NextToken,
		}
	}
}
