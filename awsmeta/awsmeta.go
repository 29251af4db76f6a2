// Package awsmeta implements SDK-based inventory clients for EC2 instance
// types and ElastiCache node parameters.
//
// Each client holds a clientset.Set keyed by region over one shared
// aws.Config, so a fan-out across regions builds every regional SDK client at
// most once.
package awsmeta

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// MajorRegions are the regions the inventory fan-out queries. Between them
// they cover every instance type AWS offers.
var MajorRegions = []string{
	"us-west-2",
	"us-east-1",
	"us-east-2",
	"ap-northeast-1",
	"eu-central-1",
}

// DefaultConfig loads the ambient AWS configuration (environment, shared
// config files, instance metadata).
func DefaultConfig(ctx context.Context) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx)
}
