package cli

import (
	"fmt"

	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/awsmeta"
	"github.com/tariffhound/tariffhound/filecache"
)

// instanceTypesOptions holds options for the instance-types command.
type instanceTypesOptions struct {
	types []string
}

// newInstanceTypesCmd creates the instance-types command.
func (a *App) newInstanceTypesCmd() *cobra.Command {
	opts := &instanceTypesOptions{}

	cmd := &cobra.Command{
		Use:   "instance-types",
		Short: "Describe EC2 instance types across the major regions",
		Long: `Describe EC2 instance types in every major region, merged into a single
inventory keyed by instance type name. Requires AWS credentials in the
environment.

Examples:
  # All instance types
  tariffhound instance-types

  # Only specific types
  tariffhound instance-types -t m5.large -t r6g.xlarge`,
		RunE: func(cmd *cobra.Command, args []string) error {
			awsCfg, err := awsmeta.DefaultConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("load aws config: %w", err)
			}

			ec2Client := awsmeta.NewEC2Client(awsCfg)
			if len(a.cfg.Regions) > 0 {
				ec2Client = awsmeta.NewEC2ClientForRegions(awsCfg, a.cfg.Regions)
			}

			loadable := awsmeta.NewInstanceTypesLoadable(ec2Client)
			cache := filecache.New[awsmeta.InstanceTypesInput, map[string]ec2types.InstanceTypeInfo](loadable, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), awsmeta.InstanceTypesInput{InstanceTypes: opts.types})
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			a.dump(res.Result)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "Instance type filter (repeatable)")

	return cmd
}
