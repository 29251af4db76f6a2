package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/awsmeta"
	"github.com/tariffhound/tariffhound/filecache"
)

// cacheParamsOptions holds options for the cache-params command.
type cacheParamsOptions struct {
	family string
}

// newCacheParamsCmd creates the cache-params command.
func (a *App) newCacheParamsCmd() *cobra.Command {
	opts := &cacheParamsOptions{}

	cmd := &cobra.Command{
		Use:   "cache-params",
		Short: "Describe ElastiCache node-type specific default parameters",
		Long: `Describe the engine default parameters of an ElastiCache parameter group
family, pivoted into a per-node-type table. Requires AWS credentials in the
environment.

Examples:
  # Redis defaults
  tariffhound cache-params

  # Memcached defaults
  tariffhound cache-params -f memcached1.6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.family == "" {
				return fmt.Errorf("parameter group family must not be empty")
			}

			awsCfg, err := awsmeta.DefaultConfig(cmd.Context())
			if err != nil {
				return fmt.Errorf("load aws config: %w", err)
			}

			loadable := awsmeta.NewCacheParametersLoadable(awsmeta.NewElastiCacheClient(awsCfg))
			cache := filecache.New[string, awsmeta.TypeSpecificParameters](loadable, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), opts.family)
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			a.dump(res.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.family, "family", "f", "redis7", "Parameter group family")

	return cmd
}
