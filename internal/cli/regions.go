package cli

import (
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/filecache"
	"github.com/tariffhound/tariffhound/pricing"
)

// regionsOptions holds options for the regions command.
type regionsOptions struct {
	service string
}

// newRegionsCmd creates the regions command.
func (a *App) newRegionsCmd() *cobra.Command {
	opts := &regionsOptions{}

	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List the regions a service publishes offers for",
		Long: `List the per-region offer files of one service, including the current
offer version of each region.

Examples:
  # Regions with EC2 pricing
  tariffhound regions

  # Regions with ElastiCache pricing
  tariffhound regions --service AmazonElastiCache`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := pricing.NewRegionIndexClient(a.httpClient, a.cfg.BaseURL)
			cache := filecache.New[string, pricing.RegionIndexResponse](client, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), opts.service)
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			a.dump(res.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.service, "service", "s", "AmazonEC2", "Service code to list regions for")

	return cmd
}
