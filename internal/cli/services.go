package cli

import (
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/filecache"
	"github.com/tariffhound/tariffhound/pricing"
)

// newServicesCmd creates the services command.
func (a *App) newServicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List AWS services with published pricing",
		Long: `List every service the Price List Bulk API publishes an offer file for.

Examples:
  # List all services
  tariffhound services`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := pricing.NewServiceIndexClient(a.httpClient, a.cfg.BaseURL)
			cache := filecache.New[struct{}, pricing.ServiceIndexResponse](client, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), struct{}{})
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			a.dump(res.Result)
			return nil
		},
	}
}
