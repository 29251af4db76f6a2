package cli

import (
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/filecache"
	"github.com/tariffhound/tariffhound/pricing"
)

// savingsPlansOptions holds options for the savings-plans command.
type savingsPlansOptions struct {
	service      string
	offerVersion string
	region       string
	filename     string
}

// newSavingsPlansCmd creates the savings-plans command.
func (a *App) newSavingsPlansCmd() *cobra.Command {
	opts := &savingsPlansOptions{}

	cmd := &cobra.Command{
		Use:   "savings-plans",
		Short: "Fetch one regional savings plan file and print its rates",
		Long: `Fetch the savings plan offer file of a service in one region and print
each rate joined with the attributes of its product.

Examples:
  # Compute savings plan rates in Tokyo
  tariffhound savings-plans -r ap-northeast-1 -V 20240312234047`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := pricing.SavingsPlanRef{
				ServiceCode:  opts.service,
				OfferVersion: opts.offerVersion,
				Region:       opts.region,
				Filename:     opts.filename,
			}

			client := pricing.NewSavingsPlanClient(a.httpClient, a.cfg.BaseURL)
			cache := filecache.New[pricing.SavingsPlanRef, pricing.SavingsPlanListResponse](client, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), ref)
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			rates, err := pricing.PivotSavingsPlans(res.Result)
			if err != nil {
				return err
			}

			a.dump(rates)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.service, "service", "s", "AWSComputeSavingsPlan", "Service code")
	cmd.Flags().StringVarP(&opts.offerVersion, "offer-version", "V", "", "Offer version (required)")
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "Region code (required)")
	cmd.Flags().StringVar(&opts.filename, "filename", "index.json", "Offer file name")

	_ = cmd.MarkFlagRequired("offer-version")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
