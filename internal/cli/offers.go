package cli

import (
	"github.com/spf13/cobra"

	"github.com/tariffhound/tariffhound/filecache"
	"github.com/tariffhound/tariffhound/pricing"
)

// offersOptions holds options for the offers command.
type offersOptions struct {
	service      string
	offerVersion string
	region       string
	filename     string
}

// newOffersCmd creates the offers command.
func (a *App) newOffersCmd() *cobra.Command {
	opts := &offersOptions{}

	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Fetch one regional offer file",
		Long: `Fetch the offer file of a service in one region at a specific offer
version. The regions command prints the current version of each region.

Examples:
  # EC2 offers in Tokyo
  tariffhound offers -s AmazonEC2 -r ap-northeast-1 -V 20240312153724`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := pricing.OfferRef{
				ServiceCode:  opts.service,
				OfferVersion: opts.offerVersion,
				Region:       opts.region,
				Filename:     opts.filename,
			}

			client := pricing.NewOfferFileClient(a.httpClient, a.cfg.BaseURL)
			cache := filecache.New[pricing.OfferRef, pricing.PricingListResponse](client, a.cacheOptions()...)

			res, err := cache.Load(cmd.Context(), ref)
			if err != nil {
				return err
			}
			reportLoad(res.Key, res.Hit)

			a.dump(res.Result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.service, "service", "s", "", "Service code (required)")
	cmd.Flags().StringVarP(&opts.offerVersion, "offer-version", "V", "", "Offer version (required)")
	cmd.Flags().StringVarP(&opts.region, "region", "r", "", "Region code (required)")
	cmd.Flags().StringVar(&opts.filename, "filename", "index.json", "Offer file name")

	_ = cmd.MarkFlagRequired("service")
	_ = cmd.MarkFlagRequired("offer-version")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
