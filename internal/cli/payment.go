package cli

import (
	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/spf13/cobra"
)

func newPaymentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "inspect payments",
	}

	var signature string
	get := &cobra.Command{
		Use:   "get <payment-id>",
		Short: "retrieve a payment session by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			client, registry, err := a.newClient()
			if err != nil {
				return err
			}
			defer a.logMetrics(registry)

			var opts []checkout.RequestOption
			if signature != "" {
				opts = append(opts, checkout.WithSignatureOverride(signature))
			}

			result, err := client.GetPayment(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	get.Flags().StringVar(&signature, "signature", "", "send this X-SIGNATURE instead of signing")

	cmd.AddCommand(get)
	return cmd
}
