package cli

import (
	"errors"
	"fmt"

	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/spf13/cobra"
)

// ErrInvalidSignature is returned by webhook verify when the signature does not match
var ErrInvalidSignature = errors.New("webhook signature is invalid")

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "work with webhook notifications",
	}

	var (
		verifyFile string
		signature  string
	)
	verify := &cobra.Command{
		Use:   "verify",
		Short: "verify the signature of a raw webhook body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			body, err := readInput(a.stdin, verifyFile)
			if err != nil {
				return err
			}
			client, _, err := a.newClient()
			if err != nil {
				return err
			}

			valid, err := client.VerifyWebhookSignature(body, signature)
			if err != nil {
				return err
			}
			if !valid {
				return ErrInvalidSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	verify.Flags().StringVarP(&verifyFile, "file", "f", "-", "webhook body file, - for stdin")
	verify.Flags().StringVar(&signature, "signature", "", "signature received with the webhook")
	_ = verify.MarkFlagRequired("signature")

	var signFile string
	sign := &cobra.Command{
		Use:   "sign",
		Short: "print the signature the gateway would send for a body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if a.cfg.Gateway.APISecret == "" {
				return &checkout.ConfigurationError{Message: "no signer available; provide an api secret"}
			}
			body, err := readInput(a.stdin, signFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), checkout.NewHMACSigner(a.cfg.Gateway.APISecret).Sign(body))
			return nil
		},
	}
	sign.Flags().StringVarP(&signFile, "file", "f", "-", "body file, - for stdin")

	cmd.AddCommand(verify, sign)
	return cmd
}
