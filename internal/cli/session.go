package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "manage payment sessions",
	}

	var (
		file              string
		signature         string
		withTransactionID bool
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "create a payment session from a JSON payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFrom(cmd)
			if err != nil {
				return err
			}

			raw, err := readInput(a.stdin, file)
			if err != nil {
				return err
			}
			payload, err := decodePayload(raw)
			if err != nil {
				return err
			}
			if _, ok := payload["transactionId"]; !ok && withTransactionID {
				payload["transactionId"] = uuid.New().String()
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

			result, err := client.CreateSession(cmd.Context(), payload, opts...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "-", "payload file, - for stdin")
	create.Flags().StringVar(&signature, "signature", "", "send this X-SIGNATURE instead of signing")
	create.Flags().BoolVar(&withTransactionID, "with-transaction-id", false, "add a generated transactionId when the payload has none")

	cmd.AddCommand(create)
	return cmd
}

// decodePayload parses a JSON object keeping numbers exactly as written
func decodePayload(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("payload must be a JSON object")
	}
	if dec.More() {
		return nil, fmt.Errorf("payload contains more than one JSON value")
	}
	return payload, nil
}
