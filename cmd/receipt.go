package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/table-reservations/internal/receipt"
)

func newReceiptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <token>",
		Short: "Show the booking behind a receipt token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.ReceiptsEnabled() {
				return fmt.Errorf("TABLEBOOK_RECEIPT_SECRET is required to read receipts (see `tablebook keys`)")
			}
			iss, err := receipt.New(cfg.ReceiptSecret, cfg.ReceiptMaxAge)
			if err != nil {
				return err
			}
			conf, err := iss.Open(args[0])
			if err != nil {
				return err
			}
			printConfirmation(cmd.OutOrStdout(), conf)
			return nil
		},
	}
}
