package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/application/usecases"
	"github.com/example/table-reservations/internal/booking"
	"github.com/example/table-reservations/internal/config"
	"github.com/example/table-reservations/internal/infrastructure/mockapi"
	"github.com/example/table-reservations/internal/receipt"
)

func newBookCmd() *cobra.Command {
	var (
		date           string
		slot           string
		preferredTimes string
		guests         int
		occasion       string
		timeout        time.Duration
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Reserve a table in one step",
		Long: "Fill in the booking form from flags and submit it once.\n" +
			"--time picks an exact slot; --preferred-times tries slots in order; with neither the earliest slot is taken.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
			defer cancelTimeout()

			uc := usecases.BookTable{
				Submitter: mockapi.New(cfg, log),
				Location:  cfg.Location,
				Log:       log,
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Reserving your table...")
			conf, err := uc.Execute(ctx, usecases.Request{
				Date:           date,
				Time:           slot,
				PreferredTimes: splitCSV(preferredTimes),
				Guests:         guests,
				Occasion:       occasion,
			})
			if err != nil {
				return err
			}

			printConfirmation(out, conf)
			return printReceipt(cmd, cfg, log, conf)
		},
	}

	c.Flags().StringVar(&date, "date", "", "reservation date YYYY-MM-DD")
	c.Flags().StringVar(&slot, "time", "", "exact time slot, e.g. 19:30")
	c.Flags().StringVar(&preferredTimes, "preferred-times", "", "comma-separated times to try in order, e.g. 19:00,19:30,18:30")
	c.Flags().IntVar(&guests, "guests", 1, "number of guests (1-10)")
	c.Flags().StringVar(&occasion, "occasion", "", "Birthday, Anniversary, Date, Business, Celebration or Other")
	c.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up waiting for the booking API after this long")

	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("occasion")
	return c
}

func printReceipt(cmd *cobra.Command, cfg config.Config, log *zap.Logger, conf booking.Confirmation) error {
	if !cfg.ReceiptsEnabled() {
		log.Debug("receipts disabled, TABLEBOOK_RECEIPT_SECRET not set")
		return nil
	}
	iss, err := receipt.New(cfg.ReceiptSecret, cfg.ReceiptMaxAge)
	if err != nil {
		return err
	}
	token, err := iss.Issue(conf)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nReceipt: %s\n", token)
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
