package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/table-reservations/internal/domain/reservation"
	"github.com/example/table-reservations/internal/infrastructure/mockapi"
)

func newSlotsCmd() *cobra.Command {
	var (
		date string
		days int
	)

	c := &cobra.Command{
		Use:   "slots",
		Short: "Show available times for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			start := reservation.DateOf(time.Now().In(cfg.Location))
			if date != "" {
				start, err = reservation.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			if days < 1 {
				return fmt.Errorf("--days must be >= 1")
			}

			var p reservation.BookingProvider = mockapi.New(cfg, log)
			for i := 0; i < days; i++ {
				d := start.AddDays(i)
				slots, err := p.FindSlots(cmd.Context(), d)
				if err != nil {
					return err
				}
				printDay(cmd.OutOrStdout(), d, slots)
			}
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "date YYYY-MM-DD (default today)")
	c.Flags().IntVar(&days, "days", 1, "number of consecutive days to show")
	return c
}
