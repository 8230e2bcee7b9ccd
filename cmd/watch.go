package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidbard1226/amazon-buybox-tracker/internal/alert"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically refresh all tracked products and send alerts",
	Long:  "Runs the refresh loop in the foreground. Every interval each tracked ASIN is re-scraped, persisted, and compared against its previous buybox status for alerting.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("interval", 0, "Refresh interval (default from config, 6h)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval := cfg.RefreshInterval
	if v, _ := cmd.Flags().GetDuration("interval"); v > 0 {
		interval = v
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	notifier, err := alert.New(cfg.TelegramBotToken, cfg.TelegramChatID, alert.Toggles{
		Losing:  cfg.AlertLosing,
		Winning: cfg.AlertWinning,
		Amazon:  cfg.AlertAmazon,
	})
	if err != nil {
		return fmt.Errorf("telegram setup: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	mon := monitor.New(st, buildTracker(), notifier, limiter, interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Watching tracked products every %s (Ctrl-C to stop)...\n", interval.Round(time.Second))
	return mon.Start(ctx)
}
