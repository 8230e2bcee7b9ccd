package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/davidbard1226/amazon-buybox-tracker/config"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/fetch"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/stealth"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/store"
	"github.com/davidbard1226/amazon-buybox-tracker/internal/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "buybox",
	Short: "Amazon buybox tracker - seller & price monitoring CLI & MCP server",
	Long:  "A Go-based CLI tool and MCP server for tracking who holds the Amazon buybox on your products.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("marketplace", "", "Target marketplace domain (e.g. amazon.co.za)")
	rootCmd.PersistentFlags().String("seller-name", "", "Your storefront name, used for win/lose classification")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
	rootCmd.PersistentFlags().Bool("headless", false, "Fall back to a headless browser when blocked")
	rootCmd.PersistentFlags().String("proxy", "", "HTTP(S) proxy URL")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("marketplace"); v != "" {
		cfg.Marketplace = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("seller-name"); v != "" {
		cfg.MySellerName = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("headless"); v {
		cfg.HeadlessFallback = true
	}
	if v, _ := rootCmd.PersistentFlags().GetString("proxy"); v != "" {
		cfg.ProxyURLs = append(cfg.ProxyURLs, v)
	}
	if v, _ := rootCmd.PersistentFlags().GetString("db"); v != "" {
		cfg.DatabasePath = v
	}
}

// buildHTTPClient creates the stealth-wrapped HTTP client from config.
func buildHTTPClient() *http.Client {
	fpPool := stealth.NewFingerprintPool()
	delay := stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile))
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)

	baseTransport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
	}

	var proxyRotator *stealth.ProxyRotator
	if len(cfg.ProxyURLs) > 0 {
		var providers []stealth.ProxyProvider
		for i, u := range cfg.ProxyURLs {
			providers = append(providers, &stealth.HTTPProxyProvider{
				Label:  fmt.Sprintf("proxy-%d", i+1),
				RawURL: u,
			})
		}
		proxyRotator = stealth.NewProxyRotator(providers)
	}

	robotsClient := &http.Client{}
	robots := stealth.NewRobotsChecker(robotsClient, cfg.RespectRobots)

	transport := &stealth.Transport{
		Base:        baseTransport,
		Robots:      robots,
		Fingerprint: fpPool,
		Proxy:       proxyRotator,
		Delay:       delay,
		RateLimiter: limiter,
	}

	return &http.Client{Transport: transport}
}

// buildFetcher assembles the page fetcher chain: static first, headless
// browser as escalation when the static fetcher reports a block.
func buildFetcher() fetch.PageFetcher {
	static := fetch.NewStaticFetcher(buildHTTPClient())
	if !cfg.HeadlessFallback {
		return static
	}
	return fetch.NewChain(static, fetch.NewHeadlessFetcher(cfg.LauncherURL))
}

// buildTracker wires the fetcher chain into a product tracker.
func buildTracker() *tracker.Tracker {
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	return tracker.New(buildFetcher(), limiter, cfg.MaxConcurrent, cfg.MySellerName)
}

func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	return st, nil
}
