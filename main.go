package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"trends-go/pkg/logger"
	"trends-go/pkg/trends"
)

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func main() {
	// Environment variable defaults (CI friendly)
	defaultEndpoint := getEnvOrDefault("TRENDS_API_URL", "")
	defaultAPIKey := getEnvOrDefault("TRENDS_API_KEY", "")
	defaultHL := getEnvOrDefault("TRENDS_HL", "en-US")
	defaultTZ := getEnvIntOrDefault("TRENDS_TZ", 0)

	// Command line flags (override environment variables)
	var (
		keywordsArg = flag.String("keywords", "", "Comma-separated keywords, 1 to 5 (required)")
		timeframe   = flag.String("timeframe", "today 3-m", "Upstream timeframe string, relative or absolute")
		geo         = flag.String("geo", "", "Region code, empty for worldwide")
		endpoint    = flag.String("endpoint", defaultEndpoint, "Trends API URL (env: TRENDS_API_URL)")
		apiKey      = flag.String("api-key", defaultAPIKey, "Trends API key (env: TRENDS_API_KEY)")
		hl          = flag.String("hl", defaultHL, "Host language, BCP-47 tag (env: TRENDS_HL)")
		tz          = flag.Int("tz", defaultTZ, "Timezone offset from UTC in minutes (env: TRENDS_TZ)")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		help        = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *keywordsArg == "" {
		fmt.Println("ERROR: keywords are required.")
		fmt.Println("Use -keywords flag, e.g. -keywords \"python programming\"")
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	if *endpoint == "" {
		fmt.Println("ERROR: trends API URL is required.")
		fmt.Println("Use -endpoint flag or TRENDS_API_URL environment variable.")
		fmt.Println("")
		printUsage()
		os.Exit(1)
	}

	if *debug {
		logger.SetLogger(logger.New(logger.Config{Level: "debug", Format: "console"}))
	}

	client, err := trends.NewHTTPClient(trends.ClientConfig{
		Endpoint: *endpoint,
		APIKey:   *apiKey,
		HL:       *hl,
		TZ:       *tz,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	spec := trends.QuerySpec{
		Keywords:  splitKeywords(*keywordsArg),
		Timeframe: *timeframe,
		Geo:       *geo,
	}

	fmt.Printf("Querying interest over time for %s...\n", strings.Join(spec.Keywords, ", "))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := trends.NewFetcher(client).Fetch(ctx, spec)
	if err != nil {
		if errors.Is(err, trends.ErrEmptyResult) {
			fmt.Println("No data returned")
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	records := trends.ToRecords(result)

	fmt.Printf("\nRetrieved %d data points\n", len(records))
	fmt.Println("\nFirst 5 rows:")
	printRows(result, spec.Keywords, 5)

	sample := records
	if len(sample) > 3 {
		sample = sample[:3]
	}
	out, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nJSON sample:")
	fmt.Println(string(out))
}

func printRows(result trends.SeriesResult, keywords []string, limit int) {
	fmt.Printf("%-12s", "date")
	for _, kw := range keywords {
		fmt.Printf("  %s", kw)
	}
	fmt.Println()

	for i, row := range result {
		if i >= limit {
			break
		}
		fmt.Printf("%-12s", row.Date.Format("2006-01-02"))
		for _, kw := range keywords {
			fmt.Printf("  %*d", len(kw), row.Values[kw])
		}
		fmt.Println()
	}
}

func splitKeywords(raw string) []string {
	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}

func printUsage() {
	fmt.Println("trends-go - interest-over-time fetch and normalize")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  trends-go -keywords \"python programming\" [-timeframe \"today 3-m\"] [-geo US]")
	fmt.Println("")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
