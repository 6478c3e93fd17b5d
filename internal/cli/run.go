package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ltrinh/afmorph/internal/harness"
	"github.com/ltrinh/afmorph/internal/model"
	"github.com/ltrinh/afmorph/internal/oracle"
	"github.com/ltrinh/afmorph/internal/report"
	"github.com/spf13/cobra"
)

var (
	provider    string
	modelName   string
	baseURL     string
	classes     []string
	sizes       []int
	timeoutSecs int
	maxRetries  int
	retryDelay  int
	rps         float64
	seed        int64
	outJSON     string
	outCSV      string
	noCache     bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full check suite against an oracle",
	Long: `Run generates frameworks from every selected class at every selected
size, queries the oracle for their extensions, and drives the check
states in order: base properties, validity against the exact
comparator, and the four metamorphic relations.

The built-in "exact" provider answers from the comparator itself and
must produce an all-PASS report; use it to sanity-check the harness.

Example:
  afmorph run --provider exact
  afmorph run --provider openai --model gpt-4o-mini --json results.json
  afmorph run --provider ollama --model llama3:8b --sizes 4,8 --classes cycle
  afmorph run --provider anthropic --csv results.csv --seed 42`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Oracle flags
	runCmd.Flags().StringVar(&provider, "provider", "exact", "oracle provider (openai, anthropic, ollama, exact)")
	runCmd.Flags().StringVar(&modelName, "model", "", "model name (provider-specific)")
	runCmd.Flags().StringVar(&baseURL, "base-url", "", "custom endpoint URL (Ollama, proxies)")
	runCmd.Flags().IntVar(&timeoutSecs, "timeout", 60, "per-attempt oracle timeout in seconds")
	runCmd.Flags().IntVar(&maxRetries, "retries", 3, "attempts per oracle query before giving up")
	runCmd.Flags().IntVar(&retryDelay, "retry-delay", 5, "seconds between retry attempts")
	runCmd.Flags().Float64Var(&rps, "rps", 1, "outgoing oracle queries per second (0 = unlimited)")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable oracle response caching")

	// Run flags
	runCmd.Flags().StringSliceVar(&classes, "classes", nil, "framework classes to run (default: all)")
	runCmd.Flags().IntSliceVar(&sizes, "sizes", []int{4, 8, 16, 20}, "argument counts per class")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "seed for the defense edge pick (0 = time-seeded)")

	// Output flags
	runCmd.Flags().StringVar(&outJSON, "json", "results.json", "output JSON path (empty disables)")
	runCmd.Flags().StringVar(&outCSV, "csv", "", "output CSV path (optional)")
}

func runRun(cmd *cobra.Command, args []string) error {
	o, err := buildOracle()
	if err != nil {
		return err
	}

	h := harness.New(o, harness.Options{
		Classes: classes,
		Sizes:   sizes,
		Seed:    seed,
		Verbose: verbose,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results, err := h.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if outJSON != "" {
		if err := report.WriteJSON(outJSON, results); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outJSON)
		}
	}
	if outCSV != "" {
		if err := report.WriteCSV(outCSV, results); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", outCSV)
		}
	}

	printSummary(results)
	return nil
}

// buildOracle assembles the oracle from flags and environment. API keys come
// from the environment only, never from flags or config files.
func buildOracle() (harness.Oracle, error) {
	if provider == "exact" {
		return harness.NewExactOracle(), nil
	}

	cfg := oracle.DefaultConfig()
	cfg.Provider = provider
	cfg.Model = modelName
	cfg.BaseURL = baseURL
	cfg.Timeout = timeoutSecs
	cfg.MaxRetries = maxRetries
	cfg.RetryDelaySeconds = retryDelay
	cfg.RequestsPerSecond = rps
	cfg.HTTPProxy = os.Getenv("HTTP_PROXY")
	cfg.HTTPSProxy = os.Getenv("HTTPS_PROXY")

	switch provider {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL == "" {
			if envURL := os.Getenv("OLLAMA_BASE_URL"); envURL != "" {
				cfg.BaseURL = envURL
			}
		}
	}

	p, err := oracle.NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	var cache *oracle.ResponseCache
	if !noCache {
		cache = oracle.NewResponseCache(time.Duration(cfg.CacheTTLSeconds) * time.Second)
	}

	return oracle.NewClient(p, cfg, cache), nil
}

// printSummary writes a per-status tally to stdout.
func printSummary(results *model.Results) {
	counts := make(map[model.Status]int)
	for _, rec := range results.Records {
		counts[rec.Status]++
	}

	fmt.Printf("Model: %s\n", results.Model)
	fmt.Printf("Checks: %d\n", len(results.Records))
	for _, status := range []model.Status{
		model.StatusPass,
		model.StatusFail,
		model.StatusTimeout,
		model.StatusError,
		model.StatusAborted,
		model.StatusNotApplicable,
	} {
		if counts[status] > 0 {
			fmt.Printf("  %s: %d\n", status, counts[status])
		}
	}

	if results.Failures() > 0 {
		fmt.Printf("\n%d check(s) failed; see the violation details in the results file.\n", results.Failures())
	}
}
