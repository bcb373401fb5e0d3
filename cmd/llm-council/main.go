package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Realcryptoplato/llm-council/internal/config"
	"github.com/Realcryptoplato/llm-council/internal/council"
	"github.com/Realcryptoplato/llm-council/internal/metrics"
	"github.com/Realcryptoplato/llm-council/internal/models"
	"github.com/Realcryptoplato/llm-council/internal/openrouter"
	"github.com/Realcryptoplato/llm-council/internal/output"
	"github.com/Realcryptoplato/llm-council/internal/store"
)

const defaultLogLevel = "info"

// transportSlack keeps the HTTP transport timeout above the per-invocation
// deadline; the deadline, not the transport, decides when a slow model is
// dropped.
const transportSlack = 10 * time.Second

var (
	logLevel string
	dataDir  string

	tierFlag      string
	councilFlag   []string
	chairmanFlag  string
	timeoutFlag   time.Duration
	maxTokensFlag int
	jsonOutput    bool
	plainOutput   bool
	saveRun       bool

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "llm-council",
	Short: "Ask a council of LLMs one question",
	Long: `llm-council fans a question out to several models over OpenRouter,
has each model rank its peers' anonymized answers, and asks a chairman
model to synthesize the final answer.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("llm-council %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Run the three-stage council on a question",
	Long: `Ask sends the question to every council member in parallel, collects
anonymized peer rankings, and prints the chairman's synthesized answer.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(logLevel)
		question := args[0]

		settings := config.FromEnv()
		settings.DataDir = dataDir
		if tierFlag != "" {
			settings.Tier = models.ParseTier(tierFlag)
		}
		if err := settings.Validate(); err != nil {
			log.Error("Operation failed: load_settings", "error", err)
			os.Exit(1)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		client := newAPIClient(log, settings)

		members, chairman := resolveCouncil(ctx, log, client, settings)

		log.Info("Operation started: council_run",
			slog.String("tier", string(settings.Tier)),
			slog.Any("council", members),
			slog.String("chairman", chairman))

		c, err := council.New(&council.Config{
			Logger:        log,
			Client:        client,
			InvokeTimeout: timeoutFlag,
		})
		if err != nil {
			log.Error("Operation failed: new_council", "error", err)
			os.Exit(1)
		}

		result, err := c.Run(ctx, question, members, chairman)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Operation cancelled by signal")
				return
			}
			log.Error("Operation failed: council_run", "error", err)
			os.Exit(1)
		}

		report := &output.Report{Tier: string(settings.Tier), Result: result}
		if jsonOutput {
			if err := output.WriteJSON(os.Stdout, report); err != nil {
				log.Error("Operation failed: write_output", "error", err)
				os.Exit(1)
			}
		} else {
			newRenderer(log).RenderText(os.Stdout, report)
		}

		if saveRun {
			saveConversation(log, settings.DataDir, question, string(settings.Tier), result)
		}
		log.Info("Operation completed: council_run")
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Show the council model tiers",
	Long: `Without flags, models shows the static tier definitions. With --tier it
resolves that tier's council and chairman against the live OpenRouter
catalog, falling back to the static tier when the catalog is unavailable.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(logLevel)

		tiers := make(map[string]models.TierSet)
		var order []string

		if tierFlag == "" {
			for _, tier := range models.Tiers {
				tiers[string(tier)] = models.StaticTier(tier)
				order = append(order, string(tier))
			}
		} else {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			settings := config.FromEnv()
			settings.Tier = models.ParseTier(tierFlag)

			client := newAPIClient(log, settings)

			members, chairman := resolveCouncil(ctx, log, client, settings)
			tiers[string(settings.Tier)] = models.TierSet{Council: members, Chairman: chairman}
			order = append(order, string(settings.Tier))
		}

		if jsonOutput {
			if err := output.WriteJSON(os.Stdout, tiers); err != nil {
				log.Error("Operation failed: write_output", "error", err)
				os.Exit(1)
			}
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetRowLine(true)
		table.SetHeader([]string{"Tier", "Council", "Chairman"})
		for _, name := range order {
			set := tiers[name]
			table.Append([]string{name, strings.Join(set.Council, "\n"), set.Chairman})
		}
		table.Render()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved conversations",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(logLevel)
		s := mustOpenStore(log)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		list, err := s.List(ctx)
		if err != nil {
			log.Error("Operation failed: list_conversations", "error", err)
			os.Exit(1)
		}

		if jsonOutput {
			if err := output.WriteJSON(os.Stdout, list); err != nil {
				log.Error("Operation failed: write_output", "error", err)
				os.Exit(1)
			}
			return
		}

		if len(list) == 0 {
			fmt.Println("No saved conversations.")
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		table.SetHeader([]string{"ID", "Created", "Title", "Messages"})
		for _, meta := range list {
			table.Append([]string{
				meta.ID,
				meta.CreatedAt.Format(time.RFC3339),
				meta.Title,
				fmt.Sprintf("%d", meta.MessageCount),
			})
		}
		table.Render()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(logLevel)
		s := mustOpenStore(log)

		conv, err := s.Load(args[0])
		if err != nil {
			log.Error("Operation failed: load_conversation", "error", err, "id", args[0])
			os.Exit(1)
		}

		if jsonOutput {
			if err := output.WriteJSON(os.Stdout, conv); err != nil {
				log.Error("Operation failed: write_output", "error", err)
				os.Exit(1)
			}
			return
		}

		renderer := newRenderer(log)
		for _, msg := range conv.Messages {
			switch {
			case msg.Role == openrouter.RoleUser:
				fmt.Printf("Question: %s\n\n", msg.Content)
			case msg.Result != nil:
				renderer.RenderText(os.Stdout, &output.Report{Tier: msg.Tier, Result: msg.Result})
			}
		}
	},
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete one saved conversation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(logLevel)
		s := mustOpenStore(log)

		if err := s.Delete(args[0]); err != nil {
			log.Error("Operation failed: delete_conversation", "error", err, "id", args[0])
			os.Exit(1)
		}
		log.Info("Operation completed: delete_conversation", "id", args[0])
	},
}

// newAPIClient builds the OpenRouter client used for completions and
// catalog fetches. The transport timeout follows the --timeout flag with
// slack on top.
func newAPIClient(log *slog.Logger, settings config.Settings) *openrouter.Client {
	return openrouter.NewClientWithConfig(log, openrouter.ClientConfig{
		BaseURL:   settings.APIURL,
		APIKey:    settings.APIKey,
		MaxTokens: maxTokensFlag,
		Timeout:   timeoutFlag + transportSlack,
	})
}

// resolveCouncil picks the council members and chairman from the tier,
// then applies any explicit flag overrides.
func resolveCouncil(ctx context.Context, log *slog.Logger, client *openrouter.Client, settings config.Settings) ([]string, string) {
	// Full overrides leave nothing to discover.
	if len(councilFlag) > 0 && chairmanFlag != "" {
		return councilFlag, chairmanFlag
	}

	var members []string
	var chairman string

	if settings.UseDynamicModels {
		discovery, err := models.NewDiscovery(&models.DiscoveryConfig{
			Logger: log,
			Client: client,
		})
		if err != nil {
			log.Warn("model discovery unavailable, using static tier", "error", err)
			set := models.StaticTier(settings.Tier)
			members, chairman = set.Council, set.Chairman
		} else {
			members, chairman = discovery.Resolve(ctx, settings.Tier)
		}
	} else {
		set := models.StaticTier(settings.Tier)
		members, chairman = set.Council, set.Chairman
	}

	if len(councilFlag) > 0 {
		members = councilFlag
	}
	if chairmanFlag != "" {
		chairman = chairmanFlag
	}
	return members, chairman
}

func newRenderer(log *slog.Logger) *output.Renderer {
	renderer, err := output.NewRenderer(plainOutput)
	if err != nil {
		log.Warn("markdown renderer unavailable, printing plain text", "error", err)
		renderer, _ = output.NewRenderer(true)
	}
	return renderer
}

func saveConversation(log *slog.Logger, dir, question, tier string, result *council.Result) {
	s, err := store.New(&store.Config{Logger: log, Dir: dir})
	if err != nil {
		log.Error("Operation failed: open_store", "error", err)
		return
	}
	conv := s.NewConversation(question, tier, result)
	if err := s.Save(conv); err != nil {
		log.Error("Operation failed: save_conversation", "error", err)
		return
	}
	log.Info("saved conversation", "id", conv.ID)
}

func mustOpenStore(log *slog.Logger) *store.Store {
	s, err := store.New(&store.Config{Logger: log, Dir: dataDir})
	if err != nil {
		log.Error("Operation failed: open_store", "error", err)
		os.Exit(1)
	}
	return s
}

// newLogger writes to stderr so stdout stays clean for answers and JSON.
func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slogLevel,
		TimeFormat: time.RFC3339,
		AddSource:  slogLevel == slog.LevelDebug,
	}))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "Directory where conversations are saved")

	askCmd.Flags().StringVar(&tierFlag, "tier", "", "Model tier (budget, balanced, premium); defaults to the USE_BUDGET_MODELS environment variable")
	askCmd.Flags().StringSliceVar(&councilFlag, "council", nil, "Council member model ids, overriding the tier (e.g. openai/gpt-5.2)")
	askCmd.Flags().StringVar(&chairmanFlag, "chairman", "", "Chairman model id, overriding the tier")
	askCmd.Flags().DurationVar(&timeoutFlag, "timeout", openrouter.DefaultTimeout, "Per-model completion timeout")
	askCmd.Flags().IntVar(&maxTokensFlag, "max-tokens", openrouter.DefaultMaxTokens, "Maximum completion tokens per model")
	askCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full council result as JSON")
	askCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print the answer without markdown styling")
	askCmd.Flags().BoolVar(&saveRun, "save", false, "Save the conversation to the data directory")

	modelsCmd.Flags().StringVar(&tierFlag, "tier", "", "Resolve one tier against the live catalog instead of printing the static tiers")
	modelsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the tiers as JSON")

	historyListCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the listing as JSON")
	historyShowCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the stored conversation as JSON")
	historyShowCmd.Flags().BoolVar(&plainOutput, "plain", false, "Print the answer without markdown styling")

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRmCmd)
}

func main() {
	_ = godotenv.Load()

	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)

	// Add version command last so it appears after auto-generated commands
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
