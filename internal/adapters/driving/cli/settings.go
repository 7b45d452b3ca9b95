package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure detection, vector index and embedding settings.

Settings are stored in config.toml. Environment variables (PROFANITY_THRESHOLD,
WHITELIST, VECTOR_URL, VECTOR_TOKEN) and command-line overrides take
precedence when the service runs but are never written back.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsThresholdCmd = &cobra.Command{
	Use:   "threshold <value>",
	Short: "Set the flag threshold",
	Long: `Set the similarity threshold. A message is flagged only when a chunk
scores strictly above it. Must be between -1 and 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsThreshold,
}

var settingsWhitelistCmd = &cobra.Command{
	Use:   "whitelist [word...]",
	Short: "Replace the whitelist",
	Long:  `Replace the whitelisted words. Words are matched case-insensitively. Use --clear to empty it.`,
	RunE:  runSettingsWhitelist,
}

var settingsVectorCmd = &cobra.Command{
	Use:   "vector",
	Short: "Configure the vector index",
	Long: `Configure the vector backend.

  upstash - hosted Upstash Vector index (requires --url and a token)
  local   - embeddings + SQLite reference store (requires an embedding provider)`,
	Args: cobra.NoArgs,
	RunE: runSettingsVector,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	Long:  `Configure the embedding provider used by the local vector backend.`,
	RunE:  runSettingsEmbedding,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var (
	whitelistClear bool
	vectorBackend  string
	vectorURL      string
	vectorToken    string
)

func init() {
	settingsWhitelistCmd.Flags().BoolVar(&whitelistClear, "clear", false, "remove all whitelisted words")

	settingsVectorCmd.Flags().StringVar(&vectorBackend, "backend", "upstash", "vector backend (upstash, local)")
	settingsVectorCmd.Flags().StringVar(&vectorURL, "url", "", "Upstash REST URL")
	settingsVectorCmd.Flags().StringVar(&vectorToken, "token", "", "Upstash REST token (prompted when omitted)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsThresholdCmd)
	settingsCmd.AddCommand(settingsWhitelistCmd)
	settingsCmd.AddCommand(settingsVectorCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	d := settings.Detection
	cmd.Println("[Detection]")
	cmd.Printf("  Threshold: %g\n", d.Threshold)
	if len(d.Whitelist) > 0 {
		cmd.Printf("  Whitelist: %s\n", strings.Join(d.Whitelist, ", "))
	} else {
		cmd.Println("  Whitelist: (empty)")
	}
	cmd.Printf("  Semantic chunks: %d chars, %d overlap\n", d.SemanticChunkSize, d.SemanticChunkOverlap)
	cmd.Printf("  Max concurrency: %d\n", d.MaxConcurrency)
	cmd.Printf("  Query timeout: %s\n", d.QueryTimeout)
	cmd.Println()

	v := settings.VectorIndex
	cmd.Println("[Vector Index]")
	cmd.Printf("  Backend: %s\n", v.Backend.Description())
	if v.Backend == domain.VectorBackendUpstash {
		cmd.Printf("  URL: %s\n", valueOrUnset(v.URL))
		if v.Token != "" {
			cmd.Printf("  Token: %s\n", maskAPIKey(v.Token))
		} else {
			cmd.Println("  Token: (not set)")
		}
		if v.RequestsPerSecond > 0 {
			cmd.Printf("  Rate limit: %g req/s\n", v.RequestsPerSecond)
		}
	}
	cmd.Println()

	if v.Backend.RequiresEmbedding() {
		e := settings.Embedding
		cmd.Println("[Embedding]")
		cmd.Printf("  Provider: %s\n", e.Provider.Description())
		cmd.Printf("  Model: %s\n", valueOrUnset(e.Model))
		if e.Provider.IsLocal() {
			cmd.Printf("  Base URL: %s\n", e.BaseURL)
		}
		if e.Provider.RequiresAPIKey() {
			if e.APIKey != "" {
				cmd.Printf("  API Key: %s\n", maskAPIKey(e.APIKey))
			} else {
				cmd.Println("  API Key: (not set)")
			}
		}
		cmd.Println()
	}

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s:%d\n", settings.Server.Host, settings.Server.Port)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'profanity settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsThreshold(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	threshold, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", args[0], err)
	}
	if err := settingsService.SetThreshold(threshold); err != nil {
		return fmt.Errorf("failed to set threshold: %w", err)
	}

	cmd.Printf("Threshold set to: %g\n", threshold)
	return nil
}

func runSettingsWhitelist(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}
	if len(args) == 0 && !whitelistClear {
		return errors.New("pass the words to whitelist, or --clear to empty the whitelist")
	}

	if err := settingsService.SetWhitelist(args); err != nil {
		return fmt.Errorf("failed to set whitelist: %w", err)
	}

	if len(args) == 0 {
		cmd.Println("Whitelist cleared.")
	} else {
		cmd.Printf("Whitelist set to: %s\n", strings.Join(args, ", "))
	}
	return nil
}

func runSettingsVector(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	backend := domain.VectorBackend(strings.ToLower(vectorBackend))
	if !backend.IsValid() {
		return fmt.Errorf("unknown backend %q (valid: upstash, local)", vectorBackend)
	}

	token := vectorToken
	if backend == domain.VectorBackendUpstash && token == "" {
		cmd.Print("Enter Upstash token: ")
		token = readSecret(cmd, bufio.NewReader(cmd.InOrStdin()))
		cmd.Println()
	}

	if err := settingsService.SetVectorIndex(backend, vectorURL, token); err != nil {
		return fmt.Errorf("failed to configure vector index: %w", err)
	}

	cmd.Printf("Vector backend set to: %s\n", backend.Description())
	if backend.RequiresEmbedding() {
		settings, _ := settingsService.Get() //nolint:errcheck // Best-effort check
		if settings != nil && !settings.Embedding.IsConfigured() {
			cmd.Println("\nNote: The local backend requires an embedding provider.")
			cmd.Println("Run 'profanity settings embedding' to configure.")
		}
	}
	return nil
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureEmbeddingProvider(cmd, reader)
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	cmd.Println("Profanity Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Vector backend
	cmd.Println("Step 1: Select Vector Backend")
	cmd.Println("-----------------------------")
	backends := domain.AllVectorBackends()
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[parseChoice(readLine(reader), len(backends), 1)-1]

	var url, token string
	if backend == domain.VectorBackendUpstash {
		cmd.Print("Enter Upstash REST URL: ")
		url = readLine(reader)
		cmd.Print("Enter Upstash token: ")
		token = readSecret(cmd, reader)
		cmd.Println()
	}
	if err := settingsService.SetVectorIndex(backend, url, token); err != nil {
		return fmt.Errorf("failed to configure vector index: %w", err)
	}
	cmd.Printf("Set vector backend to: %s\n\n", backend.Description())

	// Step 2: Embedding provider (local only)
	if backend.RequiresEmbedding() {
		cmd.Println("Step 2: Configure Embedding Provider")
		cmd.Println("------------------------------------")
		if err := configureEmbeddingProvider(cmd, reader); err != nil {
			return err
		}
	} else {
		cmd.Println("Step 2: Embedding Provider (skipped)")
		cmd.Println("------------------------------------")
		cmd.Println("Upstash embeds text server-side.")
		cmd.Println()
	}

	// Step 3: Threshold
	cmd.Println("Step 3: Flag Threshold")
	cmd.Println("----------------------")
	currentThreshold := domain.DefaultThreshold
	if settings, err := settingsService.Get(); err == nil {
		currentThreshold = settings.Detection.Threshold
	}
	cmd.Printf("Enter threshold [%g]: ", currentThreshold)
	if input := readLine(reader); input != "" {
		threshold, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return fmt.Errorf("invalid threshold %q: %w", input, err)
		}
		if err := settingsService.SetThreshold(threshold); err != nil {
			return fmt.Errorf("failed to set threshold: %w", err)
		}
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func configureEmbeddingProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	selectedProvider := providers[parseChoice(readLine(reader), len(providers), 1)-1]

	defaultModel := domain.DefaultEmbeddingModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readSecret(cmd, reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEmbeddingProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure embedding provider: %w", err)
	}

	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEmbeddingConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("embedding configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Embedding provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readSecret reads without echo from a terminal, or a plain line otherwise.
func readSecret(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
