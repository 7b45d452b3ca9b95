// Package cli provides the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/profanity/internal/core/ports/driven"
	"github.com/custodia-labs/profanity/internal/core/ports/driving"
	"github.com/custodia-labs/profanity/internal/logger"
)

// skipInit marks commands that run without services.
const skipInit = "skip-init"

// Services holds the driving ports and lifecycle hooks used by commands.
type Services struct {
	Detection driving.DetectionService
	Settings  driving.SettingsService
	Reference driving.ReferenceService

	// DetectionErr explains why Detection is nil.
	DetectionErr error

	// ReferenceErr explains why Reference is nil.
	ReferenceErr error

	// Watch blocks until ctx is done, calling onChange after the config file changes.
	Watch func(ctx context.Context, onChange func()) error

	// Reload re-reads settings and reconfigures detection.
	Reload func() error

	// Close releases stores and clients.
	Close func() error
}

// Options are the global flags passed to the initialiser.
type Options struct {
	ConfigDir string
	DataDir   string

	// Overlays are applied after the config file and environment.
	Overlays []driven.SettingsOverlay
}

// Initializer builds services for one invocation.
type Initializer func(ctx context.Context, opts Options) (*Services, error)

var (
	version = "dev"

	verbose   bool
	configDir string
	dataDir   string

	initializer Initializer
	current     *Services

	detectionService driving.DetectionService
	settingsService  driving.SettingsService
	referenceService driving.ReferenceService
)

var rootCmd = &cobra.Command{
	Use:   "profanity",
	Short: "Detect profanity in short messages",
	Long: `profanity scores short messages against a vector index of known
offensive text, at word and phrase granularity, and flags messages whose
closest match scores above the configured threshold.

Run 'profanity serve' for the HTTP API or 'profanity check' for one-off checks.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.profanity)")
	flags.StringVar(&dataDir, "data-dir", "", "data directory for the local index (default ~/.profanity/data)")
	registerOverrideFlags(flags)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetInitializer sets the function that builds services before each command.
func SetInitializer(fn Initializer) {
	initializer = fn
}

// Execute runs the root command and releases services afterwards.
func Execute(ctx context.Context) error {
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if initializer == nil || cmd.Annotations[skipInit] == "true" {
		return nil
	}

	svcs, err := initializer(cmd.Context(), Options{
		ConfigDir: configDir,
		DataDir:   dataDir,
		Overlays:  overrideOverlays(cmd),
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}

	current = svcs
	detectionService = svcs.Detection
	settingsService = svcs.Settings
	referenceService = svcs.Reference
	return nil
}

func closeServices() {
	if current == nil || current.Close == nil {
		return
	}
	if err := current.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	current = nil
}

// requireDetection returns the detection service or explains why it is missing.
func requireDetection() (driving.DetectionService, error) {
	if detectionService != nil {
		return detectionService, nil
	}
	if current != nil && current.DetectionErr != nil {
		return nil, fmt.Errorf("detection service not configured: %w", current.DetectionErr)
	}
	return nil, errors.New("detection service not configured")
}

// requireReference returns the reference service or explains why it is missing.
func requireReference() (driving.ReferenceService, error) {
	if referenceService != nil {
		return referenceService, nil
	}
	if current != nil && current.ReferenceErr != nil {
		return nil, fmt.Errorf("reference index not available: %w", current.ReferenceErr)
	}
	return nil, errors.New("reference index not available: select the local vector backend")
}
