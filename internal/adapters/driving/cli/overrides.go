package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

var (
	thresholdOverride float64
	whitelistOverride []string
)

// flagOverlay applies command-line overrides on top of file and environment settings.
type flagOverlay struct {
	threshold *float64
	whitelist *[]string
}

var _ driven.SettingsOverlay = (*flagOverlay)(nil)

func (o *flagOverlay) Name() string {
	return "flags"
}

func (o *flagOverlay) Apply(settings *domain.AppSettings) error {
	if o.threshold != nil {
		settings.Detection.Threshold = *o.threshold
	}
	if o.whitelist != nil {
		settings.Detection.Whitelist = *o.whitelist
	}
	return nil
}

func registerOverrideFlags(flags *pflag.FlagSet) {
	flags.Float64Var(&thresholdOverride, "threshold", domain.DefaultThreshold,
		"override the flag threshold for this run")
	flags.StringSliceVar(&whitelistOverride, "whitelist", nil,
		"override the whitelist for this run (comma-separated)")
}

// overrideOverlays returns an overlay for the override flags the user set.
func overrideOverlays(cmd *cobra.Command) []driven.SettingsOverlay {
	overlay := &flagOverlay{}
	flags := cmd.Flags()

	if flags.Changed("threshold") {
		threshold := thresholdOverride
		overlay.threshold = &threshold
	}
	if flags.Changed("whitelist") {
		whitelist := append([]string{}, whitelistOverride...)
		overlay.whitelist = &whitelist
	}

	if overlay.threshold == nil && overlay.whitelist == nil {
		return nil
	}
	return []driven.SettingsOverlay{overlay}
}
