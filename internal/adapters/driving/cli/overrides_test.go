package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func TestFlagOverlay_Apply(t *testing.T) {
	threshold := 0.5
	whitelist := []string{"darn"}
	overlay := &flagOverlay{threshold: &threshold, whitelist: &whitelist}

	settings := domain.DefaultAppSettings()
	require.NoError(t, overlay.Apply(&settings))

	assert.Equal(t, "flags", overlay.Name())
	assert.InDelta(t, 0.5, settings.Detection.Threshold, 1e-9)
	assert.Equal(t, []string{"darn"}, settings.Detection.Whitelist)
}

func TestFlagOverlay_ApplyNothing(t *testing.T) {
	settings := domain.DefaultAppSettings()
	require.NoError(t, (&flagOverlay{}).Apply(&settings))

	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestOverrideFlags_PassedToInitializer(t *testing.T) {
	testServices(t, nil, nil, nil)

	var got Options
	SetInitializer(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{Detection: &mockDetectionService{}}, nil
	})

	_, err := executeCommand(t, "", "check", "--threshold", "0.7", "--whitelist", "a,b",
		"--config-dir", "/tmp/profanity-config", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/profanity-config", got.ConfigDir)
	require.Len(t, got.Overlays, 1)

	settings := domain.DefaultAppSettings()
	require.NoError(t, got.Overlays[0].Apply(&settings))
	assert.InDelta(t, 0.7, settings.Detection.Threshold, 1e-9)
	assert.Equal(t, []string{"a", "b"}, settings.Detection.Whitelist)
}

func TestOverrideFlags_NoneSet(t *testing.T) {
	testServices(t, nil, nil, nil)

	var got Options
	SetInitializer(func(_ context.Context, opts Options) (*Services, error) {
		got = opts
		return &Services{Detection: &mockDetectionService{}}, nil
	})

	_, err := executeCommand(t, "", "check", "hello")
	require.NoError(t, err)

	assert.Empty(t, got.Overlays)
}
