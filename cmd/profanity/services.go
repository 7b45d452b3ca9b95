package main

import (
	"context"
	"fmt"

	"github.com/custodia-labs/profanity/internal/adapters/driven/ai"
	"github.com/custodia-labs/profanity/internal/adapters/driven/config/env"
	"github.com/custodia-labs/profanity/internal/adapters/driven/config/file"
	"github.com/custodia-labs/profanity/internal/adapters/driving/cli"
	"github.com/custodia-labs/profanity/internal/chunkers"
	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/services"
	"github.com/custodia-labs/profanity/internal/logger"
)

// buildServices assembles the core services for one CLI invocation.
// Settings are layered defaults, config.toml, environment, then flags.
// A missing or broken vector backend is reported through DetectionErr so
// settings commands keep working.
func buildServices(_ context.Context, opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(store, ai.NewConfigValidator())
	settingsService.AddOverlay(env.New())
	for _, o := range opts.Overlays {
		settingsService.AddOverlay(o)
	}

	svcs := &cli.Services{
		Settings: settingsService,
		Watch:    store.Watch,
		Close:    func() error { return nil },
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	if err := settingsService.ValidateSettings(settings); err != nil {
		svcs.DetectionErr = err
		svcs.ReferenceErr = err
		return svcs, nil
	}

	pipeline, err := chunkers.DefaultPipeline(settings.Detection)
	if err != nil {
		return nil, fmt.Errorf("build chunker pipeline: %w", err)
	}

	backend, err := ai.CreateVectorIndex(settings, opts.DataDir)
	if err != nil {
		logger.Debug("vector index unavailable: %v", err)
		svcs.DetectionErr = err
		svcs.ReferenceErr = err
		return svcs, nil
	}
	logger.Debug("vector backend: %s", settings.VectorIndex.Backend)

	detection := services.NewDetectionService(backend.VectorIndex, pipeline, settings.Detection)
	svcs.Detection = detection
	svcs.Close = func() error {
		backend.Close()
		return nil
	}

	if backend.ReferenceStore != nil {
		svcs.Reference = services.NewReferenceService(backend.ReferenceStore, backend.EmbeddingService)
	} else {
		svcs.ReferenceErr = fmt.Errorf("%w: the %s backend manages its own index",
			domain.ErrVectorIndexUnavailable, settings.VectorIndex.Backend)
	}

	svcs.Reload = func() error {
		return reloadDetection(settingsService, detection)
	}

	return svcs, nil
}

// reloadDetection re-reads settings and swaps the detection snapshot.
// Backend changes need a restart; only detection parameters are applied live.
func reloadDetection(settingsService *services.SettingsService, detection *services.DetectionService) error {
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	if err := settingsService.ValidateSettings(settings); err != nil {
		return err
	}

	pipeline, err := chunkers.DefaultPipeline(settings.Detection)
	if err != nil {
		return fmt.Errorf("build chunker pipeline: %w", err)
	}

	detection.Reconfigure(settings.Detection, pipeline)
	return nil
}
