package mcp

import (
	"context"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// mockDetectionService returns canned verdicts keyed by message.
type mockDetectionService struct {
	verdicts map[string]*domain.Verdict
	errFor   map[string]error
	err      error
	calls    int
}

func (m *mockDetectionService) Detect(_ context.Context, message string) (*domain.Verdict, error) {
	m.calls++
	if err, ok := m.errFor[message]; ok {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if v, ok := m.verdicts[message]; ok {
		return v, nil
	}
	return &domain.Verdict{}, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error { return m.err }

func (m *mockSettingsService) SetThreshold(_ float64) error { return m.err }

func (m *mockSettingsService) SetWhitelist(_ []string) error { return m.err }

func (m *mockSettingsService) SetVectorIndex(_ domain.VectorBackend, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) SetEmbeddingProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) Validate() error { return m.err }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig() error { return m.err }

// mockReferenceService is a mock implementation of driving.ReferenceService.
type mockReferenceService struct {
	count int
	err   error
}

func (m *mockReferenceService) Import(_ context.Context, texts []string) (int, error) {
	return len(texts), m.err
}

func (m *mockReferenceService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}
