package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// mockDetectionService implements driving.DetectionService for tests.
type mockDetectionService struct {
	DetectFunc func(ctx context.Context, message string) (*domain.Verdict, error)
	messages   []string
}

func (m *mockDetectionService) Detect(ctx context.Context, message string) (*domain.Verdict, error) {
	m.messages = append(m.messages, message)
	if m.DetectFunc != nil {
		return m.DetectFunc(ctx, message)
	}
	return &domain.Verdict{}, nil
}

// mockSettingsService implements driving.SettingsService for tests.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	embedErr    error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetThreshold(threshold float64) error {
	m.settings.Detection.Threshold = threshold
	return nil
}

func (m *mockSettingsService) SetWhitelist(words []string) error {
	m.settings.Detection.Whitelist = words
	return nil
}

func (m *mockSettingsService) SetVectorIndex(backend domain.VectorBackend, url, token string) error {
	m.settings.VectorIndex.Backend = backend
	m.settings.VectorIndex.URL = url
	m.settings.VectorIndex.Token = token
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.Embedding.Provider = provider
	m.settings.Embedding.Model = model
	m.settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) Validate() error                 { return m.validateErr }
func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }
func (m *mockSettingsService) ValidateEmbeddingConfig() error  { return m.embedErr }

// mockReferenceService implements driving.ReferenceService for tests.
type mockReferenceService struct {
	imported []string
	count    int
	err      error
}

func (m *mockReferenceService) Import(_ context.Context, texts []string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.imported = append(m.imported, texts...)
	m.count += len(texts)
	return len(texts), nil
}

func (m *mockReferenceService) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

// testServices installs mock services for the duration of the test.
func testServices(
	t *testing.T, detection *mockDetectionService, settings *mockSettingsService, reference *mockReferenceService,
) {
	t.Helper()

	origInit, origCurrent := initializer, current
	origDetection, origSettings, origReference := detectionService, settingsService, referenceService

	initializer = nil
	current = nil
	detectionService, settingsService, referenceService = nil, nil, nil
	if detection != nil {
		detectionService = detection
	}
	if settings != nil {
		settingsService = settings
	}
	if reference != nil {
		referenceService = reference
	}

	t.Cleanup(func() {
		initializer, current = origInit, origCurrent
		detectionService, settingsService, referenceService = origDetection, origSettings, origReference
	})
}

// executeCommand runs the root command with args and stdin, returning combined output.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags() {
	var reset func(cmd *cobra.Command)
	reset = func(cmd *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					_ = sv.Replace(nil)
				} else {
					_ = f.Value.Set(f.DefValue)
				}
				f.Changed = false
			})
		}
		for _, sub := range cmd.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)
}
