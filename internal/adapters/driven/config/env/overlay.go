package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	goenv "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// Ensure Overlay implements the interface.
var _ driven.SettingsOverlay = (*Overlay)(nil)

// Variables lists every recognised environment variable.
// Unset variables leave the stored setting untouched.
type Variables struct {
	Threshold       *float64 `env:"PROFANITY_THRESHOLD"`
	Whitelist       *string  `env:"WHITELIST"`
	VectorURL       string   `env:"VECTOR_URL"`
	VectorToken     string   `env:"VECTOR_TOKEN"`
	VectorBackend   string   `env:"PROFANITY_VECTOR_BACKEND"`
	EmbeddingModel  string   `env:"PROFANITY_EMBEDDING_MODEL"`
	EmbeddingAPIKey string   `env:"OPENAI_API_KEY"`
	OllamaHost      string   `env:"OLLAMA_HOST"`
	Host            string   `env:"PROFANITY_HOST"`
	Port            *int     `env:"PORT"`
}

// Overlay applies environment variables on top of stored settings.
type Overlay struct {
	environ func() []string
}

// New creates an overlay reading the process environment.
func New() *Overlay {
	return &Overlay{environ: os.Environ}
}

// Name returns the overlay name.
func (o *Overlay) Name() string {
	return "env"
}

// Read parses the current environment into Variables.
func (o *Overlay) Read() (Variables, error) {
	var vars Variables
	set, err := goenv.EnvironToEnvSet(o.environ())
	if err != nil {
		return vars, fmt.Errorf("%w: parse environment: %w", domain.ErrInvalidSettings, err)
	}
	if err := goenv.Unmarshal(set, &vars); err != nil {
		return vars, fmt.Errorf("%w: %w", domain.ErrInvalidSettings, err)
	}
	return vars, nil
}

// Apply overwrites settings with any variables that are set.
func (o *Overlay) Apply(settings *domain.AppSettings) error {
	vars, err := o.Read()
	if err != nil {
		return err
	}

	if vars.Threshold != nil {
		settings.Detection.Threshold = *vars.Threshold
	}
	if vars.Whitelist != nil {
		settings.Detection.Whitelist = SplitList(*vars.Whitelist)
	}

	if vars.VectorBackend != "" {
		settings.VectorIndex.Backend = domain.VectorBackend(strings.ToLower(vars.VectorBackend))
	}
	if vars.VectorURL != "" {
		settings.VectorIndex.URL = strings.TrimRight(vars.VectorURL, "/")
	}
	if vars.VectorToken != "" {
		settings.VectorIndex.Token = vars.VectorToken
	}

	if vars.EmbeddingModel != "" {
		settings.Embedding.Model = vars.EmbeddingModel
	}
	if vars.EmbeddingAPIKey != "" && settings.Embedding.Provider == domain.AIProviderOpenAI {
		settings.Embedding.APIKey = vars.EmbeddingAPIKey
	}
	if vars.OllamaHost != "" && settings.Embedding.Provider == domain.AIProviderOllama {
		settings.Embedding.BaseURL = vars.OllamaHost
	}

	if vars.Host != "" {
		settings.Server.Host = vars.Host
	}
	if vars.Port != nil {
		settings.Server.Port = *vars.Port
	}

	return nil
}

// SplitList splits a comma-separated value, dropping blank items.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if items == nil {
		return []string{}
	}
	return items
}

// LoadDotEnv loads variables from the given files, or .env when none are given.
// Missing files are ignored. Existing environment variables are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
