package chunkers

import (
	"github.com/custodia-labs/profanity/internal/chunkers/semantic"
	"github.com/custodia-labs/profanity/internal/chunkers/word"
	"github.com/custodia-labs/profanity/internal/core/domain"
	"github.com/custodia-labs/profanity/internal/core/ports/driven"
)

// RegisterDefaults registers all built-in chunkers with the registry.
// Call this during application initialisation to enable standard chunkers.
func RegisterDefaults(r *Registry) {
	r.Register(word.Name, buildWord)
	r.Register(semantic.Name, buildSemantic)
}

// DefaultPipeline builds the word + semantic pipeline for the given settings.
func DefaultPipeline(settings domain.DetectionSettings) (*Pipeline, error) {
	r := NewRegistry()
	RegisterDefaults(r)
	return r.BuildPipeline(domain.ChunkerConfigFor(settings))
}

func buildWord(_ map[string]any) (driven.Chunker, error) {
	return word.New(), nil
}

// buildSemantic creates a semantic chunker from generic config.
// Supported config keys:
//   - chunk_size (int): Target characters per chunk (default: 25)
//   - overlap (int): Overlapping characters between chunks (default: 12)
func buildSemantic(cfg map[string]any) (driven.Chunker, error) {
	var opts []semantic.Option

	if cfg != nil {
		if size := getIntFromConfig(cfg, "chunk_size"); size > 0 {
			opts = append(opts, semantic.WithChunkSize(size))
		}
		if _, ok := cfg["overlap"]; ok {
			opts = append(opts, semantic.WithOverlap(getIntFromConfig(cfg, "overlap")))
		}
	}

	return semantic.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
