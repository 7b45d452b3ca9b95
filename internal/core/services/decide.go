package services

import (
	"github.com/samber/lo"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// Decide turns per-chunk matches into a verdict.
//
// A match flags when its score is strictly greater than threshold. The
// highest flagged score wins; on a tie the earliest chunk wins, so word
// chunks beat semantic chunks. Without a flag the verdict carries the
// highest score seen, counting missing matches as 0.
func Decide(matches []domain.ChunkMatch, threshold float64) domain.Verdict {
	var best *domain.VectorMatch
	for _, m := range matches {
		if m.Match == nil || m.Match.Score <= threshold {
			continue
		}
		if best == nil || m.Match.Score > best.Score {
			best = m.Match
		}
	}

	if best != nil {
		return domain.FlaggedVerdict(*best)
	}

	scores := lo.Map(matches, func(m domain.ChunkMatch, _ int) float64 {
		if m.Match == nil {
			return 0
		}
		return m.Match.Score
	})
	return domain.CleanVerdict(lo.Max(scores))
}
