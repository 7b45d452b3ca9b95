package domain

// Verdict is the final detection result for one message.
type Verdict struct {
	// IsProfanity is true when at least one chunk scored above the threshold.
	IsProfanity bool `json:"isProfanity"`

	// Score is the winning match score, or the highest score seen when nothing was flagged.
	Score float64 `json:"score"`

	// FlaggedFor is the reference text of the winning match.
	// Only set when IsProfanity is true.
	FlaggedFor string `json:"flaggedFor,omitempty"`
}

// CleanVerdict returns a non-profane verdict with the given score.
func CleanVerdict(score float64) Verdict {
	return Verdict{Score: score}
}

// FlaggedVerdict returns a profane verdict for the given match.
func FlaggedVerdict(match VectorMatch) Verdict {
	return Verdict{
		IsProfanity: true,
		Score:       match.Score,
		FlaggedFor:  match.Text,
	}
}
