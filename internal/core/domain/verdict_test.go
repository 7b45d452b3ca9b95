package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlaggedVerdict(t *testing.T) {
	v := FlaggedVerdict(VectorMatch{Score: 0.92, Text: "ugly"})

	assert.True(t, v.IsProfanity)
	assert.Equal(t, 0.92, v.Score)
	assert.Equal(t, "ugly", v.FlaggedFor)
}

func TestCleanVerdict_OmitsFlaggedFor(t *testing.T) {
	data, err := json.Marshal(CleanVerdict(0.4))
	require.NoError(t, err)

	assert.JSONEq(t, `{"isProfanity":false,"score":0.4}`, string(data))
}

func TestFlaggedVerdict_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(FlaggedVerdict(VectorMatch{Score: 0.9, Text: "bad"}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"isProfanity":true,"score":0.9,"flaggedFor":"bad"}`, string(data))
}
