package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

func newTestServer(t *testing.T, detection *mockDetectionService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Detection: detection})
	require.NoError(t, err)
	return server
}

func TestServer_handleCheck(t *testing.T) {
	ctx := context.Background()

	t.Run("returns flagged verdict", func(t *testing.T) {
		detection := &mockDetectionService{
			verdicts: map[string]*domain.Verdict{
				"you are so ugly": {IsProfanity: true, Score: 0.92, FlaggedFor: "ugly person"},
			},
		}
		server := newTestServer(t, detection)

		_, output, err := server.handleCheck(ctx, nil, CheckInput{Message: "you are so ugly"})

		require.NoError(t, err)
		assert.Equal(t, CheckOutput{IsProfanity: true, Score: 0.92, FlaggedFor: "ugly person"}, output)
	})

	t.Run("clean verdict has no flagged text", func(t *testing.T) {
		detection := &mockDetectionService{
			verdicts: map[string]*domain.Verdict{"hello": {Score: 0.3}},
		}
		server := newTestServer(t, detection)

		_, output, err := server.handleCheck(ctx, nil, CheckInput{Message: "hello"})

		require.NoError(t, err)
		assert.False(t, output.IsProfanity)
		assert.Equal(t, 0.3, output.Score)
		assert.Empty(t, output.FlaggedFor)
	})

	t.Run("validation error is returned as is", func(t *testing.T) {
		server := newTestServer(t, &mockDetectionService{err: domain.ErrEmptyMessage})

		_, _, err := server.handleCheck(ctx, nil, CheckInput{})

		assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	})

	t.Run("other errors are not leaked", func(t *testing.T) {
		cause := fmt.Errorf("%w: upstash: status 401: bad token", domain.ErrExternalService)
		server := newTestServer(t, &mockDetectionService{err: cause})

		_, _, err := server.handleCheck(ctx, nil, CheckInput{Message: "hi"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExternalService)
		assert.NotContains(t, err.Error(), "bad token")
	})
}

func TestServer_handleBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("scores each message", func(t *testing.T) {
		detection := &mockDetectionService{
			verdicts: map[string]*domain.Verdict{
				"bad":  {IsProfanity: true, Score: 0.9, FlaggedFor: "bad"},
				"good": {Score: 0.1},
			},
			errFor: map[string]error{"": domain.ErrEmptyMessage},
		}
		server := newTestServer(t, detection)

		_, output, err := server.handleBatch(ctx, nil, BatchInput{Messages: []string{"bad", "good", ""}})

		require.NoError(t, err)
		require.Len(t, output.Results, 3)
		assert.Equal(t, 1, output.Flagged)
		assert.True(t, output.Results[0].IsProfanity)
		assert.Equal(t, "bad", output.Results[0].FlaggedFor)
		assert.False(t, output.Results[1].IsProfanity)
		assert.Equal(t, 0.1, output.Results[1].Score)
		assert.NotEmpty(t, output.Results[2].Error)
		assert.Equal(t, 3, detection.calls)
	})

	t.Run("empty batch is rejected", func(t *testing.T) {
		server := newTestServer(t, &mockDetectionService{})

		_, _, err := server.handleBatch(ctx, nil, BatchInput{})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("oversized batch is rejected", func(t *testing.T) {
		server := newTestServer(t, &mockDetectionService{})
		messages := strings.Split(strings.Repeat("x,", maxBatchSize+1), ",")

		_, _, err := server.handleBatch(ctx, nil, BatchInput{Messages: messages})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("external failure aborts the batch", func(t *testing.T) {
		detection := &mockDetectionService{
			errFor: map[string]error{"second": errors.New("boom")},
		}
		server := newTestServer(t, detection)

		_, output, err := server.handleBatch(ctx, nil, BatchInput{Messages: []string{"first", "second", "third"}})

		require.Error(t, err)
		assert.Empty(t, output.Results)
		assert.Equal(t, 2, detection.calls)
	})
}
