package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/profanity/internal/core/domain"
)

// maxBatchSize caps the number of messages per check_profanity_batch call.
const maxBatchSize = 50

// CheckInput is the input schema for the check_profanity tool.
type CheckInput struct {
	Message string `json:"message" jsonschema:"the message to check, at most 1000 characters"`
}

// CheckOutput is the output schema for the check_profanity tool.
type CheckOutput struct {
	IsProfanity bool    `json:"is_profanity"`
	Score       float64 `json:"score"`
	FlaggedFor  string  `json:"flagged_for,omitempty"`
}

// BatchInput is the input schema for the check_profanity_batch tool.
type BatchInput struct {
	Messages []string `json:"messages" jsonschema:"messages to check, each scored independently"`
}

// BatchOutput is the output schema for the check_profanity_batch tool.
type BatchOutput struct {
	Results []BatchResult `json:"results"`
	Flagged int           `json:"flagged"`
}

// BatchResult is the verdict or error for one message in a batch.
type BatchResult struct {
	Message string `json:"message"`
	CheckOutput
	Error string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_profanity",
		Description: "Check whether a message contains profanity or offensive content",
	}, s.handleCheck)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_profanity_batch",
		Description: "Check several messages for profanity in one call",
	}, s.handleBatch)
}

// handleCheck handles the check_profanity tool invocation.
func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckInput,
) (*mcp.CallToolResult, CheckOutput, error) {
	verdict, err := s.ports.Detection.Detect(ctx, input.Message)
	if err != nil {
		return nil, CheckOutput{}, toolError(err)
	}
	return nil, toOutput(verdict), nil
}

// handleBatch handles the check_profanity_batch tool invocation.
// Validation failures are reported per message; other failures abort the batch.
func (s *Server) handleBatch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchInput,
) (*mcp.CallToolResult, BatchOutput, error) {
	if len(input.Messages) == 0 {
		return nil, BatchOutput{}, fmt.Errorf("%w: messages must not be empty", domain.ErrInvalidInput)
	}
	if len(input.Messages) > maxBatchSize {
		return nil, BatchOutput{}, fmt.Errorf("%w: at most %d messages per batch", domain.ErrInvalidInput, maxBatchSize)
	}

	output := BatchOutput{Results: make([]BatchResult, len(input.Messages))}
	for i, message := range input.Messages {
		output.Results[i].Message = message

		verdict, err := s.ports.Detection.Detect(ctx, message)
		if err != nil {
			if !domain.IsValidationError(err) {
				return nil, BatchOutput{}, toolError(err)
			}
			output.Results[i].Error = err.Error()
			continue
		}

		output.Results[i].CheckOutput = toOutput(verdict)
		if verdict.IsProfanity {
			output.Flagged++
		}
	}

	return nil, output, nil
}

func toOutput(v *domain.Verdict) CheckOutput {
	return CheckOutput{
		IsProfanity: v.IsProfanity,
		Score:       v.Score,
		FlaggedFor:  v.FlaggedFor,
	}
}

// toolError keeps validation messages and hides everything else.
func toolError(err error) error {
	if domain.IsValidationError(err) {
		return err
	}
	return fmt.Errorf("profanity check failed: %w", domain.ErrExternalService)
}
