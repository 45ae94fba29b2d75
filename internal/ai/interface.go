package ai

import (
	"context"

	"travelai/internal/modules/schema"
)

// Provider defines the contract for the inference capability.
// This interface allows swapping model backends (Gemini, OpenAI, stubs in
// tests) without touching the turn orchestration.
type Provider interface {
	// RunTurn analyzes the conversation and current flat state and returns
	// the model's field updates plus the next reply.
	RunTurn(ctx context.Context, transcript []Message, flatState schema.Flat) (*TurnResult, error)

	// RunAugmentedTurn repeats the same turn with external lookup results
	// embedded as contextual grounding. Its result supersedes the primary
	// pass wholesale.
	RunAugmentedTurn(ctx context.Context, transcript []Message, flatState schema.Flat, searchResults string) (*TurnResult, error)
}
