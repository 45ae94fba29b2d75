// README: Turn orchestrator; drives inference, merge and session persistence.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travelai/internal/ai"
	"travelai/internal/modules/merge"
	"travelai/internal/modules/schema"
	"travelai/internal/modules/session"
)

// ErrInference marks a failed or unparsable primary model call. The turn is
// aborted with no state mutation; a retry of the same utterance is safe.
var ErrInference = errors.New("inference failed")

// Searcher is the external lookup capability used by the augmentation pass.
type Searcher interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// Meter guards the per-user model-call budget. It is consulted after the
// session lookup succeeds, so requests for unknown users never burn quota.
// A nil Meter disables metering.
type Meter interface {
	UseCall(ctx context.Context, userID string) error
}

// TurnOutcome is the externally visible result of one completed turn.
type TurnOutcome struct {
	State   map[string]any
	Reply   string
	Options []string
}

// Service runs the per-turn dialogue flow: append the user line, rebuild
// role-tagged context, run the primary inference, optionally a search-
// augmented second pass, merge the field updates, and persist the session.
type Service struct {
	sessions *session.Service
	provider ai.Provider
	searcher Searcher // nil disables the augmentation pass
	meter    Meter    // nil disables metering
	log      *zap.Logger
}

func NewService(sessions *session.Service, provider ai.Provider, searcher Searcher, meter Meter, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		sessions: sessions,
		provider: provider,
		searcher: searcher,
		meter:    meter,
		log:      log,
	}
}

// Initialize bootstraps (or returns) the session for userID.
func (s *Service) Initialize(ctx context.Context, userID string) (*session.Session, error) {
	return s.sessions.Ensure(ctx, userID)
}

// RunTurn executes one dialogue turn for userID. The session in the store
// is only touched after a parseable TurnResult: either the full turn's
// updates are merged and persisted, or none are.
func (s *Service) RunTurn(ctx context.Context, userID, userInput string) (*TurnOutcome, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.meter != nil {
		if err := s.meter.UseCall(ctx, userID); err != nil {
			return nil, err
		}
	}

	transcript := append(sess.Transcript, "User: "+userInput)
	messages := roleMessages(transcript)
	flat := schema.Flatten(sess.State)

	result, err := s.provider.RunTurn(ctx, messages, flat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	result = s.maybeAugment(ctx, messages, flat, result)

	newFlat := merge.Apply(flat, result.Inferences)

	sess.Transcript = append(transcript, "Bot: "+result.NextReply)
	sess.State = schema.Unflatten(newFlat)
	sess.Options = schema.OptionsFor(result.Metadata)

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	return &TurnOutcome{
		State:   sess.State,
		Reply:   result.NextReply,
		Options: sess.Options,
	}, nil
}

// maybeAugment runs the lookup plus second inference pass when the primary
// result asks for it. The second pass supersedes the primary wholesale; any
// failure on this path degrades back to the primary result, never the turn.
func (s *Service) maybeAugment(ctx context.Context, messages []ai.Message, flat schema.Flat, primary *ai.TurnResult) *ai.TurnResult {
	if !primary.InternetSearchRequired || primary.OnlineSearchQuery == "" || s.searcher == nil {
		return primary
	}

	results, err := s.searcher.Lookup(ctx, primary.OnlineSearchQuery)
	if err != nil {
		s.log.Warn("lookup failed, keeping primary result",
			zap.String("query", primary.OnlineSearchQuery), zap.Error(err))
		return primary
	}

	augmented, err := s.provider.RunAugmentedTurn(ctx, messages, flat, results)
	if err != nil {
		s.log.Warn("augmented inference failed, keeping primary result", zap.Error(err))
		return primary
	}
	return augmented
}

// roleMessages re-derives the role-tagged message list from the transcript.
// Lines prefixed "User:"/"Bot:" map to user/assistant; anything else
// defaults to a user message with the raw line as content.
func roleMessages(transcript []string) []ai.Message {
	messages := make([]ai.Message, 0, len(transcript))
	for _, line := range transcript {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "user:"):
			messages = append(messages, ai.Message{Role: "user", Content: afterTag(line)})
		case strings.HasPrefix(lower, "bot:"):
			messages = append(messages, ai.Message{Role: "assistant", Content: afterTag(line)})
		default:
			messages = append(messages, ai.Message{Role: "user", Content: line})
		}
	}
	return messages
}

func afterTag(line string) string {
	if _, rest, ok := strings.Cut(line, ": "); ok {
		return rest
	}
	return line
}
