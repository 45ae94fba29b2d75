// README: Turn orchestrator tests (merge flow, augmentation, atomicity).
package planner

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"travelai/internal/ai"
	"travelai/internal/modules/schema"
	"travelai/internal/modules/session"
)

type stubProvider struct {
	primary    *ai.TurnResult
	primaryErr error

	augmented    *ai.TurnResult
	augmentedErr error

	primaryCalls    int
	augmentedCalls  int
	lastSearchInput string
}

func (s *stubProvider) RunTurn(_ context.Context, _ []ai.Message, _ schema.Flat) (*ai.TurnResult, error) {
	s.primaryCalls++
	return s.primary, s.primaryErr
}

func (s *stubProvider) RunAugmentedTurn(_ context.Context, _ []ai.Message, _ schema.Flat, searchResults string) (*ai.TurnResult, error) {
	s.augmentedCalls++
	s.lastSearchInput = searchResults
	return s.augmented, s.augmentedErr
}

type stubSearcher struct {
	text  string
	err   error
	calls int
}

func (s *stubSearcher) Lookup(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

func listUpdate(field string, values ...string) ai.FieldUpdate {
	return ai.FieldUpdate{FieldName: field, Answer: ai.Answer{IsList: true, List: values}}
}

func scalarUpdate(field, value string) ai.FieldUpdate {
	return ai.FieldUpdate{FieldName: field, Answer: ai.Answer{Value: value}}
}

func setup(t *testing.T, provider ai.Provider, searcher Searcher) (*Service, *session.Service) {
	t.Helper()
	sessions := session.NewService(session.NewMemoryStore())
	return NewService(sessions, provider, searcher, nil, nil), sessions
}

func mustInit(t *testing.T, svc *Service, userID string) {
	t.Helper()
	if _, err := svc.Initialize(context.Background(), userID); err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func TestRunTurnEndToEnd(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			Inferences: []ai.FieldUpdate{listUpdate("destination", "Paris", "Rome")},
			NextReply:  "Do you want to sequence the cities manually?",
			Metadata:   "none",
			Reason:     "User provided cities.",
		},
	}
	svc, sessions := setup(t, provider, nil)
	mustInit(t, svc, "u1")

	outcome, err := svc.RunTurn(context.Background(), "u1", "I want to visit Paris and Rome")
	if err != nil {
		t.Fatalf("run turn: %v", err)
	}

	if !reflect.DeepEqual(outcome.State["destination"], []any{"Paris", "Rome"}) {
		t.Errorf("destination = %#v, want [Paris Rome]", outcome.State["destination"])
	}
	if len(outcome.Options) != 0 {
		t.Errorf("options = %v, want empty for metadata none", outcome.Options)
	}
	if outcome.Reply != provider.primary.NextReply {
		t.Errorf("reply = %q", outcome.Reply)
	}

	sess, err := sessions.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if len(sess.Transcript) != 3 {
		t.Fatalf("transcript = %v, want greeting + user + bot", sess.Transcript)
	}
	if sess.Transcript[1] != "User: I want to visit Paris and Rome" {
		t.Errorf("user line = %q", sess.Transcript[1])
	}
	if sess.Transcript[2] != "Bot: "+provider.primary.NextReply {
		t.Errorf("bot line = %q", sess.Transcript[2])
	}
	if !reflect.DeepEqual(sess.State, outcome.State) {
		t.Error("persisted state differs from returned state")
	}
}

func TestRunTurnDestinationAccumulatesAcrossTurns(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			Inferences: []ai.FieldUpdate{listUpdate("destination", "Paris")},
			NextReply:  "Noted.",
			Metadata:   "none",
		},
	}
	svc, _ := setup(t, provider, nil)
	mustInit(t, svc, "u1")

	if _, err := svc.RunTurn(context.Background(), "u1", "Paris please"); err != nil {
		t.Fatalf("turn 1: %v", err)
	}

	provider.primary = &ai.TurnResult{
		Inferences: []ai.FieldUpdate{listUpdate("destination", "Paris", "Rome")},
		NextReply:  "Added Rome.",
		Metadata:   "none",
	}
	outcome, err := svc.RunTurn(context.Background(), "u1", "also Rome")
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if !reflect.DeepEqual(outcome.State["destination"], []any{"Paris", "Rome"}) {
		t.Errorf("destination = %#v, want deduplicated [Paris Rome]", outcome.State["destination"])
	}
}

func TestRunTurnOptionsFromMetadata(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			NextReply: "How would you describe your budget?",
			Metadata:  "budget",
		},
	}
	svc, _ := setup(t, provider, nil)
	mustInit(t, svc, "u1")

	outcome, err := svc.RunTurn(context.Background(), "u1", "what next")
	if err != nil {
		t.Fatalf("run turn: %v", err)
	}
	want := schema.OptionsFor("budget")
	if !reflect.DeepEqual(outcome.Options, want) {
		t.Errorf("options = %v, want %v", outcome.Options, want)
	}
}

func TestRunTurnValidation(t *testing.T) {
	svc, _ := setup(t, &stubProvider{}, nil)

	if _, err := svc.RunTurn(context.Background(), "", "hi"); !errors.Is(err, session.ErrBadRequest) {
		t.Errorf("empty user: err = %v, want ErrBadRequest", err)
	}
	if _, err := svc.RunTurn(context.Background(), "ghost", "hi"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

// A failed primary inference aborts the turn with zero state mutation, so
// retrying the same utterance is always safe.
func TestRunTurnAtomicOnInferenceFailure(t *testing.T) {
	provider := &stubProvider{primaryErr: fmt.Errorf("model unreachable")}
	svc, sessions := setup(t, provider, nil)
	mustInit(t, svc, "u1")

	before, _ := sessions.Get(context.Background(), "u1")

	_, err := svc.RunTurn(context.Background(), "u1", "Paris please")
	if !errors.Is(err, ErrInference) {
		t.Fatalf("err = %v, want ErrInference", err)
	}

	after, _ := sessions.Get(context.Background(), "u1")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("session mutated on failed turn:\nbefore: %#v\nafter:  %#v", before, after)
	}
}

type stubMeter struct {
	err   error
	calls int
}

func (m *stubMeter) UseCall(_ context.Context, _ string) error {
	m.calls++
	return m.err
}

// Quota is deducted only after the session lookup succeeds: a turn for an
// unknown user fails with ErrNotFound without touching the meter.
func TestRunTurnNoQuotaBurnForUnknownUser(t *testing.T) {
	provider := &stubProvider{}
	meter := &stubMeter{}
	sessions := session.NewService(session.NewMemoryStore())
	svc := NewService(sessions, provider, nil, meter, nil)

	if _, err := svc.RunTurn(context.Background(), "ghost", "hi"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if meter.calls != 0 {
		t.Errorf("meter consulted %d times for unknown user, want 0", meter.calls)
	}
}

// An exhausted quota aborts the turn before any model call and leaves the
// session untouched.
func TestRunTurnQuotaExhausted(t *testing.T) {
	quotaErr := errors.New("monthly model-call quota exhausted")
	provider := &stubProvider{}
	meter := &stubMeter{err: quotaErr}
	sessions := session.NewService(session.NewMemoryStore())
	svc := NewService(sessions, provider, nil, meter, nil)
	mustInit(t, svc, "u1")

	before, _ := sessions.Get(context.Background(), "u1")

	_, err := svc.RunTurn(context.Background(), "u1", "Paris please")
	if !errors.Is(err, quotaErr) {
		t.Fatalf("err = %v, want meter error", err)
	}
	if provider.primaryCalls != 0 {
		t.Errorf("model called %d times on exhausted quota, want 0", provider.primaryCalls)
	}

	after, _ := sessions.Get(context.Background(), "u1")
	if !reflect.DeepEqual(before, after) {
		t.Errorf("session mutated on denied turn:\nbefore: %#v\nafter:  %#v", before, after)
	}
}

// A permitted turn consults the meter exactly once, even when the
// augmentation pass runs a second model call.
func TestRunTurnMetersOncePerTurn(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			NextReply:              "Checking that for you.",
			Metadata:               "none",
			InternetSearchRequired: true,
			OnlineSearchQuery:      "weather in Paris",
		},
		augmented: &ai.TurnResult{NextReply: "It is sunny.", Metadata: "none"},
	}
	meter := &stubMeter{}
	sessions := session.NewService(session.NewMemoryStore())
	svc := NewService(sessions, provider, &stubSearcher{text: "sunny"}, meter, nil)
	mustInit(t, svc, "u1")

	if _, err := svc.RunTurn(context.Background(), "u1", "What is the weather?"); err != nil {
		t.Fatalf("turn: %v", err)
	}
	if provider.augmentedCalls != 1 {
		t.Fatalf("expected augmented pass to run, got %d calls", provider.augmentedCalls)
	}
	if meter.calls != 1 {
		t.Errorf("meter consulted %d times, want 1", meter.calls)
	}
}

func TestAugmentationSupersedesPrimary(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			NextReply:              "Let me check that.",
			Metadata:               "none",
			InternetSearchRequired: true,
			OnlineSearchQuery:      "best month to visit Bali",
		},
		augmented: &ai.TurnResult{
			Inferences: []ai.FieldUpdate{scalarUpdate("budget", "comfortable spending")},
			NextReply:  "Dry season runs April to October.",
			Metadata:   "budget",
		},
	}
	searcher := &stubSearcher{text: "Bali weather notes"}
	svc, _ := setup(t, provider, searcher)
	mustInit(t, svc, "u1")

	outcome, err := svc.RunTurn(context.Background(), "u1", "when should I go to Bali?")
	if err != nil {
		t.Fatalf("run turn: %v", err)
	}

	if searcher.calls != 1 {
		t.Errorf("searcher calls = %d, want 1", searcher.calls)
	}
	if provider.augmentedCalls != 1 {
		t.Errorf("augmented calls = %d, want 1", provider.augmentedCalls)
	}
	if provider.lastSearchInput != "Bali weather notes" {
		t.Errorf("search text passed = %q", provider.lastSearchInput)
	}
	// The second pass replaces inferences, reply and metadata wholesale.
	if outcome.Reply != "Dry season runs April to October." {
		t.Errorf("reply = %q, want augmented reply", outcome.Reply)
	}
	if outcome.State["budget"] != "comfortable spending" {
		t.Errorf("budget = %#v, want augmented inference applied", outcome.State["budget"])
	}
	if !reflect.DeepEqual(outcome.Options, schema.OptionsFor("budget")) {
		t.Errorf("options = %v, want augmented metadata resolved", outcome.Options)
	}
}

func TestAugmentationFallbackOnLookupFailure(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			Inferences:             []ai.FieldUpdate{listUpdate("destination", "Bali")},
			NextReply:              "Bali is lovely year round.",
			Metadata:               "none",
			InternetSearchRequired: true,
			OnlineSearchQuery:      "Bali weather",
		},
	}
	searcher := &stubSearcher{err: fmt.Errorf("search down")}
	svc, _ := setup(t, provider, searcher)
	mustInit(t, svc, "u1")

	outcome, err := svc.RunTurn(context.Background(), "u1", "when should I go?")
	if err != nil {
		t.Fatalf("lookup failure must not fail the turn: %v", err)
	}
	if outcome.Reply != provider.primary.NextReply {
		t.Errorf("reply = %q, want primary reply", outcome.Reply)
	}
	if !reflect.DeepEqual(outcome.State["destination"], []any{"Bali"}) {
		t.Errorf("primary inferences dropped: %#v", outcome.State["destination"])
	}
	if provider.augmentedCalls != 0 {
		t.Errorf("augmented pass ran despite lookup failure")
	}
}

func TestAugmentationFallbackOnSecondPassFailure(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			NextReply:              "Primary answer.",
			Metadata:               "none",
			InternetSearchRequired: true,
			OnlineSearchQuery:      "something",
		},
		augmentedErr: fmt.Errorf("model hiccup"),
	}
	svc, _ := setup(t, provider, &stubSearcher{text: "results"})
	mustInit(t, svc, "u1")

	outcome, err := svc.RunTurn(context.Background(), "u1", "hello")
	if err != nil {
		t.Fatalf("second-pass failure must not fail the turn: %v", err)
	}
	if outcome.Reply != "Primary answer." {
		t.Errorf("reply = %q, want primary reply", outcome.Reply)
	}
}

func TestAugmentationSkippedWithoutQuery(t *testing.T) {
	provider := &stubProvider{
		primary: &ai.TurnResult{
			NextReply:              "No query given.",
			Metadata:               "none",
			InternetSearchRequired: true,
			OnlineSearchQuery:      "",
		},
	}
	searcher := &stubSearcher{text: "unused"}
	svc, _ := setup(t, provider, searcher)
	mustInit(t, svc, "u1")

	if _, err := svc.RunTurn(context.Background(), "u1", "hi"); err != nil {
		t.Fatalf("run turn: %v", err)
	}
	if searcher.calls != 0 {
		t.Errorf("searcher ran without a query")
	}
}

func TestRoleMessages(t *testing.T) {
	got := roleMessages([]string{
		"Bot: Hello there",
		"User: hi",
		"user: lowercase tag",
		"System notice without tag",
	})
	want := []ai.Message{
		{Role: "assistant", Content: "Hello there"},
		{Role: "user", Content: "hi"},
		{Role: "user", Content: "lowercase tag"},
		{Role: "user", Content: "System notice without tag"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("roleMessages = %#v, want %#v", got, want)
	}
}
