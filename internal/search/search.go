// README: Best-effort web/place lookup backing the augmentation pass.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
	"googlemaps.github.io/maps"
)

const maxResults = 5

// Service answers free-form lookup queries with a block of text suitable
// for prompt grounding. Primary source is Google Programmable Search; when
// that is unavailable or empty it falls back to a Places text search, since
// most queries from the model name destinations or attractions. Every path
// is best-effort; callers degrade to the primary inference on error.
type Service struct {
	cse      *customsearch.Service
	engineID string
	places   *maps.Client
	log      *zap.Logger
}

// New builds a lookup service from whichever credentials are present.
// It fails only when neither provider can be configured.
func New(ctx context.Context, searchAPIKey, engineID, mapsAPIKey string, log *zap.Logger) (*Service, error) {
	s := &Service{engineID: engineID, log: log}

	if searchAPIKey != "" && engineID != "" {
		cse, err := customsearch.NewService(ctx, option.WithAPIKey(searchAPIKey))
		if err != nil {
			return nil, fmt.Errorf("search: create customsearch client: %w", err)
		}
		s.cse = cse
	}

	if mapsAPIKey != "" {
		client, err := maps.NewClient(maps.WithAPIKey(mapsAPIKey))
		if err != nil {
			return nil, fmt.Errorf("search: create maps client: %w", err)
		}
		s.places = client
	}

	if s.cse == nil && s.places == nil {
		return nil, fmt.Errorf("search: no provider configured")
	}
	return s, nil
}

// Lookup runs the query against the configured providers and returns the
// result text.
func (s *Service) Lookup(ctx context.Context, query string) (string, error) {
	if s.cse != nil {
		text, err := s.webSearch(ctx, query)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			s.log.Warn("web search failed, trying places", zap.String("query", query), zap.Error(err))
		}
	}
	if s.places != nil {
		return s.placeSearch(ctx, query)
	}
	return "", fmt.Errorf("search: no results for %q", query)
}

func (s *Service) webSearch(ctx context.Context, query string) (string, error) {
	resp, err := s.cse.Cse.List().Q(query).Cx(s.engineID).Num(maxResults).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("search: customsearch: %w", err)
	}

	var b strings.Builder
	for _, item := range resp.Items {
		fmt.Fprintf(&b, "%s\n%s\n(%s)\n\n", item.Title, item.Snippet, item.Link)
	}
	return strings.TrimSpace(b.String()), nil
}

func (s *Service) placeSearch(ctx context.Context, query string) (string, error) {
	resp, err := s.places.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("search: places api: %w", err)
	}

	var b strings.Builder
	for i, r := range resp.Results {
		if i >= maxResults {
			break
		}
		fmt.Fprintf(&b, "%s - %s (rating %.1f from %d reviews)\n", r.Name, r.FormattedAddress, r.Rating, r.UserRatingsTotal)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("search: no places found for %q", query)
	}
	return strings.TrimSpace(b.String()), nil
}
