// Package search implements the title-match and approximate-date story
// lookups. Both are heuristics over the public item listings: title search
// scans a bounded window of the top and new listings, and date search walks
// item ids outward from an estimated index. Neither carries a correctness
// guarantee.
package search

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hnmcp/hnmcp/internal/hn"
)

const (
	// scanWindow bounds how many listing ids a title search inspects.
	scanWindow = 200
	// DefaultTitleLimit is the match count when the caller does not set one.
	DefaultTitleLimit = 5
	// DefaultCommentLimit is the number of top-level comments returned with
	// a story when the caller does not set one.
	DefaultCommentLimit = 10
	// itemsPerDay is a rough estimate of new item ids minted per day, used
	// to guess the id range for a past date.
	itemsPerDay = 20000
)

// Match is a story summary returned by title search.
type Match struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Score       int    `json:"score,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
}

// StoryThread is a story together with its top-level comments.
type StoryThread struct {
	Story    *hn.Item   `json:"story"`
	Comments []*hn.Item `json:"comments"`
}

// TitleResult is the outcome of a find-then-fetch title lookup.
type TitleResult struct {
	Found    bool       `json:"found"`
	Message  string     `json:"message,omitempty"`
	StoryID  int        `json:"story_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Story    *hn.Item   `json:"story,omitempty"`
	Comments []*hn.Item `json:"comments,omitempty"`
}

// Service performs searches against the given client.
type Service struct {
	HN     *hn.Client
	Logger zerolog.Logger
}

// StoriesByTitle returns up to limit stories from the top and new listings
// whose title contains every whitespace-separated query term,
// case-insensitively. Individual item fetch failures are logged and skipped.
func (s *Service) StoriesByTitle(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = DefaultTitleLimit
	}

	topIDs, err := s.HN.Stories(ctx, hn.Top, 500)
	if err != nil {
		return nil, err
	}
	newIDs, err := s.HN.Stories(ctx, hn.New, 500)
	if err != nil {
		return nil, err
	}

	ids := dedup(topIDs, newIDs)
	if len(ids) > scanWindow {
		ids = ids[:scanWindow]
	}

	terms := strings.Fields(strings.ToLower(query))
	matches := make([]Match, 0, limit)
	for _, id := range ids {
		if len(matches) >= limit {
			break
		}
		item, err := s.HN.Item(ctx, id)
		if err != nil {
			s.Logger.Debug().Err(err).Int("id", id).Msg("title search: skipping item")
			continue
		}
		if item.Type != "story" || item.Title == "" {
			continue
		}
		if !matchesAll(strings.ToLower(item.Title), terms) {
			continue
		}
		matches = append(matches, Match{
			ID:          item.ID,
			Title:       item.Title,
			URL:         item.URL,
			Score:       item.Score,
			By:          item.By,
			Time:        item.Time,
			Descendants: item.Descendants,
		})
	}
	return matches, nil
}

// StoryWithComments returns the story and up to commentLimit of its
// top-level comments, in ranked order. Failed comment fetches are logged
// and skipped.
func (s *Service) StoryWithComments(ctx context.Context, id, commentLimit int) (*StoryThread, error) {
	if commentLimit <= 0 {
		commentLimit = DefaultCommentLimit
	}
	story, err := s.HN.Item(ctx, id)
	if err != nil {
		return nil, err
	}

	kids := story.Kids
	if len(kids) > commentLimit {
		kids = kids[:commentLimit]
	}
	comments := make([]*hn.Item, 0, len(kids))
	for _, kid := range kids {
		comment, err := s.HN.Item(ctx, kid)
		if err != nil {
			s.Logger.Debug().Err(err).Int("id", kid).Msg("skipping comment")
			continue
		}
		comments = append(comments, comment)
	}
	return &StoryThread{Story: story, Comments: comments}, nil
}

// StoryByTitle finds the best title match and returns it with its comments.
// When no story matches, Found is false and Message explains.
func (s *Service) StoryByTitle(ctx context.Context, title string) (*TitleResult, error) {
	matches, err := s.StoriesByTitle(ctx, title, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return &TitleResult{
			Found:   false,
			Message: "no stories found matching '" + title + "'",
		}, nil
	}
	thread, err := s.StoryWithComments(ctx, matches[0].ID, DefaultCommentLimit)
	if err != nil {
		return nil, err
	}
	return &TitleResult{
		Found:    true,
		StoryID:  matches[0].ID,
		Title:    matches[0].Title,
		Story:    thread.Story,
		Comments: thread.Comments,
	}, nil
}

// StoriesByDate returns up to limit live stories from approximately daysAgo
// days in the past. It estimates a starting item id from the current max id
// and probes ids alternately above and below it, giving up after limit*10
// probes.
func (s *Service) StoriesByDate(ctx context.Context, daysAgo, limit int) ([]*hn.Item, error) {
	if limit <= 0 {
		limit = hn.DefaultLimit
	}
	maxID, err := s.HN.MaxItem(ctx)
	if err != nil {
		return nil, err
	}

	targetID := maxID - daysAgo*itemsPerDay
	if targetID < 1 {
		targetID = 1
	}

	stories := make([]*hn.Item, 0, limit)
	currentID := targetID
	for checked := 0; len(stories) < limit && checked < limit*10; checked++ {
		item, err := s.HN.Item(ctx, currentID)
		if err == nil && item.Type == "story" && !item.Deleted && !item.Dead {
			stories = append(stories, item)
		}
		// Alternate outward from the estimate: +1, -1, +2, -2, ...
		if checked%2 == 0 {
			currentID = targetID + checked/2 + 1
		} else {
			currentID = targetID - checked/2 - 1
		}
	}
	return stories, nil
}

func dedup(lists ...[]int) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, ids := range lists {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

func matchesAll(title string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(title, term) {
			return false
		}
	}
	return len(terms) > 0
}
