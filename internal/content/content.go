// Package content orchestrates the story content pipeline:
// fetch the linked article, strip boilerplate, and render to the requested
// output format. Every failure is folded into the returned Result; nothing
// escapes this boundary as a Go error or panic.
package content

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hnmcp/hnmcp/internal/convert"
	"github.com/hnmcp/hnmcp/internal/extract"
	"github.com/hnmcp/hnmcp/internal/fetch"
	"github.com/hnmcp/hnmcp/internal/hn"
)

// Format selects the rendering of HTML article bodies. FormatMarkdown
// converts the extracted fragment to markdown; anything else passes the
// extracted HTML through unconverted.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Result is the terminal output of the pipeline. ContentType "error" implies
// Content is empty and Error is set. A story without an outbound URL yields
// its inline text with ContentType "text" and an explanatory Error note.
type Result struct {
	StoryID     int    `json:"story_id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Score       int    `json:"score,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Service wires the pipeline's collaborators. All fields are required.
type Service struct {
	HN        *hn.Client
	Fetcher   *fetch.Client
	Converter *convert.Converter
	Logger    zerolog.Logger
}

// StoryContent resolves the story, fetches its linked article, and renders
// it in the requested format. Each invocation repeats the full pipeline; no
// partial results are reused between calls.
func (s *Service) StoryContent(ctx context.Context, id int, format Format) (res Result) {
	res = Result{StoryID: id, ContentType: string(fetch.KindError)}

	// The pipeline boundary: any panic below becomes an error Result that
	// keeps whatever metadata was already filled in.
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error().Int("story_id", id).Interface("panic", r).Msg("content pipeline panic")
			res.Content = ""
			res.ContentType = string(fetch.KindError)
			res.Error = fmt.Sprintf("internal error: %v", r)
		}
	}()

	story, err := s.HN.Item(ctx, id)
	if err != nil {
		res.Error = fmt.Sprintf("story %d not found: %v", id, err)
		return res
	}

	res.Title = story.Title
	res.URL = story.URL
	res.By = story.By
	res.Time = story.Time
	res.Score = story.Score
	res.Descendants = story.Descendants

	if story.URL == "" {
		// Ask HN and similar stories carry their text inline; no fetch.
		res.Content = story.Text
		res.ContentType = string(fetch.KindText)
		res.Error = "story has no URL"
		return res
	}

	fetched := s.Fetcher.Get(ctx, story.URL)
	res.URL = fetched.URL

	switch fetched.Kind {
	case fetch.KindError:
		res.ContentType = string(fetch.KindError)
		res.Error = fetched.Err
		return res
	case fetch.KindHTML:
		fragment := extract.Article(fetched.Body)
		if format == FormatMarkdown {
			markdown, err := s.Converter.ToMarkdown(fragment)
			if err != nil {
				s.Logger.Warn().Err(err).Str("url", story.URL).Msg("markdown conversion failed")
				res.Content = ""
				res.ContentType = string(fetch.KindError)
				res.Error = fmt.Sprintf("markdown conversion failed: %v", err)
				return res
			}
			res.Content = markdown
			res.ContentType = string(FormatMarkdown)
			return res
		}
		res.Content = fragment
		res.ContentType = string(fetch.KindHTML)
		return res
	default:
		// json and plain text pass through verbatim.
		res.Content = fetched.Body
		res.ContentType = string(fetched.Kind)
		return res
	}
}
