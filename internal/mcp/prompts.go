package mcp

// Prompt templates. Each returns a single user message instructing the model
// what to do with the Hacker News data it can reach through the tools.

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerPrompts(srv *mcpsrv.MCPServer) {
	srv.AddPrompt(mcplib.NewPrompt("hn_story_summary_by_id",
		mcplib.WithPromptDescription("Summarize a Hacker News story and its discussion by story id."),
		mcplib.WithArgument("story_id",
			mcplib.ArgumentDescription("The id of the story to summarize."),
			mcplib.RequiredArgument(),
		),
	), promptHandler("story_id", func(storyID string) string {
		return fmt.Sprintf("Please provide a concise summary of Hacker News story %s and its key discussion points. Include the main topic, major perspectives from comments, any consensus or disagreements, and interesting insights.", storyID)
	}))

	srv.AddPrompt(mcplib.NewPrompt("hn_story_summary_by_title",
		mcplib.WithPromptDescription("Summarize a Hacker News story and its discussion, located by title keywords."),
		mcplib.WithArgument("title",
			mcplib.ArgumentDescription("Keywords or title to identify the story."),
			mcplib.RequiredArgument(),
		),
	), promptHandler("title", func(title string) string {
		return fmt.Sprintf("Please provide a concise summary of the Hacker News story about '%s' and its key discussion points. Include the main topic, major perspectives from comments, any consensus or disagreements, and interesting insights.", title)
	}))

	srv.AddPrompt(mcplib.NewPrompt("hn_story_summary_detailed_by_id",
		mcplib.WithPromptDescription("Produce a detailed analysis of a Hacker News story and its discussion by story id."),
		mcplib.WithArgument("story_id",
			mcplib.ArgumentDescription("The id of the story to analyze."),
			mcplib.RequiredArgument(),
		),
	), promptHandler("story_id", func(storyID string) string {
		return fmt.Sprintf("Please provide a comprehensive analysis of Hacker News story %s and its discussion. Include a thorough summary of the content, analysis of major themes in comments, notable expert opinions, points of agreement and disagreement, technical details shared, and relevant context. Organize your response with clear sections.", storyID)
	}))

	srv.AddPrompt(mcplib.NewPrompt("hn_story_summary_detailed_by_title",
		mcplib.WithPromptDescription("Produce a detailed analysis of a Hacker News story and its discussion, located by title keywords."),
		mcplib.WithArgument("title",
			mcplib.ArgumentDescription("Keywords or title to identify the story."),
			mcplib.RequiredArgument(),
		),
	), promptHandler("title", func(title string) string {
		return fmt.Sprintf("Please provide a comprehensive analysis of the Hacker News story about '%s' and its discussion. Include a thorough summary of the content, analysis of major themes in comments, notable expert opinions, points of agreement and disagreement, technical details shared, and relevant context. Organize your response with clear sections.", title)
	}))

	srv.AddPrompt(mcplib.NewPrompt("hn_trending_topics",
		mcplib.WithPromptDescription("Identify trending topics across a Hacker News story listing."),
		mcplib.WithArgument("limit",
			mcplib.ArgumentDescription("How many stories to analyze (default 30)."),
		),
		mcplib.WithArgument("story_type",
			mcplib.ArgumentDescription("Listing to analyze: top, new, best, ask, or show (default top)."),
		),
	), s.trendingTopicsPrompt)

	srv.AddPrompt(mcplib.NewPrompt("hn_user_profile_analysis",
		mcplib.WithPromptDescription("Analyze a Hacker News user's activity and interests."),
		mcplib.WithArgument("username",
			mcplib.ArgumentDescription("The username to analyze."),
			mcplib.RequiredArgument(),
		),
	), promptHandler("username", func(username string) string {
		return fmt.Sprintf("Please analyze the Hacker News profile for user '%s'. Summarize their activity and interests based on submissions and comments, identify key topics they engage with, note any expertise areas they demonstrate, and analyze their interaction style and community engagement. Provide a thoughtful analysis while respecting the user's privacy.", username)
	}))
}

// promptHandler adapts a single-argument template function to the prompt
// handler signature.
func promptHandler(arg string, render func(string) string) mcpsrv.PromptHandlerFunc {
	return func(_ context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
		val, ok := req.Params.Arguments[arg]
		if !ok || val == "" {
			return nil, fmt.Errorf("prompt argument %q is required", arg)
		}
		return promptResult(render(val)), nil
	}
}

func (s *Server) trendingTopicsPrompt(_ context.Context, req mcplib.GetPromptRequest) (*mcplib.GetPromptResult, error) {
	limit := "30"
	if v, ok := req.Params.Arguments["limit"]; ok && v != "" {
		limit = v
	}
	listDesc := "top"
	switch req.Params.Arguments["story_type"] {
	case "new":
		listDesc = "newest"
	case "best":
		listDesc = "best"
	case "ask":
		listDesc = "Ask HN"
	case "show":
		listDesc = "Show HN"
	}
	return promptResult(fmt.Sprintf("Please identify 3-5 major trending topics or themes from the %s %s Hacker News stories. For each topic, list the relevant stories and explain why this is trending. Note any significant patterns in the types of stories currently popular.", limit, listDesc)), nil
}

func promptResult(text string) *mcplib.GetPromptResult {
	return mcplib.NewGetPromptResult("", []mcplib.PromptMessage{
		mcplib.NewPromptMessage(mcplib.RoleUser, mcplib.NewTextContent(text)),
	})
}
