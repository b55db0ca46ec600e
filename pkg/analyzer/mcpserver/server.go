// Package mcpserver exposes the analyzer's operations as Model Context
// Protocol tools, over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/onrampdev/onramp/pkg/analyzer"
)

// serverName identifies this MCP server to clients.
const serverName = "github-analyzer"

// Server is an MCP server backed by a repository analyzer.
type Server struct {
	mcp      *mcp.Server
	analyzer *analyzer.Analyzer
	logger   *zap.Logger
}

// repoArgs identifies a single repository.
type repoArgs struct {
	Owner string `json:"owner" jsonschema:"Repository owner (username or organization)"`
	Repo  string `json:"repo" jsonschema:"Repository name"`
}

// compareArgs identifies a set of repositories to compare.
type compareArgs struct {
	Repos string `json:"repos" jsonschema:"Comma-separated list of repositories in format 'owner/repo' (e.g. 'microsoft/vscode,facebook/react')"`
}

// New creates the MCP server and registers the analysis tools.
func New(a *analyzer.Analyzer, version string, logger *zap.Logger) *Server {
	s := &Server{
		mcp:      mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil),
		analyzer: a,
		logger:   logger,
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_repository",
		Description: "Analyze a GitHub repository for structure, complexity, and beginner-friendliness.",
	}, s.analyzeRepository)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_beginner_resources",
		Description: "Extract beginner-friendly resources and documentation from a repository.",
	}, s.beginnerResources)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "suggest_good_first_issues",
		Description: "Find and suggest good first issues for beginners in a repository.",
	}, s.goodFirstIssues)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "compare_repositories",
		Description: "Compare multiple repositories for beginner-friendliness and features.",
	}, s.compareRepositories)

	return s
}

// Run serves MCP over stdio until the context is cancelled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio", zap.String("server", serverName))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns a streamable-HTTP handler for mounting in an HTTP server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

func (s *Server) analyzeRepository(ctx context.Context, req *mcp.CallToolRequest, args repoArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug("tool call", zap.String("tool", "analyze_repository"),
		zap.String("owner", args.Owner), zap.String("repo", args.Repo))

	report, err := s.analyzer.AnalyzeRepository(ctx, args.Owner, args.Repo)
	if err != nil {
		return nil, nil, err
	}
	return textResult(report), nil, nil
}

func (s *Server) beginnerResources(ctx context.Context, req *mcp.CallToolRequest, args repoArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug("tool call", zap.String("tool", "get_beginner_resources"),
		zap.String("owner", args.Owner), zap.String("repo", args.Repo))

	report, err := s.analyzer.BeginnerResources(ctx, args.Owner, args.Repo)
	if err != nil {
		return nil, nil, err
	}
	return textResult(report), nil, nil
}

func (s *Server) goodFirstIssues(ctx context.Context, req *mcp.CallToolRequest, args repoArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug("tool call", zap.String("tool", "suggest_good_first_issues"),
		zap.String("owner", args.Owner), zap.String("repo", args.Repo))

	report, err := s.analyzer.GoodFirstIssues(ctx, args.Owner, args.Repo)
	if err != nil {
		return nil, nil, err
	}
	return textResult(report), nil, nil
}

func (s *Server) compareRepositories(ctx context.Context, req *mcp.CallToolRequest, args compareArgs) (*mcp.CallToolResult, any, error) {
	s.logger.Debug("tool call", zap.String("tool", "compare_repositories"),
		zap.String("repos", args.Repos))

	report, err := s.analyzer.CompareRepositories(ctx, args.Repos)
	if err != nil {
		return nil, nil, err
	}
	return textResult(report), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
