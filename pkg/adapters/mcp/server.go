package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Engine is the part of markov.Engine exposed to agents.
type Engine interface {
	Models(ctx context.Context) ([]string, error)
	LoadModels(ctx context.Context, names ...string) ([]*domain.Model, error)
	Classify(ctx context.Context, models []*domain.Model, corpus *domain.Corpus) ([]domain.Selection, error)
	Score(model *domain.Model, seq domain.Sequence) (markov.Score, error)
}

var _ Engine = (*markov.Engine)(nil)

// ClassifyArgs are the arguments of classify_sequence.
type ClassifyArgs struct {
	Sequence string `json:"sequence"`
	Models   string `json:"models,omitempty"`
}

// ClassifyResult is the structured output of classify_sequence.
type ClassifyResult struct {
	Selection domain.Selection `json:"selection" jsonschema_description:"The model with the highest Viterbi probability"`
	Scores    []markov.Score   `json:"scores" jsonschema_description:"Per-model scores, in candidate order"`
}

// ScoreArgs are the arguments of score_sequence.
type ScoreArgs struct {
	Model    string `json:"model"`
	Sequence string `json:"sequence"`
}

// Server wraps the markov Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("markov-mcp", strings.TrimSpace(markov.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP protocol over SSE until ctx is canceled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_models",
		mcp.WithDescription("List the names of the stored models."),
	), s.handleListModels)

	classifyTool := mcp.NewTool("classify_sequence",
		mcp.WithDescription("Pick the model most likely to have produced a symbol sequence (Viterbi)."),
		mcp.WithString("sequence", mcp.Required(), mcp.Description("Observation sequence, one character per symbol, e.g. ACCDB")),
		mcp.WithString("models", mcp.Description("Comma-separated candidate models in priority order (optional, default all)")),
		mcp.WithOutputSchema[ClassifyResult](),
	)
	s.mcpServer.AddTool(classifyTool, mcp.NewStructuredToolHandler(s.handleClassify))

	scoreTool := mcp.NewTool("score_sequence",
		mcp.WithDescription("Score a symbol sequence against one model: Viterbi path probability and forward likelihood."),
		mcp.WithString("model", mcp.Required(), mcp.Description("Model name")),
		mcp.WithString("sequence", mcp.Required(), mcp.Description("Observation sequence")),
		mcp.WithOutputSchema[markov.Score](),
	)
	s.mcpServer.AddTool(scoreTool, mcp.NewStructuredToolHandler(s.handleScore))
}

func (s *Server) handleListModels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.Models(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleClassify(ctx context.Context, request mcp.CallToolRequest, args ClassifyArgs) (ClassifyResult, error) {
	var names []string
	for _, name := range strings.Split(args.Models, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	models, err := s.engine.LoadModels(ctx, names...)
	if err != nil {
		return ClassifyResult{}, err
	}
	if len(models) == 0 {
		return ClassifyResult{}, domain.ErrModelNotFound
	}

	seq, err := models[0].Alphabet().Encode(args.Sequence)
	if err != nil {
		return ClassifyResult{}, err
	}
	corpus := domain.NewCorpus(0)
	if err := corpus.Append(seq); err != nil {
		return ClassifyResult{}, err
	}

	selections, err := s.engine.Classify(ctx, models, corpus)
	if err != nil {
		return ClassifyResult{}, fmt.Errorf("classify failed: %w", err)
	}

	result := ClassifyResult{Selection: selections[0]}
	for _, m := range models {
		score, err := s.engine.Score(m, seq)
		if err != nil {
			return ClassifyResult{}, err
		}
		if !score.Possible() {
			// -Inf is not valid JSON.
			score.LogLikelihood = -math.MaxFloat64
		}
		result.Scores = append(result.Scores, score)
	}
	return result, nil
}

func (s *Server) handleScore(ctx context.Context, request mcp.CallToolRequest, args ScoreArgs) (markov.Score, error) {
	if args.Model == "" {
		return markov.Score{}, errors.New("model is required")
	}
	models, err := s.engine.LoadModels(ctx, args.Model)
	if err != nil {
		return markov.Score{}, err
	}
	seq, err := models[0].Alphabet().Encode(args.Sequence)
	if err != nil {
		return markov.Score{}, err
	}
	score, err := s.engine.Score(models[0], seq)
	if err != nil {
		return markov.Score{}, err
	}
	if !score.Possible() {
		return markov.Score{}, fmt.Errorf("%s cannot emit %q: %w", score.Model, args.Sequence, domain.ErrArithmeticDegeneracy)
	}
	return score, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("markov://models", "Stored models",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		models, err := s.engine.LoadModels(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load models: %w", err)
		}
		jsonBytes, _ := json.Marshal(models)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "markov://models",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
