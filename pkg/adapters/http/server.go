package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Engine is the part of markov.Engine the HTTP API needs.
type Engine interface {
	Models(ctx context.Context) ([]string, error)
	LoadModels(ctx context.Context, names ...string) ([]*domain.Model, error)
	Classify(ctx context.Context, models []*domain.Model, corpus *domain.Corpus) ([]domain.Selection, error)
	Score(model *domain.Model, seq domain.Sequence) (markov.Score, error)
}

var _ Engine = (*markov.Engine)(nil)

// Server serves the classification API.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// ClassifyRequest is the body of POST /classify.
type ClassifyRequest struct {
	// Models restricts and orders the candidates; empty means every stored model.
	Models    []string `json:"models,omitempty"`
	Sequences []string `json:"sequences"`
	// Alphabet is the rune mapped to symbol 0, "A" when empty.
	Alphabet string `json:"alphabet,omitempty"`
}

// ClassifyResponse is returned by POST /classify, one result per sequence.
type ClassifyResponse struct {
	Results []domain.Selection `json:"results"`
}

// ScoreRequest is the body of POST /score.
type ScoreRequest struct {
	Model    string `json:"model"`
	Sequence string `json:"sequence"`
	Alphabet string `json:"alphabet,omitempty"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(enableCORS)
	r.Get("/healthz", s.GetHealth)
	r.Get("/models", s.ListModels)
	r.Get("/models/{name}", s.GetModel)
	r.Post("/classify", s.Classify)
	r.Post("/score", s.Score)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": strings.TrimSpace(markov.Version),
	})
}

// ListModels handles GET /models.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Models(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"models": names})
}

// GetModel handles GET /models/{name}.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	models, err := s.Engine.LoadModels(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, models[0])
}

// Classify handles POST /classify.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var body ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("classify: invalid request body", "error", err)
		return
	}

	models, err := s.Engine.LoadModels(r.Context(), body.Models...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(models) == 0 {
		s.writeError(w, domain.ErrModelNotFound)
		return
	}

	alphabet, err := alphabetFor(body.Alphabet, models[0].Symbols)
	if err != nil {
		s.writeError(w, err)
		return
	}
	corpus := domain.NewCorpus(0)
	for i, line := range body.Sequences {
		seq, err := alphabet.Encode(line)
		if err == nil {
			err = corpus.Append(seq)
		}
		if err != nil {
			s.writeError(w, atSequence(err, i))
			return
		}
	}

	results, err := s.Engine.Classify(r.Context(), models, corpus)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ClassifyResponse{Results: results})
}

// Score handles POST /score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	var body ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("score: invalid request body", "error", err)
		return
	}
	if body.Model == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "model is required"})
		return
	}

	models, err := s.Engine.LoadModels(r.Context(), body.Model)
	if err != nil {
		s.writeError(w, err)
		return
	}
	alphabet, err := alphabetFor(body.Alphabet, models[0].Symbols)
	if err != nil {
		s.writeError(w, err)
		return
	}
	seq, err := alphabet.Encode(body.Sequence)
	if err != nil {
		s.writeError(w, err)
		return
	}

	score, err := s.Engine.Score(models[0], seq)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !score.Possible() {
		s.writeError(w, fmt.Errorf("%s cannot emit %q: %w", score.Model, body.Sequence, domain.ErrArithmeticDegeneracy))
		return
	}
	s.writeJSON(w, http.StatusOK, score)
}

func alphabetFor(first string, size int) (domain.Alphabet, error) {
	if first == "" {
		return domain.NewAlphabet(size), nil
	}
	runes := []rune(first)
	if len(runes) != 1 {
		return domain.Alphabet{}, &domain.CorpusError{Reason: "alphabet must be a single rune"}
	}
	return domain.Alphabet{First: runes[0], Size: size}, nil
}

func atSequence(err error, i int) error {
	var ce *domain.CorpusError
	if errors.As(err, &ce) {
		return &domain.CorpusError{Line: i + 1, Reason: ce.Reason}
	}
	return err
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedCorpus),
		errors.Is(err, domain.ErrMalformedModel),
		errors.Is(err, domain.ErrInvocation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrArithmeticDegeneracy):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}
