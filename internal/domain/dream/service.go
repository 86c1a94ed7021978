// Package dream interprets dream journal entries through the enrichment
// service. Unlike the passive daily insights, this is a user-initiated
// action with explicit error states and retry semantics.
package dream

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lunara/astro-api/internal/infra/llm/gateway"
	apperrors "github.com/lunara/astro-api/pkg/errors"
	"github.com/lunara/astro-api/pkg/fence"
)

// Service exposes dream interpretation workflows.
type Service interface {
	Analyze(ctx context.Context, userID int64, dreamText string) (Dream, error)
	List(ctx context.Context, userID int64, limit int) ([]Dream, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req gateway.ChatCompletionRequest) (gateway.ChatCompletionResponse, error)
}

type service struct {
	cfg    Config
	client ChatClient
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the dream interpretation domain.
func NewService(cfg Config, client ChatClient, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		client: client,
		repo:   repo,
		logger: logger.With("component", "dream.service"),
		now:    time.Now,
	}
}

const systemPromptEnforcer = ` Analise o sonho fornecido e retorne APENAS um JSON válido (sem markdown, sem texto adicional) com esta estrutura exata:
{
  "tema": "tema principal do sonho em 2-3 palavras",
  "simbolos": ["símbolo1", "símbolo2", "símbolo3"],
  "mensagem": "interpretação profunda e empática em 2-3 frases, focando no significado emocional e espiritual",
  "ritual_sugerido": "sugestão prática e simples de ritual ou reflexão"
}`

// Analyze interprets dreamText and persists the resulting entry.
func (s *service) Analyze(ctx context.Context, userID int64, dreamText string) (Dream, error) {
	text := strings.TrimSpace(dreamText)
	if text == "" {
		return Dream{}, apperrors.Wrap("invalid_input", "Texto do sonho é obrigatório", nil)
	}

	completion, err := s.client.CreateChatCompletion(ctx, gateway.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []gateway.Message{
			{Role: "system", Content: s.buildSystemPrompt()},
			{Role: "user", Content: "Interprete este sonho: " + text},
		},
	})
	if err != nil {
		return Dream{}, classifyEnrichmentError(err)
	}
	if len(completion.Choices) == 0 {
		return Dream{}, apperrors.Wrap("enrichment_error", "Resposta vazia da IA", nil)
	}

	var analysis Analysis
	if err := fence.DecodeJSON(completion.Choices[0].Message.Content, &analysis); err != nil {
		return Dream{}, apperrors.Wrap("enrichment_error", "Formato de resposta inválido da IA", err)
	}

	entry := Dream{
		ID:        uuid.New(),
		UserID:    userID,
		DreamText: text,
		Analysis:  analysis,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		return Dream{}, apperrors.Wrap("storage_error", "Erro ao salvar sonho", err)
	}

	s.logger.Info("dream analyzed", "userId", userID, "tema", analysis.Tema)
	return entry, nil
}

// List returns the user's most recent dreams.
func (s *service) List(ctx context.Context, userID int64, limit int) ([]Dream, error) {
	if limit <= 0 {
		limit = 20
	}
	dreams, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap("storage_error", "falha ao listar sonhos", err)
	}
	return dreams, nil
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "Você é a IA Onírica, uma intérprete de sonhos sábia e empática."
	}
	return base + systemPromptEnforcer
}

func classifyEnrichmentError(err error) error {
	switch {
	case gateway.IsStatus(err, http.StatusTooManyRequests):
		return apperrors.Wrap("rate_limited", "Limite de requisições atingido. Tente novamente em alguns minutos.", err)
	case gateway.IsStatus(err, http.StatusPaymentRequired):
		return apperrors.Wrap("quota_exhausted", "Créditos de IA esgotados. Por favor, adicione créditos ao workspace.", err)
	default:
		return apperrors.Wrap("enrichment_error", "Erro ao interpretar sonho", err)
	}
}
