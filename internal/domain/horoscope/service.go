package horoscope

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lunara/astro-api/internal/astro"
	"github.com/lunara/astro-api/internal/infra/llm/gateway"
	apperrors "github.com/lunara/astro-api/pkg/errors"
	"github.com/lunara/astro-api/pkg/fence"
)

// Service exposes the transit synthesis capabilities.
type Service interface {
	DailyTransits(ctx context.Context) (DailyTransits, error)
	TransitInsights(ctx context.Context) (TransitInsights, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req gateway.ChatCompletionRequest) (gateway.ChatCompletionResponse, error)
}

type service struct {
	cfg    Config
	client ChatClient
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires up the horoscope domain.
func NewService(cfg Config, client ChatClient, logger *slog.Logger) Service {
	if len(cfg.SlowPlanets) == 0 {
		cfg.SlowPlanets = astro.DefaultSlowPlanetWindows()
	}
	return &service{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "horoscope.service"),
		now:    time.Now,
	}
}

// energyMessages keys the daily energy narrative on the lunar phase.
var energyMessages = map[astro.Phase]string{
	astro.NewMoon:        "🌑 Energia de recomeços e intenções. Perfeito para plantar sementes de novos projetos.",
	astro.WaxingCrescent: "🌒 Energia de crescimento e ação. Hora de expandir o que foi iniciado.",
	astro.FirstQuarter:   "🌓 Energia de desafios e decisões. Momento de superar obstáculos.",
	astro.WaxingGibbous:  "🌔 Energia de refinamento. Ajuste os detalhes antes da manifestação completa.",
	astro.FullMoon:       "🌕 Energia de culminação e celebração. Colha os frutos do que plantou.",
	astro.WaningGibbous:  "🌖 Energia de gratidão e compartilhamento. Divida suas conquistas.",
	astro.LastQuarter:    "🌗 Energia de liberação e perdão. Deixe ir o que não serve mais.",
	astro.WaningCrescent: "🌘 Energia de introspecção e descanso. Prepare-se para o novo ciclo.",
}

var phaseLabels = map[astro.Phase]string{
	astro.NewMoon:        "Nova",
	astro.WaxingCrescent: "Crescente",
	astro.FirstQuarter:   "Quarto Crescente",
	astro.WaxingGibbous:  "Crescente Gibosa",
	astro.FullMoon:       "Cheia",
	astro.WaningGibbous:  "Minguante Gibosa",
	astro.LastQuarter:    "Quarto Minguante",
	astro.WaningCrescent: "Minguante",
}

// DailyTransits computes the purely deterministic daily payload. It never
// fails for a valid clock; no external call is involved.
func (s *service) DailyTransits(_ context.Context) (DailyTransits, error) {
	now := s.now()

	sunToday, moonToday := luminariesAt(now)
	energy := energyMessages[moonToday.Phase]

	advices := []string{
		fmt.Sprintf("Com o Sol em %s, explore sua autenticidade e propósito interior.", sunToday.Sign),
		fmt.Sprintf("A Lua em %s convida você a sintonizar suas emoções com intuição.", moonToday.Sign),
		fmt.Sprintf("Na fase %s, %s", phaseLabels[moonToday.Phase], energyTail(energy)),
	}

	return DailyTransits{
		Date:         now.Format("2006-01-02"),
		Sun:          sunToday,
		Moon:         moonToday,
		DailyEnergy:  energy,
		Advices:      advices,
		CalculatedAt: now,
	}, nil
}

// luminariesAt resolves the Sun and Moon snapshot with their narratives for
// a given moment. Both daily payloads share this view of the sky.
func luminariesAt(now time.Time) (SunToday, MoonToday) {
	sun := astro.SunStateAt(now)
	moon := astro.LunarStateAt(now)
	energy := energyMessages[moon.Phase]

	return SunToday{
			Sign:    sun.Sign,
			Message: fmt.Sprintf("O Sol em %s ilumina temas de transformação e autenticidade.", sun.Sign),
		}, MoonToday{
			Sign:    moon.Sign,
			Phase:   moon.Phase,
			Message: fmt.Sprintf("A Lua %s em %s traz %s", phaseLabels[moon.Phase], moon.Sign, energyHead(energy)),
		}
}

// TransitInsights assembles the transit list and asks the enrichment
// gateway for a message and an advice per transit. Enrichment is best
// effort: a malformed or partial response degrades to generic templates and
// never drops a transit. Only transport-level failures surface as errors.
func (s *service) TransitInsights(ctx context.Context) (TransitInsights, error) {
	now := s.now()

	for _, w := range s.cfg.SlowPlanets {
		if w.Stale(now) {
			s.logger.Warn("slow planet window is stale, refresh the configured positions",
				"planet", w.Planet.String(), "version", w.Version, "validUntil", w.ValidUntil)
		}
	}

	transits := astro.TransitWindows(now, s.cfg.SlowPlanets)

	completion, err := s.client.CreateChatCompletion(ctx, gateway.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		Messages: []gateway.Message{
			{Role: "system", Content: s.buildSystemPrompt()},
			{Role: "user", Content: buildTransitPrompt(now, transits)},
		},
	})
	if err != nil {
		return TransitInsights{}, classifyEnrichmentError(err)
	}

	if !completion.Usage.IsZero() {
		s.logger.Info("transit enrichment completed",
			"promptTokens", completion.Usage.PromptTokens, "totalTokens", completion.Usage.TotalTokens)
	}

	var enriched enrichedTransits
	if len(completion.Choices) > 0 {
		if decodeErr := fence.DecodeJSON(completion.Choices[0].Message.Content, &enriched); decodeErr != nil {
			s.logger.Warn("enrichment response malformed, using generic templates", "error", decodeErr)
			enriched = enrichedTransits{}
		}
	} else {
		s.logger.Warn("enrichment returned no choices, using generic templates")
	}

	sunToday, moonToday := luminariesAt(now)
	return TransitInsights{
		Date:     now,
		Daily:    Daily{Sun: sunToday, Moon: moonToday},
		Transits: mergeEnrichment(transits, enriched.Transits),
	}, nil
}

type enrichedTransits struct {
	Transits []enrichedEntry `json:"transits"`
}

type enrichedEntry struct {
	Planet  string `json:"planet"`
	Message string `json:"message"`
	Advice  string `json:"advice"`
}

// mergeEnrichment substitutes AI text into the computed windows by index.
// Entries the AI skipped get deterministic templates; the output always has
// exactly as many transits as the input.
func mergeEnrichment(transits []astro.TransitWindow, entries []enrichedEntry) []astro.TransitWindow {
	merged := make([]astro.TransitWindow, len(transits))
	for i, transit := range transits {
		var entry enrichedEntry
		if i < len(entries) {
			entry = entries[i]
		}
		transit.Message = strings.TrimSpace(entry.Message)
		if transit.Message == "" {
			transit.Message = fmt.Sprintf("%s em %s traz energias importantes", transit.Planet, transit.Sign)
		}
		transit.Advice = strings.TrimSpace(entry.Advice)
		if transit.Advice == "" {
			transit.Advice = "Esteja atento às oportunidades que surgem"
		}
		merged[i] = transit
	}
	return merged
}

func classifyEnrichmentError(err error) error {
	switch {
	case gateway.IsStatus(err, http.StatusTooManyRequests):
		return apperrors.Wrap("rate_limited", "Limite de requisições excedido. Tente novamente mais tarde.", err)
	case gateway.IsStatus(err, http.StatusPaymentRequired):
		return apperrors.Wrap("quota_exhausted", "Créditos de IA esgotados. Adicione créditos ao workspace.", err)
	default:
		return apperrors.Wrap("enrichment_unavailable", "serviço de enriquecimento indisponível", err)
	}
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "Você é um astrólogo profissional especializado em trânsitos planetários. Gere conselhos práticos e inspiradores baseados nos trânsitos astrais atuais."
	}
	enforcer := ` Para cada trânsito, retorne message (contexto astrológico, 30-40 palavras) e advice (conselho prático e acionável, 40-50 palavras). Responda APENAS com JSON válido no formato: {"transits":[{"planet":"Nome","message":"...","advice":"..."}]}. Nunca retorne texto fora do JSON.`
	return base + enforcer
}

func buildTransitPrompt(now time.Time, transits []astro.TransitWindow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data: %s\n\nTrânsitos planetários atuais:\n", now.Format("2006-01-02"))
	for _, t := range transits {
		sign := t.Sign.String()
		if t.Retrograde {
			sign += " ℞"
		}
		fmt.Fprintf(&b, "- %s (%s) em %s (%s)\n", t.Planet, t.Icon, sign, t.Degree)
	}
	b.WriteString("\nGere conselhos personalizados e práticos para cada trânsito. A pessoa quer orientação para o dia de hoje.")
	return b.String()
}

func energyHead(energy string) string {
	head, _, _ := strings.Cut(energy, ".")
	head = strings.TrimSpace(trimEmoji(head))
	if head == "" {
		return "energias de renovação."
	}
	return strings.ToLower(head[:1]) + head[1:] + "."
}

func energyTail(energy string) string {
	_, tail, found := strings.Cut(energy, ".")
	tail = strings.TrimSpace(tail)
	if !found || tail == "" {
		return "conecte-se com o momento presente."
	}
	return strings.ToLower(tail[:1]) + tail[1:]
}

func trimEmoji(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		return r > 0x2000 || r == ' '
	})
}
