package dream

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is the structured interpretation returned by the enrichment
// service. Field names follow the product's pt-BR wire contract.
type Analysis struct {
	Tema           string   `json:"tema"`
	Simbolos       []string `json:"simbolos"`
	Mensagem       string   `json:"mensagem"`
	RitualSugerido string   `json:"ritual_sugerido"`
}

// Dream is a persisted journal entry with its interpretation.
type Dream struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"userId"`
	DreamText string    `json:"dreamText"`
	Analysis  Analysis  `json:"analysis"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config wires runtime settings for the dream domain.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
}
