package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Assessment kinds.
const (
	AssessmentEligibility = "eligibility"
	AssessmentResilience  = "resilience"
)

// Assessment is one archived scoring report, written asynchronously when a
// flow completes.
type Assessment struct {
	ID        uuid.UUID       `json:"id"`
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	Score     int             `json:"score"`
	Risk      RiskCategory    `json:"risk"`
	Verdict   string          `json:"verdict,omitempty"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
