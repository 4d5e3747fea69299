package queue

import (
	"time"

	"github.com/andrewibrah/riflett-intent/internal/intent"
)

// AuditRecord is one production misclassification audit as exported by the
// backend. Multiple audit files may contain the same record id.
type AuditRecord struct {
	ID              string       `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	Prompt          string       `json:"prompt"`
	PredictedIntent string       `json:"predicted_intent"`
	CorrectIntent   string       `json:"correct_intent"`
	EntryID         string       `json:"entry_id"`
	UserID          string       `json:"user_id"`
	Entry           *LinkedEntry `json:"entry,omitempty"`
}

// LinkedEntry carries the content of the entry an audit record points at,
// when the export joined it in.
type LinkedEntry struct {
	Content string `json:"content"`
}

// Status tracks where a queue row sits in the review lifecycle.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	// StatusNeedsContext is terminal and only ever set by a human editing
	// the queue file; the builder never emits it.
	StatusNeedsContext Status = "needs_context"
)

// Row is one reviewer-queue entry derived from a deduplicated audit record.
type Row struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	EntryID        string        `json:"entry_id"`
	Text           string        `json:"text"`
	Predicted      string        `json:"predicted"`
	SuggestedLabel *intent.Label `json:"suggestedLabel"`
	Label          string        `json:"label"`
	Status         Status        `json:"status"`
}

// SourceStats summarizes the audit sources feeding the queue.
type SourceStats struct {
	Files       int
	Records     int
	DistinctIDs int
	First       time.Time
	Last        time.Time
	ByPredicted []PredictedCount
}

// PredictedCount is the number of audit records carrying one predicted
// intent, ordered most frequent first.
type PredictedCount struct {
	Predicted string
	Count     int
}
