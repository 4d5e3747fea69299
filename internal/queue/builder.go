package queue

import (
	"sort"

	"github.com/andrewibrah/riflett-intent/internal/intent"
)

// Build derives the reviewer queue from flattened audit records.
//
// Duplicate ids resolve last-write-wins over ingestion order, so a later
// audit file silently replaces an earlier correction for the same record.
// TODO(andrewibrah): confirm with the labeling team that replacing earlier
// corrections is intended before the next export cycle.
func Build(records []AuditRecord) []Row {
	byID := make(map[string]AuditRecord, len(records))
	firstSeen := make(map[string]int, len(records))
	order := 0
	for _, record := range records {
		if _, ok := byID[record.ID]; !ok {
			firstSeen[record.ID] = order
			order++
		}
		byID[record.ID] = record
	}

	deduped := make([]AuditRecord, 0, len(byID))
	for _, record := range byID {
		deduped = append(deduped, record)
	}
	sort.Slice(deduped, func(i, j int) bool {
		return firstSeen[deduped[i].ID] < firstSeen[deduped[j].ID]
	})

	// Oldest first is the reviewer queue's ordering contract. The stable
	// sort keeps first-seen order for identical timestamps.
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].CreatedAt.Before(deduped[j].CreatedAt)
	})

	rows := make([]Row, 0, len(deduped))
	for _, record := range deduped {
		rows = append(rows, buildRow(record))
	}
	return rows
}

func buildRow(record AuditRecord) Row {
	row := Row{
		ID:        record.ID,
		CreatedAt: record.CreatedAt,
		EntryID:   record.EntryID,
		Text:      displayText(record),
		Predicted: record.PredictedIntent,
		Status:    StatusPending,
	}

	if suggested, ok := intent.Normalize(record.CorrectIntent); ok {
		row.SuggestedLabel = &suggested
		row.Status = StatusVerified
	}

	return row
}

// displayText prefers the linked entry content over the raw prompt when the
// export joined it in.
func displayText(record AuditRecord) string {
	if record.Entry != nil && record.Entry.Content != "" {
		return record.Entry.Content
	}
	return record.Prompt
}
