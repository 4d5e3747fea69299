package intent

import "strings"

// Label identifies one of the application intents an utterance can map to.
type Label string

const (
	LabelJournalEntry      Label = "journal_entry"
	LabelGoalCreate        Label = "goal_create"
	LabelGoalCheckIn       Label = "goal_check_in"
	LabelScheduleCreate    Label = "schedule_create"
	LabelReminderSet       Label = "reminder_set"
	LabelReflectionRequest Label = "reflection_request"
	LabelSettingsChange    Label = "settings_change"
	LabelInsightLink       Label = "insight_link"
)

// FallbackLabel is substituted for predicted or suggested label strings that
// do not resolve to the vocabulary.
const FallbackLabel = LabelJournalEntry

// All is the authoritative label order. The classifier uses it as the
// deterministic tie-break order, so it must stay stable.
var All = []Label{
	LabelJournalEntry,
	LabelGoalCreate,
	LabelGoalCheckIn,
	LabelScheduleCreate,
	LabelReminderSet,
	LabelReflectionRequest,
	LabelSettingsChange,
	LabelInsightLink,
}

// Definition describes a single intent and which downstream feature owns it.
type Definition struct {
	ID        Label  `json:"id"`
	Display   string `json:"display"`
	Subsystem string `json:"subsystem"`
	EntryType string `json:"entryType,omitempty"`
}

var definitions = map[Label]Definition{
	LabelJournalEntry:      {ID: LabelJournalEntry, Display: "Journal Entry", Subsystem: "entries", EntryType: "journal"},
	LabelGoalCreate:        {ID: LabelGoalCreate, Display: "Goal Create", Subsystem: "goals", EntryType: "goal"},
	LabelGoalCheckIn:       {ID: LabelGoalCheckIn, Display: "Goal Check In", Subsystem: "goals", EntryType: "goal"},
	LabelScheduleCreate:    {ID: LabelScheduleCreate, Display: "Schedule Create", Subsystem: "schedules", EntryType: "schedule"},
	LabelReminderSet:       {ID: LabelReminderSet, Display: "Reminder Set", Subsystem: "schedules", EntryType: "schedule"},
	LabelReflectionRequest: {ID: LabelReflectionRequest, Display: "Reflection Request", Subsystem: "entries", EntryType: "journal"},
	LabelSettingsChange:    {ID: LabelSettingsChange, Display: "Settings Change", Subsystem: "user_config"},
	LabelInsightLink:       {ID: LabelInsightLink, Display: "Insight Link", Subsystem: "knowledge"},
}

// IsValid reports whether the label is part of the closed vocabulary.
func (l Label) IsValid() bool {
	_, ok := definitions[l]
	return ok
}

// DefinitionFor returns the definition for a label. Unknown labels return a
// zero Definition; callers are expected to stay inside the vocabulary.
func DefinitionFor(l Label) Definition {
	return definitions[l]
}

// Display returns the human-readable name for a label.
func Display(l Label) string {
	return definitions[l].Display
}

// Normalize folds a raw label string into canonical form: lowercased,
// trimmed, internal whitespace collapsed to underscores. The second return is
// false when the result is not in the vocabulary. This is the only boundary
// where unknown label strings are handled.
func Normalize(raw string) (Label, bool) {
	folded := strings.ToLower(strings.TrimSpace(raw))
	l := Label(strings.Join(strings.Fields(folded), "_"))
	return l, l.IsValid()
}

// Resolve normalizes a raw label string, substituting FallbackLabel when it
// does not resolve. Evaluation uses this leniency so upstream label drift
// skews metrics instead of crashing them.
func Resolve(raw string) Label {
	if l, ok := Normalize(raw); ok {
		return l
	}
	return FallbackLabel
}
