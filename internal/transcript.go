package internal

import (
	"strings"
	"time"
)

const (
	// Truncation limits for synthesized transcript entries, in runes.
	maxInputChars  = 500
	maxOutputChars = 1000

	ellipsisMarker = "..."

	// CompletionMessage is the terminal entry text for a session that
	// finished without an error.
	CompletionMessage = "Query processing completed."
)

// Pacing delays applied by the scheduler after each synthesized entry,
// to give the transcript the feel of live generation.
const (
	InputEntryDelay  = 300 * time.Millisecond
	OutputEntryDelay = 600 * time.Millisecond
)

// agentDisplayNames maps pipeline stage identifiers to human-readable
// labels. Lookup is case-insensitive.
var agentDisplayNames = map[string]string{
	"schema_analyst":    "Schema Analyst",
	"query_planner":     "Query Planner",
	"sql_developer":     "SQL Developer",
	"sql_executor":      "SQL Executor",
	"quality_validator": "Quality Validator",
}

// DisplayName returns the human-readable label for an agent identifier.
// Unknown identifiers pass through unchanged.
func DisplayName(agent string) string {
	if name, ok := agentDisplayNames[strings.ToLower(agent)]; ok {
		return name
	}
	return agent
}

// SynthesizeEntries converts one interaction record into zero, one, or
// two transcript entries: an input entry when the record carries a
// non-blank input, then an output entry when it carries a non-blank
// output. Pure; pacing is the caller's concern.
func SynthesizeEntries(rec InteractionRecord, now time.Time) []TranscriptEntry {
	var entries []TranscriptEntry

	if input := strings.TrimSpace(rec.Input); input != "" {
		entries = append(entries, TranscriptEntry{
			Kind:       EntryUser,
			Label:      "Input to " + DisplayName(rec.Agent),
			Text:       truncate(input, maxInputChars),
			ProducedAt: now,
		})
	}

	if output := strings.TrimSpace(rec.Output); output != "" {
		entries = append(entries, TranscriptEntry{
			Kind:       EntryAgent,
			Label:      DisplayName(rec.Agent),
			Text:       truncate(output, maxOutputChars),
			ProducedAt: now,
		})
	}

	return entries
}

// TerminalEntry builds the single entry appended when a session
// concludes: an error entry carrying the final error message, or a
// success entry with the fixed completion message.
func TerminalEntry(final FinalResult, now time.Time) TranscriptEntry {
	if final.ErrorMessage != "" {
		return TranscriptEntry{
			Kind:       EntryError,
			Label:      "Error",
			Text:       final.ErrorMessage,
			ProducedAt: now,
		}
	}
	return TranscriptEntry{
		Kind:       EntrySuccess,
		Label:      "Completed",
		Text:       CompletionMessage,
		ProducedAt: now,
	}
}

// truncate limits text to max runes, appending the ellipsis marker when
// anything was cut.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + ellipsisMarker
}
