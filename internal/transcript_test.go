package internal

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		agent string
		want  string
	}{
		{"schema_analyst", "Schema Analyst"},
		{"query_planner", "Query Planner"},
		{"sql_developer", "SQL Developer"},
		{"sql_executor", "SQL Executor"},
		{"quality_validator", "Quality Validator"},
		{"SCHEMA_ANALYST", "Schema Analyst"},
		{"Query_Planner", "Query Planner"},
		{"mystery_agent", "mystery_agent"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.agent); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.agent, got, tt.want)
		}
	}
}

func TestSynthesizeEntries(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		rec        InteractionRecord
		wantKinds  []EntryKind
		wantLabels []string
		wantTexts  []string
	}{
		{
			name:       "input only",
			rec:        InteractionRecord{Agent: "schema_analyst", Input: "x", Output: ""},
			wantKinds:  []EntryKind{EntryUser},
			wantLabels: []string{"Input to Schema Analyst"},
			wantTexts:  []string{"x"},
		},
		{
			name:       "output only",
			rec:        InteractionRecord{Agent: "sql_developer", Input: "   ", Output: "SELECT 1"},
			wantKinds:  []EntryKind{EntryAgent},
			wantLabels: []string{"SQL Developer"},
			wantTexts:  []string{"SELECT 1"},
		},
		{
			name:       "input then output",
			rec:        InteractionRecord{Agent: "query_planner", Input: "plan it", Output: "planned"},
			wantKinds:  []EntryKind{EntryUser, EntryAgent},
			wantLabels: []string{"Input to Query Planner", "Query Planner"},
			wantTexts:  []string{"plan it", "planned"},
		},
		{
			name:      "blank record emits nothing",
			rec:       InteractionRecord{Agent: "sql_executor", Input: " \n\t", Output: ""},
			wantKinds: nil,
		},
		{
			name:       "unknown agent passes through",
			rec:        InteractionRecord{Agent: "reranker", Input: "q", Output: ""},
			wantKinds:  []EntryKind{EntryUser},
			wantLabels: []string{"Input to reranker"},
			wantTexts:  []string{"q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := SynthesizeEntries(tt.rec, now)
			if len(entries) != len(tt.wantKinds) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantKinds))
			}
			for i, entry := range entries {
				if entry.Kind != tt.wantKinds[i] {
					t.Errorf("entry %d kind = %q, want %q", i, entry.Kind, tt.wantKinds[i])
				}
				if entry.Label != tt.wantLabels[i] {
					t.Errorf("entry %d label = %q, want %q", i, entry.Label, tt.wantLabels[i])
				}
				if entry.Text != tt.wantTexts[i] {
					t.Errorf("entry %d text = %q, want %q", i, entry.Text, tt.wantTexts[i])
				}
				if !entry.ProducedAt.Equal(now) {
					t.Errorf("entry %d ProducedAt = %v, want %v", i, entry.ProducedAt, now)
				}
			}
		})
	}
}

func TestSynthesizeEntries_Truncation(t *testing.T) {
	now := time.Now()
	longInput := strings.Repeat("a", 600)
	longOutput := strings.Repeat("b", 1500)

	entries := SynthesizeEntries(InteractionRecord{
		Agent:  "schema_analyst",
		Input:  longInput,
		Output: longOutput,
	}, now)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if got := utf8.RuneCountInString(entries[0].Text); got != 500+len(ellipsisMarker) {
		t.Errorf("input entry length = %d, want %d", got, 500+len(ellipsisMarker))
	}
	if !strings.HasSuffix(entries[0].Text, ellipsisMarker) {
		t.Error("truncated input entry missing ellipsis marker")
	}

	if got := utf8.RuneCountInString(entries[1].Text); got != 1000+len(ellipsisMarker) {
		t.Errorf("output entry length = %d, want %d", got, 1000+len(ellipsisMarker))
	}
	if !strings.HasSuffix(entries[1].Text, ellipsisMarker) {
		t.Error("truncated output entry missing ellipsis marker")
	}
}

func TestSynthesizeEntries_TruncationCountsRunes(t *testing.T) {
	now := time.Now()
	input := strings.Repeat("한", 501)

	entries := SynthesizeEntries(InteractionRecord{Agent: "schema_analyst", Input: input}, now)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if got := utf8.RuneCountInString(entries[0].Text); got != 500+len(ellipsisMarker) {
		t.Errorf("rune count = %d, want %d", got, 500+len(ellipsisMarker))
	}
}

func TestSynthesizeEntries_ExactLimitNotTruncated(t *testing.T) {
	now := time.Now()
	input := strings.Repeat("a", 500)

	entries := SynthesizeEntries(InteractionRecord{Agent: "schema_analyst", Input: input}, now)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Text != input {
		t.Error("text at exactly the limit should not be truncated")
	}
}

func TestTerminalEntry(t *testing.T) {
	now := time.Now()

	success := TerminalEntry(FinalResult{}, now)
	if success.Kind != EntrySuccess {
		t.Errorf("kind = %q, want %q", success.Kind, EntrySuccess)
	}
	if success.Text != CompletionMessage {
		t.Errorf("text = %q, want %q", success.Text, CompletionMessage)
	}

	failure := TerminalEntry(FinalResult{ErrorMessage: "query timed out"}, now)
	if failure.Kind != EntryError {
		t.Errorf("kind = %q, want %q", failure.Kind, EntryError)
	}
	if failure.Text != "query timed out" {
		t.Errorf("text = %q, want %q", failure.Text, "query timed out")
	}
}
