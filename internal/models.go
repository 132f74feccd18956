package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Session is a read-only snapshot of one query's processing attempt,
// as held by the remote service. The client re-fetches whole snapshots
// and never mutates one.
type Session struct {
	AgentInteractions []InteractionRecord `json:"agent_interactions"`
	FinalResult       *FinalResult        `json:"final_result,omitempty"`
}

// InteractionRecord is one step taken by the remote pipeline. Its
// identity within a session is its position in the sequence.
type InteractionRecord struct {
	Agent  string `json:"agent"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// FinalResult marks a session as finished. Presence, not content, is
// the termination signal; an empty ErrorMessage means success.
type FinalResult struct {
	ErrorMessage string `json:"error_message,omitempty"`
}

// QueryRequest is the body sent to POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the body returned by POST /query. Success is carried
// as a first-class flag; error categorization comes from ErrorType.
type QueryResponse struct {
	Success      bool                   `json:"success"`
	Result       string                 `json:"result,omitempty"`
	SQL          string                 `json:"sql,omitempty"`
	Data         []Row                  `json:"data,omitempty"`
	DebugInfo    map[string]interface{} `json:"debug_info,omitempty"`
	ErrorType    string                 `json:"error_type,omitempty"`
	ErrorDetails string                 `json:"error_details,omitempty"`
}

// DatabaseInfo describes the database the service is connected to.
type DatabaseInfo struct {
	Database string `json:"database"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// DBCheckResponse is the body returned by GET /db-check.
type DBCheckResponse struct {
	Success        bool          `json:"success"`
	Message        string        `json:"message"`
	ConnectionTime float64       `json:"connection_time,omitempty"`
	DatabaseInfo   *DatabaseInfo `json:"database_info,omitempty"`
}

// LatestSessionResponse is the body returned by GET /latest-session.
// An empty SessionID means no session exists yet.
type LatestSessionResponse struct {
	SessionID string `json:"session_id,omitempty"`
}

// EntryKind classifies a transcript entry.
type EntryKind string

const (
	EntryUser    EntryKind = "user"
	EntryAgent   EntryKind = "agent"
	EntryError   EntryKind = "error"
	EntrySuccess EntryKind = "success"
)

// TranscriptEntry is one display entry derived from an interaction
// record or a session's final result. Entries are append-only and live
// only in memory.
type TranscriptEntry struct {
	Kind       EntryKind
	Label      string
	Text       string
	ProducedAt time.Time
}

// Row is a single tabular result row. Unlike a plain map it remembers
// the key order of the JSON object it was decoded from, so exported
// tables keep the column order the service emitted.
type Row struct {
	columns []string
	values  map[string]interface{}
}

// NewRow builds a Row with an explicit column order.
func NewRow(columns []string, values map[string]interface{}) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the row's column names in source order.
func (r Row) Columns() []string {
	return r.columns
}

// Value returns the value for a column, or nil when absent.
func (r Row) Value(column string) interface{} {
	return r.values[column]
}

// UnmarshalJSON decodes a JSON object token by token so the column
// order survives the round trip.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode row: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row is not a JSON object")
	}

	r.columns = nil
	r.values = make(map[string]interface{})

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode row key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row key is not a string")
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode row value for %q: %w", key, err)
		}

		if _, seen := r.values[key]; !seen {
			r.columns = append(r.columns, key)
		}
		r.values[key] = value
	}

	return nil
}

// MarshalJSON re-encodes the row preserving column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CellString renders a single cell for tabular output.
func (r Row) CellString(column string) string {
	v := r.values[column]
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
