package internal

import "fmt"

// TransportError represents a transport-level failure: a non-200
// response or a network error reaching the query service.
type TransportError struct {
	Op     string // "query", "db-check", "latest-session", "session"
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error: %s returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("transport error: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// QueryError represents an application-level failure reported by the
// service with success=false. Type categorizes it for hint selection.
type QueryError struct {
	Type    string
	Details string
}

func (e *QueryError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("query failed [%s]: %s", errorTypeOrUnknown(e.Type), e.Details)
	}
	return fmt.Sprintf("query failed [%s]", errorTypeOrUnknown(e.Type))
}

// Hint returns the remediation hint for this failure's category.
func (e *QueryError) Hint() string {
	return HintForErrorType(e.Type)
}

// HistoryError represents errors accessing the local history store.
type HistoryError struct {
	Op  string // "open", "record", "list"
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("history error: %s: %v", e.Op, e.Err)
}

func (e *HistoryError) Unwrap() error {
	return e.Err
}

// ExportError represents errors producing a tabular export artifact.
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// TransportHint is the generic remediation hint for transport failures.
const TransportHint = "The query service could not be reached. Check that the server is running and the --server address is correct."

var errorTypeHints = map[string]string{
	"database_connection": "The service could not reach its database. Verify the database server is up and the connection settings are valid.",
	"sql_generation":      "The service could not produce valid SQL for this question. Try rephrasing it with explicit table or column names.",
	"timeout":             "The query took too long to process. Try a narrower question or run it again later.",
	"validation":          "The generated SQL failed validation. Rephrase the question or simplify the requested aggregation.",
	"processing":          "The service hit an internal error while processing the question. Try again; if it persists, check the server logs.",
	"unknown":             "An unexpected error occurred. Check the server logs for details.",
}

// HintForErrorType maps an application error category to a fixed
// human-readable remediation hint. Unrecognized categories fall back to
// the unknown hint.
func HintForErrorType(errorType string) string {
	if hint, ok := errorTypeHints[errorType]; ok {
		return hint
	}
	return errorTypeHints["unknown"]
}

func errorTypeOrUnknown(errorType string) string {
	if _, ok := errorTypeHints[errorType]; ok {
		return errorType
	}
	return "unknown"
}
