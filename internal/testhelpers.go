package internal

import "encoding/json"

// CreateTestSession creates a session snapshot with the given records
// and optional final result.
func CreateTestSession(records []InteractionRecord, final *FinalResult) *Session {
	return &Session{
		AgentInteractions: records,
		FinalResult:       final,
	}
}

// CreateTestRows decodes a JSON array literal into result rows. Panics
// on malformed input; for test fixtures only.
func CreateTestRows(jsonArray string) []Row {
	var rows []Row
	if err := json.Unmarshal([]byte(jsonArray), &rows); err != nil {
		panic("bad test row fixture: " + err.Error())
	}
	return rows
}
