// Package clarification implements the request-for-more-information round
// trip between an approver and a requester: text bounds and the append-only
// notes trail.
package clarification

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/site-visits/internal/domain"
)

const (
	// MaxResponseWords bounds a requester's clarification response.
	MaxResponseWords = 500
	// MaxNotesWords bounds the free-form notes a requester writes directly.
	MaxNotesWords = 300
)

// blockPrefix opens every appended response; the timestamp follows it.
const blockPrefix = "[Clarification response "

// WordCount returns the number of whitespace-delimited non-empty tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ValidateRequest checks an approver's clarification note. It must say
// something; its length is not bounded.
func ValidateRequest(note string) error {
	if strings.TrimSpace(note) == "" {
		return domain.NewValidationError("note", "is required")
	}
	return nil
}

// ValidateResponse checks a requester's clarification response.
func ValidateResponse(response string) error {
	n := WordCount(response)
	if n == 0 {
		return domain.NewValidationError("response", "is required")
	}
	if n > MaxResponseWords {
		return domain.NewValidationError("response",
			fmt.Sprintf("must not exceed %d words (got %d)", MaxResponseWords, n))
	}
	return nil
}

// ValidateNotes checks the optional notes attached at creation or edit time.
func ValidateNotes(notes string) error {
	if n := WordCount(notes); n > MaxNotesWords {
		return domain.NewValidationError("notes",
			fmt.Sprintf("must not exceed %d words (got %d)", MaxNotesWords, n))
	}
	return nil
}

// AppendResponse returns notes with response appended as a new timestamped
// block. Existing content is kept byte for byte ahead of the new block.
func AppendResponse(notes, response string, at time.Time) string {
	block := blockPrefix + at.UTC().Format(time.RFC3339) + "]\n" + strings.TrimSpace(response)
	if strings.TrimSpace(notes) == "" {
		return block
	}
	return strings.TrimRight(notes, "\n") + "\n\n" + block
}
