package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCaseStatus(t *testing.T) {
	for _, status := range []string{"Open", "Pending", "In Progress", "Resolved", "Closed"} {
		assert.True(t, ValidCaseStatus(status), status)
	}
	for _, status := range []string{"", "open", "Done", "IN PROGRESS", "Rejected"} {
		assert.False(t, ValidCaseStatus(status), status)
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(CasePending, CaseInProgress))
	assert.True(t, CanTransition(CasePending, CaseResolved))
	assert.True(t, CanTransition(CaseInProgress, CasePending))
	assert.True(t, CanTransition(CaseResolved, CaseInProgress))
	assert.True(t, CanTransition(CaseOpen, CaseClosed))

	// Re-applying the current status is a no-op, not a violation.
	assert.True(t, CanTransition(CaseClosed, CaseClosed))
	assert.True(t, CanTransition(CasePending, CasePending))

	// Closed is terminal and reopening a resolved case skips review.
	assert.False(t, CanTransition(CaseClosed, CaseOpen))
	assert.False(t, CanTransition(CaseClosed, CaseInProgress))
	assert.False(t, CanTransition(CaseResolved, CasePending))
	assert.False(t, CanTransition(CaseResolved, CaseOpen))
	assert.False(t, CanTransition(CasePending, CaseOpen))
}
