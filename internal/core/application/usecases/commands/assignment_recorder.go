package commands

import "time"

// AssignOutcome labels the result of one assignment attempt.
type AssignOutcome string

const (
	OutcomeAssigned        AssignOutcome = "assigned"
	OutcomeAlreadyAssigned AssignOutcome = "already_assigned"
	OutcomeNoDriver        AssignOutcome = "no_driver"
	OutcomeFailed          AssignOutcome = "failed"
)

// AssignmentRecorder observes every assignment attempt.
type AssignmentRecorder interface {
	ObserveAssignment(outcome AssignOutcome, elapsed time.Duration)
}

// NopAssignmentRecorder discards observations.
type NopAssignmentRecorder struct{}

func (NopAssignmentRecorder) ObserveAssignment(AssignOutcome, time.Duration) {}
