package models

// SubmissionOutcome records the result of acting on one selected job:
// either an external scheduler identifier or a failure reason.
type SubmissionOutcome struct {
	Job    JobRecord
	OK     bool
	JobID  string // external identifier, set on success
	Reason string // failure detail, set on failure
}

// SubmissionSummary partitions outcomes into successes and failures.
// Total() always equals the size of the selection that produced it.
type SubmissionSummary struct {
	Successes []SubmissionOutcome
	Failures  []SubmissionOutcome
}

// AddSuccess records a successful outcome for job.
func (s *SubmissionSummary) AddSuccess(job JobRecord, jobID string) {
	s.Successes = append(s.Successes, SubmissionOutcome{Job: job, OK: true, JobID: jobID})
}

// AddFailure records a failed outcome for job with the given reason.
func (s *SubmissionSummary) AddFailure(job JobRecord, reason string) {
	s.Failures = append(s.Failures, SubmissionOutcome{Job: job, Reason: reason})
}

// Total returns the number of jobs accounted for.
func (s *SubmissionSummary) Total() int {
	return len(s.Successes) + len(s.Failures)
}

// AllOK reports whether every outcome succeeded.
func (s *SubmissionSummary) AllOK() bool {
	return len(s.Failures) == 0
}
