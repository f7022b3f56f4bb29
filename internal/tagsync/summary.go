package tagsync

// TagResult is the per-item outcome of one tagging attempt.
type TagResult struct {
	Key       string
	Title     string
	Succeeded bool
	Err       error
}

// RunSummary aggregates one reconciliation run. Results preserves the
// attempt order, which follows the first-seen order of the note graph.
type RunSummary struct {
	TotalFound    int
	AlreadyTagged int
	Attempted     int
	Succeeded     int
	Failed        int
	DryRun        bool
	Results       []TagResult
}

// Ok reports whether the run should exit successfully: every attempted item
// succeeded, or nothing needed tagging.
func (s *RunSummary) Ok() bool {
	return s != nil && s.Failed == 0
}

// FailedResults returns the results for items whose update did not land.
func (s *RunSummary) FailedResults() []TagResult {
	if s == nil {
		return nil
	}
	var failed []TagResult
	for _, result := range s.Results {
		if !result.Succeeded {
			failed = append(failed, result)
		}
	}
	return failed
}
