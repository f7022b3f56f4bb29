package tagsync

import "zotsync/internal/services/logseq"

// Reconcile returns the references whose keys are absent from the tagged
// set, preserving first-seen order. Total over its inputs: empty input means
// empty output, never an error. The found sequence is assumed deduplicated
// (the extractor guarantees it).
func Reconcile(found []logseq.NoteReference, tagged map[string]struct{}) []logseq.NoteReference {
	if len(found) == 0 {
		return nil
	}
	pending := make([]logseq.NoteReference, 0, len(found))
	for _, ref := range found {
		if _, ok := tagged[ref.Key]; ok {
			continue
		}
		pending = append(pending, ref)
	}
	if len(pending) == 0 {
		return nil
	}
	return pending
}
