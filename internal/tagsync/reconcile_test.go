package tagsync_test

import (
	"testing"

	"zotsync/internal/services/logseq"
	"zotsync/internal/tagsync"
)

func refs(keys ...string) []logseq.NoteReference {
	out := make([]logseq.NoteReference, 0, len(keys))
	for _, key := range keys {
		out = append(out, logseq.NoteReference{Key: key})
	}
	return out
}

func set(keys ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		out[key] = struct{}{}
	}
	return out
}

func TestReconcileComputesDifference(t *testing.T) {
	pending := tagsync.Reconcile(refs("AA11", "BB22", "CC33"), set("BB22"))
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending, got %v", pending)
	}
	if pending[0].Key != "AA11" || pending[1].Key != "CC33" {
		t.Fatalf("expected order preserved, got %v", pending)
	}
}

func TestReconcileEmptyFoundSet(t *testing.T) {
	if pending := tagsync.Reconcile(nil, set("AA11")); pending != nil {
		t.Fatalf("expected nil for empty found set, got %v", pending)
	}
}

func TestReconcileEmptyTaggedSet(t *testing.T) {
	pending := tagsync.Reconcile(refs("AA11", "BB22"), nil)
	if len(pending) != 2 {
		t.Fatalf("expected everything pending, got %v", pending)
	}
}

func TestReconcileFullyTagged(t *testing.T) {
	if pending := tagsync.Reconcile(refs("AA11", "BB22"), set("AA11", "BB22")); pending != nil {
		t.Fatalf("expected nothing pending, got %v", pending)
	}
}

func TestReconcileNeverExceedsFoundSize(t *testing.T) {
	found := refs("AA11", "BB22", "CC33", "DD44")
	for _, tagged := range []map[string]struct{}{nil, set("AA11"), set("ZZ99"), set("AA11", "BB22", "CC33", "DD44")} {
		pending := tagsync.Reconcile(found, tagged)
		if len(pending) > len(found) {
			t.Fatalf("pending %d exceeds found %d", len(pending), len(found))
		}
	}
}
