// Package tagsync implements the reconciliation core: diffing the item keys
// referenced from a Logseq graph against the Zotero items already carrying
// the marker tag, then applying the tag to the difference one item at a
// time.
//
// The pipeline is a single linear pass with three terminal shapes: all
// attempts succeeded, some attempts failed (summarized, exit non-zero), or a
// hard failure before any mutation (extraction or tagged-set fetch). All
// state is recomputed from scratch on every run; the marker tag in the
// remote library is the only thing that persists.
package tagsync
