// Package services defines the error taxonomy shared by the external
// collaborators (Logseq CLI, Zotero Web API) and the sync pipeline.
//
// Errors fall into two propagation classes: hard failures (extraction,
// tagged-set fetch, configuration, credentials) abort a run before any remote
// mutation, while per-item failures (version conflict, update errors) are
// folded into the run summary without stopping the batch. Classification is
// by errors.Is against the exported sentinels.
package services
