// Package zotero is a narrow client for the Zotero Web API v3: paged
// listing of items by tag, single-item fetch, and version-guarded tag
// updates. Listing retries transient failures up to the configured bound and
// fails closed rather than returning a partial result.
package zotero
