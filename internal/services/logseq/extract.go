package logseq

import (
	"regexp"
	"strings"

	"zotsync/internal/services"
)

// NoteReference pairs a Zotero item key with the title of the first note
// page referencing it. The title is informational only.
type NoteReference struct {
	Key   string
	Title string
}

var (
	// itemURLPattern matches Zotero select URLs embedded in query output.
	// Item keys are short uppercase alphanumeric tokens.
	itemURLPattern = regexp.MustCompile(`zotero://select/library/items/([A-Z0-9]+)`)
	// titlePattern matches pulled :block/title values; used to attach a
	// page title to each URL occurrence.
	titlePattern = regexp.MustCompile(`:block/title\s+"((?:[^"\\]|\\.)*)"`)
)

// ParseReferences extracts the ordered, deduplicated sequence of item
// references from raw query output. Duplicate keys keep their first-seen
// title and position. Blank input is an extraction failure; non-empty input
// with zero matches is a valid empty result.
func ParseReferences(raw string) ([]NoteReference, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, services.Wrap(services.ErrExtraction, "logseq", "parse", "query produced no output", nil)
	}

	urlMatches := itemURLPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(urlMatches) == 0 {
		return nil, nil
	}

	titleMatches := titlePattern.FindAllStringSubmatchIndex(raw, -1)

	seen := make(map[string]struct{}, len(urlMatches))
	refs := make([]NoteReference, 0, len(urlMatches))
	for _, m := range urlMatches {
		key := raw[m[2]:m[3]]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		refs = append(refs, NoteReference{
			Key:   key,
			Title: titleBefore(raw, titleMatches, m[0]),
		})
	}
	return refs, nil
}

// titleBefore returns the closest :block/title value preceding the URL at
// offset, skipping titles that are themselves Zotero URLs (the property pull
// nests the URL inside its own :block/title).
func titleBefore(raw string, titleMatches [][]int, offset int) string {
	for i := len(titleMatches) - 1; i >= 0; i-- {
		m := titleMatches[i]
		if m[0] >= offset {
			continue
		}
		value := unescapeTitle(raw[m[2]:m[3]])
		if strings.HasPrefix(value, "zotero://") {
			continue
		}
		return value
	}
	return ""
}

func unescapeTitle(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	replacer := strings.NewReplacer(`\"`, `"`, `\\`, `\`)
	return replacer.Replace(value)
}
