package query

import "strings"

// Scopes. Any other scope value is a folder id.
const (
	ScopeAll   = "all"
	ScopeTrash = "trash"
)

// Tabs.
const (
	TabAll    = "all"
	TabPinned = "pinned"
)

// Query describes what the user is looking at.
type Query struct {
	Scope   string // "all", "trash" or a folder id
	Tab     string // "all" or "pinned"
	Keyword string // lower-cased, trimmed
}

// Parse normalizes raw request values. Empty scope and tab fall back to "all".
//   - Parse("", "", " Atomic ") -> {all, all, "atomic"}
//   - Parse("trash", "pinned", "") -> {trash, pinned, ""}
func Parse(scope, tab, keyword string) Query {
	q := Query{
		Scope:   strings.TrimSpace(scope),
		Tab:     strings.ToLower(strings.TrimSpace(tab)),
		Keyword: strings.ToLower(strings.TrimSpace(keyword)),
	}
	if q.Scope == "" {
		q.Scope = ScopeAll
	}
	if q.Tab != TabPinned {
		q.Tab = TabAll
	}
	return q
}

// InTrash reports whether the query targets the trash view.
func (q Query) InTrash() bool { return q.Scope == ScopeTrash }

// FolderID returns the folder the query is scoped to, if any.
func (q Query) FolderID() (string, bool) {
	if q.Scope == ScopeAll || q.Scope == ScopeTrash || q.Scope == "" {
		return "", false
	}
	return q.Scope, true
}

func (q Query) matches(fields ...string) bool {
	if q.Keyword == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q.Keyword) {
			return true
		}
	}
	return false
}
