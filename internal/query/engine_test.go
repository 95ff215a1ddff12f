package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/MrSnakeDoc/quill/internal/domain"
)

var today = domain.Date{Year: 2024, Month: time.January, Day: 8}

func date(day int) *domain.Date {
	return &domain.Date{Year: 2024, Month: time.January, Day: day}
}

func at(hour int) time.Time {
	return time.Date(2024, time.January, 1, hour, 0, 0, 0, time.UTC)
}

func ref(s string) *string { return &s }

func noteIDs(views []NoteView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func testWorkspace() *domain.Workspace {
	ws := domain.NewWorkspace()
	ws.Folders = []domain.Folder{
		{ID: "f-work", Name: "Work", Tags: []string{"Projects"}},
		{ID: "f-books", Name: "Reading", Tags: []string{"Books", "Habits"}},
	}
	ws.Notes = []domain.Note{
		{ID: "n1", Title: "Project Alpha", Content: "<p>Kickoff <b>agenda</b></p>", FolderID: ref("f-work"), DueDate: date(10), UpdatedAt: at(1)},
		{ID: "n2", Title: "Book Notes: Atomic Habits", Content: "<p>Small wins</p>", FolderID: ref("f-books"), Pinned: true, UpdatedAt: at(2)},
		{ID: "n3", Title: "Groceries", Content: "<ul><li>milk</li></ul>", DueDate: date(5), UpdatedAt: at(3)},
		{ID: "n4", Title: "Ideas", Content: "<p>atomic design system</p>", Pinned: true, UpdatedAt: at(4)},
	}
	ws.Trash.Folders = []domain.Folder{
		{ID: "f-old", Name: "Archive", Tags: []string{}},
	}
	ws.Trash.Notes = []domain.Note{
		{ID: "t1", Title: "Old plan", FolderID: ref("f-old"), Pinned: false, UpdatedAt: at(5)},
		{ID: "t2", Title: "Old pinned", Pinned: true, UpdatedAt: at(6)},
	}
	return ws
}

func TestNotesSortLaw(t *testing.T) {
	ws := domain.NewWorkspace()
	ws.Notes = []domain.Note{
		{ID: "due-10", DueDate: date(10), UpdatedAt: at(1)},
		{ID: "t1", UpdatedAt: at(1)},
		{ID: "due-05", DueDate: date(5), UpdatedAt: at(1)},
		{ID: "t2", UpdatedAt: at(2)},
	}

	got := noteIDs(Notes(ws, Parse("", "", ""), today))
	want := []string{"due-05", "due-10", "t2", "t1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Notes() order = %v, want %v", got, want)
	}
}

func TestNotesSortIsStable(t *testing.T) {
	ws := domain.NewWorkspace()
	ws.Notes = []domain.Note{
		{ID: "a", DueDate: date(5), UpdatedAt: at(1)},
		{ID: "b", DueDate: date(5), UpdatedAt: at(9)},
		{ID: "c", UpdatedAt: at(3)},
		{ID: "d", UpdatedAt: at(3)},
	}

	got := noteIDs(Notes(ws, Parse("", "", ""), today))
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Notes() order = %v, want %v", got, want)
	}
}

func TestNotesFilters(t *testing.T) {
	ws := testWorkspace()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "all notes",
			query: Parse("all", "all", ""),
			want:  []string{"n3", "n1", "n4", "n2"},
		},
		{
			name:  "pinned tab",
			query: Parse("all", "pinned", ""),
			want:  []string{"n4", "n2"},
		},
		{
			name:  "folder scope",
			query: Parse("f-work", "", ""),
			want:  []string{"n1"},
		},
		{
			name:  "folder scope with pinned tab",
			query: Parse("f-work", "pinned", ""),
			want:  []string{},
		},
		{
			name:  "unknown folder",
			query: Parse("f-missing", "", ""),
			want:  []string{},
		},
		{
			name:  "trashed folder is not a live scope",
			query: Parse("f-old", "", ""),
			want:  []string{},
		},
		{
			name:  "trash ignores pinned tab",
			query: Parse("trash", "pinned", ""),
			want:  []string{"t2", "t1"},
		},
		{
			name:  "keyword matches title case-insensitively",
			query: Parse("", "", "ATOMIC"),
			want:  []string{"n4", "n2"},
		},
		{
			name:  "keyword matches stripped content",
			query: Parse("", "", "kickoff agenda"),
			want:  []string{"n1"},
		},
		{
			name:  "keyword does not match markup",
			query: Parse("", "", "<b>"),
			want:  []string{},
		},
		{
			name:  "keyword in trash",
			query: Parse("trash", "", "plan"),
			want:  []string{"t1"},
		},
		{
			name:  "keyword matches folder name",
			query: Parse("all", "", "work"),
			want:  []string{"n1"},
		},
		{
			name:  "keyword matches trashed folder name in trash",
			query: Parse("trash", "", "archive"),
			want:  []string{"t1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := noteIDs(Notes(ws, tt.query, today))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Notes(%+v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestAllNotesNeverIncludesTrash(t *testing.T) {
	ws := testWorkspace()
	for _, v := range Notes(ws, Parse("all", "all", ""), today) {
		if ws.FindTrashedNote(v.ID) >= 0 {
			t.Errorf("trashed note %s visible in all notes", v.ID)
		}
	}
	for _, v := range Notes(ws, Parse("trash", "all", ""), today) {
		if ws.FindNote(v.ID) >= 0 {
			t.Errorf("live note %s visible in trash", v.ID)
		}
	}
}

func TestNoteViewDecoration(t *testing.T) {
	ws := testWorkspace()
	ws.Notes = append(ws.Notes, domain.Note{ID: "n5", Title: "Today", DueDate: date(8), UpdatedAt: at(0)})

	views := map[string]NoteView{}
	for _, v := range Notes(ws, Parse("", "", ""), today) {
		views[v.ID] = v
	}

	tests := []struct {
		id     string
		state  domain.DueState
		folder string
	}{
		{"n1", domain.DueUpcoming, "Work"},
		{"n3", domain.DueOverdue, ""},
		{"n4", domain.DueNone, ""},
		{"n5", domain.DueToday, ""},
		{"n2", domain.DueNone, "Reading"},
	}
	for _, tt := range tests {
		v, ok := views[tt.id]
		if !ok {
			t.Errorf("note %s missing", tt.id)
			continue
		}
		if v.DueState != tt.state {
			t.Errorf("%s DueState = %v, want %v", tt.id, v.DueState, tt.state)
		}
		if v.FolderName != tt.folder {
			t.Errorf("%s FolderName = %q, want %q", tt.id, v.FolderName, tt.folder)
		}
	}
	if got := views["n1"].Preview; got != "Kickoff agenda" {
		t.Errorf("Preview = %q, want %q", got, "Kickoff agenda")
	}

	trashed := Notes(ws, Parse("trash", "", "old plan"), today)
	if len(trashed) != 1 || trashed[0].FolderName != "Archive" {
		t.Errorf("trashed note should resolve its trashed folder name, got %+v", trashed)
	}
}

func TestFolders(t *testing.T) {
	ws := testWorkspace()

	tests := []struct {
		name   string
		query  Query
		want   []string
		counts []int
	}{
		{"live folders", Parse("all", "", ""), []string{"Work", "Reading"}, []int{1, 1}},
		{"match by tag", Parse("all", "", "habits"), []string{"Reading"}, []int{1}},
		{"match by name", Parse("all", "", "wor"), []string{"Work"}, []int{1}},
		{"trash view", Parse("trash", "", ""), []string{"Archive"}, []int{1}},
		{"no match", Parse("all", "", "zzz"), []string{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Folders(ws, tt.query)
			names := make([]string, 0, len(got))
			counts := make([]int, 0, len(got))
			for _, f := range got {
				names = append(names, f.Name)
				counts = append(counts, f.NoteCount)
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("Folders() = %v, want %v", names, tt.want)
			}
			if !reflect.DeepEqual(counts, tt.counts) {
				t.Errorf("Folders() counts = %v, want %v", counts, tt.counts)
			}
		})
	}
}

func TestRunCounts(t *testing.T) {
	got := Run(testWorkspace(), Parse("", "", ""), today).Counts
	want := Counts{Notes: 4, Pinned: 2, Trashed: 2, Folders: 2, TrashedFolders: 1}
	if got != want {
		t.Errorf("Counts = %+v, want %+v", got, want)
	}
}

func TestRunDoesNotModifyWorkspace(t *testing.T) {
	ws := testWorkspace()
	before := ws.Clone()

	res := Run(ws, Parse("", "", ""), today)
	res.Notes[0].Title = "changed"
	*res.Notes[0].DueDate = domain.Date{}

	if !reflect.DeepEqual(ws, before) {
		t.Error("Run() or its result aliased the workspace")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		scope, tab, keyword string
		want                Query
	}{
		{"", "", "", Query{Scope: ScopeAll, Tab: TabAll}},
		{"trash", "PINNED", "  Atomic ", Query{Scope: ScopeTrash, Tab: TabPinned, Keyword: "atomic"}},
		{"f-1", "bogus", "", Query{Scope: "f-1", Tab: TabAll}},
	}
	for _, tt := range tests {
		if got := Parse(tt.scope, tt.tab, tt.keyword); got != tt.want {
			t.Errorf("Parse(%q, %q, %q) = %+v, want %+v", tt.scope, tt.tab, tt.keyword, got, tt.want)
		}
	}
}
