package persistence

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRejectsOtherVersions(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "version 1",
			data: `{"folders":[],"notes":[],"trash":{"folders":[],"notes":[]},"version":1}`,
		},
		{
			name: "legacy shape without version",
			data: `{"notes":[{"title":"x","folder":"Work"}],"folders":["Work"]}`,
		},
		{
			name: "future version",
			data: `{"folders":[],"notes":[],"trash":{"folders":[],"notes":[]},"version":3}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrVersionMismatch) {
				t.Errorf("Decode() error = %v, want ErrVersionMismatch", err)
			}
		})
	}
}

func TestDecodeRejectsCorruptData(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "not json",
			data: `{{{`,
		},
		{
			name: "version is a string",
			data: `{"version":"2"}`,
		},
		{
			name: "missing trash",
			data: `{"folders":[],"notes":[],"version":2}`,
		},
		{
			name: "folder without name",
			data: `{"folders":[{"id":"f1"}],"notes":[],"trash":{"folders":[],"notes":[]},"version":2}`,
		},
		{
			name: "bad due date",
			data: `{"folders":[],"notes":[{"id":"n1","dueDate":"next week"}],"trash":{"folders":[],"notes":[]},"version":2}`,
		},
		{
			name: "unknown background type",
			data: `{"folders":[],"notes":[],"trash":{"folders":[],"notes":[]},"backgroundType":"video","version":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Decode() error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestDecodeNormalizesCollections(t *testing.T) {
	data := `{
		"folders":[{"id":"f1","name":"Work","tags":null}],
		"notes":[{"id":"n1","title":"A","content":"<p>a</p>","folderId":"f1","pinned":true,"dueDate":"2024-01-10","createdAt":"2024-01-01T00:00:00Z","date":"2024-01-02T00:00:00Z"}],
		"trash":{"folders":[],"notes":[]},
		"version":2
	}`

	ws, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if ws.Folders[0].Tags == nil {
		t.Error("Decode() should replace null tags with an empty slice")
	}
	if ws.BackgroundType != "color" {
		t.Errorf("BackgroundType = %q, want default color", ws.BackgroundType)
	}
	if ws.Notes[0].DueDate == nil || ws.Notes[0].DueDate.String() != "2024-01-10" {
		t.Errorf("DueDate = %v, want 2024-01-10", ws.Notes[0].DueDate)
	}
	if ws.Notes[0].FolderID == nil || *ws.Notes[0].FolderID != "f1" {
		t.Errorf("FolderID = %v, want f1", ws.Notes[0].FolderID)
	}
}

func TestEncodeWritesNullForMissingReferences(t *testing.T) {
	ws := sampleWorkspace()
	ws.Notes[0].FolderID = nil
	ws.Notes[0].DueDate = nil

	data, err := Encode(ws)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"folderId":null`) || !strings.Contains(s, `"dueDate":null`) {
		t.Errorf("Encode() = %s, want null folderId and dueDate", s)
	}
	if !strings.Contains(s, `"version":2`) {
		t.Errorf("Encode() = %s, want version 2", s)
	}
}
