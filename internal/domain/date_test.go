package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-01-10",
			want:  Date{Year: 2024, Month: time.January, Day: 10},
		},
		{
			name:    "time of day is rejected",
			input:   "2024-01-10T10:00:00Z",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "tomorrow",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateCompare(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 5}
	b := Date{Year: 2024, Month: time.January, Day: 10}
	c := Date{Year: 2023, Month: time.December, Day: 31}

	if !a.Before(b) || a.After(b) {
		t.Errorf("%v should be before %v", a, b)
	}
	if !c.Before(a) {
		t.Errorf("%v should be before %v", c, a)
	}
	if a.Compare(a) != 0 {
		t.Errorf("%v should equal itself", a)
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due *Date `json:"due"`
	}

	d := Date{Year: 2024, Month: time.March, Day: 7}
	data, err := json.Marshal(wrapper{Due: &d})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"due":"2024-03-07"}` {
		t.Errorf("Marshal() = %s", data)
	}

	var back wrapper
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.Due == nil || *back.Due != d {
		t.Errorf("Unmarshal() = %v, want %v", back.Due, d)
	}

	var empty wrapper
	if err := json.Unmarshal([]byte(`{"due":null}`), &empty); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if empty.Due != nil {
		t.Errorf("Unmarshal(null) = %v, want nil", empty.Due)
	}
}

func TestClassifyDue(t *testing.T) {
	today := Date{Year: 2024, Month: time.January, Day: 10}
	yesterday := Date{Year: 2024, Month: time.January, Day: 9}
	tomorrow := Date{Year: 2024, Month: time.January, Day: 11}

	tests := []struct {
		name string
		due  *Date
		want DueState
	}{
		{"no due date", nil, DueNone},
		{"overdue", &yesterday, DueOverdue},
		{"due today", &today, DueToday},
		{"upcoming", &tomorrow, DueUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyDue(tt.due, today); got != tt.want {
				t.Errorf("ClassifyDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2024, time.January, 10, 0, 1, 0, 0, time.UTC)
	if DateOf(late) != DateOf(early) {
		t.Errorf("DateOf() should only keep the calendar day")
	}
}
