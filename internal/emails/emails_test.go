package emails

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "none",
			text: "nothing to see here @ all",
			want: []string{},
		},
		{
			name: "order and duplicates",
			text: "b@example.com, a@example.org; b@example.com\nc.d+tag@sub.example.co.uk",
			want: []string{"b@example.com", "a@example.org", "c.d+tag@sub.example.co.uk"},
		},
		{
			name: "case sensitive",
			text: "Alice@Example.com alice@example.com",
			want: []string{"Alice@Example.com", "alice@example.com"},
		},
		{
			name: "tld too short",
			text: "x@host.c y@host.io",
			want: []string{"y@host.io"},
		},
		{
			name: "surrounded by punctuation",
			text: "<mailto:ops@example.net>.",
			want: []string{"ops@example.net"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Extract(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	addrs := []string{"a@example.com", "b@example.com"}

	got, err := Format(addrs, "lines")
	if err != nil || got != "a@example.com\nb@example.com\n" {
		t.Errorf("Format(lines) = %q, %v", got, err)
	}

	got, err = Format(addrs, "list")
	if err != nil || got != "a@example.com, b@example.com\n" {
		t.Errorf("Format(list) = %q, %v", got, err)
	}

	for _, format := range []string{"lines", "list"} {
		got, err = Format(nil, format)
		if err != nil || got != "" {
			t.Errorf("Format(nil, %s) = %q, %v, want empty", format, got, err)
		}
	}

	got, err = Format(nil, "json")
	if err != nil {
		t.Fatalf("Format(json) error = %v", err)
	}
	var r Result
	if err := json.Unmarshal([]byte(got), &r); err != nil {
		t.Fatalf("invalid JSON %q: %v", got, err)
	}
	if r.Count != 0 || r.Emails == nil {
		t.Errorf("Format(json, nil) = %+v", r)
	}

	if _, err := Format(addrs, "csv"); err == nil {
		t.Error("Format(csv) expected error")
	}
}
