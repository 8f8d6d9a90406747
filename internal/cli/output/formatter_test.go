package output

import (
	"bytes"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"raw", FormatRaw, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("json: wrong formatter type")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("yaml: wrong formatter type")
	}
	if _, ok := NewFormatter(FormatTable).(*TableFormatter); !ok {
		t.Error("table: wrong formatter type")
	}
	if _, ok := NewFormatter("unknown").(*RawFormatter); !ok {
		t.Error("unknown format should default to raw")
	}
}

type sample struct {
	Command string `json:"command" yaml:"command"`
	Value   string `json:"value" yaml:"value"`
}

func (s sample) String() string { return s.Value }

func TestFormatters(t *testing.T) {
	data := sample{Command: "GET", Value: "bar"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatRaw, "bar\n"},
		{FormatJSON, "{\n  \"command\": \"GET\",\n  \"value\": \"bar\"\n}\n"},
		{FormatYAML, "command: GET\nvalue: bar\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(tt.format).Format(&buf, data); err != nil {
				t.Fatalf("Format error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRawFormatter_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := (&RawFormatter{}).Format(&buf, nil); err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
