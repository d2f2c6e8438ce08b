package entities

import "testing"

func TestParseSummaryType(t *testing.T) {
	tests := []struct {
		in      string
		want    SummaryType
		wantErr bool
	}{
		{"", SummaryConcise, false},
		{"Concise", SummaryConcise, false},
		{"  detailed ", SummaryDetailed, false},
		{"DETAILED", SummaryDetailed, false},
		{"verbose", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSummaryType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSummaryType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSummaryType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSummaryTypes_Order(t *testing.T) {
	types := SummaryTypes()
	if len(types) != 2 || types[0] != SummaryConcise || types[1] != SummaryDetailed {
		t.Errorf("unexpected summary types: %v", types)
	}
}

func TestUpload_Empty(t *testing.T) {
	var nilUpload *Upload
	if !nilUpload.Empty() {
		t.Error("nil upload should be empty")
	}
	if !(&Upload{Name: "a.pdf"}).Empty() {
		t.Error("upload without data should be empty")
	}
	if (&Upload{Name: "a.pdf", Data: []byte("%PDF-")}).Empty() {
		t.Error("upload with data should not be empty")
	}
}

func TestDocument_Characters(t *testing.T) {
	doc := Document{Text: "Hello world"}
	if doc.Characters() != 11 {
		t.Errorf("expected 11 characters, got %d", doc.Characters())
	}
}

func TestDocument_CharactersCountsCodePoints(t *testing.T) {
	doc := Document{Text: "Entropie, énergie: ΔS ≥ 0"}
	if got := doc.Characters(); got != 25 {
		t.Errorf("expected 25 characters, got %d", got)
	}
}
