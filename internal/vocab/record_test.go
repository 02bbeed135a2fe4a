package vocab

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name      string
		record    SavedAnalysis
		fileName  string
		inputText string
		want      bool
	}{
		{
			name:     "same file name",
			record:   SavedAnalysis{FileName: "essay.txt", InputText: "old text"},
			fileName: "essay.txt", inputText: "new text",
			want: true,
		},
		{
			name:     "different file names",
			record:   SavedAnalysis{FileName: "essay.txt"},
			fileName: "other.txt",
			want:     false,
		},
		{
			name:      "no file names, same text",
			record:    SavedAnalysis{InputText: "The cat sat."},
			inputText: "The cat sat.",
			want:      true,
		},
		{
			name:      "no file names, different text",
			record:    SavedAnalysis{InputText: "The cat sat."},
			inputText: "The dog ran.",
			want:      false,
		},
		{
			name:      "record has file name, save does not",
			record:    SavedAnalysis{FileName: "essay.txt", InputText: "same"},
			inputText: "same",
			want:      false,
		},
		{
			name:     "save has file name, record does not",
			record:   SavedAnalysis{InputText: "same"},
			fileName: "essay.txt", inputText: "same",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Matches(tt.fileName, tt.inputText); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.fileName, tt.inputText, got, tt.want)
			}
		})
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("slang").Valid() {
		t.Error("unknown category should not be valid")
	}
}

func TestParseSourceType(t *testing.T) {
	if _, err := ParseSourceType("news"); err != nil {
		t.Errorf("ParseSourceType(news) failed: %v", err)
	}
	if _, err := ParseSourceType("poetry"); err == nil {
		t.Error("Expected error for unknown source type")
	}
}
