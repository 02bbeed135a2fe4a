package localcache

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

func TestLoad_MissingFiles(t *testing.T) {
	c := New(t.TempDir())
	analyses, folders := c.Load()

	if len(analyses) != 0 {
		t.Errorf("Expected empty analyses, got %d", len(analyses))
	}
	if len(folders) != 0 {
		t.Errorf("Expected empty folders, got %d", len(folders))
	}
}

func TestLoad_CorruptJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "history.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "folders.json"), []byte("[{\"id\":"), 0644); err != nil {
		t.Fatal(err)
	}

	c := New(dir)
	var warnings int
	c.SetLogf(func(format string, args ...any) { warnings++ })

	analyses, folders := c.Load()
	if len(analyses) != 0 || len(folders) != 0 {
		t.Errorf("Expected empty collections for corrupt files, got %d analyses, %d folders",
			len(analyses), len(folders))
	}
	if warnings != 2 {
		t.Errorf("Expected 2 logged warnings, got %d", warnings)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "nested", "state"))

	folderID := "folder-1"
	analyses := []vocab.SavedAnalysis{
		{
			ID:         "a1",
			Date:       1700000000000,
			SourceType: vocab.SourceNews,
			InputText:  "The cat sat.",
			FolderID:   &folderID,
			Notes: []vocab.Note{
				{ID: "n1", Word: "sat", Definition: "past of sit", Timestamp: 1700000000001},
			},
			Result: vocab.AnalysisResult{
				Summary: "A cat sits.",
				Tone:    "neutral",
				Vocabulary: []vocab.VocabularyItem{
					{Term: "sat", Definition: "past of sit", Category: vocab.CategoryChunksStructures},
				},
			},
		},
		{ID: "a2", Date: 1700000001000, SourceType: vocab.SourceTopic, InputText: "ordering coffee"},
	}
	folders := []vocab.AnalysisFolder{
		{ID: folderID, Name: "News", CreatedAt: 1699999999000, Color: "#ff0000"},
	}

	if err := c.Save(analyses, folders); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	gotAnalyses, gotFolders := c.Load()
	if len(gotAnalyses) != 2 {
		t.Fatalf("Expected 2 analyses, got %d", len(gotAnalyses))
	}
	// Insertion order must survive the round trip.
	if gotAnalyses[0].ID != "a1" || gotAnalyses[1].ID != "a2" {
		t.Errorf("Order not preserved: %s, %s", gotAnalyses[0].ID, gotAnalyses[1].ID)
	}
	if gotAnalyses[0].FolderID == nil || *gotAnalyses[0].FolderID != folderID {
		t.Error("FolderID not preserved")
	}
	if len(gotAnalyses[0].Notes) != 1 || gotAnalyses[0].Notes[0].Word != "sat" {
		t.Error("Notes not preserved")
	}
	if gotAnalyses[0].Result.Vocabulary[0].Term != "sat" {
		t.Error("Analysis result not preserved")
	}
	if len(gotFolders) != 1 || gotFolders[0].Name != "News" {
		t.Errorf("Folders not preserved: %+v", gotFolders)
	}
}

func TestSave_Overwrites(t *testing.T) {
	c := New(t.TempDir())

	if err := c.Save([]vocab.SavedAnalysis{{ID: "a1"}, {ID: "a2"}}, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Save([]vocab.SavedAnalysis{{ID: "a3"}}, nil); err != nil {
		t.Fatal(err)
	}

	analyses, _ := c.Load()
	if len(analyses) != 1 || analyses[0].ID != "a3" {
		t.Errorf("Expected only a3 after overwrite, got %+v", analyses)
	}
}
