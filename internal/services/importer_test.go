package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantWords    []string
		wantSkipped  int
		wantErr      bool
		wantMeanings []string
	}{
		{
			name: "full columns",
			input: `word,phonetic,pos,meaning,sentence,translation
ephemeral,/ɪˈfem(ə)rəl/,adj.,lasting a short time,An ephemeral joy.,短暂的
run,,v.,move fast,I run.,跑`,
			wantWords:    []string{"ephemeral", "run"},
			wantMeanings: []string{"lasting a short time", "move fast"},
		},
		{
			name: "only word column, mixed case header",
			input: `Word
walk
swim`,
			wantWords:    []string{"walk", "swim"},
			wantMeanings: []string{"", ""},
		},
		{
			name: "blank words are skipped",
			input: `word,meaning
run,move fast
,orphan meaning
  ,spaces`,
			wantWords:    []string{"run"},
			wantMeanings: []string{"move fast"},
			wantSkipped:  2,
		},
		{
			name: "short rows",
			input: `meaning,word,sentence
move fast,run`,
			wantWords:    []string{"run"},
			wantMeanings: []string{"move fast"},
		},
		{
			name:    "missing word column",
			input:   "meaning,sentence\nmove fast,I run.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, result, err := ParseCSV(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(entries) != len(tt.wantWords) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantWords))
			}
			for i, e := range entries {
				if e.Word != tt.wantWords[i] {
					t.Errorf("entry %d word = %q, want %q", i, e.Word, tt.wantWords[i])
				}
				if e.Meaning != tt.wantMeanings[i] {
					t.Errorf("entry %d meaning = %q, want %q", i, e.Meaning, tt.wantMeanings[i])
				}
			}
			if result.Imported != len(tt.wantWords) {
				t.Errorf("Imported = %d, want %d", result.Imported, len(tt.wantWords))
			}
			if result.Skipped != tt.wantSkipped {
				t.Errorf("Skipped = %d, want %d", result.Skipped, tt.wantSkipped)
			}
			if len(result.Errors) != tt.wantSkipped {
				t.Errorf("got %d errors, want %d", len(result.Errors), tt.wantSkipped)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	input := `[
		{"word": "ephemeral", "meaning": "lasting a short time", "pos": "adj."},
		{"word": "", "meaning": "no word"},
		{"word": "run", "sentence": "I run every day."}
	]`

	entries, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].POS != "adj." {
		t.Errorf("POS = %q, want %q", entries[0].POS, "adj.")
	}
	if entries[1].Sentence != "I run every day." {
		t.Errorf("Sentence = %q", entries[1].Sentence)
	}

	if _, err := ParseJSON(strings.NewReader(`{"word": "run"}`)); err == nil {
		t.Error("expected error for non-array JSON")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	entries := []models.Entry{
		{Key: "ephemeral", Word: "ephemeral", POS: "adj.", Meaning: "lasting, briefly", Sentence: `She said "hi".`, Translation: "短暂的"},
		{Key: "run", Word: "run", Meaning: "move fast"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, entries); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "word,phonetic,pos,meaning,sentence,translation\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	raw, result, err := ParseCSV(&buf)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if result.Imported != 2 {
		t.Fatalf("Imported = %d, want 2", result.Imported)
	}
	if raw[0].Meaning != "lasting, briefly" || raw[0].Sentence != `She said "hi".` || raw[0].Translation != "短暂的" {
		t.Errorf("quoted fields did not survive: %+v", raw[0])
	}
}
