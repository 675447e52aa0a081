package services

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lehmann314159/vocabdrill/internal/models"
)

var csvColumns = []string{"word", "phonetic", "pos", "meaning", "sentence", "translation"}

// ParseCSV reads raw entries from CSV with a header row. Only the word
// column is required; rows with a blank word are skipped and reported.
func ParseCSV(r io.Reader) ([]models.RawEntry, *models.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := colIndex["word"]; !ok {
		return nil, nil, fmt.Errorf("missing required column: word")
	}

	field := func(record []string, col string) string {
		idx, ok := colIndex[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var entries []models.RawEntry
	result := &models.ImportResult{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", lineNum, err))
			result.Skipped++
			continue
		}

		e := models.RawEntry{
			Word:        field(record, "word"),
			Phonetic:    field(record, "phonetic"),
			POS:         field(record, "pos"),
			Meaning:     field(record, "meaning"),
			Sentence:    field(record, "sentence"),
			Translation: field(record, "translation"),
		}
		if e.Word == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing word", lineNum))
			result.Skipped++
			continue
		}

		entries = append(entries, e)
	}

	result.Imported = len(entries)
	return entries, result, nil
}

// ParseJSON reads a JSON array of raw entries, dropping those without a word
func ParseJSON(r io.Reader) ([]models.RawEntry, error) {
	var raw []models.RawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary: %w", err)
	}

	entries := raw[:0]
	for _, e := range raw {
		if strings.TrimSpace(e.Word) != "" {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// WriteCSV writes entries with a header row
func WriteCSV(w io.Writer, entries []models.Entry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range entries {
		record := []string{e.Word, e.Phonetic, e.POS, e.Meaning, e.Sentence, e.Translation}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
