package spacedrep

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchema describes one stored entry. nextReviewAt is optional
// because it is re-derived on load.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []string{"totalAttempts", "correctAttempts", "round", "lastAttemptAt"},
	"properties": map[string]any{
		"totalAttempts":   map[string]any{"type": "integer", "minimum": 0},
		"correctAttempts": map[string]any{"type": "integer", "minimum": 0},
		"round":           map[string]any{"type": "integer", "minimum": 0, "maximum": MaxRound},
		"lastAttemptAt":   map[string]any{"type": "string", "minLength": 1},
		"nextReviewAt":    map[string]any{"type": "string"},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func recordValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not a Go
		// map with typed slices.
		defBytes, err := json.Marshal(recordSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://progress-record.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// EncodeProgress serializes p as a single JSON object keyed by item.
func EncodeProgress(p Progress) ([]byte, error) {
	if p == nil {
		p = Progress{}
	}
	return json.Marshal(p)
}

// DecodeProgress parses a stored progress document. A document that is not
// a JSON object yields an empty Progress and an error. Entries that fail
// validation are dropped and reported as *MalformedRecordError values
// joined into the returned error; the remaining entries are returned.
func DecodeProgress(raw []byte) (Progress, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Progress{}, fmt.Errorf("parse progress document: %w", err)
	}

	validator, err := recordValidator()
	if err != nil {
		return Progress{}, fmt.Errorf("compile record schema: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Progress, len(entries))
	var errs []error
	for _, key := range keys {
		rec, err := decodeRecord(validator, key, entries[key])
		if err != nil {
			errs = append(errs, &MalformedRecordError{Item: key, Err: err})
			continue
		}
		p[key] = rec
	}
	return p, errors.Join(errs...)
}

func decodeRecord(validator *jsonschema.Schema, key string, raw json.RawMessage) (Record, error) {
	if key == "" {
		return Record{}, errors.New("empty item key")
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Record{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := validator.Validate(parsed); err != nil {
		return Record{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	if rec.CorrectAttempts > rec.TotalAttempts {
		return Record{}, fmt.Errorf("correctAttempts %d exceeds totalAttempts %d",
			rec.CorrectAttempts, rec.TotalAttempts)
	}
	rec.derive()
	return rec, nil
}
