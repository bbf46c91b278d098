package sqlite

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/themes/pkg/types"
)

// readJSONL reads a JSONL file and returns one decoded object per non-empty
// line. Numbers are kept as json.Number so integer IDs survive intact. A line
// that is not exactly one JSON object is a *types.InvalidInputError carrying
// its line number.
func readJSONL(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var obj map[string]any
		if err := dec.Decode(&obj); err != nil {
			return nil, malformed(path, line, err.Error())
		}
		if obj == nil {
			return nil, malformed(path, line, "record is not a JSON object")
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			return nil, malformed(path, line, "unexpected data after the record")
		}
		records = append(records, obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

func malformed(path string, line int, reason string) error {
	return &types.InvalidInputError{
		Line:   line,
		Reason: fmt.Sprintf("%s: malformed record: %s", filepath.Base(path), reason),
	}
}

// columnValue converts a decoded JSON value to a SQLite argument. Nested
// objects and arrays are stored as their JSON text.
func columnValue(val any) (any, error) {
	switch v := val.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return string(b), nil
	default:
		return val, nil
	}
}
