package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// completionOutput is the loosely-typed shape returned by the completion
// service. Files stays raw so its key order can be read back.
type completionOutput struct {
	Files       json.RawMessage `json:"files"`
	Description any             `json:"description"`
}

// ParseCompletion validates a completion response and converts it to a FileSet
// and an optional generated description
func ParseCompletion(content string) (FileSet, string, error) {
	var out completionOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, "", &Error{Kind: ErrGenerationFailed, Message: "completion is not a JSON object", Err: err}
	}

	if len(out.Files) == 0 {
		return nil, "", &Error{Kind: ErrGenerationFailed, Message: "completion has no files"}
	}

	files, err := decodeFiles(out.Files)
	if err != nil {
		return nil, "", &Error{Kind: ErrGenerationFailed, Message: err.Error()}
	}

	// A non-string description is treated as absent
	description, _ := out.Description.(string)

	return files, description, nil
}

// decodeFiles walks a JSON object of path -> content, keeping key order
func decodeFiles(raw json.RawMessage) (FileSet, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("files are invalid: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("files must be an object")
	}

	var files FileSet
	seen := make(map[string]struct{})

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("files are invalid: %w", err)
		}
		path, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("files are invalid: unexpected key %v", tok)
		}

		var content *string
		if err := dec.Decode(&content); err != nil || content == nil {
			return nil, fmt.Errorf("content of %q must be a string", path)
		}

		if _, dup := seen[path]; dup {
			return nil, fmt.Errorf("duplicate file path %q", path)
		}
		seen[path] = struct{}{}

		files = append(files, File{Path: path, Content: *content})
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("files are empty")
	}

	return files, nil
}
