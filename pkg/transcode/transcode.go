// Package transcode converts activity packet payloads between their base64
// wire form and readable JSON.
package transcode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType is the sniffed shape of an input payload.
type ContentType string

const (
	TypeJSON    ContentType = "json"
	TypeBase64  ContentType = "base64"
	TypeUnknown ContentType = "unknown"
)

// Detect sniffs whether content is JSON, base64, or neither. JSON wins when
// content parses as both (base64 alphabets overlap with short JSON scalars).
func Detect(content string) ContentType {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return TypeUnknown
	}
	if json.Valid([]byte(trimmed)) {
		return TypeJSON
	}
	if _, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		return TypeBase64
	}
	return TypeUnknown
}

// Decode converts a base64 payload into pretty-printed JSON (two-space
// indent). The input must be valid base64 wrapping valid JSON.
func Decode(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if Detect(trimmed) != TypeBase64 {
		return "", fmt.Errorf("content is not valid base64")
	}

	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		return "", fmt.Errorf("decoded payload is not valid JSON: %w", err)
	}
	return pretty.String(), nil
}

// Encode converts a JSON payload into base64 over its compact form.
func Encode(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if Detect(trimmed) != TypeJSON {
		return "", fmt.Errorf("content is not valid JSON")
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(trimmed)); err != nil {
		return "", fmt.Errorf("compact JSON: %w", err)
	}
	return base64.StdEncoding.EncodeToString(compact.Bytes()), nil
}
