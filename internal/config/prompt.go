package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Prompt is the static prompt template loaded once at startup.
type Prompt struct {
	// SystemRole is embedded verbatim as the "System:" and "Objective:"
	// lines of every prompt.
	SystemRole string `json:"systemRole"`
}

// LoadPrompt reads the prompt template at path. A missing file, malformed
// JSON or an empty systemRole is an error; callers treat it as fatal.
func LoadPrompt(path string) (*Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read prompt %s: %w", path, err)
	}
	return ParsePrompt(data)
}

// ParsePrompt decodes a prompt template from JSON.
func ParsePrompt(data []byte) (*Prompt, error) {
	var p Prompt
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parse prompt: %w", err)
	}
	if strings.TrimSpace(p.SystemRole) == "" {
		return nil, fmt.Errorf("config: prompt is missing systemRole")
	}
	return &p, nil
}
