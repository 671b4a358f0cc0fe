// Package prompts loads the LLM prompt templates embedded in the binary.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Prompt files
const (
	SummarizeFile = "summarize.json"
)

//go:embed *.json
var promptFiles embed.FS

// loaded holds parsed prompt files keyed by filename.
var (
	loaded   = make(map[string]map[string]string)
	loadedMu sync.RWMutex
)

// Get retrieves a prompt by filename and key.
func Get(filename, key string) (string, error) {
	file, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := file[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Only use it for prompts embedded with the binary.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data.
// Replacement is single-pass, so placeholder-like text inside values is left alone.
func Format(template string, data map[string]string) string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{."+key+"}}", data[key])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the sorted prompt keys in a file.
func List(filename string) ([]string, error) {
	file, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops parsed files. Useful for testing.
func ClearCache() {
	loadedMu.Lock()
	loaded = make(map[string]map[string]string)
	loadedMu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	loadedMu.RLock()
	file, ok := loaded[filename]
	loadedMu.RUnlock()
	if ok {
		return file, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	loadedMu.Lock()
	loaded[filename] = file
	loadedMu.Unlock()

	return file, nil
}
