package quiz

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseBankYAML decodes and validates a question bank from YAML bytes.
func ParseBankYAML(data []byte) (Bank, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Bank{}, fmt.Errorf("quiz: bank payload is empty")
	}
	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return Bank{}, fmt.Errorf("quiz: decode bank: %w", err)
	}
	return bank.Normalized()
}

// LoadBankReader reads a question bank from r.
func LoadBankReader(r io.Reader) (Bank, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Bank{}, fmt.Errorf("quiz: read bank: %w", err)
	}
	return ParseBankYAML(content)
}

// LoadBankFile loads a question bank from path. An empty path yields the
// default bank.
func LoadBankFile(path string) (Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Bank{}, fmt.Errorf("quiz: read %s: %w", path, err)
	}
	bank, parseErr := ParseBankYAML(content)
	if parseErr != nil {
		return Bank{}, fmt.Errorf("quiz: %s: %w", path, parseErr)
	}
	return bank, nil
}
