package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// Ternary is a utility to return a value with a single-line condition
func Ternary(cond bool, a, b any) any {
	if cond {
		return a
	}
	return b
}

func Pointer[T any](value T) *T {
	return &value
}

// ArrayContains checks if an element is present in the array based on
// the provided check and returns its index
func ArrayContains[T any](array []T, check func(elem T) bool) (int, bool) {
	for idx, elem := range array {
		if check(elem) {
			return idx, true
		}
	}

	return -1, false
}

// ForEach runs a function against every element, returning on first error
func ForEach[T any](array []T, fn func(one T) error) error {
	for _, one := range array {
		if err := fn(one); err != nil {
			return err
		}
	}

	return nil
}

// StreamIdentifier joins namespace and stream name into the tap stream id
func StreamIdentifier(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return fmt.Sprintf("%s.%s", namespace, name)
}

func IsValidSubcommand(available []*cobra.Command, sub string) bool {
	for _, command := range available {
		if command.Name() == sub {
			return true
		}
	}

	return false
}

// UnmarshalFile reads a JSON or YAML file into the provided structure;
// YAML goes through sigs.k8s.io/yaml so json tags keep working
func UnmarshalFile(filePath string, dest any) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %s", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, dest)
	default:
		err = json.Unmarshal(raw, dest)
	}
	if err != nil {
		return fmt.Errorf("failed to unmarshal file %s: %s", filePath, err)
	}

	return nil
}

// WriteFileJSON marshals the value and writes it at the provided path
func WriteFileJSON(filePath string, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value for %s: %s", filePath, err)
	}

	return os.WriteFile(filePath, raw, 0644)
}
