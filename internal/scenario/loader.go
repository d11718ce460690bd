package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadedCase pairs a case with the suite and file it came from.
type LoadedCase struct {
	File  string
	Suite Suite
	Case  Case
}

// LoadDir walks dir for *.yaml files and loads every scenario case in
// source order.
func LoadDir(dir string) ([]LoadedCase, error) {
	var loaded []LoadedCase

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scenario: reading %s: %w", path, err)
		}
		var suite Suite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return fmt.Errorf("scenario: parsing %s: %w", path, err)
		}

		rel, _ := filepath.Rel(dir, path)
		for _, c := range suite.Cases {
			loaded = append(loaded, LoadedCase{File: rel, Suite: suite, Case: c})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}
