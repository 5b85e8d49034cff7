// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package issues

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/repwatch/models"
)

type taxonomyFile struct {
	Categories []Rule `yaml:"categories"`
}

// LoadTaxonomy reads a YAML taxonomy file. The order of categories in the
// file is their priority.
func LoadTaxonomy(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open taxonomy: %w", err)
	}
	defer f.Close()

	return ParseTaxonomy(f)
}

// ParseTaxonomy decodes and validates a taxonomy document.
func ParseTaxonomy(r io.Reader) ([]Rule, error) {
	var doc taxonomyFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}

	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy has no categories")
	}

	seen := make(map[models.IssueCategory]bool)
	for i, rule := range doc.Categories {
		if rule.Category == "" {
			return nil, fmt.Errorf("taxonomy entry %d has no category", i)
		}
		if rule.Category == models.IssueOther {
			return nil, fmt.Errorf("%q is the fallback and cannot be listed", models.IssueOther)
		}
		if seen[rule.Category] {
			return nil, fmt.Errorf("duplicate category %q", rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("category %q has no keywords", rule.Category)
		}
		seen[rule.Category] = true
	}

	return doc.Categories, nil
}

// Load returns the classifier for a taxonomy file, or the default
// classifier when path is empty.
func Load(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	rules, err := LoadTaxonomy(path)
	if err != nil {
		return nil, err
	}
	return NewClassifier(rules), nil
}
