// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package issues

import (
	"strings"
	"unicode"

	"github.com/danielhkuo/repwatch/models"
)

// Rule maps a set of keywords to one category.
type Rule struct {
	Category models.IssueCategory `yaml:"category"`
	Keywords []string             `yaml:"keywords"`
}

// DefaultRules is the built-in taxonomy in priority order.
var DefaultRules = []Rule{
	{models.IssueHealthcare, []string{
		"health", "medicare", "medicaid", "hospital", "prescription", "drug pricing",
		"patient", "affordable care", "mental health", "opioid", "vaccine", "nursing",
	}},
	{models.IssueEconomy, []string{
		"tax", "budget", "economy", "economic", "jobs", "employment", "wage",
		"trade", "tariff", "debt", "appropriation", "spending", "inflation",
		"small business", "banking", "financial", "infrastructure", "housing",
	}},
	{models.IssueEnvironment, []string{
		"climate", "environment", "energy", "emission", "pollution", "conservation",
		"wildlife", "clean water", "clean air", "renewable", "carbon", "epa",
		"public lands", "endangered",
	}},
	{models.IssueDefense, []string{
		"defense", "military", "armed forces", "veteran", "national security",
		"army", "navy", "air force", "weapon", "nato", "intelligence",
	}},
	{models.IssueImmigration, []string{
		"immigration", "immigrant", "border", "visa", "asylum", "citizenship",
		"refugee", "daca", "deportation", "naturalization",
	}},
	{models.IssueEducation, []string{
		"education", "school", "student", "college", "university", "teacher",
		"pell grant", "head start",
	}},
}

// Classifier maps bill text to an issue category.
// It is safe for concurrent use; rules are never mutated after construction.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier from rules in priority order.
// Keywords are lower-cased and normalized the same way as bill text.
func NewClassifier(rules []Rule) *Classifier {
	c := &Classifier{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		normalized := Rule{Category: r.Category}
		for _, kw := range r.Keywords {
			if kw = normalize(kw); kw != "" {
				normalized.Keywords = append(normalized.Keywords, kw)
			}
		}
		c.rules = append(c.rules, normalized)
	}
	return c
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	return NewClassifier(DefaultRules)
}

// Classify returns the first category whose keywords appear at a word start
// in the title or description, or Other.
func (c *Classifier) Classify(title, description string) models.IssueCategory {
	text := normalize(title + " " + description)
	if text == "" {
		return models.IssueOther
	}
	text = " " + text

	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(text, " "+kw) {
				return r.Category
			}
		}
	}
	return models.IssueOther
}

// Categories lists the vocabulary in priority order, ending with Other.
func (c *Classifier) Categories() []models.IssueCategory {
	out := make([]models.IssueCategory, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Category)
	}
	return append(out, models.IssueOther)
}

// normalize lower-cases s and collapses every run of non-alphanumerics
// into a single space.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}
