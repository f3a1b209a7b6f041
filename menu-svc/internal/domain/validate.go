package domain

import (
	"sort"
	"strings"
)

// Slugify derives a category id from its name: lower case, with runs of
// whitespace collapsed into a single dash.
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NormalizeTags trims tags and drops empty and repeated ones. Tags compare
// case-insensitively; the first spelling wins.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

func (i *MenuItem) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	if i.Name == "" {
		return invalid("name", "is required")
	}
	if i.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	if i.CategoryID == "" {
		return invalid("category_id", "is required")
	}
	i.Tags = NormalizeTags(i.Tags)
	return nil
}

func (t *Table) Validate() error {
	if t.Number < 1 {
		return invalid("number", "must be a positive integer")
	}
	return nil
}

func (r *Restaurant) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.TaxRate.IsNegative() {
		return invalid("tax_rate", "must not be negative")
	}
	return nil
}
