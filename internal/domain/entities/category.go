package entities

import "strings"

// Category is the coarse artifact type assigned to a file path.
type Category string

const (
	CategorySource  Category = "Source Code"
	CategoryTest    Category = "Test Code"
	CategoryReadme  Category = "README"
	CategoryLicense Category = "LICENSE"
	CategoryOther   Category = "Other"
)

// NamedCategories are the buckets always present in a summary, in report order.
func NamedCategories() []Category {
	return []Category{CategorySource, CategoryTest, CategoryReadme, CategoryLicense}
}

// sourceExtensions is the allow-list of compiled/scripted language extensions.
var sourceExtensions = []string{".py", ".c", ".cpp", ".java", ".js", ".ts", ".go", ".rs"} //nolint:gochecknoglobals // fixed allow-list

type categoryRule struct {
	match    func(lowerPath string) bool
	category Category
}

// categoryRules are evaluated in order; the first match wins.
var categoryRules = []categoryRule{ //nolint:gochecknoglobals // fixed precedence table
	{match: containsAny("test"), category: CategoryTest},
	{match: containsAny("readme"), category: CategoryReadme},
	{match: containsAny("license"), category: CategoryLicense},
	{match: hasAnySuffix(sourceExtensions...), category: CategorySource},
}

// Categorize maps a file path to exactly one category using a
// case-insensitive, precedence-ordered rule list.
func Categorize(path string) Category {
	lower := strings.ToLower(path)
	for _, rule := range categoryRules {
		if rule.match(lower) {
			return rule.category
		}
	}
	return CategoryOther
}

// IsNamed reports whether c is one of the summary buckets.
func (c Category) IsNamed() bool {
	for _, named := range NamedCategories() {
		if c == named {
			return true
		}
	}
	return false
}

func containsAny(needles ...string) func(string) bool {
	return func(s string) bool {
		for _, needle := range needles {
			if strings.Contains(s, needle) {
				return true
			}
		}
		return false
	}
}

func hasAnySuffix(suffixes ...string) func(string) bool {
	return func(s string) bool {
		for _, suffix := range suffixes {
			if strings.HasSuffix(s, suffix) {
				return true
			}
		}
		return false
	}
}
