//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rios0rios0/diffaudit/internal/domain/entities"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected entities.Category
	}{
		{name: "should tag test directories", path: "tests/test_cli.py", expected: entities.CategoryTest},
		{name: "should tag go test files", path: "pkg/walker_test.go", expected: entities.CategoryTest},
		{name: "should match test case-insensitively", path: "src/TestUtils.java", expected: entities.CategoryTest},
		{name: "should tag readme", path: "README.md", expected: entities.CategoryReadme},
		{name: "should tag nested readme", path: "docs/Readme.rst", expected: entities.CategoryReadme},
		{name: "should tag license", path: "LICENSE", expected: entities.CategoryLicense},
		{name: "should tag license with extension", path: "license.txt", expected: entities.CategoryLicense},
		{name: "should tag python source", path: "httpie/core.py", expected: entities.CategorySource},
		{name: "should tag cpp source", path: "src/main.CPP", expected: entities.CategorySource},
		{name: "should tag rust source", path: "src/lib.rs", expected: entities.CategorySource},
		{name: "should tag typescript source", path: "web/app.ts", expected: entities.CategorySource},
		{name: "should fall back to other for docs", path: "docs/index.md", expected: entities.CategoryOther},
		{name: "should fall back to other for config", path: "setup.cfg", expected: entities.CategoryOther},
		{name: "should fall back to other for empty path", path: "", expected: entities.CategoryOther},
		{name: "should not treat .pyc as python source", path: "cache/module.pyc", expected: entities.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			path := tt.path

			// when
			category := entities.Categorize(path)

			// then
			assert.Equal(t, tt.expected, category)
		})
	}
}

func TestCategorizePrecedence(t *testing.T) {
	t.Parallel()

	t.Run("should prefer test over readme", func(t *testing.T) {
		t.Parallel()

		// given
		path := "tests/README.md"

		// when
		category := entities.Categorize(path)

		// then
		assert.Equal(t, entities.CategoryTest, category)
	})

	t.Run("should prefer readme over license", func(t *testing.T) {
		t.Parallel()

		// given
		path := "readme-license.txt"

		// when
		category := entities.Categorize(path)

		// then
		assert.Equal(t, entities.CategoryReadme, category)
	})

	t.Run("should prefer license over source extension", func(t *testing.T) {
		t.Parallel()

		// given
		path := "tools/license_check.py"

		// when
		category := entities.Categorize(path)

		// then
		assert.Equal(t, entities.CategoryLicense, category)
	})

	t.Run("should classify every path into a known category", func(t *testing.T) {
		t.Parallel()

		// given
		known := map[entities.Category]bool{
			entities.CategoryTest: true, entities.CategoryReadme: true, entities.CategoryLicense: true,
			entities.CategorySource: true, entities.CategoryOther: true,
		}
		paths := []string{"a", ".go", "x/y/z.GO", "TEST", "ReadMe", "Makefile", "ñ/ü.rs", "  "}

		for _, path := range paths {
			// when
			category := entities.Categorize(path)

			// then
			assert.True(t, known[category], "unexpected category %q for %q", category, path)
		}
	})
}

func TestNamedCategories(t *testing.T) {
	t.Parallel()

	t.Run("should list the four summary buckets in report order", func(t *testing.T) {
		t.Parallel()

		// when
		named := entities.NamedCategories()

		// then
		assert.Equal(t, []entities.Category{
			entities.CategorySource, entities.CategoryTest, entities.CategoryReadme, entities.CategoryLicense,
		}, named)
		assert.False(t, entities.CategoryOther.IsNamed())
		assert.True(t, entities.CategoryReadme.IsNamed())
	})
}
