package entities

// CategoryCount is one named bucket of a summary.
type CategoryCount struct {
	Category      Category
	Discrepancies int
}

// Stats holds per-category discrepancy counts plus totals.
type Stats struct {
	Categories         []CategoryCount
	TotalFiles         int
	TotalDiscrepancies int
	// Other counts discrepancies whose category is not a named bucket.
	Other      int
	Incomplete int
}

// NewStats returns stats with every named category present at zero.
func NewStats() Stats {
	named := NamedCategories()
	stats := Stats{Categories: make([]CategoryCount, 0, len(named))}
	for _, category := range named {
		stats.Categories = append(stats.Categories, CategoryCount{Category: category})
	}
	return stats
}

// Count returns the discrepancy count of a named category.
func (s Stats) Count(category Category) int {
	for _, bucket := range s.Categories {
		if bucket.Category == category {
			return bucket.Discrepancies
		}
	}
	return 0
}

// Add accounts for one record.
func (s *Stats) Add(category Category, discrepancy bool, status Status) {
	s.TotalFiles++
	if status == StatusIncomplete {
		s.Incomplete++
	}
	if !discrepancy {
		return
	}

	s.TotalDiscrepancies++
	if !category.IsNamed() {
		s.Other++
		return
	}
	for i := range s.Categories {
		if s.Categories[i].Category == category {
			s.Categories[i].Discrepancies++
			return
		}
	}
	s.Categories = append(s.Categories, CategoryCount{Category: category, Discrepancies: 1})
}

// Summarize computes the stats of a closed record set.
func Summarize(records []Record) Stats {
	stats := NewStats()
	for _, record := range records {
		stats.Add(record.Category, record.Discrepancy, record.Status)
	}
	return stats
}
