package record

import (
	"bytes"
	"encoding/json"
)

// Metrics are aggregate counts over a case collection.
type Metrics struct {
	TotalCases          int            `json:"totalCases"`
	InjuryCount         int            `json:"injuryCount"`
	PropertyDamageCount int            `json:"propertyDamageCount"`
	CasesByCategory     CategoryCounts `json:"casesByCategory"`
}

// CategoryCount is one entry of the category histogram.
type CategoryCount struct {
	Category string
	Count    int
}

// CategoryCounts is a histogram that preserves first-seen category order.
type CategoryCounts []CategoryCount

// MarshalJSON emits the histogram as a JSON object in insertion order.
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, entry := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(entry.Category)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		count, err := json.Marshal(entry.Count)
		if err != nil {
			return nil, err
		}
		b.Write(count)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Get returns the count for a category.
func (c CategoryCounts) Get(category string) int {
	for _, entry := range c {
		if entry.Category == category {
			return entry.Count
		}
	}
	return 0
}

// Summarize recomputes Metrics from scratch over the given cases. Cases
// without a category are counted under "Uncategorized".
func Summarize(cases []Case) Metrics {
	m := Metrics{TotalCases: len(cases), CasesByCategory: CategoryCounts{}}
	index := make(map[string]int)

	for _, c := range cases {
		if c.InjuryReported {
			m.InjuryCount++
		}
		if c.PropertyDamage {
			m.PropertyDamageCount++
		}
		category := c.IncidentCategory
		if category == "" {
			category = "Uncategorized"
		}
		if i, ok := index[category]; ok {
			m.CasesByCategory[i].Count++
		} else {
			index[category] = len(m.CasesByCategory)
			m.CasesByCategory = append(m.CasesByCategory, CategoryCount{Category: category, Count: 1})
		}
	}
	return m
}
