// Package sheets is the spreadsheet-fetch boundary. The core consumes
// raw rows through the Fetcher interface and performs no I/O itself;
// this package owns the Google Sheets implementation.
package sheets

import (
	"context"
	"fmt"
	"strings"
)

// Sheet is one fetched spreadsheet tab: ordered rows of string cells
// plus the metadata the dashboard surfaces.
type Sheet struct {
	ID            string
	Name          string // resolved tab name
	Title         string // spreadsheet title
	Rows          [][]string
	AvailableTabs []string
}

// Fetcher retrieves sheet data for import.
type Fetcher interface {
	// Fetch returns the rows of the named tab, or of the first tab when
	// tabName is empty. A missing tab yields a *TabNotFoundError.
	Fetch(ctx context.Context, sheetID, tabName string) (*Sheet, error)

	// ListTabs returns the tab names of the spreadsheet.
	ListTabs(ctx context.Context, sheetID string) ([]string, error)
}

// TabNotFoundError reports a requested tab that is not in the
// spreadsheet, carrying the available names for caller recovery.
type TabNotFoundError struct {
	Tab       string
	Available []string
}

func (e *TabNotFoundError) Error() string {
	return fmt.Sprintf("sheet tab %q not found; available tabs: %s", e.Tab, strings.Join(e.Available, ", "))
}

// resolveTab picks the tab to fetch: the requested name when present,
// the first tab when none was requested.
func resolveTab(available []string, requested string) (string, error) {
	if len(available) == 0 {
		return "", fmt.Errorf("spreadsheet has no tabs")
	}
	if requested == "" {
		return available[0], nil
	}
	for _, name := range available {
		if name == requested {
			return name, nil
		}
	}
	return "", &TabNotFoundError{Tab: requested, Available: available}
}
