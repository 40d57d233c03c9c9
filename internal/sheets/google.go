package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleFetcher reads spreadsheets through the Google Sheets API.
type GoogleFetcher struct {
	svc *sheetsapi.Service
}

// NewGoogle builds a fetcher from a service-account credentials file.
// With an empty path the client falls back to application default
// credentials.
func NewGoogle(ctx context.Context, credentialsFile string) (*GoogleFetcher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &GoogleFetcher{svc: svc}, nil
}

func (g *GoogleFetcher) Fetch(ctx context.Context, sheetID, tabName string) (*Sheet, error) {
	meta, err := g.svc.Spreadsheets.Get(sheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get spreadsheet %s: %w", sheetID, err)
	}

	tabs := tabNames(meta)
	tab, err := resolveTab(tabs, tabName)
	if err != nil {
		return nil, err
	}

	resp, err := g.svc.Spreadsheets.Values.Get(sheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get values %s!%s: %w", sheetID, tab, err)
	}

	sheet := &Sheet{
		ID:            sheetID,
		Name:          tab,
		AvailableTabs: tabs,
		Rows:          make([][]string, 0, len(resp.Values)),
	}
	if meta.Properties != nil {
		sheet.Title = meta.Properties.Title
	}
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet, nil
}

func (g *GoogleFetcher) ListTabs(ctx context.Context, sheetID string) ([]string, error) {
	meta, err := g.svc.Spreadsheets.Get(sheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: get spreadsheet %s: %w", sheetID, err)
	}
	return tabNames(meta), nil
}

func tabNames(meta *sheetsapi.Spreadsheet) []string {
	names := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			names = append(names, s.Properties.Title)
		}
	}
	return names
}

// cellString renders one API cell value. The values API returns
// interface{} cells; non-strings (numbers, bools) are formatted rather
// than dropped.
func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
