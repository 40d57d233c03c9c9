package record

import "strings"

// FromRow maps one raw row onto the given header list and builds a Case.
// Returns ok=false for rows that must be skipped: rows with no non-empty
// cell, and rows whose incident_id resolves empty. Missing trailing cells
// default to "".
func FromRow(row, headers []string) (Case, bool) {
	blank := true
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			blank = false
			break
		}
	}
	if blank {
		return Case{}, false
	}

	cells := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			cells[header] = strings.TrimSpace(row[i])
		} else {
			cells[header] = ""
		}
	}

	incidentID := cells["incident_id"]
	if incidentID == "" {
		return Case{}, false
	}

	location := cells["location"]

	return Case{
		IncidentID:          incidentID,
		FullName:            cells["full_name"],
		Sex:                 cells["sex"],
		HomeAddress:         cells["home_address"],
		PhoneNumber:         cells["phone_number"],
		IncidentDate:        NormalizeDate(cells["incident_date"]),
		IncidentTime:        NormalizeTime(cells["incident_time"]),
		Location:            location,
		IncidentCategory:    StandardizeCategory(cells["incident_category"]),
		Resolution:          cells["resolution"],
		InjuryReported:      ParseBoolean(cells["injury_reported"]),
		PropertyDamage:      ParseBoolean(cells["property_damage"]),
		FaultDetermination:  cells["fault_determination"],
		IncidentDescription: cells["incident_description"],
		Jurisdiction:        DeriveJurisdiction(incidentID, location),
	}, true
}

// ParseRows builds the case collection for a whole sheet. If the first
// row's normalized headers form a superset of ExpectedColumns it is
// treated as the header row; otherwise the expected column order is
// assumed positionally for every row. The decision is made once per
// sheet, not per row. This is best-effort: malformed headers fall back to
// positional mapping and silently produce garbled records.
func ParseRows(rows [][]string) []Case {
	if len(rows) == 0 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		headers[i] = NormalizeHeader(cell)
	}

	dataRows := rows
	if hasExpectedColumns(headers) {
		dataRows = rows[1:]
	} else {
		headers = ExpectedColumns
	}

	var cases []Case
	for _, row := range dataRows {
		if c, ok := FromRow(row, headers); ok {
			cases = append(cases, c)
		}
	}
	return cases
}

func hasExpectedColumns(headers []string) bool {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
	}
	for _, want := range ExpectedColumns {
		if !seen[want] {
			return false
		}
	}
	return true
}
