// Package record turns raw spreadsheet rows into typed case records and
// derives aggregate metrics over them. Everything here is pure: rows in,
// records out, no I/O.
package record

// ExpectedColumns is the canonical column set for a case sheet, in the
// positional order assumed when the sheet carries no header row.
var ExpectedColumns = []string{
	"incident_id",
	"full_name",
	"sex",
	"home_address",
	"phone_number",
	"incident_date",
	"incident_time",
	"location",
	"incident_category",
	"resolution",
	"injury_reported",
	"property_damage",
	"fault_determination",
	"incident_description",
}

// Case is one normalized incident record. Fields are never null: absent
// source cells default to "" or false, and IncidentID is always non-empty
// for a built record.
type Case struct {
	IncidentID          string `json:"incidentId"`
	FullName            string `json:"fullName"`
	Sex                 string `json:"sex"`
	HomeAddress         string `json:"homeAddress"`
	PhoneNumber         string `json:"phoneNumber"`
	IncidentDate        string `json:"incidentDate"`
	IncidentTime        string `json:"incidentTime"`
	Location            string `json:"location"`
	IncidentCategory    string `json:"incidentCategory"`
	Resolution          string `json:"resolution"`
	InjuryReported      bool   `json:"injuryReported"`
	PropertyDamage      bool   `json:"propertyDamage"`
	FaultDetermination  string `json:"faultDetermination"`
	IncidentDescription string `json:"incidentDescription"`
	Jurisdiction        string `json:"jurisdiction"`
}
