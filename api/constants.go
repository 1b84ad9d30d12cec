package api

// Asset kinds used in errors and logs
const (
	KindHazard      = "hazard"
	KindObligation  = "obligation"
	KindProhibition = "prohibition"
	KindRisk        = "risk type"
	KindTemplate    = "template PDF"
	KindIcon        = "icon"
	KindFont        = "font"
	KindLayout      = "layout setting"
)

// Output format constants for catalog listings
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
	FormatCSV    = "csv"
)

// DefaultFileName is used when a sheet has no research group, risk or hazard to name it after
const DefaultFileName = "door_sheet"

// MaxResearchGroups is the number of research group slots in the sheet header
const MaxResearchGroups = 3

// MaxSigns is the number of obligation and prohibition icons a sheet can hold
const MaxSigns = 6
