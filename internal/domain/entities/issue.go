package entities

// Issue is an issue-tracker entry. The review server has no issue tracker, so
// issues only ever appear as empty results.
type Issue struct {
	Number int
	Title  string
	Body   string
	State  PRState
}

// VulnerabilityAlert is a security advisory reported by the hosting platform.
type VulnerabilityAlert struct {
	Package  string
	Severity string
	Summary  string
}
