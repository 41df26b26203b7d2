package models

// Severity classifies a report item
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ReportItem is a single line of a configuration check
type ReportItem struct {
	Severity Severity `json:"severity" yaml:"severity" example:"warning"`
	Target   string   `json:"target,omitempty" yaml:"target,omitempty" example:"pypi"`
	Probe    bool     `json:"probe,omitempty" yaml:"probe,omitempty"`
	Message  string   `json:"message" yaml:"message" example:"username is not '__token__'"`
}

// ValidationReport is the ordered result of a configuration check
type ValidationReport struct {
	Path  string       `json:"path" yaml:"path"`
	Items []ReportItem `json:"items" yaml:"items"`
}

// Add appends an item to the report
func (r *ValidationReport) Add(item ReportItem) {
	r.Items = append(r.Items, item)
}

// Count returns the number of items with the given severity
func (r *ValidationReport) Count(severity Severity) int {
	n := 0
	for _, item := range r.Items {
		if item.Severity == severity {
			n++
		}
	}
	return n
}

// CountStructural counts items of the given severity that did not come from a remote probe
func (r *ValidationReport) CountStructural(severity Severity) int {
	n := 0
	for _, item := range r.Items {
		if item.Severity == severity && !item.Probe {
			n++
		}
	}
	return n
}

// HasErrors reports whether any error item is present
func (r *ValidationReport) HasErrors() bool {
	return r.Count(SeverityError) > 0
}
