package report

// Formatter defines the interface for formatting a Report.
type Formatter interface {
	// Format converts a Report to a formatted string.
	Format(rep *Report) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(rep *Report) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(rep *Report) string {
	return f(rep)
}
