// Package uid generates identifiers used to correlate requests.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
