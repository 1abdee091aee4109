package model

// Source indicates what triggered a report.
type Source string

const (
	SourcePage      Source = "PAGE"
	SourceAPI       Source = "API"
	SourceScheduled Source = "SCHEDULED"
	SourceCLI       Source = "CLI"
)
