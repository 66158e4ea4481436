package export

// Package export writes analysis results to JSON, CSV or YAML files so curves
// can be compared across encodes or fed to other tools.
