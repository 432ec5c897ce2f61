package controllers

// ParseFileChanges exports parseFileChanges for testing.
var ParseFileChanges = parseFileChanges //nolint:gochecknoglobals // test export
