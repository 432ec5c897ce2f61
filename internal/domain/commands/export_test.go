package commands

// StatusColor exports statusColor for testing.
var StatusColor = statusColor //nolint:gochecknoglobals // test export
