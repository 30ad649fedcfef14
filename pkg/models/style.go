package models

// Style describes how the cells of a journal row are rendered.
// Every severity gets a thin solid border; only the background differs.
type Style struct {
	// Background is an RGB hex color without the leading '#'.
	// Empty means the default (white) background.
	Background string
}

// Styles returns the fixed severity-to-style table. The table is complete:
// every severity has exactly one entry.
func Styles() map[Severity]Style {
	return map[Severity]Style{
		InfoSeverity:    {},
		SuccessSeverity: {Background: "D4FFD4"},
		WarningSeverity: {Background: "FFF8D4"},
		ErrorSeverity:   {Background: "FFD4D4"},
	}
}

// StyleFor resolves the rendering style of a severity.
func StyleFor(s Severity) Style {
	return Styles()[s]
}
