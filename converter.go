package cpm

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a problem statement into Markdown.
	Convert(html string) (string, error)
}
