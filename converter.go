package hearings

// Converter converts a hearing transcript's HTML rendition to text.
type Converter interface {
	// Convert transforms HTML content into its textual rendition.
	// An empty document converts to an empty string.
	Convert(html []byte) (string, error)
}
