package config

const (
	// MaxDocumentTitleLength is the maximum length for document titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxDocumentTitleLength = 255

	// MaxDocumentContentLength is the maximum length for a document body
	// or a version snapshot. 2MB of text is far beyond any realistic
	// artifact; larger payloads indicate a client bug.
	MaxDocumentContentLength = 2 << 20

	// MaxVersionChainDepth bounds previous_version_id traversal. The schema
	// cannot express acyclicity, so chain walks stop here and report a
	// conflict instead of looping.
	MaxVersionChainDepth = 10000
)
