package domain

// FormatCategory groups supported extensions by how they are printed.
type FormatCategory string

const (
	FormatPDF          FormatCategory = "pdf"
	FormatImage        FormatCategory = "image"
	FormatDocument     FormatCategory = "document"
	FormatSpreadsheet  FormatCategory = "spreadsheet"
	FormatPresentation FormatCategory = "presentation"
)

var supportedFormats = map[FormatCategory][]string{
	FormatPDF:          {"pdf"},
	FormatImage:        {"jpg", "jpeg", "png", "gif", "bmp", "webp", "tiff", "tif"},
	FormatDocument:     {"doc", "docx", "txt", "rtf", "odt"},
	FormatSpreadsheet:  {"xls", "xlsx", "csv"},
	FormatPresentation: {"ppt", "pptx"},
}

var extensionCategory = func() map[string]FormatCategory {
	m := make(map[string]FormatCategory)
	for cat, exts := range supportedFormats {
		for _, ext := range exts {
			m[ext] = cat
		}
	}
	return m
}()

// SupportedExtension reports whether files with the given extension
// (lowercase, without the leading dot) can be accepted into an order.
func SupportedExtension(ext string) bool {
	_, ok := extensionCategory[ext]
	return ok
}

// CategoryFor returns the format category for a supported extension.
func CategoryFor(ext string) (FormatCategory, bool) {
	cat, ok := extensionCategory[ext]
	return cat, ok
}
