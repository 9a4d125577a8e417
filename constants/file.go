package constants

import "strings"

// Format classifies an uploaded file by its extension family.
type Format string

const (
	FormatPDF      Format = "PDF"
	FormatWord     Format = "WORD"
	FormatText     Format = "TEXT"
	FormatMarkdown Format = "MARKDOWN"
	FormatImage    Format = "IMAGE"
	FormatUnknown  Format = "UNKNOWN"
)

// FileStatus is the canonical status for rows in files.
type FileStatus string

const (
	FileStatusUploaded  FileStatus = "uploaded"  // bytes stored, not yet processed
	FileStatusProcessed FileStatus = "processed" // extracted content + metadata stored
)

// ExportFormats holds the output formats the render adapter supports.
var ExportFormats = []string{"pdf", "docx", "html", "xlsx"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to its format family.
// Unknown extensions map to FormatUnknown; they are skipped, not failed.
func MapExtToFormat(ext string) Format {
	switch NormalizeExt(ext) {
	case "pdf":
		return FormatPDF
	case "doc", "docx":
		return FormatWord
	case "txt":
		return FormatText
	case "md", "markdown":
		return FormatMarkdown
	case "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff":
		return FormatImage
	default:
		return FormatUnknown
	}
}

// IsExportFormat reports whether format names a supported output format.
func IsExportFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}
