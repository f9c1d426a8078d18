package enums

import "fmt"

// ExportFormat selects the document format for quote exports.
type ExportFormat string

const (
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

var validExportFormats = []ExportFormat{
	ExportFormatXLSX,
	ExportFormatPDF,
}

// String implements fmt.Stringer.
func (e ExportFormat) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ExportFormat.
func (e ExportFormat) IsValid() bool {
	for _, candidate := range validExportFormats {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExportFormat converts raw input into an ExportFormat.
func ParseExportFormat(value string) (ExportFormat, error) {
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}
