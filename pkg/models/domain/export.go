package domain

type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatXLSX ExportFormat = "xlsx"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatJSON, ExportFormatXLSX:
		return true
	default:
		return false
	}
}

func (f ExportFormat) FileExtension() string {
	switch f {
	case ExportFormatCSV:
		return ".csv"
	case ExportFormatJSON:
		return ".json"
	case ExportFormatXLSX:
		return ".xlsx"
	default:
		return ""
	}
}

func (f ExportFormat) MimeType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatJSON:
		return "application/json"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
