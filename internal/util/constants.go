package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"

	// ExportTimeFormat is used in export object names.
	ExportTimeFormat = "20060102T150405Z"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	DefaultTotalMark = "100"
	DefaultScore     = "0"
)
