package ctdf

import "time"

// DatasetVersion records the content last imported for a registered dataset
type DatasetVersion struct {
	Dataset      string
	Hash         string
	LastModified time.Time
}
