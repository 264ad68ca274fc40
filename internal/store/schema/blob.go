package schema

import "time"

// Blob represents the blobs table holding durable JSON snapshots keyed by name
type Blob struct {
	// Key is the blob name (e.g. "holdings_last_good")
	Key string `gorm:"column:key;primaryKey;type:text"`
	// Value is the raw JSON payload
	Value []byte `gorm:"column:value;not null;type:bytea"`
	// UpdatedAt is the time of the last write
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName overrides the table name used by GORM
func (Blob) TableName() string {
	return "blobs"
}
