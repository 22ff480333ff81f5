package models

import "time"

// KVRecord is one row of the SQLite-backed key-value store.
// Values are JSON documents (cache entries and day records).
type KVRecord struct {
	Key       string    `gorm:"primaryKey;column:store_key;size:255" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
