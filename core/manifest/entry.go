package manifest

import "time"

// Entry is one downloaded asset.
type Entry struct {
	AssetID  string    `gorm:"column:asset_id;primaryKey;size:64" json:"asset_id"`
	AlbumID  string    `gorm:"column:album_id;index;size:64" json:"album_id"`
	FileName string    `gorm:"column:file_name;size:255" json:"file_name"`
	Size     int64     `gorm:"column:size" json:"size"`
	SHA256   string    `gorm:"column:sha256;size:64" json:"sha256"`
	SyncedAt time.Time `gorm:"column:synced_at" json:"synced_at"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "manifest_entries"
}
