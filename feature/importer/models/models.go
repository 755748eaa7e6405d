package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Indicator is one economic series for one country. Natural key =
// (name, country_code); the pipeline creates rows on first sighting and
// updates descriptive fields on later imports, but never deletes.
type Indicator struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:191;uniqueIndex:idx_indicator_natural,priority:1" json:"name"`
	CountryCode string    `gorm:"size:8;uniqueIndex:idx_indicator_natural,priority:2" json:"country_code"`
	Category    string    `gorm:"size:64" json:"category"`
	SourceName  string    `gorm:"size:128" json:"source_name"`
	SourceURL   string    `gorm:"size:255" json:"source_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (Indicator) TableName() string {
	return "indicators"
}

// Release is one reported observation of an indicator. Natural key =
// (indicator_id, release_at, period). The value fields are decimal-as-string
// and nullable: a missing value and a reported zero are different things.
type Release struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IndicatorID uint      `gorm:"uniqueIndex:idx_release_natural,priority:1" json:"indicator_id"`
	ReleaseAt   time.Time `gorm:"uniqueIndex:idx_release_natural,priority:2" json:"release_at"`
	Period      string    `gorm:"size:32;uniqueIndex:idx_release_natural,priority:3" json:"period"`
	Actual      *string   `gorm:"size:64" json:"actual"`
	Forecast    *string   `gorm:"size:64" json:"forecast"`
	Previous    *string   `gorm:"size:64" json:"previous"`
	Revised     *string   `gorm:"size:64" json:"revised"`
	Unit        string    `gorm:"size:32" json:"unit"`
	// RevisionHistory is append-only; entries record overwrites of a
	// previously reported non-null actual.
	RevisionHistory RevisionHistory `gorm:"type:json" json:"revision_history"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName overrides the default table name.
func (Release) TableName() string {
	return "releases"
}

// RevisionEntry records one overwrite of a previously reported actual.
type RevisionEntry struct {
	PreviousActual *string   `json:"previous_actual"`
	NewActual      *string   `json:"new_actual"`
	RevisedAt      time.Time `json:"revised_at"`
}

// RevisionHistory is the JSON column type for a release's revision list.
type RevisionHistory []RevisionEntry

// Value serializes the history for storage. An empty history is stored as
// an empty JSON array, never NULL, so readers can always unmarshal it.
func (h RevisionHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the history from the store. Some drivers hand back a
// single object where a one-element array is expected; both shapes are
// accepted and coerced to a list here, at the store boundary.
func (h *RevisionHistory) Scan(value any) error {
	if value == nil {
		*h = RevisionHistory{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported revision_history type %T", value)
	}

	if len(raw) == 0 {
		*h = RevisionHistory{}
		return nil
	}

	var list []RevisionEntry
	if err := json.Unmarshal(raw, &list); err == nil {
		*h = list
		return nil
	}

	var one RevisionEntry
	if err := json.Unmarshal(raw, &one); err != nil {
		return fmt.Errorf("malformed revision_history: %w", err)
	}
	*h = RevisionHistory{one}
	return nil
}
