package models

import "time"

// Vector is one generated AES-128 ECB encrypt record.
type Vector struct {
	ID         string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     string `gorm:"type:uuid;not null" json:"user_id"`
	Algorithm  string `gorm:"not null" json:"algorithm"`
	Mode       string `json:"mode"`
	TestMode   string `json:"test_mode"`   // KAT, MMT or MCT
	KatVariant string `json:"kat_variant"` // GFSBOX, KEYSBOX, VARKEY, VARTXT
	Count      int    `json:"count"`

	KeyHex    string  `json:"key_hex"`
	InputHex  *string `json:"input_hex"`
	OutputHex *string `json:"output_hex"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (Vector) TableName() string { return "vectors" }
