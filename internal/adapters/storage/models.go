package storage

import "time"

// ExchangeModel is the GORM model for the exchanges table
type ExchangeModel struct {
	Address    string    `gorm:"not null;default:''"`
	Args       []string  `gorm:"serializer:json"`
	CreatedAt  time.Time
	DurationMS int64     `gorm:"not null;default:0"`
	Error      string    `gorm:"not null;default:''"`
	ID         string    `gorm:"primaryKey"`
	Kind       string    `gorm:"not null;default:'';check:kind IN ('','success','failure','access_denied','raw')"`
	Message    string    `gorm:"not null;default:''"`
	StartedAt  time.Time `gorm:"not null;index:idx_started_at"`
	Verb       string    `gorm:"not null;index:idx_verb"`
}

// TableName specifies the table name for GORM
func (ExchangeModel) TableName() string { return "exchanges" }
