package domain

import (
	"time"

	"gorm.io/datatypes"
)

// SaveRecord is the single named durable record holding a serialized SimulationState.
type SaveRecord struct {
	Name      string         `gorm:"column:name;type:varchar(64);primaryKey" json:"name"`
	Payload   datatypes.JSON `gorm:"column:payload;not null" json:"payload"`
	CreatedAt time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
}

func (SaveRecord) TableName() string {
	return "saves"
}
