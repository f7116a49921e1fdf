package room

import (
	"time"

	"github.com/shopspring/decimal"
)

// Level is an opaque room category tag. It has no behavioural effect on
// booking rules; it exists for reporting and room administration only.
type Level string

const (
	LevelEconom   Level = "ECONOM"
	LevelStandard Level = "STANDARD"
	LevelLux      Level = "LUX"
)

func (l Level) Valid() bool {
	switch l {
	case LevelEconom, LevelStandard, LevelLux:
		return true
	}
	return false
}

// Room is a bookable hotel room. Name is the lookup key used by booking
// creation and is expected to be unique. NightlyRate feeds the departures
// revenue report and never influences the booking contract.
type Room struct {
	RoomID      int64           `json:"roomId"`
	Name        string          `json:"name"`
	Level       Level           `json:"level"`
	NightlyRate decimal.Decimal `json:"nightlyRate"`
	CreateDate  time.Time       `json:"createDate"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewRoom(name string, level Level, nightlyRate decimal.Decimal) *Room {
	now := time.Now()
	return &Room{
		Name:        name,
		Level:       level,
		NightlyRate: nightlyRate,
		CreateDate:  now,
		UpdatedAt:   now,
	}
}
