package domain

import (
	"strings"
	"time"
)

type Guest struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	FirstName     string     `gorm:"size:120;not null" json:"firstName" validate:"required,max=120"`
	LastName      string     `gorm:"size:120;not null" json:"lastName" validate:"required,max=120"`
	Email         string     `gorm:"size:191;uniqueIndex" json:"email" validate:"required,email"`
	Phone         string     `gorm:"size:64" json:"phone"`
	Nationality   string     `gorm:"size:120" json:"nationality"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	Address       string     `gorm:"size:255" json:"address"`
	City          string     `gorm:"size:120" json:"city"`
	Country       string     `gorm:"size:120" json:"country"`
	VIPStatus     bool       `json:"vipStatus"`
	LoyaltyNumber string     `gorm:"size:64" json:"loyaltyNumber"`
	Notes         string     `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (g *Guest) GetID() int64   { return g.ID }
func (g *Guest) SetID(id int64) { g.ID = id }
func (g *Guest) Kind() Kind     { return KindGuest }

func (g *Guest) Prepare() {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
}

func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}
