package models

import "time"

// Guest is the root entity of the CRM. Every dependent collection below
// references it by GuestID and is removed through the cascading delete
// workflow before the row itself may go.
type Guest struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Email        *string `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone        *string `gorm:"type:varchar(50);index" json:"phone,omitempty"`
	MemberNumber *string `gorm:"type:varchar(50)" json:"member_number,omitempty"`
	AvatarURL    *string `gorm:"type:varchar(512)" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	Tags                []GuestTag          `gorm:"foreignKey:GuestID" json:"tags,omitempty"`
	TablePreferences    []TablePreference   `gorm:"foreignKey:GuestID" json:"table_preferences,omitempty"`
	FoodPreferences     []FoodPreference    `gorm:"foreignKey:GuestID" json:"food_preferences,omitempty"`
	WinePreferences     []WinePreference    `gorm:"foreignKey:GuestID" json:"wine_preferences,omitempty"`
	CocktailPreferences []CocktailPreference `gorm:"foreignKey:GuestID" json:"cocktail_preferences,omitempty"`
	SpiritsPreferences  []SpiritsPreference `gorm:"foreignKey:GuestID" json:"spirits_preferences,omitempty"`
	Allergies           []Allergy           `gorm:"foreignKey:GuestID" json:"allergies,omitempty"`
	ImportantDates      []ImportantDate     `gorm:"foreignKey:GuestID" json:"important_dates,omitempty"`
	Notables            []Notable           `gorm:"foreignKey:GuestID" json:"notables,omitempty"`
	Note                *Note               `gorm:"foreignKey:GuestID" json:"note,omitempty"`
	Connections         []Connection        `gorm:"foreignKey:GuestID" json:"connections,omitempty"`
	Visits              []Visit             `gorm:"foreignKey:GuestID" json:"visits,omitempty"`
}
