package models

import "time"

// UserRole gates which mutating operations a user may invoke. It is set
// at signup and never changes afterwards.
type UserRole string

const (
	RoleBuyer   UserRole = "BUYER"
	RoleRealtor UserRole = "REALTOR"
	RoleAdmin   UserRole = "ADMIN"
)

// ParseUserRole maps a path/body value onto a known role.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleBuyer, RoleRealtor, RoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

type PropertyType string

const (
	PropertyResidential PropertyType = "RESIDENTIAL"
	PropertyCondo       PropertyType = "CONDO"
)

// ParsePropertyType maps a query/body value onto a known property type.
func ParsePropertyType(s string) (PropertyType, bool) {
	switch PropertyType(s) {
	case PropertyResidential, PropertyCondo:
		return PropertyType(s), true
	}
	return "", false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:120;not null" json:"name"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Email     string    `gorm:"size:190;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Home struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Address      string       `gorm:"size:255;not null" json:"address"`
	City         string       `gorm:"size:120;index;not null" json:"city"`
	Price        float64      `gorm:"not null" json:"price"`
	Bedrooms     int          `gorm:"not null" json:"number_of_bedrooms"`
	Bathrooms    int          `gorm:"not null" json:"number_of_bathrooms"`
	LandSize     float64      `json:"land_size"`
	PropertyType PropertyType `gorm:"size:20;index" json:"property_type"`
	RealtorID    uint         `gorm:"index;not null" json:"realtor_id"`
	Images       []Image      `json:"-"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type Image struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	URL    string `gorm:"size:500;not null" json:"url"`
	HomeID uint   `gorm:"index;not null" json:"home_id"`
}

// Message is append-only: nothing in the system updates or deletes one.
// RealtorID is the listing's owner at creation time, denormalized so
// inquiries stay queryable by realtor without a join.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"message"`
	HomeID    uint      `gorm:"index;not null" json:"home_id"`
	RealtorID uint      `gorm:"index;not null" json:"realtor_id"`
	BuyerID   uint      `gorm:"index;not null" json:"buyer_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// HomeResponse is the wire shape for both listing summaries and detail
// lookups. Image carries at most one URL, the first stored for the home.
type HomeResponse struct {
	ID           uint         `json:"id"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Price        float64      `json:"price"`
	Bedrooms     int          `json:"numberOfBedrooms"`
	Bathrooms    int          `json:"numberOfBathrooms"`
	LandSize     float64      `json:"landSize"`
	PropertyType PropertyType `json:"propertyType"`
	Image        string       `json:"image,omitempty"`
}

// Owner identifies the realtor who owns a listing, used for ownership
// checks and for addressing inquiries.
type Owner struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
