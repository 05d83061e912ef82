package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies one of the two account roles a user can hold.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleRetailer Role = "retailer"
)

// User represents an account in the store.
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized

	FirstName      string `json:"first_name" gorm:"type:varchar(50)"`
	LastName       string `json:"last_name" gorm:"type:varchar(50)"`
	Address        string `json:"address" gorm:"type:varchar(500)"`
	PhoneNumber    string `json:"phone_number" gorm:"type:varchar(10)" validate:"omitempty,len=10,numeric"`
	Country        string `json:"country" gorm:"type:varchar(200)"`
	State          string `json:"state" gorm:"type:varchar(200)"`
	City           string `json:"city" gorm:"type:varchar(200)"`
	Pincode        uint   `json:"pincode"`
	ProfilePicture string `json:"profile_picture" gorm:"type:text"`
	Gender         string `json:"gender" gorm:"type:varchar(1)" validate:"omitempty,oneof=M F"`
	DOB            string `json:"dob" gorm:"type:varchar(10)" validate:"omitempty,datetime=2006-01-02"`

	IsCustomer bool `json:"is_customer"`
	IsRetailer bool `json:"is_retailer"`

	// A pending OTP challenge exists when OTP and OTPExpiry are both set.
	// PendingRole records which role a successful verification will grant.
	OTP         *int       `json:"-"`
	OTPExpiry   *time.Time `json:"-"`
	PendingRole Role       `json:"-" gorm:"type:varchar(10)"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// HasRole reports whether the user already holds the given role.
func (u *User) HasRole(role Role) bool {
	switch role {
	case RoleCustomer:
		return u.IsCustomer
	case RoleRetailer:
		return u.IsRetailer
	}
	return false
}

// Retailer is the one-to-one detail record for accounts holding the
// retailer role. It is owned by its User and removed with it.
type Retailer struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	User         User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	GstNo        string `json:"gst_no" gorm:"type:varchar(15)"`
	Organization string `json:"organization" gorm:"type:varchar(200)"`
	gorm.Model
}
