package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleBusiness Role = "business"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// DefaultFarmerRating is used when a farmer has no rating history yet.
const DefaultFarmerRating = 3.5

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type Geolocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type BankDetails struct {
	AccountName   string `json:"accountName"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	Branch        string `json:"branch"`
	IFSCCode      string `json:"ifscCode"`
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

type Document struct {
	Name               string         `json:"name"`
	URL                string         `json:"url"`
	VerificationStatus DocumentStatus `json:"verificationStatus"`
}

type User struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`

	IsVerified          bool       `json:"isVerified"`
	FailedLoginAttempts int        `json:"-"`
	LockUntil           *time.Time `json:"-"`
	IsSuspended         bool       `json:"isSuspended"`

	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`

	// Farmer fields
	FarmName        string      `json:"farmName,omitempty"`
	FarmAddress     Address     `json:"farmAddress" gorm:"embedded;embeddedPrefix:farm_"`
	FarmGeolocation Geolocation `json:"farmGeolocation" gorm:"embedded;embeddedPrefix:geo_"`
	CropsGrown      []string    `json:"cropsGrown" gorm:"serializer:json"`
	BusinessName    string      `json:"businessName,omitempty"`
	BankDetails     BankDetails `json:"bankDetails" gorm:"embedded;embeddedPrefix:bank_"`

	// Business fields
	CompanyName              string   `json:"companyName,omitempty"`
	BusinessType             string   `json:"businessType,omitempty"`
	CompanyAddress           string   `json:"companyAddress,omitempty"`
	GSTIN                    string   `json:"gstin,omitempty"`
	CIN                      string   `json:"cin,omitempty"`
	ContactPersonName        string   `json:"contactPersonName,omitempty"`
	ContactPersonDesignation string   `json:"contactPersonDesignation,omitempty"`
	ProduceRequired          []string `json:"produceRequired" gorm:"serializer:json"`

	// Customer fields
	DeliveryAddress string `json:"deliveryAddress,omitempty"`
	BillingAddress  string `json:"billingAddress,omitempty"`

	Documents []Document `json:"documents" gorm:"serializer:json"`
	Photos    []string   `json:"photos" gorm:"serializer:json"`

	Rating float64 `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// RatingOrDefault guards against unset ratings on accounts created before
// the rating column got a default.
func (u *User) RatingOrDefault() float64 {
	if u.Rating <= 0 {
		return DefaultFarmerRating
	}
	return u.Rating
}

func (u *User) Locked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}
