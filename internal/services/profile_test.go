package services_test

import (
	"testing"

	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/stretchr/testify/assert"
)

func completeUser() *models.User {
	return &models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		FirstName:      "Alice",
		LastName:       "Smith",
		Address:        "1 Main St",
		PhoneNumber:    "9876543210",
		Country:        "India",
		State:          "Karnataka",
		City:           "Bengaluru",
		Pincode:        560001,
		ProfilePicture: "https://cdn.example.com/alice.png",
		Gender:         "F",
	}
}

func TestIsProfileComplete(t *testing.T) {
	user := completeUser()
	assert.True(t, services.IsProfileComplete(user, services.DefaultRequiredFields))
	assert.Empty(t, services.MissingFields(user, services.DefaultRequiredFields))
}

func TestMissingFields_EmptyValues(t *testing.T) {
	user := completeUser()
	user.FirstName = ""
	user.City = ""

	missing := services.MissingFields(user, services.DefaultRequiredFields)
	assert.Len(t, missing, 2)
	assert.Contains(t, missing, "first_name")
	assert.Contains(t, missing, "city")
	assert.False(t, services.IsProfileComplete(user, services.DefaultRequiredFields))
}

func TestMissingFields_LiteralNullString(t *testing.T) {
	user := completeUser()
	user.ProfilePicture = "null"

	missing := services.MissingFields(user, services.DefaultRequiredFields)
	assert.Contains(t, missing, "profile_picture")
	assert.Equal(t, "null", missing["profile_picture"])
}

func TestMissingFields_ZeroPincode(t *testing.T) {
	user := completeUser()
	user.Pincode = 0

	missing := services.MissingFields(user, services.DefaultRequiredFields)
	assert.Contains(t, missing, "pincode")
}

func TestMissingFields_CustomRequiredList(t *testing.T) {
	user := &models.User{Username: "bob", Email: "bob@example.com"}

	// A caller with a narrower policy sees only its own fields.
	missing := services.MissingFields(user, []string{"username", "email", "dob"})
	assert.Len(t, missing, 1)
	assert.Contains(t, missing, "dob")

	// Role flags can be part of the required set too.
	missing = services.MissingFields(user, []string{"is_customer", "is_retailer"})
	assert.Len(t, missing, 2)
	user.IsCustomer = true
	missing = services.MissingFields(user, []string{"is_customer", "is_retailer"})
	assert.Len(t, missing, 1)
	assert.Contains(t, missing, "is_retailer")
}
