package services

import (
	"strconv"

	"pasar/internal/models"
)

// DefaultRequiredFields is the field list checked for profile completeness
// on the login path. The list is configuration: callers with different
// completeness policies pass their own.
var DefaultRequiredFields = []string{
	"username", "email", "first_name", "last_name", "address",
	"phone_number", "country", "state", "city", "pincode",
	"profile_picture", "gender",
}

// MissingFields returns the required fields whose value is empty or the
// literal string "null", mapped to the offending value. Pure function, no
// side effects.
func MissingFields(user *models.User, required []string) map[string]string {
	missing := make(map[string]string)
	for _, field := range required {
		value := profileFieldValue(user, field)
		if value == "" || value == "null" {
			missing[field] = value
		}
	}
	return missing
}

// IsProfileComplete reports whether no required field is missing.
func IsProfileComplete(user *models.User, required []string) bool {
	return len(MissingFields(user, required)) == 0
}

func profileFieldValue(user *models.User, field string) string {
	switch field {
	case "username":
		return user.Username
	case "email":
		return user.Email
	case "first_name":
		return user.FirstName
	case "last_name":
		return user.LastName
	case "address":
		return user.Address
	case "phone_number":
		return user.PhoneNumber
	case "country":
		return user.Country
	case "state":
		return user.State
	case "city":
		return user.City
	case "pincode":
		if user.Pincode == 0 {
			return ""
		}
		return strconv.FormatUint(uint64(user.Pincode), 10)
	case "profile_picture":
		return user.ProfilePicture
	case "gender":
		return user.Gender
	case "dob":
		return user.DOB
	case "is_customer":
		if !user.IsCustomer {
			return ""
		}
		return "true"
	case "is_retailer":
		if !user.IsRetailer {
			return ""
		}
		return "true"
	}
	return ""
}
