package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"

	"pasar/internal/models"
	"pasar/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrVerificationNeeded signals that the requested role is not held yet
	// and an OTP has been dispatched for the step-up.
	ErrVerificationNeeded = errors.New("account verification needed")
	// ErrRoleRequired signals a login request without a role selector.
	ErrRoleRequired = errors.New("a role selector (is_customer or is_retailer) is required")
	// ErrValidation wraps structurally invalid input.
	ErrValidation = errors.New("validation error")
)

// The domain part must contain no digits.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z]+\.[a-zA-Z]{2,}$`)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`

	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,len=10,numeric"`
	Country        string `json:"country"`
	State          string `json:"state"`
	City           string `json:"city"`
	Pincode        uint   `json:"pincode"`
	ProfilePicture string `json:"profile_picture"`
	Gender         string `json:"gender" validate:"omitempty,oneof=M F"`
	DOB            string `json:"dob" validate:"omitempty,datetime=2006-01-02"`

	Retailer *RetailerDetail `json:"retailer"`
}

// RetailerDetail carries the retailer extension of a profile.
type RetailerDetail struct {
	GstNo        string `json:"gst_no"`
	Organization string `json:"organization"`
}

// LoginResult is the successful outcome of the login decision.
type LoginResult struct {
	Token             TokenPair         `json:"token"`
	IsProfileComplete bool              `json:"is_profile_complete"`
	Profile           *models.User      `json:"profile"`
	IncompleteProfile map[string]string `json:"incomplete_profile"`
	Retailer          *RetailerDetail   `json:"retailer,omitempty"`
}

// AuthService implements registration and the role-aware login decision.
type AuthService struct {
	userRepo       repositories.UserRepository
	retailerRepo   repositories.RetailerRepository
	otp            *OTPService
	tokens         TokenIssuer
	requiredFields []string
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, retailerRepo repositories.RetailerRepository, otp *OTPService, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		retailerRepo:   retailerRepo,
		otp:            otp,
		tokens:         tokens,
		requiredFields: DefaultRequiredFields,
	}
}

// Register validates the request, hashes the password and creates the
// account with both role flags false. Roles are granted only through OTP
// verification. If retailer data is supplied, the detail record is created
// after the account; a failure there leaves the account in place.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if !emailPattern.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email address is malformed or its domain contains digits", ErrValidation)
	}

	if existing, err := s.userRepo.GetByUsername(req.Username); err == nil && existing != nil {
		return nil, fmt.Errorf("username '%s' already taken", req.Username)
	}
	if existing, err := s.userRepo.GetByEmail(req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' already registered", req.Email)
	}
	if req.PhoneNumber != "" {
		if existing, err := s.userRepo.GetByPhone(req.PhoneNumber); err == nil && existing != nil {
			return nil, fmt.Errorf("phone number '%s' already registered", req.PhoneNumber)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashedPassword),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		Country:        req.Country,
		State:          req.State,
		City:           req.City,
		Pincode:        req.Pincode,
		ProfilePicture: req.ProfilePicture,
		Gender:         req.Gender,
		DOB:            req.DOB,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if req.Retailer != nil {
		retailer := &models.Retailer{
			UserID:       user.ID,
			GstNo:        req.Retailer.GstNo,
			Organization: req.Retailer.Organization,
		}
		if err := s.retailerRepo.Create(retailer); err != nil {
			// The account is already committed; there is no rollback here.
			log.Printf("Warning: Failed to create retailer detail for user %s: %v", user.ID, err)
		}
	}

	return user, nil
}

// Login runs the role-aware decision tree. Outcomes:
//
//   - unknown email or wrong password: ErrInvalidCredentials
//   - no role selector: ErrRoleRequired
//   - requested role held: a LoginResult with a fresh token pair, the
//     completeness report and, for retailers, the attached detail record
//   - requested role not held (including an account with neither role): an
//     OTP is issued for that role and ErrVerificationNeeded is returned
func (s *AuthService) Login(email, password string, role models.Role) (*LoginResult, error) {
	if role == "" {
		return nil, ErrRoleRequired
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.HasRole(role) {
		// First grant of any role goes through OTP verification too.
		if _, err := s.otp.Issue(email, role); err != nil {
			return nil, fmt.Errorf("failed to issue OTP: %w", err)
		}
		return nil, ErrVerificationNeeded
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	missing := MissingFields(user, s.requiredFields)
	result := &LoginResult{
		Token:             token,
		IsProfileComplete: len(missing) == 0,
		Profile:           user,
		IncompleteProfile: missing,
	}

	if role == models.RoleRetailer {
		detail := &RetailerDetail{}
		if retailer, err := s.retailerRepo.GetByUserID(user.ID); err == nil {
			detail.GstNo = retailer.GstNo
			detail.Organization = retailer.Organization
		}
		result.Retailer = detail
	}

	return result, nil
}

// VerifyOTP validates a submitted code and grants the pending role.
func (s *AuthService) VerifyOTP(email string, code int, roleHint models.Role) (*models.User, error) {
	return s.otp.Verify(email, code, roleHint)
}

// GetProfile returns the full profile for an account ID.
func (s *AuthService) GetProfile(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ProfileUpdateRequest carries a partial profile update. Nil fields are
// left untouched.
type ProfileUpdateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Address        *string `json:"address"`
	PhoneNumber    *string `json:"phone_number"`
	Country        *string `json:"country"`
	State          *string `json:"state"`
	City           *string `json:"city"`
	Pincode        *uint   `json:"pincode"`
	ProfilePicture *string `json:"profile_picture"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=M F"`
	DOB            *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateProfile applies a partial update to the account's profile fields.
func (s *AuthService) UpdateProfile(id string, req *ProfileUpdateRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil && *req.PhoneNumber != "" && *req.PhoneNumber != user.PhoneNumber {
		if !phonePattern.MatchString(*req.PhoneNumber) {
			return nil, fmt.Errorf("%w: phone number must be exactly 10 digits", ErrValidation)
		}
		if existing, err := s.userRepo.GetByPhone(*req.PhoneNumber); err == nil && existing != nil {
			return nil, fmt.Errorf("phone number '%s' already registered", *req.PhoneNumber)
		}
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyString(&user.FirstName, req.FirstName)
	applyString(&user.LastName, req.LastName)
	applyString(&user.Address, req.Address)
	applyString(&user.PhoneNumber, req.PhoneNumber)
	applyString(&user.Country, req.Country)
	applyString(&user.State, req.State)
	applyString(&user.City, req.City)
	applyString(&user.ProfilePicture, req.ProfilePicture)
	applyString(&user.Gender, req.Gender)
	applyString(&user.DOB, req.DOB)
	if req.Pincode != nil {
		user.Pincode = *req.Pincode
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the account and its retailer detail.
func (s *AuthService) DeleteAccount(id string) error {
	if err := s.retailerRepo.DeleteByUserID(id); err != nil {
		log.Printf("Warning: Failed to delete retailer detail for user %s: %v", id, err)
	}
	return s.userRepo.Delete(id)
}

var phonePattern = regexp.MustCompile(`^\d{10}$`)
