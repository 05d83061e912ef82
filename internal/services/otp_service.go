package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// OTPValidity is how long an issued code stays valid.
const OTPValidity = 30 * time.Minute

var (
	// ErrInvalidUser is returned when no account matches the given email.
	ErrInvalidUser = errors.New("invalid user")
	// ErrInvalidCode is returned when the account has no pending code or the
	// submitted code does not match.
	ErrInvalidCode = errors.New("invalid OTP")
	// ErrCodeExpired is returned when the pending code's expiry has passed.
	ErrCodeExpired = errors.New("OTP expired")
)

// Notifier delivers a rendered message to an email address.
type Notifier interface {
	Send(to, subject, body string) error
}

// DispatchResult reports the outcome of the fire-and-forget mail dispatch.
// Issue never fails on mail errors; callers that care about delivery can
// inspect this instead.
type DispatchResult struct {
	Dispatched bool
	Err        error
}

// OTPService manages the lifecycle of one-time verification codes.
type OTPService struct {
	userRepo repositories.UserRepository
	notifier Notifier
	now      func() time.Time
}

// NewOTPService creates a new OTPService. The notifier may be nil, in which
// case codes are stored but never dispatched.
func NewOTPService(userRepo repositories.UserRepository, notifier Notifier) *OTPService {
	return &OTPService{
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

// Issue generates a 4-digit code, stores it on the account with a 30-minute
// expiry and the role a successful verification will grant, and dispatches it
// to the account's email. Mail failures are logged and reported through the
// DispatchResult; they never roll back the stored code or fail the caller.
func (s *OTPService) Issue(email string, pending models.Role) (DispatchResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return DispatchResult{}, ErrInvalidUser
	}

	code, err := generateOTP()
	if err != nil {
		return DispatchResult{}, fmt.Errorf("failed to generate OTP: %w", err)
	}

	expiry := s.now().Add(OTPValidity)
	if err := s.userRepo.SetOTP(user.ID, code, expiry, pending); err != nil {
		return DispatchResult{}, fmt.Errorf("failed to store OTP: %w", err)
	}

	if s.notifier == nil {
		log.Println("Notifier is not initialized. Skipping OTP dispatch.")
		return DispatchResult{}, nil
	}

	body := renderOTPMessage(code, s.now().Year())
	if err := s.notifier.Send(user.Email, "Your verification code", body); err != nil {
		log.Printf("Warning: Failed to dispatch OTP email to %s: %v", user.Email, err)
		return DispatchResult{Err: err}, nil
	}
	return DispatchResult{Dispatched: true}, nil
}

// Verify checks a submitted code against the account's pending code. On
// success the code and its expiry are cleared and the pending role is
// granted, all in one conditional update so two concurrent verifications
// cannot both consume the same code. Expired codes are rejected.
//
// The roleHint is used only when no pending role was recorded with the code;
// it defaults to customer.
func (s *OTPService) Verify(email string, code int, roleHint models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidUser
	}

	if user.OTP == nil || *user.OTP != code {
		return nil, ErrInvalidCode
	}
	if user.OTPExpiry != nil && user.OTPExpiry.Before(s.now()) {
		return nil, ErrCodeExpired
	}

	grant := user.PendingRole
	if grant == "" {
		grant = roleHint
	}
	if grant == "" {
		grant = models.RoleCustomer
	}

	if err := s.userRepo.ConsumeOTP(user.ID, code, grant); err != nil {
		// Lost a race against a concurrent verification.
		return nil, ErrInvalidCode
	}

	return s.userRepo.GetByID(user.ID)
}

// generateOTP draws a 4-digit decimal code uniformly from [1000, 9999].
func generateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 1000, nil
}

// renderOTPMessage renders the mail body carrying the code and a year stamp.
func renderOTPMessage(code, year int) string {
	return fmt.Sprintf(
		"Your one-time verification code is %04d.\n\nThe code is valid for 30 minutes.\n\n(c) %d Pasar",
		code, year,
	)
}
