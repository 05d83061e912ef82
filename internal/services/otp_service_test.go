package services

import (
	"errors"
	"testing"
	"time"

	"pasar/internal/models"
	"pasar/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures dispatched messages.
type recordingNotifier struct {
	to, subject, body string
	calls             int
	err               error
}

func (n *recordingNotifier) Send(to, subject, body string) error {
	n.calls++
	n.to, n.subject, n.body = to, subject, body
	return n.err
}

func seedUser(t *testing.T, repo *repositories.MockUserRepository) *models.User {
	t.Helper()
	user := &models.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hashed",
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestOTPService_Issue(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	notifier := &recordingNotifier{}
	svc := NewOTPService(repo, notifier)

	issuedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	user := seedUser(t, repo)

	res, err := svc.Issue(user.Email, models.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, res.Dispatched)
	assert.NoError(t, res.Err)

	stored, err := repo.GetByEmail(user.Email)
	require.NoError(t, err)
	require.NotNil(t, stored.OTP)
	require.NotNil(t, stored.OTPExpiry)
	assert.GreaterOrEqual(t, *stored.OTP, 1000)
	assert.LessOrEqual(t, *stored.OTP, 9999)
	// Expiry is exactly issuance time + 30 minutes.
	assert.Equal(t, issuedAt.Add(30*time.Minute), *stored.OTPExpiry)
	assert.Equal(t, models.RoleCustomer, stored.PendingRole)

	// The rendered message carries the code and a year stamp.
	assert.Equal(t, user.Email, notifier.to)
	assert.Contains(t, notifier.body, "2026")
}

func TestOTPService_Issue_UnknownUser(t *testing.T) {
	svc := NewOTPService(repositories.NewMockUserRepository(), &recordingNotifier{})

	_, err := svc.Issue("ghost@example.com", models.RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestOTPService_Issue_MailFailureIsSwallowed(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := NewOTPService(repo, notifier)
	user := seedUser(t, repo)

	res, err := svc.Issue(user.Email, models.RoleRetailer)
	require.NoError(t, err) // mail failure never fails the caller
	assert.False(t, res.Dispatched)
	assert.Error(t, res.Err)

	// The code is stored regardless of the failed dispatch.
	stored, _ := repo.GetByEmail(user.Email)
	assert.NotNil(t, stored.OTP)
	assert.NotNil(t, stored.OTPExpiry)
}

func TestOTPService_Verify_Success(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := NewOTPService(repo, &recordingNotifier{})
	user := seedUser(t, repo)

	_, err := svc.Issue(user.Email, models.RoleCustomer)
	require.NoError(t, err)
	stored, _ := repo.GetByEmail(user.Email)

	verified, err := svc.Verify(user.Email, *stored.OTP, "")
	require.NoError(t, err)
	assert.True(t, verified.IsCustomer)
	assert.False(t, verified.IsRetailer)
	assert.Nil(t, verified.OTP)
	assert.Nil(t, verified.OTPExpiry)
	assert.Equal(t, models.Role(""), verified.PendingRole)
}

func TestOTPService_Verify_WrongCode(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := NewOTPService(repo, &recordingNotifier{})
	user := seedUser(t, repo)

	_, err := svc.Issue(user.Email, models.RoleCustomer)
	require.NoError(t, err)
	stored, _ := repo.GetByEmail(user.Email)
	wrong := *stored.OTP + 1
	if wrong > 9999 {
		wrong = 1000
	}

	_, err = svc.Verify(user.Email, wrong, "")
	assert.ErrorIs(t, err, ErrInvalidCode)

	// State unchanged: code and expiry still pending, roles still false.
	after, _ := repo.GetByEmail(user.Email)
	assert.Equal(t, *stored.OTP, *after.OTP)
	assert.NotNil(t, after.OTPExpiry)
	assert.False(t, after.IsCustomer)
}

func TestOTPService_Verify_NoPendingCode(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := NewOTPService(repo, &recordingNotifier{})
	user := seedUser(t, repo)

	_, err := svc.Verify(user.Email, 1234, "")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestOTPService_Verify_UnknownUser(t *testing.T) {
	svc := NewOTPService(repositories.NewMockUserRepository(), &recordingNotifier{})

	_, err := svc.Verify("ghost@example.com", 1234, "")
	assert.ErrorIs(t, err, ErrInvalidUser)
}

func TestOTPService_Verify_ExpiredCode(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := NewOTPService(repo, &recordingNotifier{})
	user := seedUser(t, repo)

	issuedAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }
	_, err := svc.Issue(user.Email, models.RoleCustomer)
	require.NoError(t, err)
	stored, _ := repo.GetByEmail(user.Email)

	// 31 minutes later the code is no longer accepted.
	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, err = svc.Verify(user.Email, *stored.OTP, "")
	assert.ErrorIs(t, err, ErrCodeExpired)

	after, _ := repo.GetByEmail(user.Email)
	assert.NotNil(t, after.OTP)
	assert.False(t, after.IsCustomer)
}

func TestOTPService_Verify_RoleHintFallback(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	svc := NewOTPService(repo, &recordingNotifier{})
	user := seedUser(t, repo)

	// Code stored without a pending role: the hint decides the grant.
	code := 4321
	expiry := time.Now().Add(OTPValidity)
	require.NoError(t, repo.SetOTP(user.ID, code, expiry, ""))

	verified, err := svc.Verify(user.Email, code, models.RoleRetailer)
	require.NoError(t, err)
	assert.True(t, verified.IsRetailer)
	assert.False(t, verified.IsCustomer)
}

func TestGenerateOTP_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code, 1000)
		assert.LessOrEqual(t, code, 9999)
	}
}
