package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shringarlabs/shringar/pkg/auth"
	"github.com/shringarlabs/shringar/pkg/errs"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	registered, err := svc.Register(RegisterInput{
		Name:     "Meera Sharma",
		Email:    "meera@example.com",
		Password: "a-strong-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "user", registered.User.Role)
	assert.NotEqual(t, "a-strong-password", registered.User.Password, "password must be hashed")

	claims, err := auth.ValidateToken(registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	logged, err := svc.Login(LoginInput{Email: "meera@example.com", Password: "a-strong-password"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, logged.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	input := RegisterInput{Name: "Meera", Email: "meera@example.com", Password: "a-strong-password"}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "email")
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	_, err := svc.Register(RegisterInput{Name: "Meera", Email: "meera@example.com", Password: "a-strong-password"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Email: "meera@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	// Unknown email fails with the same error.
	_, err = svc.Login(LoginInput{Email: "ghost@example.com", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService()

	registered, err := svc.Register(RegisterInput{Name: "Meera", Email: "meera@example.com", Password: "a-strong-password"})
	require.NoError(t, err)

	me, err := svc.Me(registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "meera@example.com", me.Email)

	_, err = svc.Me(9999)
	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
}
