package account_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/xy-planning-network/prestapp"
	"github.com/xy-planning-network/prestapp/account"
	"github.com/xy-planning-network/prestapp/auth"
	"github.com/xy-planning-network/prestapp/auth/authmock"
	"github.com/xy-planning-network/prestapp/logger"
)

var testErr = errors.New("just testing")

type fakeUsers struct {
	created []prestapp.User
	err     error
}

func (f *fakeUsers) Create(_ context.Context, u *prestapp.User) error {
	if f.err != nil {
		return f.err
	}

	u.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *u)
	return nil
}

func newTestRegistrar(t *testing.T, users account.UserCreator, opts ...account.RegistrarOpt) (*account.Registrar, *authmock.MockIdentityProvider) {
	t.Helper()

	l := logger.New(logger.WithWriter(io.Discard))
	idp := authmock.NewMockIdentityProvider(gomock.NewController(t))
	s, err := auth.NewService(auth.Config{
		ClientID:     "client-123",
		ClientSecret: "shh-secret",
		Region:       "us-east-1",
		UserPoolID:   "us-east-1_pool",
	}, idp, l)
	require.Nil(t, err)

	return account.NewRegistrar(s, users, l, opts...), idp
}

var testReg = account.Registration{
	Email:       "ada@example.com",
	Name:        "Ada Lovelace",
	Password:    "hunter22",
	PhoneNumber: "5551234567",
}

func TestRegister(t *testing.T) {
	// Arrange
	users := new(fakeUsers)
	r, idp := newTestRegistrar(t, users)

	var attrs []string
	gomock.InOrder(
		idp.EXPECT().
			SignUp(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
				for _, a := range in.UserAttributes {
					attrs = append(attrs, aws.ToString(a.Name))
				}
				return &cip.SignUpOutput{UserSub: aws.String("sub-123")}, nil
			}),
		idp.EXPECT().AdminConfirmSignUp(gomock.Any(), gomock.Any()).Return(&cip.AdminConfirmSignUpOutput{}, nil),
	)

	// Act
	u, err := r.Register(context.Background(), testReg)

	// Assert
	require.Nil(t, err)
	require.Equal(t, uint(1), u.ID)
	require.Equal(t, "sub-123", u.ExternalID)
	require.Equal(t, "ada@example.com", u.Email)
	require.Equal(t, "Ada Lovelace", u.Name)
	require.Equal(t, "5551234567", u.PhoneNumber)
	require.Len(t, users.created, 1)
	require.Equal(t, "5551234567", users.created[0].PhoneNumber)
	require.ElementsMatch(t, []string{"email", "name"}, attrs)
}

func TestRegisterSignUpFails(t *testing.T) {
	// Arrange
	users := new(fakeUsers)
	r, idp := newTestRegistrar(t, users)
	idp.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(nil, testErr)

	// Act
	u, err := r.Register(context.Background(), testReg)

	// Assert
	require.ErrorIs(t, err, auth.ErrProvider)
	require.Zero(t, u)
	require.Empty(t, users.created)
}

func TestRegisterConfirmFails(t *testing.T) {
	// Arrange
	users := new(fakeUsers)
	r, idp := newTestRegistrar(t, users)

	gomock.InOrder(
		idp.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(&cip.SignUpOutput{UserSub: aws.String("sub-123")}, nil),
		idp.EXPECT().AdminConfirmSignUp(gomock.Any(), gomock.Any()).Return(nil, testErr),
		idp.EXPECT().AdminDeleteUser(gomock.Any(), gomock.Any()).Return(&cip.AdminDeleteUserOutput{}, nil),
	)

	// Act
	_, err := r.Register(context.Background(), testReg)

	// Assert
	require.ErrorIs(t, err, auth.ErrProvider)
	require.Empty(t, users.created)
}

func TestRegisterStoreFails(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []account.RegistrarOpt
		rollback bool
	}{
		{"rollback", nil, true},
		{"without-rollback", []account.RegistrarOpt{account.WithoutRollback()}, false},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			users := &fakeUsers{err: prestapp.ErrExists}
			r, idp := newTestRegistrar(t, users, tc.opts...)

			idp.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(&cip.SignUpOutput{UserSub: aws.String("sub-123")}, nil)
			idp.EXPECT().AdminConfirmSignUp(gomock.Any(), gomock.Any()).Return(&cip.AdminConfirmSignUpOutput{}, nil)
			if tc.rollback {
				idp.EXPECT().
					AdminDeleteUser(gomock.Any(), &cip.AdminDeleteUserInput{
						UserPoolId: aws.String("us-east-1_pool"),
						Username:   aws.String("ada@example.com"),
					}).
					Return(&cip.AdminDeleteUserOutput{}, nil)
			}

			// Act
			u, err := r.Register(context.Background(), testReg)

			// Assert
			require.ErrorIs(t, err, prestapp.ErrExists)
			require.Zero(t, u)
		})
	}
}

func TestRegisterRollbackFails(t *testing.T) {
	// Arrange
	users := &fakeUsers{err: prestapp.ErrUnexpected}
	r, idp := newTestRegistrar(t, users)

	idp.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(&cip.SignUpOutput{UserSub: aws.String("sub-123")}, nil)
	idp.EXPECT().AdminConfirmSignUp(gomock.Any(), gomock.Any()).Return(&cip.AdminConfirmSignUpOutput{}, nil)
	idp.EXPECT().AdminDeleteUser(gomock.Any(), gomock.Any()).Return(nil, testErr)

	// Act
	_, err := r.Register(context.Background(), testReg)

	// Assert
	require.ErrorIs(t, err, prestapp.ErrUnexpected)
	require.ErrorIs(t, err, auth.ErrProvider)
}
