package storefront

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserStore is the slice of the users repository the provider needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// UserProvider resolves identities against the users store.
type UserProvider struct {
	store     UserStore
	Validator func(*User) error
	logger    Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:     store,
		logger:    defLogger{},
		Validator: defaultValidator,
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

func (u *UserProvider) validate(user *User) error {
	if u.Validator != nil {
		return u.Validator(user)
	}
	return defaultValidator(user)
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown accounts and password mismatches produce the same error
// so callers cannot probe for registered emails.
func (u *UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without a password check.
func (u *UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := u.validate(user); err != nil {
		return nil, err
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id       int64
	username string
	email    string
	role     UserRole
}

func (a authIdentity) ID() int64 {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() UserRole {
	return a.role
}

var _ Identity = authIdentity{}

func identityFromUser(user *User) authIdentity {
	user.EnsureRole()
	return authIdentity{
		id:       user.ID,
		username: user.Name,
		email:    user.Email,
		role:     user.Role,
	}
}

func defaultValidator(u *User) error {
	if u == nil {
		return ErrInvalidCredentials
	}

	u.EnsureRole()
	if u.Role.IsValid() {
		return nil
	}

	return errors.New("user has an unknown or invalid role", errors.CategoryAuth).
		WithTextCode("INVALID_ROLE").
		WithMetadata(map[string]any{"role": u.Role, "user_id": u.ID})
}
