package auth

import (
	"context"

	"github.com/goliatone/go-errors"
)

// AccountTracker is a store we can use to retrieve accounts
type AccountTracker interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	TrackSuccessfulLogin(ctx context.Context, account *Account) error
}

// dummyPasswordHash is a bcrypt hash of a throwaway value. When a login names
// an unknown email we still run one bcrypt comparison against this hash so
// the response time matches the known-account path.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountProvider verifies credentials against the account store
type AccountProvider struct {
	store     AccountTracker
	Validator func(*Account) error
	logger    Logger
}

// NewAccountProvider will create a new AccountProvider
func NewAccountProvider(store AccountTracker) *AccountProvider {
	return &AccountProvider{
		store:     store,
		logger:    defLogger{},
		Validator: defaultAccountValidator,
	}
}

func (u *AccountProvider) WithLogger(l Logger) *AccountProvider {
	u.logger = l
	return u
}

func (u *AccountProvider) validate(account *Account) error {
	if u.Validator != nil {
		return u.Validator(account)
	}
	return defaultAccountValidator(account)
}

// VerifyIdentity will find the account, compare the password, and return the
// identity. Unknown emails and wrong passwords produce the same error.
func (u AccountProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	if identifier == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	account, err := u.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		if errors.IsNotFound(err) {
			// burn a comparison so lookup misses are not faster than
			// password mismatches
			_ = ComparePasswordAndHash(password, dummyPasswordHash)
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, ErrVerificationUnavailable.Category, ErrVerificationUnavailable.Message).
			WithTextCode(ErrVerificationUnavailable.TextCode)
	}

	if account == nil {
		_ = ComparePasswordAndHash(password, dummyPasswordHash)
		return nil, ErrInvalidCredentials
	}

	if !account.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.validate(account); err != nil {
		return nil, err
	}

	// last-login tracking never blocks a valid sign-in
	if err := u.store.TrackSuccessfulLogin(ctx, account); err != nil {
		u.logger.Error("failed to track successful login", "error", err)
	}

	return identityFromAccount(account), nil
}

func (u AccountProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	account, err := u.store.GetByEmail(ctx, NormalizeEmail(identifier))
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if account == nil {
		return nil, ErrIdentityNotFound
	}

	if err := u.validate(account); err != nil {
		return nil, err
	}

	return identityFromAccount(account), nil
}

type accountIdentity struct {
	id      string
	email   string
	name    string
	role    Role
	orgID   string
	orgName string
	active  bool
}

func identityFromAccount(account *Account) accountIdentity {
	return accountIdentity{
		id:      account.ID.String(),
		email:   account.Email,
		name:    account.Name,
		role:    account.Role,
		orgID:   account.OrgID.String(),
		orgName: account.OrganizationName(),
		active:  account.IsActive,
	}
}

func (a accountIdentity) ID() string {
	return a.id
}

func (a accountIdentity) Email() string {
	return a.email
}

func (a accountIdentity) Name() string {
	return a.name
}

func (a accountIdentity) Role() Role {
	return a.role
}

func (a accountIdentity) OrganizationID() string {
	return a.orgID
}

func (a accountIdentity) OrganizationName() string {
	return a.orgName
}

func (a accountIdentity) IsActive() bool {
	return a.active
}

var _ Identity = accountIdentity{}

func defaultAccountValidator(a *Account) error {
	if a.Role.IsValid() {
		return nil
	}
	return errors.New("account has an unknown or invalid role", errors.CategoryAuth).
		WithTextCode("INVALID_ROLE").
		WithMetadata(map[string]any{"role": a.Role, "account_id": a.ID.String()})
}
