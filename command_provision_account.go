package auth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type ProvisionAccountMessage struct {
	Email            string       `json:"email"`
	Name             string       `json:"name"`
	Role             Role         `json:"role"`
	Password         string       `json:"password"`
	OrganizationSlug string       `json:"organization_slug"`
	OrganizationName string       `json:"organization_name"`
	ContractTier     ContractTier `json:"contract_tier"`
	UseHashid        bool
}

func (e ProvisionAccountMessage) Type() string { return "account.provision" }

// ProvisionAccountHandler creates the organization (when missing) and the
// account inside one transaction, so a failed account insert never leaves an
// orphan tenant behind.
type ProvisionAccountHandler struct {
	repo RepositoryManager
}

func NewProvisionAccountHandler(repo RepositoryManager) *ProvisionAccountHandler {
	return &ProvisionAccountHandler{repo: repo}
}

func (h *ProvisionAccountHandler) Execute(ctx context.Context, event ProvisionAccountMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account provisioning",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ProvisionAccountHandler) execute(ctx context.Context, event ProvisionAccountMessage) error {
	account := &Account{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		org := &Organization{
			Slug:         event.OrganizationSlug,
			Name:         getOrganizationName(event.OrganizationName, event.OrganizationSlug),
			ContractTier: event.ContractTier,
		}

		org, err := h.repo.Organizations().GetOrCreateTx(ctx, tx, org)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not resolve organization")
		}

		hash, err := HashPassword(event.Password)
		if err != nil {
			var richErr *goerrors.Error
			if goerrors.As(err, &richErr) {
				return goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account.PasswordHash = hash
		account.Email = event.Email
		account.Name = event.Name
		account.Role = event.Role
		account.OrgID = org.ID
		account.IsActive = true
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				account.ID = id
			}
		}

		if account, err = h.repo.Accounts().CreateTx(ctx, tx, account); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create account")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return richErr
		}

		return goerrors.Wrap(err, goerrors.CategoryInternal, "account provisioning transaction failed")
	}

	return nil
}

func getOrganizationName(name, slug string) string {
	if name != "" {
		return name
	}

	parts := strings.Split(slug, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}

	return strings.Join(parts, " ")
}
