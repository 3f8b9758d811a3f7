package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Organizations() Organizations
	OrganizationSettings() repository.Repository[*OrganizationSettings]
}

func NewOrganizationSettingsRepository(db *bun.DB) repository.Repository[*OrganizationSettings] {
	handlers := repository.ModelHandlers[*OrganizationSettings]{
		NewRecord: func() *OrganizationSettings {
			return &OrganizationSettings{}
		},
		GetID: func(record *OrganizationSettings) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return record.ID
		},
		SetID: func(record *OrganizationSettings, id uuid.UUID) {
			record.ID = id
		},
		GetIdentifier: func() string {
			return "org_id"
		},
	}
	return repository.NewRepository(db, handlers)
}

type mngr struct {
	db          *bun.DB
	accounts    Accounts
	orgs        Organizations
	orgSettings repository.Repository[*OrganizationSettings]
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:          db,
		accounts:    NewAccountsRepository(db),
		orgs:        NewOrganizationsRepository(db),
		orgSettings: NewOrganizationSettingsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}

	if m.orgs == nil {
		return errors.New("repository organizations should be initialized")
	}

	if m.orgSettings == nil {
		return errors.New("repository organization settings should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts {
	return m.accounts
}

func (m mngr) Organizations() Organizations {
	return m.orgs
}

func (m mngr) OrganizationSettings() repository.Repository[*OrganizationSettings] {
	return m.orgSettings
}
