package auth

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Accounts interface {
	repository.Repository[*Account]

	GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Account, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*Account, error)

	TrackSuccessfulLogin(ctx context.Context, account *Account) error
	TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, account *Account) error

	Register(ctx context.Context, account *Account) (*Account, error)
	RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error)
	GetOrCreate(ctx context.Context, record *Account) (*Account, error)
	GetOrCreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error)
	Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error)
	Upsert(ctx context.Context, record *Account, criteria ...repository.UpdateCriteria) (*Account, error)
	UpsertTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.UpdateCriteria) (*Account, error)

	Deactivate(ctx context.Context, id uuid.UUID) (*Account, error)
	DeactivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error)
	Reactivate(ctx context.Context, id uuid.UUID) (*Account, error)
	ReactivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error)
}

type accounts struct {
	repository.Repository[*Account]
	db *bun.DB
}

var (
	_ Accounts                        = (*accounts)(nil)
	_ repository.Repository[*Account] = (*accounts)(nil)
)

func NewAccountsRepository(db *bun.DB) Accounts {
	repo := repository.NewRepository[*Account](db, repository.ModelHandlers[*Account]{
		NewRecord: func() *Account { return &Account{} },
		GetID: func(a *Account) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Account, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &accounts{
		Repository: repo,
		db:         db,
	}
}

func (a *accounts) Register(ctx context.Context, account *Account) (*Account, error) {
	return a.RegisterTx(ctx, a.db, account)
}

func (a *accounts) RegisterTx(ctx context.Context, tx bun.IDB, account *Account) (*Account, error) {
	return a.CreateTx(ctx, tx, account)
}

func (a *accounts) GetByEmail(ctx context.Context, email string, criteria ...repository.SelectCriteria) (*Account, error) {
	return a.GetByEmailTx(ctx, a.db, email, criteria...)
}

// GetByEmailTx loads the account and its organization in one query so claims
// enrichment never needs a second lookup.
func (a *accounts) GetByEmailTx(ctx context.Context, tx bun.IDB, email string, criteria ...repository.SelectCriteria) (*Account, error) {
	record := &Account{}
	q := tx.NewSelect().Model(record).Relation("Organization")

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.email = ?", NormalizeEmail(email)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": NormalizeEmail(email),
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *accounts) Create(ctx context.Context, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *accounts) CreateTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.InsertCriteria) (*Account, error) {
	prepareAccountDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *accounts) TrackSuccessfulLogin(ctx context.Context, account *Account) error {
	return a.TrackSuccessfulLoginTx(ctx, a.db, account)
}

func (a *accounts) TrackSuccessfulLoginTx(ctx context.Context, tx bun.IDB, account *Account) error {
	// NOTE: Updating using the ORM fails due to a bug, it wont persist the
	// last_login_at field when nothing else changed.
	loggedInAt := time.Now()
	_, err := tx.NewRaw(`
		UPDATE "accounts" AS "acc"
		SET
			"last_login_at" = ?
		WHERE
			("acc".id = ?)
			AND "acc"."deleted_at" IS NULL;
	`, loggedInAt, account.ID).Exec(ctx)

	return err
}

func (a *accounts) Upsert(ctx context.Context, record *Account, criteria ...repository.UpdateCriteria) (*Account, error) {
	return a.UpsertTx(ctx, a.db, record, criteria...)
}

func (a *accounts) UpsertTx(ctx context.Context, tx bun.IDB, record *Account, criteria ...repository.UpdateCriteria) (*Account, error) {
	identifier := record.Email
	if record.ID != uuid.Nil {
		identifier = record.ID.String()
	}

	account, err := a.Repository.GetByIdentifierTx(ctx, tx, identifier)
	if err == nil {
		record.ID = account.ID
		return a.Repository.UpdateTx(ctx, tx, record, criteria...)
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	return a.RegisterTx(ctx, tx, record)
}

func (a *accounts) GetOrCreate(ctx context.Context, record *Account) (*Account, error) {
	return a.GetOrCreateTx(ctx, a.db, record)
}

func (a *accounts) GetOrCreateTx(ctx context.Context, tx bun.IDB, record *Account) (*Account, error) {
	identifier := record.Email
	if record.ID != uuid.Nil {
		identifier = record.ID.String()
	}

	account, err := a.Repository.GetByIdentifierTx(ctx, tx, identifier)
	if err == nil {
		return account, nil
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	return a.CreateTx(ctx, tx, record)
}

func (a *accounts) Deactivate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return a.DeactivateTx(ctx, a.db, id)
}

func (a *accounts) DeactivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error) {
	return a.setActive(ctx, tx, id, false)
}

func (a *accounts) Reactivate(ctx context.Context, id uuid.UUID) (*Account, error) {
	return a.ReactivateTx(ctx, a.db, id)
}

func (a *accounts) ReactivateTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Account, error) {
	return a.setActive(ctx, tx, id, true)
}

func (a *accounts) setActive(ctx context.Context, tx bun.IDB, id uuid.UUID, active bool) (*Account, error) {
	record := &Account{
		ID:       id,
		IsActive: active,
	}

	return a.Repository.UpdateTx(ctx, tx, record, repository.UpdateByID(id.String()))
}

func prepareAccountDefaults(record *Account) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleUser
	}

	record.Email = NormalizeEmail(record.Email)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
