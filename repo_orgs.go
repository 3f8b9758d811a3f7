package auth

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Organizations interface {
	repository.Repository[*Organization]

	GetBySlug(ctx context.Context, slug string, criteria ...repository.SelectCriteria) (*Organization, error)
	GetBySlugTx(ctx context.Context, tx bun.IDB, slug string, criteria ...repository.SelectCriteria) (*Organization, error)

	Create(ctx context.Context, record *Organization, criteria ...repository.InsertCriteria) (*Organization, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Organization, criteria ...repository.InsertCriteria) (*Organization, error)
	GetOrCreate(ctx context.Context, record *Organization) (*Organization, error)
	GetOrCreateTx(ctx context.Context, tx bun.IDB, record *Organization) (*Organization, error)
}

type organizations struct {
	repository.Repository[*Organization]
	db *bun.DB
}

var (
	_ Organizations                        = (*organizations)(nil)
	_ repository.Repository[*Organization] = (*organizations)(nil)
)

func NewOrganizationsRepository(db *bun.DB) Organizations {
	repo := repository.NewRepository[*Organization](db, repository.ModelHandlers[*Organization]{
		NewRecord: func() *Organization { return &Organization{} },
		GetID: func(o *Organization) uuid.UUID {
			if o == nil {
				return uuid.Nil
			}
			return o.ID
		},
		SetID: func(o *Organization, id uuid.UUID) {
			if o != nil {
				o.ID = id
			}
		},
		GetIdentifier: func() string {
			return "slug"
		},
	})

	return &organizations{
		Repository: repo,
		db:         db,
	}
}

func (o *organizations) GetBySlug(ctx context.Context, slug string, criteria ...repository.SelectCriteria) (*Organization, error) {
	return o.GetBySlugTx(ctx, o.db, slug, criteria...)
}

func (o *organizations) GetBySlugTx(ctx context.Context, tx bun.IDB, slug string, criteria ...repository.SelectCriteria) (*Organization, error) {
	record := &Organization{}
	q := tx.NewSelect().Model(record).Relation("Settings")

	for _, c := range criteria {
		q.Apply(c)
	}

	err := q.
		Where("?TableAlias.slug = ?", slug).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"slug": slug,
				})
		}
		return nil, err
	}

	return record, nil
}

func (o *organizations) Create(ctx context.Context, record *Organization, criteria ...repository.InsertCriteria) (*Organization, error) {
	return o.CreateTx(ctx, o.db, record, criteria...)
}

func (o *organizations) CreateTx(ctx context.Context, tx bun.IDB, record *Organization, criteria ...repository.InsertCriteria) (*Organization, error) {
	prepareOrganizationDefaults(record)
	return o.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (o *organizations) GetOrCreate(ctx context.Context, record *Organization) (*Organization, error) {
	return o.GetOrCreateTx(ctx, o.db, record)
}

func (o *organizations) GetOrCreateTx(ctx context.Context, tx bun.IDB, record *Organization) (*Organization, error) {
	identifier := record.Slug
	if record.ID != uuid.Nil {
		identifier = record.ID.String()
	}

	org, err := o.Repository.GetByIdentifierTx(ctx, tx, identifier)
	if err == nil {
		return org, nil
	}

	if !repository.IsRecordNotFound(err) {
		return nil, err
	}

	return o.CreateTx(ctx, tx, record)
}

func prepareOrganizationDefaults(record *Organization) {
	if record == nil {
		return
	}

	if record.ContractTier == "" {
		record.ContractTier = TierProfessional
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
