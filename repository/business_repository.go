package repository

import (
	"context"

	"healthbridge-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BusinessRepository handles database operations for businesses and their
// representatives
type BusinessRepository struct {
	db *pgxpool.Pool
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *pgxpool.Pool) *BusinessRepository {
	return &BusinessRepository{db: db}
}

const businessColumns = `
	id, email, legal_name, website, description, business_type, ein,
	address, phone, industry_mcc_code, average_transaction_size,
	average_monthly_transaction_volume, maximum_transaction_size,
	accept_terms_of_service, billing_entity_id`

func scanBusiness(row interface{ Scan(...interface{}) error }) (*models.Business, error) {
	b := &models.Business{}
	var legalName, website, description, ein, address, phone, mcc *string
	var businessType *models.BusinessType

	err := row.Scan(
		&b.ID,
		&b.Email,
		&legalName,
		&website,
		&description,
		&businessType,
		&ein,
		&address,
		&phone,
		&mcc,
		&b.AverageTransactionSize,
		&b.AverageMonthlyTransactionVolume,
		&b.MaximumTransactionSize,
		&b.AcceptTermsOfService,
		&b.BillingEntityID,
	)
	if err != nil {
		return nil, err
	}

	// Nullable text columns collapse to "" on the model; completeness
	// treats empty and NULL the same way.
	b.LegalName = deref(legalName)
	b.Website = deref(website)
	b.Description = deref(description)
	b.EIN = deref(ein)
	b.Address = deref(address)
	b.Phone = deref(phone)
	b.IndustryMccCode = deref(mcc)
	if businessType != nil {
		b.BusinessType = *businessType
	}

	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetByID retrieves the business keyed to a user ID
func (r *BusinessRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return scanBusiness(r.db.QueryRow(ctx, query, id))
}

// SaveKYB upserts the business row for a user and appends its
// representatives in a single transaction. Either both writes land or
// neither does.
func (r *BusinessRepository) SaveKYB(
	ctx context.Context,
	business *models.Business,
	reps []*models.BusinessRepresentative,
) (*models.Business, []*models.BusinessRepresentative, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO businesses (
			id, email, legal_name, website, description, business_type, ein,
			address, phone, industry_mcc_code, average_transaction_size,
			average_monthly_transaction_volume, maximum_transaction_size,
			accept_terms_of_service
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			legal_name = EXCLUDED.legal_name,
			website = EXCLUDED.website,
			description = EXCLUDED.description,
			business_type = EXCLUDED.business_type,
			ein = EXCLUDED.ein,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			industry_mcc_code = EXCLUDED.industry_mcc_code,
			average_transaction_size = EXCLUDED.average_transaction_size,
			average_monthly_transaction_volume = EXCLUDED.average_monthly_transaction_volume,
			maximum_transaction_size = EXCLUDED.maximum_transaction_size,
			accept_terms_of_service = EXCLUDED.accept_terms_of_service
		RETURNING ` + businessColumns

	updated, err := scanBusiness(tx.QueryRow(
		ctx, query,
		business.ID,
		business.Email,
		business.LegalName,
		business.Website,
		business.Description,
		business.BusinessType,
		business.EIN,
		business.Address,
		business.Phone,
		business.IndustryMccCode,
		business.AverageTransactionSize,
		business.AverageMonthlyTransactionVolume,
		business.MaximumTransactionSize,
		business.AcceptTermsOfService,
	))
	if err != nil {
		return nil, nil, err
	}

	repQuery := `
		INSERT INTO business_representatives (
			business_id, legal_name, personal_address, email, date_of_birth,
			full_ssn, role, ownership_percentage, job_title
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	for _, rep := range reps {
		rep.BusinessID = business.ID
		err := tx.QueryRow(
			ctx, repQuery,
			rep.BusinessID,
			rep.LegalName,
			rep.PersonalAddress,
			rep.Email,
			rep.DateOfBirth,
			rep.FullSSN,
			rep.Role,
			rep.OwnershipPct,
			rep.JobTitle,
		).Scan(&rep.ID)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return updated, reps, nil
}

// SetBillingEntity records the external billing entity ID for a business
func (r *BusinessRepository) SetBillingEntity(ctx context.Context, id uuid.UUID, entityID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE businesses SET billing_entity_id = $2 WHERE id = $1`,
		id, entityID,
	)
	return err
}
