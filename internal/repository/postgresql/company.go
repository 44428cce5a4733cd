package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/biztime-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/biztime-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// List implements company.CompanyRepository.
func (c *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT code, name
		FROM companies
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", database.ClassifyError(err))
	}
	defer rows.Close()

	companies := make([]company.Company, 0)
	for rows.Next() {
		var found company.Company
		if err := rows.Scan(&found.Code, &found.Name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, found)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", database.ClassifyError(err))
	}

	return companies, nil
}

// GetByCode implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByCode(ctx context.Context, code string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT code, name, description
		FROM companies
		WHERE code = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, code).Scan(&found.Code, &found.Name, &found.Description)
	if err == pgx.ErrNoRows {
		return company.Company{}, fmt.Errorf("company not found: %w", err)
	}
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to get company %s: %w", code, database.ClassifyError(err))
	}

	return found, nil
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING code, name, description
	`

	var created company.Company
	err := q.QueryRow(ctx, query, newCompany.Code, newCompany.Name, newCompany.Description).
		Scan(&created.Code, &created.Name, &created.Description)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", database.ClassifyError(err))
	}

	return created, nil
}

// Update implements company.CompanyRepository. Only name and description are written.
func (c *companyRepositoryImpl) Update(ctx context.Context, updated company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $1, description = $2
		WHERE code = $3
		RETURNING code, name, description
	`

	var result company.Company
	err := q.QueryRow(ctx, query, updated.Name, updated.Description, updated.Code).
		Scan(&result.Code, &result.Name, &result.Description)
	if err == pgx.ErrNoRows {
		return company.Company{}, fmt.Errorf("company not found: %w", err)
	}
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to update company %s: %w", updated.Code, database.ClassifyError(err))
	}

	return result, nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepositoryImpl) Delete(ctx context.Context, code string) error {
	q := GetQuerier(ctx, c.db)

	query := `DELETE FROM companies WHERE code = $1`

	commandTag, err := q.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", database.ClassifyError(err))
	}

	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("company not found: %w", pgx.ErrNoRows)
	}

	return nil
}
