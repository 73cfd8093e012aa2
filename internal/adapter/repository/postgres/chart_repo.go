package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
)

// ChartRepository implements usecase.ChartRepository.
type ChartRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewChartRepository creates a new ChartRepository.
func NewChartRepository(pool *pgxpool.Pool) *ChartRepository {
	return &ChartRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// GetMapping returns the company's role overrides. Companies with no
// overrides get an empty mapping; defaults apply at resolution time.
func (r *ChartRepository) GetMapping(ctx context.Context, companyID string) (*domain.ChartMapping, error) {
	rows, err := r.queries.GetCompanyAccounts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	accounts := make(map[domain.AccountRole]string, len(rows))
	for _, row := range rows {
		accounts[domain.AccountRole(row.Role)] = row.AccountID
	}

	return &domain.ChartMapping{
		CompanyID: companyID,
		Accounts:  accounts,
	}, nil
}

// UpsertAccount stores one role override for a company.
func (r *ChartRepository) UpsertAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string) error {
	return r.queries.UpsertCompanyAccount(ctx, generated.UpsertCompanyAccountParams{
		CompanyID: companyID,
		Role:      string(role),
		AccountID: accountID,
	})
}
