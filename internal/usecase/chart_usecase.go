package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// ChartUseCase resolves role-to-account mappings per company, with a
// cache in front of the store. Defaults cover roles a company has not
// overridden.
type ChartUseCase struct {
	repo     ChartRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewChartUseCase creates a new ChartUseCase. The cache is optional.
func NewChartUseCase(repo ChartRepository, cache Cache, cacheTTL time.Duration) *ChartUseCase {
	if cacheTTL <= 0 {
		cacheTTL = ChartCacheTTL
	}

	return &ChartUseCase{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// ResolveAccounts returns the company's chart mapping, cached.
func (uc *ChartUseCase) ResolveAccounts(ctx context.Context, companyID string) (*domain.ChartMapping, error) {
	if companyID == "" {
		return nil, domain.ErrCompanyRequired
	}

	cacheKey := chartCacheKey(companyID)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var accounts map[domain.AccountRole]string
			if err := json.Unmarshal([]byte(cached), &accounts); err == nil {
				return &domain.ChartMapping{CompanyID: companyID, Accounts: accounts}, nil
			}
		}
	}

	mapping, err := uc.repo.GetMapping(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(mapping.Accounts); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, string(encoded), uc.cacheTTL)
		}
	}

	return mapping, nil
}

// SetAccountInput represents input for overriding one role mapping.
type SetAccountInput struct {
	CompanyID string
	Role      domain.AccountRole
	AccountID string
}

// SetAccount stores a company override for a role and invalidates the
// cached mapping.
func (uc *ChartUseCase) SetAccount(ctx context.Context, input SetAccountInput) error {
	if input.CompanyID == "" {
		return domain.ErrCompanyRequired
	}

	if !domain.ValidRole(input.Role) {
		return domain.ErrUnknownAccountRole
	}

	if err := domain.ValidateID(input.AccountID); err != nil {
		return err
	}

	if err := uc.repo.UpsertAccount(ctx, input.CompanyID, input.Role, input.AccountID); err != nil {
		return err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, chartCacheKey(input.CompanyID))
	}

	return nil
}

func chartCacheKey(companyID string) string {
	return "chart:" + companyID
}
