package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/cache"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

const catalogCacheKey = "ppob:catalog:v1"

type catalogRepository struct {
	cfg   config.CatalogConfig
	cache cache.Client[models.Catalog]
}

// NewCatalogRepository serves catalog lookups from the configured JSON
// files, keeping the parsed catalog in cache for CacheTTL.
func NewCatalogRepository(cfg config.CatalogConfig, cacheClient cache.Client[models.Catalog]) CatalogRepository {
	return &catalogRepository{cfg: cfg, cache: cacheClient}
}

func (r *catalogRepository) load(ctx context.Context) (models.Catalog, error) {
	return r.cache.GetOrSet(ctx, cache.GetOrSetOpts[models.Catalog]{
		Key: catalogCacheKey,
		TTL: r.cfg.CacheTTL,
		Callback: func() (models.Catalog, error) {
			return r.parseFiles()
		},
	})
}

func (r *catalogRepository) parseFiles() (models.Catalog, error) {
	catalog := models.Catalog{Prefixes: map[string]models.PrefixEntry{}}

	if r.cfg.PrefixFilePath != "" {
		raw, err := os.ReadFile(r.cfg.PrefixFilePath)
		if err != nil {
			return catalog, fmt.Errorf("unable to read prefix catalog: %w", err)
		}
		if err := json.Unmarshal(raw, &catalog.Prefixes); err != nil {
			return catalog, fmt.Errorf("unable to parse prefix catalog: %w", err)
		}
	}

	if r.cfg.BillerFilePath != "" {
		raw, err := os.ReadFile(r.cfg.BillerFilePath)
		if err != nil {
			return catalog, fmt.Errorf("unable to read biller catalog: %w", err)
		}

		var directory struct {
			Billers   []models.BillerEntry   `json:"billers"`
			Operators []models.OperatorEntry `json:"operators"`
		}
		if err := json.Unmarshal(raw, &directory); err != nil {
			return catalog, fmt.Errorf("unable to parse biller catalog: %w", err)
		}
		catalog.Billers = directory.Billers
		catalog.Operators = directory.Operators
	}

	return catalog, nil
}

func (r *catalogRepository) LookupPrefix(ctx context.Context, prefix string) (entry models.PrefixEntry, found bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	catalog, err := r.load(ctx)
	if err != nil {
		return entry, false, err
	}

	entry, found = catalog.Prefixes[prefix]
	return entry, found, nil
}

func (r *catalogRepository) GetOperator(ctx context.Context, category models.ProviderCategory, name string) (op models.OperatorEntry, found bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	catalog, err := r.load(ctx)
	if err != nil {
		return op, false, err
	}

	for _, candidate := range catalog.Operators {
		if candidate.Category == category && strings.EqualFold(candidate.Name, name) {
			return candidate, true, nil
		}
	}

	return op, false, nil
}

func (r *catalogRepository) GetBiller(ctx context.Context, id string) (biller models.BillerEntry, found bool, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	catalog, err := r.load(ctx)
	if err != nil {
		return biller, false, err
	}

	for _, candidate := range catalog.Billers {
		if candidate.ID == id {
			return candidate, true, nil
		}
	}

	return biller, false, nil
}

func (r *catalogRepository) ListBillers(ctx context.Context, category models.ProviderCategory) (billers []models.BillerEntry, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !category.Valid() {
		return nil, common.ErrInvalidCategory
	}

	catalog, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range catalog.Billers {
		if candidate.Category == category {
			billers = append(billers, candidate)
		}
	}

	return billers, nil
}
