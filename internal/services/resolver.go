package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
	"github.com/rupiksha/go-ppob-transaction/internal/monitoring"
)

// ResolverService maps a raw identifier plus a category onto a provider
// descriptor. Resolution is deterministic: the same identifier and catalog
// always yield the same outcome. Unresolved is a valid outcome meaning the
// caller must pick a provider manually.
type ResolverService interface {
	Resolve(ctx context.Context, category models.ProviderCategory, identifier string) (models.Resolution, error)
	ListProviders(ctx context.Context, category models.ProviderCategory) ([]models.ProviderDescriptor, error)
	GetProvider(ctx context.Context, id string) (models.ProviderDescriptor, error)
}

type resolver service

const mobilePrefixLength = 4

// mobileFallbackRanges cover the leading two digits of a mobile number when
// the prefix table has no entry. The ranges are disjoint; numbers starting
// below 60 stay unresolved.
var mobileFallbackRanges = []struct {
	lo, hi   int
	operator string
}{
	{60, 69, "Jio"},
	{70, 71, "Jio"},
	{72, 73, "Airtel"},
	{74, 75, "Vi"},
	{76, 79, "Jio"},
	{80, 82, "Airtel"},
	{83, 85, "Jio"},
	{86, 89, "Vi"},
	{90, 99, "Airtel"},
}

func (r *resolver) Resolve(ctx context.Context, category models.ProviderCategory, identifier string) (res models.Resolution, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !category.Valid() {
		return models.Unresolved(), common.ErrInvalidCategory
	}

	identifier = strings.TrimSpace(identifier)

	// Only mobile numbers carry enough structure to resolve automatically.
	// Every other category is a manual pick from the biller directory.
	if category != models.CategoryMobile {
		return models.Unresolved(), nil
	}

	if len(identifier) >= mobilePrefixLength && isAllDigits(identifier) {
		prefix := identifier[:mobilePrefixLength]

		entry, found, lookupErr := r.srv.catalogRepo.LookupPrefix(ctx, prefix)
		if lookupErr != nil {
			return models.Unresolved(), lookupErr
		}
		if found {
			return r.operatorResolution(ctx, entry.Operator, entry.Circle)
		}

		if op, ok := fallbackOperator(identifier); ok {
			log.Debug(ctx, "[RESOLVER] prefix miss, range fallback",
				log.String("prefix", prefix), log.String("operator", op))
			return r.operatorResolution(ctx, op, "")
		}
	}

	return models.Unresolved(), nil
}

// operatorResolution turns an operator name into a descriptor via the
// catalog, so the gateway code always comes from catalog data.
func (r *resolver) operatorResolution(ctx context.Context, operator, circle string) (models.Resolution, error) {
	entry, found, err := r.srv.catalogRepo.GetOperator(ctx, models.CategoryMobile, operator)
	if err != nil {
		return models.Unresolved(), err
	}
	if !found {
		return models.Unresolved(), nil
	}
	return models.ResolvedTo(entry.Descriptor(circle)), nil
}

func fallbackOperator(identifier string) (string, bool) {
	if len(identifier) < 2 {
		return "", false
	}
	lead, err := strconv.Atoi(identifier[:2])
	if err != nil {
		return "", false
	}
	for _, rg := range mobileFallbackRanges {
		if lead >= rg.lo && lead <= rg.hi {
			return rg.operator, true
		}
	}
	return "", false
}

func (r *resolver) ListProviders(ctx context.Context, category models.ProviderCategory) (out []models.ProviderDescriptor, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if !category.Valid() {
		return nil, common.ErrInvalidCategory
	}

	billers, err := r.srv.catalogRepo.ListBillers(ctx, category)
	if err != nil {
		return nil, err
	}

	out = make([]models.ProviderDescriptor, 0, len(billers))
	for _, b := range billers {
		out = append(out, b.Descriptor())
	}
	return out, nil
}

func (r *resolver) GetProvider(ctx context.Context, id string) (desc models.ProviderDescriptor, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	biller, found, err := r.srv.catalogRepo.GetBiller(ctx, id)
	if err != nil {
		return models.ProviderDescriptor{}, err
	}
	if !found {
		return models.ProviderDescriptor{}, common.ErrProviderNotFound
	}
	return biller.Descriptor(), nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
