package services_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/rupiksha/go-ppob-transaction/internal/common"
	"github.com/rupiksha/go-ppob-transaction/internal/models"
)

func TestResolver_Resolve(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	jioEntry := models.OperatorEntry{Name: "Jio", Opcode: "JRE", Category: models.CategoryMobile}
	airtelEntry := models.OperatorEntry{Name: "Airtel", Opcode: "ATL", Category: models.CategoryMobile}
	viEntry := models.OperatorEntry{Name: "Vi", Opcode: "VDF", Category: models.CategoryMobile}

	tests := []struct {
		name         string
		category     models.ProviderCategory
		identifier   string
		mockFn       func()
		wantResolved bool
		wantOperator string
		wantCircle   string
		wantErr      error
	}{
		{
			name:       "prefix table hit resolves operator and circle",
			category:   models.CategoryMobile,
			identifier: "9812345678",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "9812").
					Return(models.PrefixEntry{Operator: "Airtel", Circle: "Delhi"}, true, nil)
				testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Airtel").
					Return(airtelEntry, true, nil)
			},
			wantResolved: true,
			wantOperator: "ATL",
			wantCircle:   "Delhi",
		},
		{
			name:       "prefix miss falls back to leading range 61 Jio",
			category:   models.CategoryMobile,
			identifier: "6123456789",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "6123").
					Return(models.PrefixEntry{}, false, nil)
				testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Jio").
					Return(jioEntry, true, nil)
			},
			wantResolved: true,
			wantOperator: "JRE",
		},
		{
			name:       "range 74 resolves Vi",
			category:   models.CategoryMobile,
			identifier: "7412345678",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "7412").
					Return(models.PrefixEntry{}, false, nil)
				testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Vi").
					Return(viEntry, true, nil)
			},
			wantResolved: true,
			wantOperator: "VDF",
		},
		{
			name:       "range 86 resolves Vi",
			category:   models.CategoryMobile,
			identifier: "8612345678",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "8612").
					Return(models.PrefixEntry{}, false, nil)
				testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Vi").
					Return(viEntry, true, nil)
			},
			wantResolved: true,
			wantOperator: "VDF",
		},
		{
			name:       "leading digits below 60 stay unresolved",
			category:   models.CategoryMobile,
			identifier: "0512345678",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "0512").
					Return(models.PrefixEntry{}, false, nil)
			},
			wantResolved: false,
		},
		{
			name:         "identifier shorter than a prefix stays unresolved",
			category:     models.CategoryMobile,
			identifier:   "98",
			mockFn:       func() {},
			wantResolved: false,
		},
		{
			name:         "non-mobile category is always a manual pick",
			category:     models.CategoryElectricity,
			identifier:   "123456789",
			mockFn:       func() {},
			wantResolved: false,
		},
		{
			name:       "fallback operator missing from catalog stays unresolved",
			category:   models.CategoryMobile,
			identifier: "9912345678",
			mockFn: func() {
				testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "9912").
					Return(models.PrefixEntry{}, false, nil)
				testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Airtel").
					Return(models.OperatorEntry{}, false, nil)
			},
			wantResolved: false,
		},
		{
			name:       "invalid category",
			category:   models.ProviderCategory("bogus"),
			identifier: "9812345678",
			mockFn:     func() {},
			wantErr:    common.ErrInvalidCategory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockFn()

			res, err := testHelper.srv.Resolver.Resolve(ctx, tt.category, tt.identifier)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantResolved, res.Resolved)
			if tt.wantResolved {
				assert.Equal(t, tt.wantOperator, res.Provider.OperatorCode)
				assert.Equal(t, tt.wantCircle, res.Provider.Circle)
				assert.False(t, res.Provider.SupportsOnlineFetch)
			}
		})
	}
}

func TestResolver_ResolveIsDeterministic(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockCatalogRepo.EXPECT().LookupPrefix(gomock.Any(), "6123").
		Return(models.PrefixEntry{}, false, nil).Times(2)
	testHelper.mockCatalogRepo.EXPECT().GetOperator(gomock.Any(), models.CategoryMobile, "Jio").
		Return(models.OperatorEntry{Name: "Jio", Opcode: "JRE", Category: models.CategoryMobile}, true, nil).Times(2)

	first, err := testHelper.srv.Resolver.Resolve(ctx, models.CategoryMobile, "6123456789")
	assert.NoError(t, err)
	second, err := testHelper.srv.Resolver.Resolve(ctx, models.CategoryMobile, "6123456789")
	assert.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("resolution differs between identical calls (-first +second):\n%s", diff)
	}
}

func TestResolver_ListProviders(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockCatalogRepo.EXPECT().ListBillers(gomock.Any(), models.CategoryElectricity).
		Return([]models.BillerEntry{
			{ID: "mseb", Name: "Maharashtra State Electricity Board", Opcode: "MSE", Category: models.CategoryElectricity},
			{ID: "offline-coop", Name: "Co-op Power Trust", Opcode: "NONE", Category: models.CategoryElectricity},
		}, nil)

	out, err := testHelper.srv.Resolver.ListProviders(ctx, models.CategoryElectricity)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.True(t, out[0].SupportsOnlineFetch)
	// the NONE opcode sentinel means no online fetch
	assert.False(t, out[1].SupportsOnlineFetch)
	assert.Empty(t, out[1].OperatorCode)
}

func TestResolver_GetProvider(t *testing.T) {
	testHelper := serviceTestHelper(t)
	ctx := context.Background()

	testHelper.mockCatalogRepo.EXPECT().GetBiller(gomock.Any(), "mseb").
		Return(models.BillerEntry{ID: "mseb", Name: "MSEB", Opcode: "MSE", Category: models.CategoryElectricity}, true, nil)
	testHelper.mockCatalogRepo.EXPECT().GetBiller(gomock.Any(), "nope").
		Return(models.BillerEntry{}, false, nil)

	got, err := testHelper.srv.Resolver.GetProvider(ctx, "mseb")
	assert.NoError(t, err)
	assert.Equal(t, "mseb", got.ID)

	_, err = testHelper.srv.Resolver.GetProvider(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrProviderNotFound)
}
