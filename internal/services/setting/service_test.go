package setting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu-system/internal/apperrors"
	"menu-system/internal/logger"
	"menu-system/internal/models"
	"menu-system/internal/validation"
)

type fakeRepo struct {
	settings map[string]models.Setting
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{settings: map[string]models.Setting{}}
}

func (f *fakeRepo) Upsert(ctx context.Context, setting models.Setting) error {
	f.settings[setting.Key] = setting
	return nil
}

func (f *fakeRepo) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	s, ok := f.settings[key]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]models.Setting, error) {
	out := make([]models.Setting, 0, len(f.settings))
	for _, s := range f.settings {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, key string) error {
	if _, ok := f.settings[key]; !ok {
		return apperrors.NewNotFound("setting", key)
	}
	delete(f.settings, key)
	return nil
}

type stubMenus struct{}

func (stubMenus) FindByName(ctx context.Context, name string) (*models.Menu, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo) *Service {
	rules := validation.NewBusinessRuleValidator(stubMenus{})
	return NewService(repo, rules, logger.New("setting-test"))
}

func TestServiceUpsert(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Upsert(context.Background(), models.UpsertSettingRequest{
		Key: "tax_rate", Value: "0.21", Type: "number",
	})
	require.NoError(t, err)
	assert.Equal(t, "tax_rate", resp.Key)
	assert.Equal(t, "0.21", resp.Value)
	assert.Equal(t, "number", resp.Type)

	// same key overwrites
	resp, err = svc.Upsert(context.Background(), models.UpsertSettingRequest{
		Key: "tax_rate", Value: "0.19", Type: "number",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.19", resp.Value)
	assert.Len(t, repo.settings, 1)
}

func TestServiceUpsert_FalsyValuesAreLegitimate(t *testing.T) {
	svc := newTestService(newFakeRepo())

	cases := []models.UpsertSettingRequest{
		{Key: "retries", Value: "0", Type: "number"},
		{Key: "dark_mode", Value: "false", Type: "boolean"},
		{Key: "banner", Value: "   ", Type: "string"},
	}
	for _, req := range cases {
		resp, err := svc.Upsert(context.Background(), req)
		require.NoError(t, err, "key %s", req.Key)
		assert.Equal(t, req.Value, resp.Value)
	}
}

func TestServiceUpsert_Invalid(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	cases := []struct {
		name string
		req  models.UpsertSettingRequest
	}{
		{"missing key", models.UpsertSettingRequest{Value: "x", Type: "string"}},
		{"missing value", models.UpsertSettingRequest{Key: "k", Type: "string"}},
		{"unknown type", models.UpsertSettingRequest{Key: "k", Value: "x", Type: "json"}},
		{"number type mismatch", models.UpsertSettingRequest{Key: "k", Value: "abc", Type: "number"}},
		{"boolean type mismatch", models.UpsertSettingRequest{Key: "k", Value: "2", Type: "boolean"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), tc.req)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
	assert.Empty(t, repo.settings)
}

func TestServiceGet(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Upsert(context.Background(), models.UpsertSettingRequest{
		Key: "currency", Value: "EUR", Type: "string",
	})
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), "currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", resp.Value)

	_, err = svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestServiceDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Upsert(context.Background(), models.UpsertSettingRequest{
		Key: "currency", Value: "EUR", Type: "string",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "currency"))
	assert.Empty(t, repo.settings)

	err = svc.Delete(context.Background(), "currency")
	assert.True(t, apperrors.IsNotFound(err))
}
