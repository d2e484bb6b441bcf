package item

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
	items  map[int]models.MenuItem
	byMenu map[int][]int
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int]models.MenuItem{}, byMenu: map[int][]int{}, nextID: 1}
}

func (f *fakeRepo) Save(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	if item.ID == 0 {
		item.ID = f.nextID
		f.nextID++
	} else if _, ok := f.items[item.ID]; !ok {
		return models.MenuItem{}, apperrors.NewNotFound("item", "missing")
	}
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, 0, len(f.items))
	for _, i := range f.items {
		out = append(out, i)
	}
	return out, nil
}

func (f *fakeRepo) FindByMenu(ctx context.Context, menuID int) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, 0, len(f.byMenu[menuID]))
	for _, id := range f.byMenu[menuID] {
		out = append(out, f.items[id])
	}
	return out, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id int) (*models.MenuItem, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (f *fakeRepo) Exists(ctx context.Context, id int) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.items[id]; !ok {
		return apperrors.NewNotFound("item", "missing")
	}
	delete(f.items, id)
	return nil
}

type stubMenus struct{}

func (stubMenus) FindByName(ctx context.Context, name string) (*models.Menu, error) {
	return nil, nil
}

type stubCounter struct{}

func (stubCounter) CountReferencingMenu(ctx context.Context, menuID int) (int, error) {
	return 0, nil
}

func newTestService(repo *fakeRepo) *Service {
	log := logger.New("item-test")
	rules := validation.NewBusinessRuleValidator(stubMenus{})
	refs := validation.NewCrossEntityValidator(repo, stubCounter{})
	return NewService(repo, rules, refs, log)
}

func TestServiceCreate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "Burger", Price: 9.90})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "Burger", resp.Name)
	assert.InDelta(t, 9.90, resp.Price, 1e-9)
}

func TestServiceCreate_RejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(newFakeRepo())

	for _, price := range []float64{0, -1} {
		_, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "Burger", Price: price})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "greater than 0")
	}
}

func TestServiceCreate_RequiresName(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "   ", Price: 9.90})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestServiceGetInMenu(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "Burger", Price: 9.90})
	require.NoError(t, err)
	repo.byMenu[1] = []int{created.ID}

	resp, err := svc.GetInMenu(context.Background(), 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burger", resp.Name)

	// item exists but is not attached to menu 2
	_, err = svc.GetInMenu(context.Background(), 2, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "does not belong")
}

func TestServiceUpdate_Partial(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "Burger", Price: 9.90})
	require.NoError(t, err)

	price := 12.50
	resp, err := svc.Update(context.Background(), created.ID, models.UpdateItemRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Burger", resp.Name)
	assert.InDelta(t, 12.50, resp.Price, 1e-9)

	name := "Cheeseburger"
	resp, err = svc.Update(context.Background(), created.ID, models.UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Cheeseburger", resp.Name)
	assert.InDelta(t, 12.50, resp.Price, 1e-9)

	bad := 0.0
	_, err = svc.Update(context.Background(), created.ID, models.UpdateItemRequest{Price: &bad})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestServiceUpdate_NotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	name := "Burger"
	_, err := svc.Update(context.Background(), 42, models.UpdateItemRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestServiceDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), models.CreateItemRequest{Name: "Burger", Price: 9.90})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.items)

	err = svc.Delete(context.Background(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
