package saves

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"empire-builder/internal/domain"
	"empire-builder/internal/infrastructure/database"
	"empire-builder/internal/infrastructure/store"
	"empire-builder/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data     []byte
	readErr  error
	writeErr error
}

func (m *memStore) Read(ctx context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memStore) Write(ctx context.Context, payload []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), payload...)
	return nil
}

func (m *memStore) Delete(ctx context.Context) error {
	m.data = nil
	return nil
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newService(st store.Store, cat domain.Catalog) *Service {
	return &Service{Store: st, Catalog: cat, Clock: clock.NewFakeClock(testNow)}
}

func assertFresh(t *testing.T, st *domain.SimulationState, cat domain.Catalog) {
	t.Helper()
	assert.Equal(t, 0.0, st.Wallet)
	assert.Equal(t, 0.0, st.LifetimeEarned)
	assert.Equal(t, 1.0, st.PrestigeMultiplier)
	assert.Equal(t, int64(0), st.ManualActions)
	assert.Equal(t, cat.FreshHoldings(), st.Holdings)
}

func TestLoad_MissingRecord(t *testing.T) {
	cat := domain.DefaultCatalog()
	st := newService(&memStore{}, cat).Load(context.Background())
	assertFresh(t, st, cat)
	assert.Equal(t, testNow.UnixMilli(), st.StartTime)
}

func TestLoad_CorruptRecord(t *testing.T) {
	cat := domain.DefaultCatalog()
	for _, payload := range []string{"{not json", `"just a string"`, `{"businesses": 5}`, ""} {
		st := newService(&memStore{data: []byte(payload)}, cat).Load(context.Background())
		assertFresh(t, st, cat)
	}
}

func TestLoad_StoreFailure(t *testing.T) {
	cat := domain.DefaultCatalog()
	st := newService(&memStore{readErr: errors.New("disk on fire")}, cat).Load(context.Background())
	assertFresh(t, st, cat)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	cat := domain.DefaultCatalog()
	ms := &memStore{}
	svc := newService(ms, cat)

	st := domain.NewState(cat, testNow.Add(-time.Hour))
	st.Credit(1234.56)
	st.Wallet -= 15
	st.ManualActions = 42
	st.PrestigeMultiplier = 3.5
	st.Holdings[0] = domain.AssetHolding{ID: 0, Owned: 1, NextCost: 18}
	st.Holdings[1] = domain.AssetHolding{ID: 1, Owned: 3, NextCost: 153}

	require.NoError(t, svc.Save(context.Background(), st))
	got := svc.Load(context.Background())
	assert.Equal(t, st, got)
}

func TestLoad_SmallerCatalogSave_Reconciles(t *testing.T) {
	full := domain.DefaultCatalog()
	old := full[:3]
	ms := &memStore{}

	st := domain.NewState(old, testNow)
	st.Holdings[0] = domain.AssetHolding{ID: 0, Owned: 4, NextCost: 27}
	// a stale cost is carried through untouched
	st.Holdings[2] = domain.AssetHolding{ID: 2, Owned: 1, NextCost: 1}
	require.NoError(t, newService(ms, old).Save(context.Background(), st))

	got := newService(ms, full).Load(context.Background())
	require.Len(t, got.Holdings, len(full))
	assert.Equal(t, st.Holdings, got.Holdings[:3])
	for i := 3; i < len(full); i++ {
		assert.Equal(t, domain.AssetHolding{ID: i, Owned: 0, NextCost: full[i].BaseCost}, got.Holdings[i])
	}
}

func TestLoad_LargerSaveKeepsExtras(t *testing.T) {
	full := domain.DefaultCatalog()
	ms := &memStore{}
	st := domain.NewState(full, testNow)
	require.NoError(t, newService(ms, full).Save(context.Background(), st))

	got := newService(ms, full[:5]).Load(context.Background())
	assert.Len(t, got.Holdings, len(full))
}

func TestLoad_BrowserSaveShape(t *testing.T) {
	cat := domain.DefaultCatalog()
	payload := `{
		"money": 250.5,
		"totalMoneyEarned": 1200,
		"startTime": 1700000000000,
		"clickCount": 17,
		"prestigeMultiplier": 2,
		"businesses": [{"id": 0, "count": 2, "cost": 20}, {"id": 1, "count": 0, "cost": 100}],
		"somethingElse": true
	}`
	got := newService(&memStore{data: []byte(payload)}, cat).Load(context.Background())
	assert.Equal(t, 250.5, got.Wallet)
	assert.Equal(t, 1200.0, got.LifetimeEarned)
	assert.Equal(t, int64(1700000000000), got.StartTime)
	assert.Equal(t, int64(17), got.ManualActions)
	assert.Equal(t, 2.0, got.PrestigeMultiplier)
	require.Len(t, got.Holdings, 20)
	assert.Equal(t, domain.AssetHolding{ID: 0, Owned: 2, NextCost: 20}, got.Holdings[0])
	assert.Equal(t, domain.AssetHolding{ID: 2, Owned: 0, NextCost: 500}, got.Holdings[2])
}

func TestLoad_PartialSaveKeepsDefaults(t *testing.T) {
	cat := domain.DefaultCatalog()
	got := newService(&memStore{data: []byte(`{"money": 9, "businesses": []}`)}, cat).Load(context.Background())
	assert.Equal(t, 9.0, got.Wallet)
	assert.Equal(t, 1.0, got.PrestigeMultiplier)
	assert.Equal(t, testNow.UnixMilli(), got.StartTime)
	assert.Equal(t, cat.FreshHoldings(), got.Holdings)
}

func TestLoad_NormalizesMultiplier(t *testing.T) {
	cat := domain.DefaultCatalog()
	got := newService(&memStore{data: []byte(`{"prestigeMultiplier": 0}`)}, cat).Load(context.Background())
	assert.Equal(t, 1.0, got.PrestigeMultiplier)
}

func TestSave_StoreError(t *testing.T) {
	cat := domain.DefaultCatalog()
	svc := newService(&memStore{writeErr: errors.New("read-only")}, cat)
	assert.Error(t, svc.Save(context.Background(), domain.NewState(cat, testNow)))
}

func TestWipe(t *testing.T) {
	cat := domain.DefaultCatalog()
	ms := &memStore{}
	svc := newService(ms, cat)
	st := domain.NewState(cat, testNow)
	st.Credit(500)
	require.NoError(t, svc.Save(context.Background(), st))

	fresh, err := svc.Wipe(context.Background())
	require.NoError(t, err)
	assertFresh(t, fresh, cat)
	assert.Nil(t, ms.data)
	assertFresh(t, svc.Load(context.Background()), cat)
}

func TestService_WithGormStore(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "empire.db"))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cat := domain.DefaultCatalog()
	svc := newService(&store.GormStore{DB: db, Name: "empireBuilderSave"}, cat)
	ctx := context.Background()

	assertFresh(t, svc.Load(ctx), cat)

	st := domain.NewState(cat, testNow)
	st.Credit(99.25)
	st.Holdings[0] = domain.AssetHolding{ID: 0, Owned: 1, NextCost: 18}
	require.NoError(t, svc.Save(ctx, st))
	assert.Equal(t, st, svc.Load(ctx))

	st.Credit(1)
	require.NoError(t, svc.Save(ctx, st))
	assert.Equal(t, 100.25, svc.Load(ctx).Wallet)
}
