package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
	"github.com/Veraticus/orderplace/internal/storage"
	"github.com/Veraticus/orderplace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns one fresh store per supported backend and codec.
func backends(t *testing.T) map[string]service.Store {
	t.Helper()

	jsonStore, err := storage.NewFileStore(t.TempDir(), storage.JSONCodec{})
	require.NoError(t, err)

	yamlStore, err := storage.NewFileStore(t.TempDir(), storage.YAMLCodec{})
	require.NoError(t, err)

	sqliteStore, err := storage.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, sqliteStore.Migrate(context.Background()))
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]service.Store{
		"memory": storage.NewMemoryStore(),
		"json":   jsonStore,
		"yaml":   yamlStore,
		"sqlite": sqliteStore,
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	config := model.ShopConfig{ShopName: "Chai Corner", Currency: "₹", StartYear: 2019}
	catalog := []model.CatalogItem{
		testutil.Item("Tea", "10"),
		testutil.Item("Samosa", "12.50"),
		testutil.Item("Tea", "0"),
	}
	records := []model.Transaction{
		testutil.Record("2024-02-10", "08:15:00",
			testutil.Line{Name: "Tea", Price: "10", Qty: 3},
			testutil.Line{Name: "Samosa", Price: "12.50", Qty: 2}),
		testutil.Record("2024-03-15", "17:45:09",
			testutil.Line{Name: "Tea", Price: "0.1", Qty: 7}),
	}

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := storage.NewRepository(store)

			require.NoError(t, repo.SaveConfig(ctx, config))
			require.NoError(t, repo.SaveCatalog(ctx, catalog))
			require.NoError(t, repo.SaveRecords(ctx, records))

			gotConfig, err := repo.LoadConfig(ctx)
			require.NoError(t, err)
			assert.Equal(t, config, gotConfig)

			gotCatalog, err := repo.LoadCatalog(ctx)
			require.NoError(t, err)
			testutil.AssertCatalogEqual(t, catalog, gotCatalog)

			gotRecords, err := repo.LoadRecords(ctx)
			require.NoError(t, err)
			testutil.AssertRecordsEqual(t, records, gotRecords)

			for _, rec := range gotRecords {
				assert.True(t, rec.GrandTotal.Equal(rec.SumItems()), "stored grand total must match its line items")
			}
		})
	}
}

func TestRepository_EnsureSequences(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := storage.NewRepository(store)

			hasConfig, err := repo.HasConfig(ctx)
			require.NoError(t, err)
			assert.False(t, hasConfig)

			require.NoError(t, repo.EnsureSequences(ctx))

			catalog, err := repo.LoadCatalog(ctx)
			require.NoError(t, err)
			assert.Empty(t, catalog)

			records, err := repo.LoadRecords(ctx)
			require.NoError(t, err)
			assert.Empty(t, records)

			// Existing documents are left alone.
			require.NoError(t, repo.SaveCatalog(ctx, []model.CatalogItem{testutil.Item("Tea", "10")}))
			require.NoError(t, repo.EnsureSequences(ctx))

			catalog, err = repo.LoadCatalog(ctx)
			require.NoError(t, err)
			assert.Len(t, catalog, 1)
		})
	}
}

func TestRepository_LoadConfigMissing(t *testing.T) {
	repo := storage.NewRepository(storage.NewMemoryStore())

	_, err := repo.LoadConfig(context.Background())
	assert.ErrorIs(t, err, common.ErrIO)
}

func TestRepository_RejectsInvalidDocuments(t *testing.T) {
	repo, _ := testutil.SetupRepository(t)
	ctx := context.Background()

	err := repo.SaveCatalog(ctx, []model.CatalogItem{testutil.Item("Tea", "-1")})
	assert.ErrorIs(t, err, storage.ErrInvalidItem)
	assert.ErrorIs(t, err, common.ErrParse)

	drifted := testutil.Record("2024-03-15", "10:00:00", testutil.Line{Name: "Tea", Price: "10", Qty: 1})
	drifted.GrandTotal = testutil.Dec("11")
	err = repo.SaveRecords(ctx, []model.Transaction{drifted})
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
	assert.ErrorIs(t, err, common.ErrParse)

	err = repo.AppendRecord(ctx, drifted)
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
	assert.ErrorIs(t, err, common.ErrParse)

	records, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records, "rejected records must not be written")
}

// floatSummedRecords holds a record whose grand total was accumulated in
// binary floating point, so it differs from the exact sum of its lines.
const floatSummedRecords = `[
    {
        "date": "2024-03-14",
        "time": "09:00:00",
        "items": [
            {"item": "Mint", "qty": 1, "total": 0.1},
            {"item": "Clove", "qty": 1, "total": 0.2}
        ],
        "grand_total": 0.30000000000000004
    }
]`

func TestRepository_AppendRecordKeepsHistory(t *testing.T) {
	repo, store := testutil.SetupRepository(t)
	store.PutRaw(service.DocumentRecords, []byte(floatSummedRecords))
	ctx := context.Background()

	txn := testutil.Record("2024-03-15", "10:00:00", testutil.Line{Name: "Tea", Price: "10", Qty: 3})
	require.NoError(t, repo.AppendRecord(ctx, txn))

	records, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0.30000000000000004", records[0].GrandTotal.String(), "earlier entries are stored as loaded")
	assert.Equal(t, "2024-03-15", records[1].Date)
}

func TestRepository_CorruptDocument(t *testing.T) {
	repo, store := testutil.SetupRepository(t)
	store.PutRaw(service.DocumentRecords, []byte(`[{"date": "2024-`))

	_, err := repo.LoadRecords(context.Background())
	assert.True(t, errors.Is(err, common.ErrParse), "got %v", err)
}
