package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := Product{
		ID:          "1",
		Name:        "LED Bulb",
		Description: "bright",
		Specs:       Specs{"watt": float64(9)},
		ImageKey:    "products/led.jpg",
	}
	require.NoError(t, s.CreateProduct(ctx, p))

	got, err := s.GetProduct(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p, *got)

	t.Run("create replaces existing id", func(t *testing.T) {
		p.Description = "very bright"
		require.NoError(t, s.CreateProduct(ctx, p))
		got, err := s.GetProduct(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "very bright", got.Description)
	})

	t.Run("update", func(t *testing.T) {
		p.Name = "LED Bulb v2"
		require.NoError(t, s.UpdateProduct(ctx, "1", p))
		got, err := s.GetProduct(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "LED Bulb v2", got.Name)
	})

	t.Run("update missing id", func(t *testing.T) {
		assert.ErrorIs(t, s.UpdateProduct(ctx, "missing", p), ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteProduct(ctx, "1"))
		got, err := s.GetProduct(ctx, "1")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete missing id", func(t *testing.T) {
		assert.ErrorIs(t, s.DeleteProduct(ctx, "1"), ErrNotFound)
	})
}

func TestScanProductsPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, p := range []Product{
		{ID: "z", Name: "Zone Light"},
		{ID: "a", Name: "Arc Lamp"},
		{ID: "m", Name: "Mood Strip"},
	} {
		require.NoError(t, s.CreateProduct(ctx, p))
	}

	products, err := s.ScanProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{products[0].ID, products[1].ID, products[2].ID})
}

func TestCompanySingleton(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	t.Run("absent before configuration", func(t *testing.T) {
		info, err := s.GetCompany(ctx)
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	info := CompanyInfo{
		Company:   "ABC Lighting Corp",
		Locations: []string{"Austin", "Dallas"},
		Hours:     "9-5 Mon-Fri",
		About:     "Lighting for everyone",
	}
	require.NoError(t, s.UpsertCompany(ctx, info))

	got, err := s.GetCompany(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)

	t.Run("replaced wholesale on update", func(t *testing.T) {
		updated := CompanyInfo{Company: "ABC Lighting Corp", Locations: []string{"Houston"}, Hours: "24/7"}
		require.NoError(t, s.UpsertCompany(ctx, updated))

		got, err := s.GetCompany(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated, *got)
	})
}

func TestSaveChat(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user := ChatUser{Name: "Dana", Email: "dana@example.com"}
	messages := []ChatMessage{
		{Role: "user", Content: "hello"},
		{Role: "bot", Content: "Hi! How can I help you today?"},
	}

	first, err := s.SaveChat(ctx, user, messages)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ChatID)
	assert.False(t, first.Timestamp.IsZero())

	second, err := s.SaveChat(ctx, user, messages)
	require.NoError(t, err)
	assert.NotEqual(t, first.ChatID, second.ChatID)

	got, err := s.GetChat(ctx, first.ChatID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user, got.User)
	assert.Equal(t, messages, got.Messages)
}

func TestSeedFromFile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seed := `{
        "company": {"company": "ABC Lighting Corp", "locations": ["Austin"], "hours": "9-5", "about": "Lighting"},
        "products": [
            {"id": "1", "name": "LED Bulb", "description": "bright", "specs": {"watt": 9}},
            {"id": "2", "name": "Solar Lamp", "description": "outdoor", "specs": {"lumens": 800}}
        ]
    }`
	seedPath := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o644))

	count, err := s.SeedFromFile(ctx, seedPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	products, err := s.ScanProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	info, err := s.GetCompany(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "ABC Lighting Corp", info.Company)

	t.Run("missing file", func(t *testing.T) {
		_, err := s.SeedFromFile(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("product without id rejected", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"products":[{"name":"Nameless"}]}`), 0o644))
		_, err := s.SeedFromFile(ctx, bad)
		assert.ErrorContains(t, err, "missing id or name")
	})
}
