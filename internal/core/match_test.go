package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepak6009/customer-service-bot/internal/store"
)

func testCorpus() []store.Product {
	return []store.Product{
		{ID: "1", Name: "LED Bulb", Description: "bright", Specs: store.Specs{"watt": 9}},
		{ID: "2", Name: "Solar Lamp", Description: "outdoor garden lamp", Specs: store.Specs{"lumens": 800}},
		{ID: "3", Name: "Desk Light", Description: "adjustable arm", Specs: store.Specs{"color": "white"}},
	}
}

func TestMatchProduct(t *testing.T) {
	corpus := testCorpus()

	t.Run("token found in name", func(t *testing.T) {
		p := MatchProduct(corpus, "i need a bulb")
		require.NotNil(t, p)
		assert.Equal(t, "1", p.ID)
	})

	t.Run("token found in description", func(t *testing.T) {
		p := MatchProduct(corpus, "something for the garden")
		require.NotNil(t, p)
		assert.Equal(t, "2", p.ID)
	})

	t.Run("token found in specs", func(t *testing.T) {
		p := MatchProduct(corpus, "800 lumens please")
		require.NotNil(t, p)
		assert.Equal(t, "2", p.ID)
	})

	t.Run("no token overlap", func(t *testing.T) {
		assert.Nil(t, MatchProduct(corpus, "xyz"))
	})

	t.Run("first match wins in corpus order", func(t *testing.T) {
		// Later products match "lamp" and "light", but the bulb's
		// description matches "bright" first in corpus order.
		p := MatchProduct(corpus, "bright lamp light")
		require.NotNil(t, p)
		assert.Equal(t, "1", p.ID)
	})

	t.Run("empty corpus", func(t *testing.T) {
		assert.Nil(t, MatchProduct(nil, "bulb"))
	})

	t.Run("empty query", func(t *testing.T) {
		assert.Nil(t, MatchProduct(corpus, ""))
	})
}
