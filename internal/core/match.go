package core

import (
	"encoding/json"
	"strings"

	"github.com/deepak6009/customer-service-bot/internal/store"
)

// MatchProduct finds the first product, in corpus order, whose combined
// name + description + stringified specs contains any whitespace token
// of the normalized query. There is no scoring among multiple matches;
// single-character tokens can cause spurious hits, which is a known
// limitation of the matching contract.
func MatchProduct(products []store.Product, normalizedQuery string) *store.Product {
	tokens := strings.Fields(normalizedQuery)
	if len(tokens) == 0 {
		return nil
	}

	for i := range products {
		haystack := productHaystack(&products[i])
		for _, token := range tokens {
			if strings.Contains(haystack, token) {
				return &products[i]
			}
		}
	}
	return nil
}

func productHaystack(p *store.Product) string {
	// Map keys marshal in sorted order, so the haystack is stable for a
	// given product.
	specsJSON, err := json.Marshal(p.Specs)
	if err != nil {
		specsJSON = nil
	}
	return strings.ToLower(p.Name + " " + p.Description + " " + string(specsJSON))
}
