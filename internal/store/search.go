// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"finance-assistant/internal/common/errors"
	"finance-assistant/internal/models"
)

const transactionsIndex = "transactions"

// TransactionSearch runs free-text lookups over the transactions index
// for description-driven questions ("what did I buy at the pharmacy").
type TransactionSearch struct {
	client *elasticsearch.Client
}

func NewTransactionSearch(client *elasticsearch.Client) *TransactionSearch {
	return &TransactionSearch{client: client}
}

type esHit struct {
	Source models.Transaction `json:"_source"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []esHit `json:"hits"`
	} `json:"hits"`
}

// Search returns up to size transactions for the user matching the
// free-text terms against description and category.
func (s *TransactionSearch) Search(ctx context.Context, userID, terms string, size int) ([]models.Transaction, error) {
	if size <= 0 {
		size = 10
	}

	query := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"userId": userID}},
				},
				"must": []map[string]interface{}{
					{"multi_match": map[string]interface{}{
						"query":     terms,
						"fields":    []string{"description", "category"},
						"fuzziness": "AUTO",
					}},
				},
			},
		},
		"sort": []map[string]interface{}{
			{"occurredAt": map[string]interface{}{"order": "desc"}},
		},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return nil, errors.NewSearchError("encoding search query", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(transactionsIndex),
		s.client.Search.WithBody(&body),
	)
	if err != nil {
		return nil, errors.NewSearchError("executing transaction search", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchError(fmt.Sprintf("transaction search returned %s", res.Status()), nil)
	}

	var parsed esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewSearchError("decoding search response", err)
	}

	out := make([]models.Transaction, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}
