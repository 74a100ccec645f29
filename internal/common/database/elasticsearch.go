// internal/common/database/elasticsearch.go
package database

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"finance-assistant/internal/common/config"
)

// NewElasticsearch builds a client for the configured cluster and
// checks that it responds to an Info call.
func NewElasticsearch(cfg config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("creating elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("contacting elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info returned %s", res.Status())
	}

	return client, nil
}
