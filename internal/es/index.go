package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/ntarasov/shop_backend/internal/models"
)

const ProductIndex = "products"

// Indexer mirrors product mutations into the search index. A nil Indexer is
// a no-op so the server can run without Elasticsearch configured.
type Indexer struct {
	Client *elasticsearch.Client
}

type productDoc struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Stock       int    `json:"stock"`
}

func (i *Indexer) IndexProduct(ctx context.Context, p *models.Product) error {
	if i == nil || i.Client == nil {
		return nil
	}

	doc := productDoc{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}

	res, err := i.Client.Index(
		ProductIndex,
		&buf,
		i.Client.Index.WithContext(ctx),
		i.Client.Index.WithDocumentID(doc.ID),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index product %s: %s", doc.ID, res.Status())
	}
	return nil
}

func (i *Indexer) DeleteProduct(ctx context.Context, id string) error {
	if i == nil || i.Client == nil {
		return nil
	}

	res, err := i.Client.Delete(
		ProductIndex,
		id,
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// 404 from the index just means the document was never indexed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete product %s: %s", id, res.Status())
	}
	return nil
}
