// Package jsonfile loads the card catalog from a JSON file on disk. This is
// the default catalog source; deployments with a database use the postgres
// source instead.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"cardadvisor/domain"
	"cardadvisor/pkg/apperr"
)

type CardRepository struct {
	path string
}

func NewCardRepository(path string) *CardRepository {
	return &CardRepository{path: path}
}

func (r *CardRepository) LoadCards() ([]domain.Card, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, apperr.NewCatalogLoad(fmt.Sprintf("read card data file %s", r.path), err)
	}

	var cards []domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, apperr.NewCatalogLoad(fmt.Sprintf("parse card data file %s", r.path), err)
	}

	return cards, nil
}
