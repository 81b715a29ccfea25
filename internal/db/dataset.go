package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

// DatasetKey is the document key the whole data set is stored under.
const DatasetKey = "dataset"

// DatasetStore persists a model.Dataset as a single JSON document.
type DatasetStore struct {
	db  *DB
	key string
}

func NewDatasetStore(db *DB) *DatasetStore {
	return &DatasetStore{db: db, key: DatasetKey}
}

// Load returns the stored data set and its revision. A store that has never
// been written loads as an empty data set at revision 0.
func (s *DatasetStore) Load(ctx context.Context) (*model.Dataset, int64, error) {
	doc, err := s.db.Get(ctx, s.key)
	if errors.Is(err, ErrNoDocument) {
		return model.NewDataset(), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	ds := model.NewDataset()
	if err := json.Unmarshal(doc.Body, ds); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s document: %w", s.key, err)
	}
	ds.Normalize()
	return ds, doc.Revision, nil
}

// Save replaces the stored data set and returns the new revision.
func (s *DatasetStore) Save(ctx context.Context, ds *model.Dataset) (int64, error) {
	ds.Normalize()
	body, err := json.Marshal(ds)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s document: %w", s.key, err)
	}
	return s.db.Put(ctx, s.key, body)
}
