package store

import (
	"slices"

	"github.com/Lixing-Zhang/storefront/internal/models"
)

// Status is the lifecycle of the catalog fetch
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// CatalogState holds the remote product list and its fetch lifecycle.
// Error is non-empty exactly when Status is StatusFailed.
type CatalogState struct {
	Products []models.Product `json:"products"`
	Status   Status           `json:"status"`
	Error    string           `json:"error,omitempty"`
}

func initialCatalog() CatalogState {
	return CatalogState{
		Products: []models.Product{},
		Status:   StatusIdle,
	}
}

// unknownFetchError keeps a failed catalog's error non-empty
const unknownFetchError = "catalog fetch failed"

// ReduceCatalog applies a catalog action. Actions for other slices return s unchanged.
func ReduceCatalog(s CatalogState, a Action) CatalogState {
	switch a := a.(type) {
	case FetchRequested:
		s.Status = StatusLoading
		s.Error = ""
	case FetchSucceeded:
		s.Status = StatusSucceeded
		s.Error = ""
		s.Products = slices.Clone(a.Products)
		if s.Products == nil {
			s.Products = []models.Product{}
		}
	case FetchFailed:
		// Stale products stay available.
		s.Status = StatusFailed
		s.Error = a.Message
		if s.Error == "" {
			s.Error = unknownFetchError
		}
	}
	return s
}
