package domain

import (
	"context"
	"encoding/json"
)

// NEOCatalog serves pages of the near-Earth object catalog as raw provider JSON.
type NEOCatalog interface {
	// Browse returns one catalog page. Page 0 is the provider's default page.
	Browse(ctx context.Context, page int) (json.RawMessage, error)
}
