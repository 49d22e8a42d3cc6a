package ports

import (
	"mpgdash/domain/car"
)

// DatasetPort provides access to car datasets stored on disk.
// Implementations cache parsed datasets, so handlers can call Load on
// every request.
type DatasetPort interface {
	Load(path string) (*car.Dataset, error)
}
