package ports

import (
	"context"
	"time"

	"mpgdash/domain/car"
)

// SavedView is a named filter selection persisted across restarts.
type SavedView struct {
	ID        string
	Name      string
	Origins   []string
	Cylinders []int
	YearMin   int
	YearMax   int
	CreatedAt time.Time
}

// State rebuilds the filter selection this view was saved from.
func (v SavedView) State() car.FilterState {
	return car.NewFilterState(v.Origins, v.Cylinders, v.YearMin, v.YearMax)
}

// ViewStorePort persists saved views. Get and Delete accept either a
// view id or its name.
type ViewStorePort interface {
	Save(ctx context.Context, name string, state car.FilterState) (SavedView, error)
	List(ctx context.Context) ([]SavedView, error)
	Get(ctx context.Context, ref string) (SavedView, error)
	Delete(ctx context.Context, ref string) error
}
