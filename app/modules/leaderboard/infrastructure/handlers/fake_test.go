package leaderboardhandlers

import (
	"context"

	resultstypes "github.com/Black-And-White-Club/wordle-bot/app/modules/results/domain/types"
)

type FakeDatasetSource struct {
	calls int

	LoadFunc func(ctx context.Context) ([]resultstypes.FinalRow, error)
}

func (f *FakeDatasetSource) Load(ctx context.Context) ([]resultstypes.FinalRow, error) {
	f.calls++
	if f.LoadFunc != nil {
		return f.LoadFunc(ctx)
	}
	return nil, nil
}

var _ DatasetSource = (*FakeDatasetSource)(nil)
