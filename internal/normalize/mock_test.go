package normalize

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// --- Resolver mock ---

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, ref string) (map[string]any, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// fixedNow is the deterministic clock used across normalize tests.
var fixedNow = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func testClock() func() time.Time {
	return func() time.Time { return fixedNow }
}
