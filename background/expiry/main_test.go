package expiry

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/bitmark-inc/huddle-api/background"
)

var expiryWorker *ExpiryWorker

type mockMaintainer struct {
	mock.Mock
}

func (m *mockMaintainer) ExpireRequest(ctx context.Context, requestID string) error {
	args := m.Called(requestID)
	return args.Error(0)
}

func (m *mockMaintainer) SweepStaleRequests(ctx context.Context) (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func TestMain(m *testing.M) {
	expiryWorker = NewExpiryWorker("test", background.Background{})
	expiryWorker.Register()
	os.Exit(m.Run())
}
