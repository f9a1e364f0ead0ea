package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/funzone/internal/mailer"
)

// MockMailer is a mock implementation of mailer.Sender
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
