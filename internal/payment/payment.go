package payment

import (
	"fmt"

	"github.com/google/uuid"
)

// IntentProvider creates payment intents for checkout flows.
type IntentProvider interface {
	CreateIntent() (clientSecret string, err error)
}

// mockProvider issues opaque client secrets without talking to a real
// gateway. Shape mirrors a Stripe payment-intent secret.
type mockProvider struct{}

func NewMockProvider() IntentProvider {
	return mockProvider{}
}

func (mockProvider) CreateIntent() (string, error) {
	return fmt.Sprintf("pi_%s_secret_%s", uuid.New(), uuid.New()), nil
}
