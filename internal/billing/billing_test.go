package billing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreatePaymentIntent tests payment intent creation against the mock
// provider, which is the contract the checkout flow depends on.
func TestCreatePaymentIntent(t *testing.T) {
	tests := []struct {
		name      string
		params    CreatePaymentIntentParams
		setupMock func(*MockProvider)
		wantErr   error
	}{
		{
			name: "creates payment intent with valid params",
			params: CreatePaymentIntentParams{
				AmountCents:   4900, // $49.00
				Currency:      "usd",
				CustomerEmail: "customer@example.com",
				Description:   "Storefront checkout",
				Metadata: map[string]string{
					"cart_id": "cart_123",
				},
			},
			wantErr: nil,
		},
		{
			name: "rejects amount below processor minimum",
			params: CreatePaymentIntentParams{
				AmountCents: 49,
				Currency:    "usd",
			},
			setupMock: func(m *MockProvider) {
				m.CreatePaymentIntentFunc = func(ctx context.Context, params CreatePaymentIntentParams) (*PaymentIntent, error) {
					if params.AmountCents < 50 {
						return nil, ErrAmountTooSmall
					}
					t.Fatal("amount should have been rejected")
					return nil, nil
				}
			},
			wantErr: ErrAmountTooSmall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := NewMockProvider()
			if tt.setupMock != nil {
				tt.setupMock(provider)
			}

			pi, err := provider.CreatePaymentIntent(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, pi.ID)
			assert.NotEmpty(t, pi.ClientSecret, "frontend needs the client secret to confirm payment")
			assert.Equal(t, tt.params.AmountCents, pi.AmountCents)
			assert.Equal(t, tt.params.Currency, pi.Currency)
			assert.Equal(t, "requires_payment_method", pi.Status)
			assert.Equal(t, tt.params.Metadata, pi.Metadata)
		})
	}
}

func TestGetPaymentIntent(t *testing.T) {
	provider := NewMockProvider()

	pi, err := provider.CreatePaymentIntent(context.Background(), CreatePaymentIntentParams{
		AmountCents: 2500,
		Currency:    "usd",
	})
	require.NoError(t, err)

	t.Run("returns stored intent", func(t *testing.T) {
		got, err := provider.GetPaymentIntent(context.Background(), pi.ID)
		require.NoError(t, err)
		assert.Equal(t, pi.ID, got.ID)
	})

	t.Run("unknown intent", func(t *testing.T) {
		_, err := provider.GetPaymentIntent(context.Background(), "pi_missing")
		assert.ErrorIs(t, err, ErrPaymentIntentNotFound)
	})

	t.Run("simulated success is visible on retrieval", func(t *testing.T) {
		require.NoError(t, provider.SimulateSucceededPayment(pi.ID))

		got, err := provider.GetPaymentIntent(context.Background(), pi.ID)
		require.NoError(t, err)
		assert.Equal(t, "succeeded", got.Status)
	})
}

func TestNewStripeProvider(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewStripeProvider(StripeConfig{})
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	})

	t.Run("detects test mode", func(t *testing.T) {
		cfg := StripeConfig{APIKey: "sk_test_abc123"}
		assert.True(t, cfg.IsTestMode())

		cfg = StripeConfig{APIKey: "sk_live_abc123"}
		assert.False(t, cfg.IsTestMode())
	})
}

func TestStripeError(t *testing.T) {
	err := &StripeError{
		Message:     "Your card was declined.",
		Code:        "card_declined",
		DeclineCode: "insufficient_funds",
	}

	assert.True(t, err.IsDeclined())
	assert.Contains(t, err.Error(), "card_declined")

	generic := &StripeError{Message: "boom"}
	assert.False(t, generic.IsDeclined())
}
