package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/course-platform/internal/models"
	"github.com/daniilsolovey/course-platform/internal/paymentprovider"
)

type fakeRepo struct {
	payments []models.Payment
	sessions map[int64]*models.PaymentCourse
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sessions: make(map[int64]*models.PaymentCourse)}
}

func (r *fakeRepo) CreatePayment(_ context.Context, p models.Payment) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.PaymentDate = time.Now().UTC()
	r.payments = append(r.payments, p)
	return p.ID, nil
}

func (r *fakeRepo) ListPayments(_ context.Context, _ *int64, _ *string) ([]*models.Payment, error) {
	result := make([]*models.Payment, 0, len(r.payments))
	for i := range r.payments {
		result = append(result, &r.payments[i])
	}
	return result, nil
}

func (r *fakeRepo) CreatePaymentCourse(_ context.Context, pc models.PaymentCourse) (int64, error) {
	r.nextID++
	pc.ID = r.nextID
	r.sessions[pc.ID] = &pc
	return pc.ID, nil
}

func (r *fakeRepo) LinkPaymentSession(_ context.Context, id int64, sessionID, paymentLink string) error {
	pc := r.sessions[id]
	pc.SessionID = &sessionID
	pc.PaymentLink = &paymentLink
	return nil
}

func (r *fakeRepo) ReadCourse(_ context.Context, id int64) (*models.Course, error) {
	return &models.Course{ID: id}, nil
}

type fakeProvider struct {
	priceErr   error
	sessionErr error
	unitAmount int64
}

func (p *fakeProvider) CreatePrice(_ context.Context, unitAmount int64) (*paymentprovider.Price, error) {
	if p.priceErr != nil {
		return nil, p.priceErr
	}
	p.unitAmount = unitAmount
	return &paymentprovider.Price{ID: "price_123", Currency: "usd", UnitAmount: unitAmount}, nil
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, priceID string) (*paymentprovider.Session, error) {
	if p.sessionErr != nil {
		return nil, p.sessionErr
	}
	return &paymentprovider.Session{ID: "cs_" + priceID, URL: "https://pay.example.com/cs_" + priceID}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestList_AmountFormattedWithTwoDecimals(t *testing.T) {
	repo := newFakeRepo()
	service := New(repo, &fakeProvider{}, discardLogger())

	_, err := service.Create(context.Background(), "user-1", models.DummyPayment{
		Amount: 1999.5,
		Method: models.PaymentMethodCard,
	})
	require.NoError(t, err)

	list, err := service.List(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1999.50", list[0].Amount)
}

func TestInitiateSession_Success(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{}
	service := New(repo, provider, discardLogger())

	info, err := service.InitiateSession(context.Background(), "user-1", models.DummyPaymentSession{Amount: 49.99})
	require.NoError(t, err)

	assert.EqualValues(t, 4999, provider.unitAmount)
	assert.Equal(t, "49.99", info.Amount)
	require.NotNil(t, info.SessionID)
	require.NotNil(t, info.PaymentLink)

	stored := repo.sessions[info.ID]
	require.NotNil(t, stored.SessionID)
	assert.Equal(t, *info.SessionID, *stored.SessionID)
}

func TestInitiateSession_ProviderDown_KeepsUnlinkedRecord(t *testing.T) {
	repo := newFakeRepo()
	provider := &fakeProvider{priceErr: errors.New("connection refused")}
	service := New(repo, provider, discardLogger())

	_, err := service.InitiateSession(context.Background(), "user-1", models.DummyPaymentSession{Amount: 10})
	require.ErrorIs(t, err, ErrProviderUnavailable)

	// Запись создана до обращения к провайдеру и остаётся без сессии.
	require.Len(t, repo.sessions, 1)
	for _, pc := range repo.sessions {
		assert.Nil(t, pc.SessionID)
		assert.Nil(t, pc.PaymentLink)
	}
}
