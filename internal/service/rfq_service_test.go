package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmkart/farmkart-api/internal/config"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/notify"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type rfqTestEnv struct {
	svc      *RFQService
	rfqs     *fakeRFQStore
	bids     *fakeBidStore
	users    *fakeSummaryStore
	audit    *fakeAuditStore
	notifier *fakeNotifier
}

func newRFQTestEnv(t *testing.T) *rfqTestEnv {
	t.Helper()
	env := &rfqTestEnv{
		rfqs:     newFakeRFQStore(),
		bids:     newFakeBidStore(),
		users:    newFakeSummaryStore(),
		audit:    &fakeAuditStore{},
		notifier: &fakeNotifier{},
	}
	env.svc = NewRFQService(env.rfqs, env.bids, env.users, env.audit, env.notifier, &config.Config{
		Bidding: defaultWeights,
	})
	env.svc.now = func() time.Time {
		return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	}
	return env
}

func businessPrincipal() model.Principal {
	return model.Principal{ID: uuid.New(), Role: model.RoleBusiness, FullName: "Agro Traders"}
}

func farmerPrincipal() model.Principal {
	return model.Principal{ID: uuid.New(), Role: model.RoleFarmer, FullName: "Ravi Kumar", Rating: 4.0}
}

func validRFQInput(principal model.Principal) CreateRFQInput {
	return CreateRFQInput{
		Product:          "Basmati Rice",
		Category:         "grains",
		Quantity:         500,
		Unit:             "kg",
		DeliveryDeadline: time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC),
		Type:             model.RFQTypePublic,
		Region:           "PB",
		Principal:        principal,
	}
}

func TestCreateRFQ(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)

	assert.Equal(t, model.RFQStatusOpen, rfq.Status)
	assert.Equal(t, buyer.ID, rfq.BuyerID)
	assert.True(t, strings.HasPrefix(rfq.RFQNumber, "RFQ-2026PB-"), rfq.RFQNumber)
	assert.Len(t, rfq.RFQNumber, len("RFQ-2026PB-")+8)

	require.Len(t, env.audit.entries, 1)
	assert.Equal(t, model.AuditRFQCreated, env.audit.entries[0].EventType)

	require.Len(t, env.notifier.broadcast, 1)
	assert.Equal(t, notify.EventNewRFQ, env.notifier.broadcast[0].Type)
}

func TestCreateRFQValidation(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()

	tests := []struct {
		name    string
		mutate  func(*CreateRFQInput)
		wantErr error
	}{
		{
			name:    "farmer cannot create",
			mutate:  func(in *CreateRFQInput) { in.Principal = farmerPrincipal() },
			wantErr: ErrPermissionDenied,
		},
		{
			name:    "zero quantity",
			mutate:  func(in *CreateRFQInput) { in.Quantity = 0 },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing region",
			mutate:  func(in *CreateRFQInput) { in.Region = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "private without invited farmers",
			mutate: func(in *CreateRFQInput) {
				in.Type = model.RFQTypePrivate
				in.InvitedFarmers = nil
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "public with invited farmers",
			mutate: func(in *CreateRFQInput) {
				in.Type = model.RFQTypePublic
				in.InvitedFarmers = []uuid.UUID{uuid.New()}
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRFQInput(buyer)
			tt.mutate(&input)
			_, err := env.svc.Create(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func validBidInput(rfqID uuid.UUID, farmer model.Principal) SubmitBidInput {
	return SubmitBidInput{
		RFQID:        rfqID,
		PricePerUnit: 42,
		DeliveryWindow: model.DeliveryWindow{
			Start: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC),
		},
		TransportMethod: "Own Vehicle",
		Principal:       farmer,
	}
}

func TestSubmitBid(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	farmer := farmerPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)

	bid, err := env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, farmer))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(bid.BidNumber, "BID-2026-"), bid.BidNumber)
	assert.Equal(t, model.BidStatusSubmitted, bid.Status)
	assert.InDelta(t, ScoreBid(defaultWeights, 42, 4.0), bid.Score, 1e-9)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, buyer.ID, env.notifier.sent[0].userID)
	assert.Equal(t, notify.EventNewBid, env.notifier.sent[0].event.Type)
}

func TestSubmitBidOnClosedRFQ(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)
	env.rfqs.rfqs[rfq.ID].Status = model.RFQStatusClosed

	_, err = env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, farmerPrincipal()))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubmitBidTwiceIsConflict(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	farmer := farmerPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)

	_, err = env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, farmer))
	require.NoError(t, err)

	_, err = env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, farmer))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubmitBidWindowBeyondDeadline(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)

	input := validBidInput(rfq.ID, farmerPrincipal())
	input.DeliveryWindow.End = rfq.DeliveryDeadline.AddDate(0, 0, 5)
	_, err = env.svc.SubmitBid(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSubmitBidPrivateRFQRequiresInvite(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	invitedFarmer := farmerPrincipal()
	outsider := farmerPrincipal()

	input := validRFQInput(buyer)
	input.Type = model.RFQTypePrivate
	input.InvitedFarmers = []uuid.UUID{invitedFarmer.ID}
	rfq, err := env.svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, outsider))
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, invitedFarmer))
	assert.NoError(t, err)
}

func TestAcceptBid(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	winner := farmerPrincipal()
	loser := farmerPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)
	env.bids.closeRFQ = func(rfqID uuid.UUID) {
		env.rfqs.rfqs[rfqID].Status = model.RFQStatusClosed
	}

	winningBid, err := env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, winner))
	require.NoError(t, err)
	losingBid, err := env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, loser))
	require.NoError(t, err)

	env.notifier.sent = nil

	result, err := env.svc.AcceptBid(context.Background(), rfq.ID, winningBid.ID, buyer)
	require.NoError(t, err)

	assert.Equal(t, "Bid accepted successfully", result.Message)
	assert.Equal(t, model.BidStatusAccepted, result.AcceptedBid.Status)
	assert.Equal(t, model.RFQStatusClosed, env.rfqs.rfqs[rfq.ID].Status)
	assert.Equal(t, model.BidStatusRejected, env.bids.bids[losingBid.ID].Status)

	require.Len(t, env.notifier.sent, 2)
	assert.Equal(t, winner.ID, env.notifier.sent[0].userID)
	assert.Equal(t, notify.EventBidAccepted, env.notifier.sent[0].event.Type)
	assert.Equal(t, loser.ID, env.notifier.sent[1].userID)
	assert.Equal(t, notify.EventBidRejected, env.notifier.sent[1].event.Type)
}

func TestAcceptBidGuards(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	farmer := farmerPrincipal()

	rfq, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)
	bid, err := env.svc.SubmitBid(context.Background(), validBidInput(rfq.ID, farmer))
	require.NoError(t, err)

	t.Run("only the owner may accept", func(t *testing.T) {
		_, err := env.svc.AcceptBid(context.Background(), rfq.ID, bid.ID, businessPrincipal())
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("bid must belong to the RFQ", func(t *testing.T) {
		other, err := env.svc.Create(context.Background(), validRFQInput(buyer))
		require.NoError(t, err)
		_, err = env.svc.AcceptBid(context.Background(), other.ID, bid.ID, buyer)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("closed RFQ is a conflict", func(t *testing.T) {
		env.rfqs.rfqs[rfq.ID].Status = model.RFQStatusClosed
		_, err := env.svc.AcceptBid(context.Background(), rfq.ID, bid.ID, buyer)
		assert.ErrorIs(t, err, ErrConflict)
		env.rfqs.rfqs[rfq.ID].Status = model.RFQStatusOpen
	})

	t.Run("losing the store race is a conflict", func(t *testing.T) {
		env.bids.acceptErr = repository.ErrRFQNotOpen
		defer func() { env.bids.acceptErr = nil }()
		_, err := env.svc.AcceptBid(context.Background(), rfq.ID, bid.ID, buyer)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestGetRFQVisibility(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	invitedFarmer := farmerPrincipal()

	input := validRFQInput(buyer)
	input.Type = model.RFQTypePrivate
	input.InvitedFarmers = []uuid.UUID{invitedFarmer.ID}
	rfq, err := env.svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = env.svc.Get(context.Background(), rfq.ID, invitedFarmer)
	assert.NoError(t, err)

	_, err = env.svc.Get(context.Background(), rfq.ID, farmerPrincipal())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.svc.Get(context.Background(), rfq.ID, businessPrincipal())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = env.svc.Get(context.Background(), rfq.ID, model.Principal{ID: uuid.New(), Role: model.RoleAdmin})
	assert.NoError(t, err)
}

func TestListRFQsFarmerSeesOnlyOpenPublic(t *testing.T) {
	env := newRFQTestEnv(t)
	buyer := businessPrincipal()
	farmer := farmerPrincipal()

	open, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)

	closed, err := env.svc.Create(context.Background(), validRFQInput(buyer))
	require.NoError(t, err)
	env.rfqs.rfqs[closed.ID].Status = model.RFQStatusClosed

	page, err := env.svc.List(context.Background(), ListRFQsInput{Principal: farmer})
	require.NoError(t, err)
	require.Len(t, page.RFQs, 1)
	assert.Equal(t, open.ID, page.RFQs[0].ID)
}
