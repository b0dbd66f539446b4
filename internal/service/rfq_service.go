package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/config"
	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/notify"
	"github.com/farmkart/farmkart-api/internal/repository"
)

const rfqPageSize = 10

var transportMethods = []string{"Own Vehicle", "Pickup", "Third-Party"}

type RFQStore interface {
	Create(ctx context.Context, rfq *model.RFQ) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RFQ, error)
	List(ctx context.Context, filter repository.RFQFilter) ([]model.RFQ, int64, error)
	DistinctRegions(ctx context.Context) ([]string, error)
}

type BidStore interface {
	Create(ctx context.Context, bid *model.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bid, error)
	GetByRFQAndFarmer(ctx context.Context, rfqID, farmerID uuid.UUID) (*model.Bid, error)
	ListByRFQ(ctx context.Context, rfqID uuid.UUID) ([]model.Bid, error)
	ListByFarmer(ctx context.Context, farmerID uuid.UUID) ([]model.Bid, error)
	Accept(ctx context.Context, rfqID, bidID, actorID uuid.UUID) (*model.Bid, []model.Bid, error)
}

type SummaryStore interface {
	SummariesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.UserSummary, error)
}

type AuditStore interface {
	Record(ctx context.Context, entry *model.AuditEntry) error
}

type Notifier interface {
	NotifyUser(ctx context.Context, userID uuid.UUID, event notify.Event)
	Broadcast(ctx context.Context, event notify.Event)
}

type RFQService struct {
	rfqs     RFQStore
	bids     BidStore
	users    SummaryStore
	audit    AuditStore
	notifier Notifier
	weights  config.BiddingConfig
	now      func() time.Time
}

func NewRFQService(
	rfqs RFQStore,
	bids BidStore,
	users SummaryStore,
	audit AuditStore,
	notifier Notifier,
	cfg *config.Config,
) *RFQService {
	return &RFQService{
		rfqs:     rfqs,
		bids:     bids,
		users:    users,
		audit:    audit,
		notifier: notifier,
		weights:  cfg.Bidding,
		now:      time.Now,
	}
}

type CreateRFQInput struct {
	Product          string
	Category         string
	Quantity         float64
	Unit             string
	DeliveryDeadline time.Time
	AdditionalNotes  string
	Type             model.RFQType
	Region           string
	InvitedFarmers   []uuid.UUID
	Attachments      []string
	Principal        model.Principal
}

func (s *RFQService) Create(ctx context.Context, input CreateRFQInput) (*model.RFQ, error) {
	if !input.Principal.IsBusiness() {
		return nil, ErrPermissionDenied
	}
	if input.Product == "" || input.Category == "" || input.Unit == "" || input.Region == "" {
		return nil, fmt.Errorf("%w: product, category, unit and region are required", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}
	if input.DeliveryDeadline.IsZero() {
		return nil, fmt.Errorf("%w: delivery deadline is required", ErrInvalidInput)
	}

	rfqType := input.Type
	if rfqType == "" {
		rfqType = model.RFQTypePublic
	}
	switch rfqType {
	case model.RFQTypePrivate:
		if len(input.InvitedFarmers) == 0 {
			return nil, fmt.Errorf("%w: private RFQs require at least one invited farmer", ErrInvalidInput)
		}
	case model.RFQTypePublic:
		if len(input.InvitedFarmers) > 0 {
			return nil, fmt.Errorf("%w: public RFQs cannot have invited farmers", ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: invalid RFQ type", ErrInvalidInput)
	}

	rfq := &model.RFQ{
		RFQNumber:        s.buildRFQNumber(input.Region),
		BuyerID:          input.Principal.ID,
		Product:          input.Product,
		Category:         input.Category,
		Quantity:         input.Quantity,
		Unit:             input.Unit,
		DeliveryDeadline: input.DeliveryDeadline,
		Attachments:      input.Attachments,
		Type:             rfqType,
		InvitedFarmers:   input.InvitedFarmers,
		Status:           model.RFQStatusOpen,
		AdditionalNotes:  input.AdditionalNotes,
		Region:           input.Region,
	}
	if err := s.rfqs.Create(ctx, rfq); err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, &model.AuditEntry{
		EntityType: model.AuditEntityRFQ,
		EntityID:   rfq.ID,
		EventType:  model.AuditRFQCreated,
		UserID:     &input.Principal.ID,
		Details: map[string]string{
			"product": rfq.Product,
			"type":    string(rfq.Type),
		},
	})

	s.notifier.Broadcast(ctx, notify.Event{
		Type:    notify.EventNewRFQ,
		Message: fmt.Sprintf("New RFQ posted for %s.", rfq.Product),
		Data:    map[string]string{"rfqId": rfq.ID.String()},
	})

	return rfq, nil
}

type ListRFQsInput struct {
	Keyword   string
	Category  string
	Region    string
	Sort      string
	Page      int
	Browse    bool
	Principal model.Principal
}

type RFQPage struct {
	RFQs  []model.RFQ `json:"rfqs"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

func (s *RFQService) List(ctx context.Context, input ListRFQsInput) (*RFQPage, error) {
	filter := repository.RFQFilter{
		Keyword:  input.Keyword,
		Category: input.Category,
		Region:   input.Region,
		Sort:     repository.RFQSort(input.Sort),
		Page:     input.Page,
		PageSize: rfqPageSize,
	}

	switch {
	case input.Browse, input.Principal.IsFarmer():
		filter.Type = model.RFQTypePublic
		filter.Status = model.RFQStatusOpen
	case input.Principal.IsBusiness():
		filter.BuyerID = input.Principal.ID
	default:
		return nil, ErrPermissionDenied
	}

	rfqs, count, err := s.rfqs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attachBuyers(ctx, rfqs); err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	return &RFQPage{
		RFQs:  rfqs,
		Page:  page,
		Pages: int(math.Ceil(float64(count) / float64(rfqPageSize))),
	}, nil
}

func (s *RFQService) Get(ctx context.Context, id uuid.UUID, principal model.Principal) (*model.RFQ, error) {
	rfq, err := s.getRFQ(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case principal.IsBusiness():
		if rfq.BuyerID != principal.ID {
			return nil, ErrPermissionDenied
		}
	case principal.IsFarmer():
		if rfq.Type == model.RFQTypePrivate && !invited(rfq, principal.ID) {
			return nil, ErrPermissionDenied
		}
	case principal.IsAdmin():
	default:
		return nil, ErrPermissionDenied
	}

	summaries, err := s.users.SummariesByIDs(ctx, []uuid.UUID{rfq.BuyerID})
	if err != nil {
		return nil, err
	}
	if summary, ok := summaries[rfq.BuyerID]; ok {
		rfq.Buyer = &summary
	}
	return rfq, nil
}

func (s *RFQService) Regions(ctx context.Context) ([]string, error) {
	return s.rfqs.DistinctRegions(ctx)
}

func (s *RFQService) TransportMethods() []string {
	methods := make([]string, len(transportMethods))
	copy(methods, transportMethods)
	return methods
}

type SubmitBidInput struct {
	RFQID           uuid.UUID
	PricePerUnit    float64
	DeliveryWindow  model.DeliveryWindow
	TransportMethod string
	Remarks         string
	Principal       model.Principal
}

func (s *RFQService) SubmitBid(ctx context.Context, input SubmitBidInput) (*model.Bid, error) {
	if !input.Principal.IsFarmer() {
		return nil, ErrPermissionDenied
	}
	if input.PricePerUnit <= 0 {
		return nil, fmt.Errorf("%w: price per unit must be a positive number", ErrInvalidInput)
	}
	if input.DeliveryWindow.Start.IsZero() || input.DeliveryWindow.End.IsZero() {
		return nil, fmt.Errorf("%w: delivery window is required", ErrInvalidInput)
	}
	if input.DeliveryWindow.End.Before(input.DeliveryWindow.Start) {
		return nil, fmt.Errorf("%w: delivery window end precedes its start", ErrInvalidInput)
	}
	if input.TransportMethod == "" {
		return nil, fmt.Errorf("%w: transport method is required", ErrInvalidInput)
	}

	rfq, err := s.getRFQ(ctx, input.RFQID)
	if err != nil {
		return nil, err
	}
	if !rfq.Open() {
		return nil, fmt.Errorf("%w: cannot submit bid for a closed RFQ", ErrConflict)
	}
	if rfq.Type == model.RFQTypePrivate && !invited(rfq, input.Principal.ID) {
		return nil, ErrPermissionDenied
	}
	if input.DeliveryWindow.End.After(rfq.DeliveryDeadline) {
		return nil, fmt.Errorf("%w: delivery window cannot exceed the RFQ deadline", ErrInvalidInput)
	}

	if _, err := s.bids.GetByRFQAndFarmer(ctx, rfq.ID, input.Principal.ID); err == nil {
		return nil, fmt.Errorf("%w: you have already submitted a bid for this RFQ", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	bid := &model.Bid{
		BidNumber:       s.buildBidNumber(),
		RFQID:           rfq.ID,
		FarmerID:        input.Principal.ID,
		PricePerUnit:    input.PricePerUnit,
		DeliveryWindow:  input.DeliveryWindow,
		TransportMethod: input.TransportMethod,
		Remarks:         input.Remarks,
		Score:           ScoreBid(s.weights, input.PricePerUnit, input.Principal.Rating),
		Status:          model.BidStatusSubmitted,
	}
	if err := s.bids.Create(ctx, bid); err != nil {
		// The unique index on (rfq_id, farmer_id) backstops the lookup above
		// when two submissions race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already submitted a bid for this RFQ", ErrConflict)
		}
		return nil, err
	}

	_ = s.audit.Record(ctx, &model.AuditEntry{
		EntityType: model.AuditEntityBid,
		EntityID:   bid.ID,
		EventType:  model.AuditBidSubmitted,
		UserID:     &input.Principal.ID,
		Details: map[string]string{
			"rfqId":        rfq.ID.String(),
			"pricePerUnit": fmt.Sprintf("%.4f", bid.PricePerUnit),
		},
	})

	s.notifier.NotifyUser(ctx, rfq.BuyerID, notify.Event{
		Type:    notify.EventNewBid,
		Message: fmt.Sprintf("New bid placed on your RFQ %q by %s.", rfq.Product, input.Principal.FullName),
		Data: map[string]string{
			"rfqId": rfq.ID.String(),
			"bidId": bid.ID.String(),
		},
	})

	return bid, nil
}

func (s *RFQService) ListBids(ctx context.Context, rfqID uuid.UUID, principal model.Principal) ([]model.Bid, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	if rfq.BuyerID != principal.ID {
		return nil, ErrPermissionDenied
	}

	bids, err := s.bids.ListByRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	if err := s.attachFarmers(ctx, bids); err != nil {
		return nil, err
	}
	return bids, nil
}

func (s *RFQService) ListMyBids(ctx context.Context, principal model.Principal) ([]model.Bid, error) {
	if !principal.IsFarmer() {
		return nil, ErrPermissionDenied
	}
	return s.bids.ListByFarmer(ctx, principal.ID)
}

type AcceptBidResult struct {
	Message     string     `json:"message"`
	AcceptedBid *model.Bid `json:"acceptedBid"`
}

// AcceptBid closes the RFQ and settles every bid on it. The store performs
// the three mutations in one transaction guarded by a conditional status
// update, so two concurrent acceptances cannot both win.
func (s *RFQService) AcceptBid(ctx context.Context, rfqID, bidID uuid.UUID, principal model.Principal) (*AcceptBidResult, error) {
	rfq, err := s.getRFQ(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	if rfq.BuyerID != principal.ID {
		return nil, ErrPermissionDenied
	}

	bid, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bid", ErrNotFound)
		}
		return nil, err
	}
	if bid.RFQID != rfq.ID {
		return nil, fmt.Errorf("%w: bid does not belong to this RFQ", ErrInvalidInput)
	}
	if !rfq.Open() {
		return nil, fmt.Errorf("%w: RFQ is not open for bid acceptance", ErrConflict)
	}

	accepted, rejected, err := s.bids.Accept(ctx, rfq.ID, bid.ID, principal.ID)
	if err != nil {
		if errors.Is(err, repository.ErrRFQNotOpen) {
			return nil, fmt.Errorf("%w: RFQ is not open for bid acceptance", ErrConflict)
		}
		return nil, err
	}

	s.notifier.NotifyUser(ctx, accepted.FarmerID, notify.Event{
		Type:    notify.EventBidAccepted,
		Message: fmt.Sprintf("Your bid for RFQ %q has been accepted!", rfq.Product),
		Data: map[string]string{
			"rfqId": rfq.ID.String(),
			"bidId": accepted.ID.String(),
		},
	})
	for _, loser := range rejected {
		s.notifier.NotifyUser(ctx, loser.FarmerID, notify.Event{
			Type:    notify.EventBidRejected,
			Message: fmt.Sprintf("Your bid for RFQ %q was rejected.", rfq.Product),
			Data: map[string]string{
				"rfqId": rfq.ID.String(),
				"bidId": loser.ID.String(),
			},
		})
	}

	return &AcceptBidResult{
		Message:     "Bid accepted successfully",
		AcceptedBid: accepted,
	}, nil
}

func (s *RFQService) getRFQ(ctx context.Context, id uuid.UUID) (*model.RFQ, error) {
	rfq, err := s.rfqs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: RFQ", ErrNotFound)
		}
		return nil, err
	}
	return rfq, nil
}

func (s *RFQService) attachBuyers(ctx context.Context, rfqs []model.RFQ) error {
	if len(rfqs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(rfqs))
	for _, rfq := range rfqs {
		ids = append(ids, rfq.BuyerID)
	}
	summaries, err := s.users.SummariesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range rfqs {
		if summary, ok := summaries[rfqs[i].BuyerID]; ok {
			rfqs[i].Buyer = &summary
		}
	}
	return nil
}

func (s *RFQService) attachFarmers(ctx context.Context, bids []model.Bid) error {
	if len(bids) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(bids))
	for _, bid := range bids {
		ids = append(ids, bid.FarmerID)
	}
	summaries, err := s.users.SummariesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range bids {
		if summary, ok := summaries[bids[i].FarmerID]; ok {
			bids[i].Farmer = &summary
		}
	}
	return nil
}

func (s *RFQService) buildRFQNumber(region string) string {
	hash := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("RFQ-%d%s-%s", s.now().Year(), strings.ToUpper(region), hash)
}

func (s *RFQService) buildBidNumber() string {
	hash := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:6]
	return fmt.Sprintf("BID-%d-%s", s.now().Year(), hash)
}

func invited(rfq *model.RFQ, farmerID uuid.UUID) bool {
	for _, id := range rfq.InvitedFarmers {
		if id == farmerID {
			return true
		}
	}
	return false
}
