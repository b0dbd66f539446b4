package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
	"github.com/farmkart/farmkart-api/internal/notify"
	"github.com/farmkart/farmkart-api/internal/repository"
)

type fakeRFQStore struct {
	rfqs map[uuid.UUID]*model.RFQ
}

func newFakeRFQStore() *fakeRFQStore {
	return &fakeRFQStore{rfqs: map[uuid.UUID]*model.RFQ{}}
}

func (f *fakeRFQStore) Create(_ context.Context, rfq *model.RFQ) error {
	if rfq.ID == uuid.Nil {
		rfq.ID = uuid.New()
	}
	stored := *rfq
	f.rfqs[rfq.ID] = &stored
	return nil
}

func (f *fakeRFQStore) GetByID(_ context.Context, id uuid.UUID) (*model.RFQ, error) {
	rfq, ok := f.rfqs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *rfq
	return &copied, nil
}

func (f *fakeRFQStore) List(_ context.Context, filter repository.RFQFilter) ([]model.RFQ, int64, error) {
	var out []model.RFQ
	for _, rfq := range f.rfqs {
		if filter.BuyerID != uuid.Nil && rfq.BuyerID != filter.BuyerID {
			continue
		}
		if filter.Type != "" && rfq.Type != filter.Type {
			continue
		}
		if filter.Status != "" && rfq.Status != filter.Status {
			continue
		}
		out = append(out, *rfq)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRFQStore) DistinctRegions(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var regions []string
	for _, rfq := range f.rfqs {
		if !seen[rfq.Region] {
			seen[rfq.Region] = true
			regions = append(regions, rfq.Region)
		}
	}
	return regions, nil
}

type fakeBidStore struct {
	bids      map[uuid.UUID]*model.Bid
	acceptErr error
	closeRFQ  func(rfqID uuid.UUID)
}

func newFakeBidStore() *fakeBidStore {
	return &fakeBidStore{bids: map[uuid.UUID]*model.Bid{}}
}

func (f *fakeBidStore) Create(_ context.Context, bid *model.Bid) error {
	for _, existing := range f.bids {
		if existing.RFQID == bid.RFQID && existing.FarmerID == bid.FarmerID {
			return gorm.ErrDuplicatedKey
		}
	}
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	stored := *bid
	f.bids[bid.ID] = &stored
	return nil
}

func (f *fakeBidStore) GetByID(_ context.Context, id uuid.UUID) (*model.Bid, error) {
	bid, ok := f.bids[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *bid
	return &copied, nil
}

func (f *fakeBidStore) GetByRFQAndFarmer(_ context.Context, rfqID, farmerID uuid.UUID) (*model.Bid, error) {
	for _, bid := range f.bids {
		if bid.RFQID == rfqID && bid.FarmerID == farmerID {
			copied := *bid
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBidStore) ListByRFQ(_ context.Context, rfqID uuid.UUID) ([]model.Bid, error) {
	var out []model.Bid
	for _, bid := range f.bids {
		if bid.RFQID == rfqID {
			out = append(out, *bid)
		}
	}
	return out, nil
}

func (f *fakeBidStore) ListByFarmer(_ context.Context, farmerID uuid.UUID) ([]model.Bid, error) {
	var out []model.Bid
	for _, bid := range f.bids {
		if bid.FarmerID == farmerID {
			out = append(out, *bid)
		}
	}
	return out, nil
}

func (f *fakeBidStore) Accept(_ context.Context, rfqID, bidID, _ uuid.UUID) (*model.Bid, []model.Bid, error) {
	if f.acceptErr != nil {
		return nil, nil, f.acceptErr
	}
	accepted, ok := f.bids[bidID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	accepted.Status = model.BidStatusAccepted

	var rejected []model.Bid
	for _, bid := range f.bids {
		if bid.RFQID == rfqID && bid.ID != bidID {
			bid.Status = model.BidStatusRejected
			rejected = append(rejected, *bid)
		}
	}
	if f.closeRFQ != nil {
		f.closeRFQ(rfqID)
	}
	result := *accepted
	return &result, rejected, nil
}

type fakeSummaryStore struct {
	summaries map[uuid.UUID]model.UserSummary
}

func newFakeSummaryStore() *fakeSummaryStore {
	return &fakeSummaryStore{summaries: map[uuid.UUID]model.UserSummary{}}
}

func (f *fakeSummaryStore) SummariesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.UserSummary, error) {
	out := map[uuid.UUID]model.UserSummary{}
	for _, id := range ids {
		if summary, ok := f.summaries[id]; ok {
			out[id] = summary
		}
	}
	return out, nil
}

type fakeAuditStore struct {
	entries []model.AuditEntry
}

func (f *fakeAuditStore) Record(_ context.Context, entry *model.AuditEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

type sentEvent struct {
	userID uuid.UUID
	event  notify.Event
}

type fakeNotifier struct {
	sent      []sentEvent
	broadcast []notify.Event
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID uuid.UUID, event notify.Event) {
	f.sent = append(f.sent, sentEvent{userID: userID, event: event})
}

func (f *fakeNotifier) Broadcast(_ context.Context, event notify.Event) {
	f.broadcast = append(f.broadcast, event)
}

type fakeUserStore struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uuid.UUID]*model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Save(_ context.Context, user *model.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

type fakeCartStore struct {
	items map[uuid.UUID][]model.CartItem
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{items: map[uuid.UUID][]model.CartItem{}}
}

func (f *fakeCartStore) GetItems(_ context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	return f.items[userID], nil
}

func (f *fakeCartStore) Upsert(_ context.Context, userID, productID uuid.UUID, quantity float64) error {
	for i, item := range f.items[userID] {
		if item.ProductID == productID {
			f.items[userID][i].Quantity = quantity
			return nil
		}
	}
	f.items[userID] = append(f.items[userID], model.CartItem{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	return nil
}

func (f *fakeCartStore) Remove(_ context.Context, userID, productID uuid.UUID) error {
	items := f.items[userID]
	for i, item := range items {
		if item.ProductID == productID {
			f.items[userID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	delete(f.items, userID)
	return nil
}

type fakeProductGetter struct {
	products map[uuid.UUID]*model.Product
}

func newFakeProductGetter() *fakeProductGetter {
	return &fakeProductGetter{products: map[uuid.UUID]*model.Product{}}
}

func (f *fakeProductGetter) GetByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

type fakeOrderStore struct {
	orders       map[uuid.UUID]*model.Order
	clearedCarts []uuid.UUID
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[uuid.UUID]*model.Order{}}
}

func (f *fakeOrderStore) CreateFromCart(_ context.Context, order *model.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	stored := *order
	f.orders[order.ID] = &stored
	f.clearedCarts = append(f.clearedCarts, order.UserID)
	return nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) Save(_ context.Context, order *model.Order) error {
	stored := *order
	f.orders[order.ID] = &stored
	return nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	var out []model.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

type fakeInvoiceCreator struct {
	invoices []model.Invoice
}

func (f *fakeInvoiceCreator) Create(_ context.Context, invoice *model.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	f.invoices = append(f.invoices, *invoice)
	return nil
}
