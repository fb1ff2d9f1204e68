package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"order-api/models"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*models.User
	err     error
	inserts int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserStore) FindByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[userID], nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Insert(_ context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.inserts++
	u := &models.User{
		UserID:    uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
	}
	f.byID[u.UserID] = u
	return u, nil
}

type fakeOrderStore struct {
	created []models.NewOrderItem
	order   *models.Order
	details *models.OrderDetails
	list    []models.OrderDetails
	err     error

	gotUserID  uuid.UUID
	gotOrderID uuid.UUID
}

func (f *fakeOrderStore) CreateOrderWithItems(_ context.Context, userID uuid.UUID, note *string, items []models.NewOrderItem) (*models.Order, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	f.created = items
	f.order = &models.Order{OrderID: uuid.New(), UserID: userID, Note: note}
	return f.order, nil
}

func (f *fakeOrderStore) GetOrder(_ context.Context, userID, orderID uuid.UUID) (*models.OrderDetails, error) {
	f.gotUserID, f.gotOrderID = userID, orderID
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

func (f *fakeOrderStore) ListOrders(_ context.Context, userID uuid.UUID) ([]models.OrderDetails, error) {
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type publishedEvent struct {
	event    models.OrderEvent
	priority uint8
}

type fakePublisher struct {
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishOrderEvent(event models.OrderEvent, priority uint8) error {
	f.events = append(f.events, publishedEvent{event: event, priority: priority})
	return f.err
}
