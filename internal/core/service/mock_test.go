package service

import (
	"context"
	"maps"
	"sync"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
	"github.com/stretchr/testify/mock"
)

var _ port.BackendAPI = (*MockBackend)(nil)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Products(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockBackend) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	ps, _ := args.Get(0).([]domain.Product)
	return ps, args.Error(1)
}

func (m *MockBackend) Cart(ctx context.Context, token string) ([]domain.CartLine, error) {
	args := m.Called(ctx, token)
	ls, _ := args.Get(0).([]domain.CartLine)
	return ls, args.Error(1)
}

func (m *MockBackend) UpsertCart(
	ctx context.Context, token string, line domain.CartLine,
) ([]domain.CartLine, error) {
	args := m.Called(ctx, token, line)
	ls, _ := args.Get(0).([]domain.CartLine)
	return ls, args.Error(1)
}

func (m *MockBackend) Checkout(ctx context.Context, token, addressID string) error {
	args := m.Called(ctx, token, addressID)
	return args.Error(0)
}

func (m *MockBackend) Addresses(ctx context.Context, token string) ([]domain.Address, error) {
	args := m.Called(ctx, token)
	as, _ := args.Get(0).([]domain.Address)
	return as, args.Error(1)
}

func (m *MockBackend) AddAddress(
	ctx context.Context, token, text string,
) ([]domain.Address, error) {
	args := m.Called(ctx, token, text)
	as, _ := args.Get(0).([]domain.Address)
	return as, args.Error(1)
}

func (m *MockBackend) DeleteAddress(
	ctx context.Context, token, addressID string,
) ([]domain.Address, error) {
	args := m.Called(ctx, token, addressID)
	as, _ := args.Get(0).([]domain.Address)
	return as, args.Error(1)
}

func (m *MockBackend) Login(
	ctx context.Context, c domain.Credentials,
) (domain.Login, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Login), args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, c domain.Credentials) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockBackend) Balance(ctx context.Context, token string) (int, bool, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) ProduceEvent(ctx context.Context, evt domain.ClientEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

// fakeKV is an in-memory port.KeyValueStorage.
type fakeKV struct {
	mu sync.Mutex
	m  map[string]map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{m: make(map[string]map[string]string)}
}

func (kv *fakeKV) Get(_ context.Context, ns string) (map[string]string, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return maps.Clone(kv.m[ns]), nil
}

func (kv *fakeKV) Set(_ context.Context, ns string, entries map[string]string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.m[ns] == nil {
		kv.m[ns] = make(map[string]string)
	}
	maps.Copy(kv.m[ns], entries)
	return nil
}

func (kv *fakeKV) Clear(_ context.Context, ns string) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.m, ns)
	return nil
}

func (kv *fakeKV) login(ns, token, username, balance string) {
	kv.m[ns] = map[string]string{
		domain.SessionTokenKey:    token,
		domain.SessionUsernameKey: username,
		domain.SessionBalanceKey:  balance,
	}
}
