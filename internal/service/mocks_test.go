package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) IncrementQuantity(ctx context.Context, productID int32, delta int32) error {
	args := m.Called(ctx, productID, delta)
	return args.Error(0)
}
func (m *MockProductRepo) DecrementQuantity(ctx context.Context, productID int32, qty int32) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) SetLocation(ctx context.Context, productID int32, variantID *int32, location domain.InventoryLocation) error {
	args := m.Called(ctx, productID, variantID, location)
	return args.Error(0)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.RentalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) GetByID(ctx context.Context, id int32) (*domain.RentalOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalOrder), args.Error(1)
}
func (m *MockOrderRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOrderRepo) CreateItem(ctx context.Context, item *domain.RentalOrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockOrderRepo) ListItems(ctx context.Context, orderID int32) ([]domain.RentalOrderItem, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.RentalOrderItem), args.Error(1)
}
func (m *MockOrderRepo) UpdateStatus(ctx context.Context, orderID int32, from []domain.OrderStatus, to domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockOrderRepo) CountItemsByVendor(ctx context.Context, orderID, vendorID int32) (int32, error) {
	args := m.Called(ctx, orderID, vendorID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrderRepo) ListByVendor(ctx context.Context, vendorID int32, status string, page, pageSize int32) ([]domain.RentalOrder, int32, error) {
	args := m.Called(ctx, vendorID, status, page, pageSize)
	return args.Get(0).([]domain.RentalOrder), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrderRepo) VendorAnalytics(ctx context.Context, vendorID int32) (*domain.VendorAnalytics, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorAnalytics), args.Error(1)
}

// MockPickupRepo
type MockPickupRepo struct {
	mock.Mock
}

func (m *MockPickupRepo) Create(ctx context.Context, pickup *domain.Pickup) error {
	args := m.Called(ctx, pickup)
	return args.Error(0)
}
func (m *MockPickupRepo) GetByID(ctx context.Context, id int32) (*domain.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Pickup), args.Error(1)
}
func (m *MockPickupRepo) ExistsByOrder(ctx context.Context, orderID int32) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPickupRepo) MarkPickedUp(ctx context.Context, id int32, pickedUpAt time.Time) (bool, error) {
	args := m.Called(ctx, id, pickedUpAt)
	return args.Bool(0), args.Error(1)
}

// MockReturnRepo
type MockReturnRepo struct {
	mock.Mock
}

func (m *MockReturnRepo) Create(ctx context.Context, ret *domain.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}
func (m *MockReturnRepo) GetByID(ctx context.Context, id int32) (*domain.Return, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Return), args.Error(1)
}
func (m *MockReturnRepo) ExistsByOrder(ctx context.Context, orderID int32) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}
func (m *MockReturnRepo) Complete(ctx context.Context, id int32, returnedAt time.Time, condition string, damageFeeCents, lateFeeCents int32) (bool, error) {
	args := m.Called(ctx, id, returnedAt, condition, damageFeeCents, lateFeeCents)
	return args.Bool(0), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}
func (m *MockInvoiceRepo) CreateItem(ctx context.Context, item *domain.InvoiceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInvoiceRepo) GetByID(ctx context.Context, id int32) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) GetByOrderID(ctx context.Context, orderID int32) (*domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) ListItems(ctx context.Context, invoiceID int32) ([]domain.InvoiceItem, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]domain.InvoiceItem), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendVerificationEmail(ctx context.Context, email, name, token string) error {
	args := m.Called(ctx, email, name, token)
	return args.Error(0)
}
func (m *MockEmailService) SendOrderStatusNotification(ctx context.Context, email, orderNumber string, status domain.OrderStatus) error {
	args := m.Called(ctx, email, orderNumber, status)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceNotification(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	args := m.Called(ctx, email, invoiceNumber, totalCents, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendInvoiceDueReminder(ctx context.Context, email, invoiceNumber string, totalCents int32, dueDate time.Time) error {
	args := m.Called(ctx, email, invoiceNumber, totalCents, dueDate)
	return args.Error(0)
}
func (m *MockEmailService) SendReturnOverdueReminder(ctx context.Context, email, orderNumber string, scheduledDate time.Time) error {
	args := m.Called(ctx, email, orderNumber, scheduledDate)
	return args.Error(0)
}

// fakeAtomic runs the unit of work against the same mocks the service
// holds, so transactional calls can be asserted like any other. inTx
// lets tests assert a call happened inside the unit of work.
type fakeAtomic struct {
	repos repository.Repos
	inTx  bool
}

func (f *fakeAtomic) WithinTx(ctx context.Context, fn func(tx repository.Repos) error) error {
	f.inTx = true
	defer func() { f.inTx = false }()
	return fn(f.repos)
}

// testRepos builds a Repos of fresh mocks plus a passthrough Atomic.
type testMocks struct {
	Users         *MockUserRepo
	Products      *MockProductRepo
	Inventory     *MockInventoryRepo
	Orders        *MockOrderRepo
	Pickups       *MockPickupRepo
	Returns       *MockReturnRepo
	Invoices      *MockInvoiceRepo
	Notifications *MockNotificationRepo
	Email         *MockEmailService
}

func newTestMocks() (testMocks, repository.Repos, *fakeAtomic) {
	m := testMocks{
		Users:         new(MockUserRepo),
		Products:      new(MockProductRepo),
		Inventory:     new(MockInventoryRepo),
		Orders:        new(MockOrderRepo),
		Pickups:       new(MockPickupRepo),
		Returns:       new(MockReturnRepo),
		Invoices:      new(MockInvoiceRepo),
		Notifications: new(MockNotificationRepo),
		Email:         new(MockEmailService),
	}
	repos := repository.Repos{
		Users:         m.Users,
		Products:      m.Products,
		Inventory:     m.Inventory,
		Orders:        m.Orders,
		Pickups:       m.Pickups,
		Returns:       m.Returns,
		Invoices:      m.Invoices,
		Notifications: m.Notifications,
	}
	return m, repos, &fakeAtomic{repos: repos}
}
