package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetActiveService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) GetRulesForWeekday(ctx context.Context, tenantID, professionalID int64, weekday int) ([]domain.AvailabilityRule, error) {
	args := m.Called(ctx, tenantID, professionalID, weekday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AvailabilityRule), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) BusyWindowsFor(ctx context.Context, tenantID, professionalID int64, from, to time.Time) ([]repository.BusyWindow, error) {
	args := m.Called(ctx, tenantID, professionalID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.BusyWindow), args.Error(1)
}

func newTestService() (*Service, *MockTenantRepository, *MockCatalogRepository, *MockRuleRepository, *MockBookingRepository) {
	tenants := new(MockTenantRepository)
	catalog := new(MockCatalogRepository)
	rules := new(MockRuleRepository)
	bookings := new(MockBookingRepository)
	return NewService(tenants, catalog, rules, bookings), tenants, catalog, rules, bookings
}

func panamaTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Slug: "clinica-demo", Name: "Clinica Demo", Timezone: "America/Panama", IsActive: true}
}

func TestGetDaySlots_Success(t *testing.T) {
	svc, tenants, catalog, rules, bookings := newTestService()

	tenants.On("GetBySlug", mock.Anything, "clinica-demo").Return(panamaTenant(), nil)
	catalog.On("GetActiveService", mock.Anything, int64(1), int64(7)).
		Return(&domain.Service{ID: 7, TenantID: 1, DurationMinutes: 30, IsActive: true}, nil)
	// 2026-03-02 is a Monday
	rules.On("GetRulesForWeekday", mock.Anything, int64(1), int64(3), 1).
		Return([]domain.AvailabilityRule{{Weekday: 1, StartTime: "09:00", EndTime: "12:00", SlotSizeMinutes: 30}}, nil)
	bookings.On("BusyWindowsFor", mock.Anything, int64(1), int64(3), mock.Anything, mock.Anything).
		Return([]repository.BusyWindow{}, nil)

	res, err := svc.GetDaySlots(context.Background(), "clinica-demo", 7, 3, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "America/Panama", res.Timezone)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, res.Slots)
}

func TestGetDaySlots_PendingBookingBlocksSlot(t *testing.T) {
	svc, tenants, catalog, rules, bookings := newTestService()

	tenants.On("GetBySlug", mock.Anything, "clinica-demo").Return(panamaTenant(), nil)
	catalog.On("GetActiveService", mock.Anything, int64(1), int64(7)).
		Return(&domain.Service{ID: 7, TenantID: 1, DurationMinutes: 30, IsActive: true}, nil)
	rules.On("GetRulesForWeekday", mock.Anything, int64(1), int64(3), 1).
		Return([]domain.AvailabilityRule{{Weekday: 1, StartTime: "09:00", EndTime: "12:00", SlotSizeMinutes: 30}}, nil)

	// the repository contract includes pending bookings; a held slot at
	// 10:00 local (15:00 UTC in Panama) must disappear from the listing
	start := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	bookings.On("BusyWindowsFor", mock.Anything, int64(1), int64(3), mock.Anything, mock.Anything).
		Return([]repository.BusyWindow{{Start: start, End: start.Add(30 * time.Minute)}}, nil)

	res, err := svc.GetDaySlots(context.Background(), "clinica-demo", 7, 3, "2026-03-02")
	require.NoError(t, err)
	assert.NotContains(t, res.Slots, "10:00")
	assert.Contains(t, res.Slots, "09:30")
	assert.Contains(t, res.Slots, "10:30")
}

func TestGetDaySlots_TenantNotFound(t *testing.T) {
	svc, tenants, _, _, _ := newTestService()

	tenants.On("GetBySlug", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

	_, err := svc.GetDaySlots(context.Background(), "ghost", 7, 3, "2026-03-02")
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestGetDaySlots_ServiceNotFound(t *testing.T) {
	svc, tenants, catalog, _, _ := newTestService()

	tenants.On("GetBySlug", mock.Anything, "clinica-demo").Return(panamaTenant(), nil)
	catalog.On("GetActiveService", mock.Anything, int64(1), int64(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetDaySlots(context.Background(), "clinica-demo", 99, 3, "2026-03-02")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetDaySlots_BadParams(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	_, err := svc.GetDaySlots(context.Background(), "", 7, 3, "2026-03-02")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetDaySlots(context.Background(), "clinica-demo", 7, 3, "not-a-date")
	assert.ErrorIs(t, err, ErrValidation)
}
