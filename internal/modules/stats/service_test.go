package stats

import (
	"bytes"
	"context"
	"strings"
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

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) ListForRange(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, tenantID, from, to, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForExport(ctx context.Context, tenantID int64, from, to time.Time, professionalID int64, status string) ([]repository.ExportRow, error) {
	args := m.Called(ctx, tenantID, from, to, professionalID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ExportRow), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListSucceededInRange(ctx context.Context, tenantID int64, from, to time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SucceededCentsByBooking(ctx context.Context, bookingIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, bookingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func panamaTenant() *domain.Tenant {
	return &domain.Tenant{ID: 1, Slug: "clinica-demo", Name: "Clínica Demo", Timezone: "America/Panama", IsActive: true}
}

// at builds a Panama wall-clock instant; Panama is UTC-5 year round.
func at(day, hhmm string) time.Time {
	t, _ := time.Parse("2006-01-02 15:04 -0700", day+" "+hhmm+" -0500")
	return t.UTC()
}

func TestKPIs_Aggregates(t *testing.T) {
	tenants := new(MockTenantRepository)
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRepository)
	service := NewService(tenants, bookings, payments)

	tenants.On("GetByID", mock.Anything, int64(1)).Return(panamaTenant(), nil)
	bookings.On("ListForRange", mock.Anything, int64(1), mock.Anything, mock.Anything, int64(0)).Return([]domain.Booking{
		{ID: 1, ScheduledAt: at("2026-03-02", "09:00"), Status: domain.BookingPaid},
		{ID: 2, ScheduledAt: at("2026-03-02", "10:00"), Status: domain.BookingAttended},
		{ID: 3, ScheduledAt: at("2026-03-03", "09:00"), Status: domain.BookingNoShow},
		{ID: 4, ScheduledAt: at("2026-03-03", "11:00"), Status: domain.BookingCancelled},
		{ID: 5, ScheduledAt: at("2026-03-04", "09:00"), Status: domain.BookingPending},
	}, nil)
	payments.On("ListSucceededInRange", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]domain.Payment{
		{ID: "pi_1", BookingID: 1, AmountCents: 2500, CreatedAt: at("2026-03-02", "09:05")},
	}, nil)

	resp, err := service.KPIs(context.Background(), KPIRequest{
		TenantID: 1,
		From:     "2026-03-02",
		To:       "2026-03-04",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.TotalBookings)
	assert.Equal(t, 1, resp.Paid)
	assert.Equal(t, 1, resp.Attended)
	assert.Equal(t, 1, resp.NoShow)
	assert.Equal(t, 1, resp.Cancelled)
	assert.Equal(t, int64(2500), resp.RevenueCents)

	// rates exclude cancelled bookings from the denominator
	assert.InDelta(t, 25.0, resp.PaidPct, 0.01)
	assert.InDelta(t, 25.0, resp.NoShowPct, 0.01)

	require.Len(t, resp.Daily, 3)
	assert.Equal(t, DayPoint{Date: "2026-03-02", Bookings: 2, RevenueCents: 2500}, resp.Daily[0])
	assert.Equal(t, DayPoint{Date: "2026-03-03", Bookings: 2}, resp.Daily[1])
	assert.Equal(t, DayPoint{Date: "2026-03-04", Bookings: 1}, resp.Daily[2])
}

func TestKPIs_EmptyRange(t *testing.T) {
	tenants := new(MockTenantRepository)
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRepository)
	service := NewService(tenants, bookings, payments)

	tenants.On("GetByID", mock.Anything, int64(1)).Return(panamaTenant(), nil)
	bookings.On("ListForRange", mock.Anything, int64(1), mock.Anything, mock.Anything, int64(0)).Return([]domain.Booking{}, nil)
	payments.On("ListSucceededInRange", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	resp, err := service.KPIs(context.Background(), KPIRequest{TenantID: 1, From: "2026-03-02", To: "2026-03-02"})

	require.NoError(t, err)
	assert.Zero(t, resp.TotalBookings)
	assert.Zero(t, resp.PaidPct)
	assert.Zero(t, resp.NoShowPct)
	require.Len(t, resp.Daily, 1)
	assert.Equal(t, DayPoint{Date: "2026-03-02"}, resp.Daily[0])
}

func TestKPIs_InvalidRange(t *testing.T) {
	tenants := new(MockTenantRepository)
	service := NewService(tenants, new(MockBookingRepository), new(MockPaymentRepository))

	tenants.On("GetByID", mock.Anything, int64(1)).Return(panamaTenant(), nil)

	_, err := service.KPIs(context.Background(), KPIRequest{TenantID: 1, From: "2026-03-05", To: "2026-03-02"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.KPIs(context.Background(), KPIRequest{TenantID: 1, From: "03/02/2026", To: "2026-03-05"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestKPIs_TenantNotFound(t *testing.T) {
	tenants := new(MockTenantRepository)
	service := NewService(tenants, new(MockBookingRepository), new(MockPaymentRepository))

	tenants.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

	_, err := service.KPIs(context.Background(), KPIRequest{TenantID: 9, From: "2026-03-02", To: "2026-03-05"})
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestExportCSV(t *testing.T) {
	tenants := new(MockTenantRepository)
	bookings := new(MockBookingRepository)
	payments := new(MockPaymentRepository)
	service := NewService(tenants, bookings, payments)

	tenants.On("GetByID", mock.Anything, int64(1)).Return(panamaTenant(), nil)
	bookings.On("ListForExport", mock.Anything, int64(1), mock.Anything, mock.Anything, int64(0), "").Return([]repository.ExportRow{
		{
			BookingID:        1,
			ScheduledAt:      at("2026-03-02", "09:00"),
			Status:           "paid",
			ServiceName:      "Limpieza dental",
			ProfessionalName: "Dra. Gómez",
			PatientName:      "Ana Pérez",
			PatientPhone:     "+507 6000-0000",
			DurationMinutes:  30,
			PriceCents:       2500,
		},
		{
			BookingID:       2,
			ScheduledAt:     at("2026-03-02", "10:00"),
			Status:          "pending",
			ServiceName:     "Consulta",
			PatientName:     "Luis Mora",
			DurationMinutes: 60,
			PriceCents:      4000,
		},
	}, nil)
	payments.On("SucceededCentsByBooking", mock.Anything, []int64{1, 2}).Return(map[int64]int64{1: 2500}, nil)

	var buf bytes.Buffer
	slug, err := service.ExportCSV(context.Background(), ExportRequest{TenantID: 1, From: "2026-03-02", To: "2026-03-02"}, &buf)

	require.NoError(t, err)
	assert.Equal(t, "clinica-demo", slug)
	assert.Equal(t, "bookings_clinica-demo_2026-03-02_2026-03-02.csv", ExportFilename(slug, "2026-03-02", "2026-03-02"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(exportHeader, ","), lines[0])
	assert.Contains(t, lines[1], "2026-03-02,09:00,paid")
	assert.Contains(t, lines[1], "2500")
	assert.Contains(t, lines[2], "pending")
	assert.True(t, strings.HasSuffix(lines[2], ",0"), "unpaid booking exports zero paid_cents: %s", lines[2])
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "bookings_clinica-demo_2026-03-01_2026-03-31.csv",
		ExportFilename("clinica-demo", "2026-03-01", "2026-03-31"))
}
