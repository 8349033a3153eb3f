package availability

import (
	"context"

	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
)

type Service struct {
	tenants  TenantRepository
	catalog  CatalogRepository
	rules    RuleRepository
	bookings BookingRepository
}

func NewService(tenants TenantRepository, catalog CatalogRepository, rules RuleRepository, bookings BookingRepository) *Service {
	return &Service{
		tenants:  tenants,
		catalog:  catalog,
		rules:    rules,
		bookings: bookings,
	}
}

// GetDaySlots lists the free "HH:MM" start times for a professional, service
// and date. The result is a point-in-time snapshot with no freshness
// guarantee; the reservation path re-checks authoritatively at commit time.
func (s *Service) GetDaySlots(ctx context.Context, tenantSlug string, serviceID, professionalID int64, date string) (*DaySlotsResponse, error) {
	if tenantSlug == "" || serviceID == 0 || professionalID == 0 || date == "" {
		return nil, ErrValidation
	}
	weekday, err := timeutil.Weekday(date)
	if err != nil {
		return nil, ErrValidation
	}

	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	svc, err := s.catalog.GetActiveService(ctx, tenant.ID, serviceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

	rules, err := s.rules.GetRulesForWeekday(ctx, tenant.ID, professionalID, weekday)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd, err := timeutil.DayBounds(date, tenant.Timezone)
	if err != nil {
		return nil, err
	}
	busy, err := s.bookings.BusyWindowsFor(ctx, tenant.ID, professionalID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	windows := make([]BookingWindow, 0, len(busy))
	for _, w := range busy {
		start, err := timeutil.InstantToHHMM(w.Start, tenant.Timezone)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.InstantToHHMM(w.End, tenant.Timezone)
		if err != nil {
			return nil, err
		}
		windows = append(windows, BookingWindow{Start: start, End: end})
	}

	slots, err := BuildSlotsForDay(rules, svc.DurationMinutes, windows)
	if err != nil {
		return nil, err
	}

	return &DaySlotsResponse{
		Timezone: tenant.Timezone,
		Date:     date,
		Slots:    slots,
	}, nil
}
