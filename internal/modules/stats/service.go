package stats

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

type Service struct {
	tenants  TenantRepository
	bookings BookingRepository
	payments PaymentRepository
}

func NewService(tenants TenantRepository, bookings BookingRepository, payments PaymentRepository) *Service {
	return &Service{tenants: tenants, bookings: bookings, payments: payments}
}

// rangeBounds turns an inclusive from/to date pair into instants covering
// [from 00:00, to 24:00) on the tenant's wall clock.
func rangeBounds(from, to, tz string) (time.Time, time.Time, error) {
	start, _, err := timeutil.DayBounds(from, tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, end, err := timeutil.DayBounds(to, tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, errors.New("from after to")
	}
	return start, end, nil
}

// KPIs aggregates a tenant's booking and revenue figures over a date range.
// Rates are computed over non-cancelled bookings; revenue counts only
// succeeded payments.
func (s *Service) KPIs(ctx context.Context, req KPIRequest) (*KPIResponse, error) {
	tenant, err := s.tenants.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	start, end, err := rangeBounds(req.From, req.To, tenant.Timezone)
	if err != nil {
		return nil, ErrValidation
	}

	bookings, err := s.bookings.ListForRange(ctx, req.TenantID, start, end, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListSucceededInRange(ctx, req.TenantID, start, end)
	if err != nil {
		return nil, err
	}

	resp := &KPIResponse{
		From:     req.From,
		To:       req.To,
		Timezone: tenant.Timezone,
		Daily:    []DayPoint{},
	}

	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		return nil, ErrTenantNotFound
	}

	byDay := map[string]*DayPoint{}
	dayOf := func(at time.Time) *DayPoint {
		key := at.In(loc).Format("2006-01-02")
		dp, ok := byDay[key]
		if !ok {
			dp = &DayPoint{Date: key}
			byDay[key] = dp
		}
		return dp
	}

	for _, b := range bookings {
		resp.TotalBookings++
		dayOf(b.ScheduledAt).Bookings++

		switch b.Status {
		case domain.BookingPaid:
			resp.Paid++
		case domain.BookingAttended:
			resp.Attended++
		case domain.BookingNoShow:
			resp.NoShow++
		case domain.BookingCancelled:
			resp.Cancelled++
		}
	}

	for _, p := range payments {
		resp.RevenueCents += p.AmountCents
		dayOf(p.CreatedAt).RevenueCents += p.AmountCents
	}

	if active := resp.TotalBookings - resp.Cancelled; active > 0 {
		resp.PaidPct = round2(float64(resp.Paid) / float64(active) * 100)
		resp.NoShowPct = round2(float64(resp.NoShow) / float64(active) * 100)
	}

	// emit every day of the range so the dashboard chart has no gaps
	for d := start; d.Before(end); {
		key := d.In(loc).Format("2006-01-02")
		if dp, ok := byDay[key]; ok {
			resp.Daily = append(resp.Daily, *dp)
		} else {
			resp.Daily = append(resp.Daily, DayPoint{Date: key})
		}
		next, _, err := timeutil.DayBounds(d.In(loc).AddDate(0, 0, 1).Format("2006-01-02"), tenant.Timezone)
		if err != nil {
			return nil, err
		}
		d = next
	}

	return resp, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

var exportHeader = []string{
	"booking_id", "date", "time", "status", "service", "professional",
	"patient_name", "patient_phone", "duration_minutes", "price_cents", "paid_cents",
}

// ExportCSV streams a tenant's bookings for the range as CSV and returns
// the tenant slug for the download filename. Wall-clock columns are
// rendered in the tenant's timezone.
func (s *Service) ExportCSV(ctx context.Context, req ExportRequest, w io.Writer) (string, error) {
	tenant, err := s.tenants.GetByID(ctx, req.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrTenantNotFound
		}
		return "", err
	}

	start, end, err := rangeBounds(req.From, req.To, tenant.Timezone)
	if err != nil {
		return "", ErrValidation
	}

	rows, err := s.bookings.ListForExport(ctx, req.TenantID, start, end, req.ProfessionalID, req.Status)
	if err != nil {
		return "", err
	}

	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.BookingID)
	}
	paid, err := s.payments.SucceededCentsByBooking(ctx, ids)
	if err != nil {
		return "", err
	}

	loc, err := time.LoadLocation(tenant.Timezone)
	if err != nil {
		return "", ErrTenantNotFound
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		local := r.ScheduledAt.In(loc)
		rec := []string{
			strconv.FormatInt(r.BookingID, 10),
			local.Format("2006-01-02"),
			local.Format("15:04"),
			r.Status,
			r.ServiceName,
			r.ProfessionalName,
			r.PatientName,
			r.PatientPhone,
			strconv.Itoa(r.DurationMinutes),
			strconv.FormatInt(r.PriceCents, 10),
			strconv.FormatInt(paid[r.BookingID], 10),
		}
		if err := cw.Write(rec); err != nil {
			return "", err
		}
	}
	cw.Flush()
	return tenant.Slug, cw.Error()
}

// ExportFilename names the download after the tenant and range.
func ExportFilename(slug, from, to string) string {
	return fmt.Sprintf("bookings_%s_%s_%s.csv", slug, from, to)
}
