package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lulabtechnology/saas-clinicas/internal/database"
	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/middleware"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/auth"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/availability"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/booking"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/events"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/messaging"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/payment"
	jwtsvc "github.com/lulabtechnology/saas-clinicas/internal/pkg/jwt"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

// 2027-03-01 is a Monday, safely in the future so reminders stay schedulable.
const testDate = "2027-03-01"

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type E2ETestSuite struct {
	router        *gin.Engine
	db            *gorm.DB
	tenant        domain.Tenant
	service       domain.Service
	professional  domain.Professional
	adminEmail    string
	adminPassword string
	cronSecret    string
	messageRepo   *repository.MessageRepository
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "connect test database")
	require.NoError(t, database.Migrate(db), "migrate test database")

	tenantRepo := repository.NewTenantRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	j := jwtsvc.New("e2e-secret", time.Hour)

	paymentProvider, err := payment.NewProvider("mock", paymentRepo, bookingRepo, bookingRepo, "e2e-webhook-secret")
	require.NoError(t, err)
	messenger, err := messaging.NewProvider("mock", messageRepo, bookingRepo, t.Logf)
	require.NoError(t, err)
	dispatcher := messaging.NewDispatcher(messageRepo, messenger, 25, t.Logf)

	hub := events.NewHub()

	authHandler := auth.NewHandler(auth.NewService(staffRepo, j))
	availabilityHandler := availability.NewHandler(
		availability.NewService(tenantRepo, catalogRepo, availabilityRepo, bookingRepo))
	bookingHandler := booking.NewHandler(
		booking.NewService(tenantRepo, catalogRepo, bookingRepo, paymentProvider, messenger, hub, t.Logf))
	paymentHandler := payment.NewHandler(paymentProvider, paymentRepo)
	messagingHandler := messaging.NewHandler(dispatcher, "e2e-cron-secret")

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		messagingHandler.RegisterRoutes(v1)

		staff := v1.Group("/staff")
		staff.Use(middleware.JWTAuth(j))
		bookingHandler.RegisterStaffRoutes(staff)
		paymentHandler.RegisterStaffRoutes(staff)
	}

	suite := &E2ETestSuite{
		router:        r,
		db:            db,
		adminEmail:    "admin@clinica-demo.com",
		adminPassword: "admin123",
		cronSecret:    "e2e-cron-secret",
		messageRepo:   messageRepo,
	}
	suite.seed(t, staffRepo)
	return suite
}

func (s *E2ETestSuite) seed(t *testing.T, staffRepo *repository.StaffRepository) {
	t.Helper()

	s.tenant = domain.Tenant{Slug: "clinica-demo", Name: "Clínica Demo", Timezone: "America/Panama", IsActive: true}
	require.NoError(t, s.db.Create(&s.tenant).Error)

	s.service = domain.Service{TenantID: s.tenant.ID, Name: "Consulta general", DurationMinutes: 30, PriceCents: 2500, IsActive: true}
	require.NoError(t, s.db.Create(&s.service).Error)

	s.professional = domain.Professional{TenantID: s.tenant.ID, FullName: "Dra. María Gómez", IsActive: true}
	require.NoError(t, s.db.Create(&s.professional).Error)

	rule := domain.AvailabilityRule{
		TenantID:        s.tenant.ID,
		ProfessionalID:  s.professional.ID,
		Weekday:         1, // Monday
		StartTime:       "09:00",
		EndTime:         "12:00",
		SlotSizeMinutes: 30,
	}
	require.NoError(t, s.db.Create(&rule).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, staffRepo.Create(t.Context(), &domain.StaffUser{
		TenantID:     s.tenant.ID,
		Email:        s.adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}))
}

func (s *E2ETestSuite) do(t *testing.T, method, path string, body any, token string) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	}
	return w, resp
}

func (s *E2ETestSuite) slotsURL() string {
	return fmt.Sprintf("/api/v1/slots?slug=%s&serviceId=%d&professionalId=%d&date=%s",
		s.tenant.Slug, s.service.ID, s.professional.ID, testDate)
}

func (s *E2ETestSuite) reserveBody(hhmm string, prepay bool) map[string]any {
	return map[string]any{
		"slug":           s.tenant.Slug,
		"serviceId":      s.service.ID,
		"professionalId": s.professional.ID,
		"date":           testDate,
		"time":           hhmm,
		"patientName":    "Ana Pérez",
		"patientPhone":   "+507 6000-0000",
		"prepay":         prepay,
	}
}

func slotsOf(t *testing.T, resp TestResponse) []string {
	t.Helper()
	raw, ok := resp.Data["slots"].([]interface{})
	require.True(t, ok, "data: %+v", resp.Data)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, v.(string))
	}
	return out
}

func (s *E2ETestSuite) login(t *testing.T) string {
	return s.loginAs(t, s.adminEmail, s.adminPassword)
}

func (s *E2ETestSuite) loginAs(t *testing.T, email, password string) string {
	w, resp := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp.Data["token"].(string)
}

// seedRivalAdmin creates a second active tenant with its own admin and
// returns that admin's token.
func (s *E2ETestSuite) seedRivalAdmin(t *testing.T) string {
	t.Helper()

	rival := domain.Tenant{Slug: "clinica-rival", Name: "Clínica Rival", Timezone: "America/Panama", IsActive: true}
	require.NoError(t, s.db.Create(&rival).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&domain.StaffUser{
		TenantID:     rival.ID,
		Email:        "admin@clinica-rival.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}).Error)

	return s.loginAs(t, "admin@clinica-rival.com", s.adminPassword)
}

func TestBookingFlow(t *testing.T) {
	s := setupTestSuite(t)

	// day starts fully open: 09:00 .. 11:30
	w, resp := s.do(t, http.MethodGet, s.slotsURL(), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	slots := slotsOf(t, resp)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)

	// take 10:00
	w, resp = s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("10:00", false), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "confirmed", resp.Data["status"])
	bookingID := int64(resp.Data["bookingId"].(float64))
	assert.Positive(t, bookingID)

	// 10:00 is gone, back-to-back neighbors remain
	w, resp = s.do(t, http.MethodGet, s.slotsURL(), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	slots = slotsOf(t, resp)
	assert.NotContains(t, slots, "10:00")
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")

	// double booking the same slot conflicts
	w, resp = s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("10:00", false), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SLOT_TAKEN", resp.Error.Code)

	// back-to-back booking is allowed
	w, _ = s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("10:30", false), "")
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// a confirmation message was queued for each booking
	due, err := s.messageRepo.DueMessages(t.Context(), time.Now(), 50)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestPrepayFlow(t *testing.T) {
	s := setupTestSuite(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("09:00", true), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "paid", resp.Data["status"])
	assert.Equal(t, "succeeded", resp.Data["paymentStatus"])

	// paying again for the same booking is rejected
	bookingID := int64(resp.Data["bookingId"].(float64))
	w, resp = s.do(t, http.MethodPost, "/api/v1/payments/intent", map[string]any{"bookingId": bookingID}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_ALREADY_PAID", resp.Error.Code)
}

func TestStaffStatusFlow(t *testing.T) {
	s := setupTestSuite(t)
	token := s.login(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("11:00", false), "")
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := int64(resp.Data["bookingId"].(float64))

	path := fmt.Sprintf("/api/v1/staff/bookings/%d/status", bookingID)

	// staff routes reject anonymous requests
	w, _ = s.do(t, http.MethodPatch, path, map[string]any{"status": "attended"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPatch, path, map[string]any{"status": "attended"}, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// attended is terminal for payment status
	w, resp = s.do(t, http.MethodPatch, path, map[string]any{"status": "paid"}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
}

func TestStaffTenantIsolation(t *testing.T) {
	s := setupTestSuite(t)
	rivalToken := s.seedRivalAdmin(t)

	w, resp := s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("09:00", true), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(resp.Data["bookingId"].(float64))

	// another tenant's staff cannot see the booking
	w, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/staff/bookings/%d", bookingID), nil, rivalToken)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_NOT_FOUND", resp.Error.Code)

	// nor cancel it
	path := fmt.Sprintf("/api/v1/staff/bookings/%d/status", bookingID)
	w, resp = s.do(t, http.MethodPatch, path, map[string]any{"status": "cancelled"}, rivalToken)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_NOT_FOUND", resp.Error.Code)

	var b domain.Booking
	require.NoError(t, s.db.First(&b, bookingID).Error)
	assert.Equal(t, domain.BookingPaid, b.Status, "booking must be untouched")

	// nor refund its payment
	var pay domain.Payment
	require.NoError(t, s.db.Where("booking_id = ?", bookingID).First(&pay).Error)
	refundPath := fmt.Sprintf("/api/v1/staff/payments/%s/refund", pay.ID)
	w, resp = s.do(t, http.MethodPost, refundPath, nil, rivalToken)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAYMENT_NOT_FOUND", resp.Error.Code)

	// the owning tenant still can
	ownToken := s.login(t)
	w, _ = s.do(t, http.MethodPost, refundPath, nil, ownToken)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCronDispatch(t *testing.T) {
	s := setupTestSuite(t)

	w, _ := s.do(t, http.MethodPost, "/api/v1/bookings", s.reserveBody("09:30", false), "")
	require.Equal(t, http.StatusCreated, w.Code)

	// wrong token is rejected
	w, _ = s.do(t, http.MethodPost, "/api/v1/cron/messages/dispatch?token=nope", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, http.MethodPost, "/api/v1/cron/messages/dispatch?token="+s.cronSecret, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), resp.Data["due"])
	assert.Equal(t, float64(1), resp.Data["sent"])
	assert.Equal(t, float64(0), resp.Data["failed"])

	// second pass finds nothing, the confirmation was marked sent
	w, resp = s.do(t, http.MethodPost, "/api/v1/cron/messages/dispatch?token="+s.cronSecret, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp.Data["due"])
}
