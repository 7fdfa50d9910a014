package routers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"doctor-booking-service/internal/app/config"
	"doctor-booking-service/internal/app/delivery/http/controllers"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/app/services/core/availability"
	"doctor-booking-service/internal/app/services/core/booking"
	"doctor-booking-service/internal/app/services/core/slot"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type MockDoctorUsecase struct {
	mock.Mock
}

func (m *MockDoctorUsecase) ListVerified(ctx context.Context, credential, query string) ([]models.Doctor, error) {
	args := m.Called(ctx, credential, query)
	doctors, _ := args.Get(0).([]models.Doctor)
	return doctors, args.Error(1)
}

func (m *MockDoctorUsecase) FindByID(ctx context.Context, credential, doctorID string) (*models.Doctor, error) {
	args := m.Called(ctx, credential, doctorID)
	doctor, _ := args.Get(0).(*models.Doctor)
	return doctor, args.Error(1)
}

type testServer struct {
	router  *chi.Mux
	doctors *MockDoctorUsecase
}

func newTestServer(t *testing.T, bookingBurst int) *testServer {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:             "api",
			AllowedOrigins:             []string{"*"},
			MaxRequests:                1000,
			MaxTimeRequestsPerSeconds:  1,
			RequestBodyLimitInMegabyte: 1,
			RequestTimeoutInSeconds:    5,
		},
		JWT:     config.AppJWT{Secret: testSecret},
		Booking: config.AppBooking{BookingRateLimitPerMinute: 1, BookingRateLimitBurst: bookingBurst},
	}

	lockOptions := locker.Options{TTL: time.Second, RetryInterval: 2 * time.Millisecond}
	lockerService := locker.NewLocalLockService()
	rules := availability.NewAvailabilityMemoryRepository()
	bookings := booking.NewBookingMemoryRepository()

	availabilityUsecase := availability.NewAvailabilityUsecase(rules, lockerService, lockOptions, time.UTC, logger)
	slotUsecase := slot.NewSlotUsecase(rules, bookings, slot.Config{SlotMinutes: 60}, time.UTC, logger)
	bookingUsecase := booking.NewBookingUsecase(bookings, slotUsecase, lockerService, lockOptions, nil, logger)
	doctorUsecase := new(MockDoctorUsecase)

	timeout := 5 * time.Second
	router := chi.NewRouter()
	SetupRoutes(router, internalConfig, middlewares.NewMiddlewares(logger, internalConfig), Controllers{
		Doctor:       controllers.NewDoctorController(logger, doctorUsecase, timeout),
		Availability: controllers.NewAvailabilityController(logger, availabilityUsecase, time.UTC, timeout),
		Slot:         controllers.NewSlotController(logger, slotUsecase, timeout),
		Booking:      controllers.NewBookingController(logger, bookingUsecase, time.UTC, timeout),
		Health:       controllers.NewHealthController(constvars.StorageDriverMemory, constvars.LockerDriverLocal),
	})
	return &testServer{router: router, doctors: doctorUsecase}
}

func token(t *testing.T, subject, role string) string {
	t.Helper()
	signed, err := utils.GenerateAccessToken(subject, role, testSecret, time.Hour)
	require.NoError(t, err)
	return signed
}

func (s *testServer) do(t *testing.T, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
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
	req.RemoteAddr = "192.0.2.1:1234"
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+bearer)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())
	return rec.Code, payload
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t, 10)

	status, body := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t, 10)

	status, body := s.do(t, http.MethodGet, "/api/bookings/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(exceptions.KindUnauthorized), body["error_kind"])

	status, _ = s.do(t, http.MethodGet, "/api/bookings/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	forged, err := utils.GenerateAccessToken("pat-1", constvars.RolePatient, "other-secret", time.Hour)
	require.NoError(t, err)
	status, _ = s.do(t, http.MethodGet, "/api/bookings/me", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = s.do(t, http.MethodPost, "/api/availability", token(t, "pat-1", constvars.RolePatient), map[string]string{
		"startTime": "2030-01-07T09:00:00Z",
		"endTime":   "2030-01-07T11:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(exceptions.KindForbidden), body["error_kind"])

	status, _ = s.do(t, http.MethodPost, "/api/bookings", token(t, "doc-1", constvars.RoleDoctor), map[string]string{
		"doctorId": "doc-1", "date": "2030-01-07", "startTime": "09:00", "endTime": "10:00",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAvailabilityValidation(t *testing.T) {
	s := newTestServer(t, 10)
	doctor := token(t, "doc-1", constvars.RoleDoctor)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing end", map[string]string{"startTime": "2030-01-07T09:00:00Z"}},
		{"not a timestamp", map[string]string{"startTime": "monday", "endTime": "2030-01-07T11:00:00Z"}},
		{"unknown recurrence", map[string]string{"startTime": "2030-01-07T09:00:00Z", "endTime": "2030-01-07T11:00:00Z", "recurring": "monthly"}},
		{"end before start", map[string]string{"startTime": "2030-01-07T11:00:00Z", "endTime": "2030-01-07T09:00:00Z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := s.do(t, http.MethodPost, "/api/availability", doctor, tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, string(exceptions.KindValidation), body["error_kind"])
			assert.Equal(t, false, body["retryable"])
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	s := newTestServer(t, 10)
	doctor := token(t, "doc-1", constvars.RoleDoctor)
	alice := token(t, "pat-alice", constvars.RolePatient)
	bob := token(t, "pat-bob", constvars.RolePatient)

	status, body := s.do(t, http.MethodPost, "/api/availability", doctor, map[string]string{
		"startTime": "2030-01-07T09:00:00Z",
		"endTime":   "2030-01-07T11:00:00Z",
		"recurring": constvars.RecurrenceWeekly,
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, body = s.do(t, http.MethodPost, "/api/availability", doctor, map[string]string{
		"startTime": "2030-01-14T10:00:00Z",
		"endTime":   "2030-01-14T12:00:00Z",
		"recurring": constvars.RecurrenceWeekly,
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(exceptions.KindOverlap), body["error_kind"])
	assert.Equal(t, false, body["retryable"])

	status, body = s.do(t, http.MethodGet, "/api/doctors/doc-1/slots?from=2030-01-07&to=2030-01-13", alice, nil)
	require.Equal(t, http.StatusOK, status)
	days := body["data"].([]interface{})
	require.Len(t, days, 1)
	slots := days[0].(map[string]interface{})["slots"].([]interface{})
	assert.Len(t, slots, 2)

	bookingBody := map[string]string{"doctorId": "doc-1", "date": "2030-01-07", "startTime": "09:00", "endTime": "10:00"}
	status, body = s.do(t, http.MethodPost, "/api/bookings", alice, bookingBody)
	require.Equal(t, http.StatusCreated, status, body)
	bookingID := body["data"].(map[string]interface{})["id"].(string)

	status, body = s.do(t, http.MethodPost, "/api/bookings", bob, bookingBody)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(exceptions.KindConflict), body["error_kind"])
	assert.Equal(t, true, body["retryable"])

	status, body = s.do(t, http.MethodPost, "/api/bookings", bob, map[string]string{
		"doctorId": "doc-1", "date": "2030-01-08", "startTime": "09:00", "endTime": "10:00",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(exceptions.KindSlotUnavailable), body["error_kind"])

	status, body = s.do(t, http.MethodGet, "/api/doctors/doc-1/slots?from=2030-01-07&to=2030-01-07", alice, nil)
	require.Equal(t, http.StatusOK, status)
	slots = body["data"].([]interface{})[0].(map[string]interface{})["slots"].([]interface{})
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].(map[string]interface{})["startTime"])

	status, body = s.do(t, http.MethodGet, "/api/bookings/me", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]interface{}), 1)

	status, body = s.do(t, http.MethodGet, "/api/bookings/doctor?from=2030-01-01&to=2030-01-31", doctor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]interface{}), 1)

	status, body = s.do(t, http.MethodDelete, "/api/bookings/"+bookingID, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(exceptions.KindForbidden), body["error_kind"])

	status, body = s.do(t, http.MethodDelete, "/api/bookings/"+bookingID, alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constvars.BookingStatusCancelled, body["data"].(map[string]interface{})["status"])

	status, body = s.do(t, http.MethodDelete, "/api/bookings/"+bookingID, alice, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, string(exceptions.KindInvalidTransition), body["error_kind"])

	status, _ = s.do(t, http.MethodDelete, "/api/bookings/unknown", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSlotWindowValidation(t *testing.T) {
	s := newTestServer(t, 10)
	alice := token(t, "pat-alice", constvars.RolePatient)

	for _, query := range []string{
		"",
		"?from=2030-01-07",
		"?from=2030-01-08&to=2030-01-07",
		"?from=2030-01-01&to=2030-12-31",
		"?from=07-01-2030&to=2030-01-08",
	} {
		status, body := s.do(t, http.MethodGet, "/api/doctors/doc-1/slots"+query, alice, nil)
		assert.Equal(t, http.StatusBadRequest, status, query)
		assert.Equal(t, string(exceptions.KindValidation), body["error_kind"], query)
	}
}

func TestAvailabilityUpdateAndDelete(t *testing.T) {
	s := newTestServer(t, 10)
	doctor := token(t, "doc-1", constvars.RoleDoctor)
	other := token(t, "doc-2", constvars.RoleDoctor)

	status, body := s.do(t, http.MethodPost, "/api/availability", doctor, map[string]string{
		"startTime": "2030-01-07T09:00:00Z",
		"endTime":   "2030-01-07T11:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status)
	ruleID := body["data"].(map[string]interface{})["id"].(string)
	assert.Equal(t, constvars.RecurrenceNone, body["data"].(map[string]interface{})["recurring"])

	status, _ = s.do(t, http.MethodPut, "/api/availability/"+ruleID, other, map[string]string{
		"startTime": "2030-01-07T12:00:00Z",
		"endTime":   "2030-01-07T13:00:00Z",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.do(t, http.MethodPut, "/api/availability/"+ruleID, doctor, map[string]string{
		"startTime": "2030-01-07T12:00:00Z",
		"endTime":   "2030-01-07T13:00:00Z",
		"recurring": constvars.RecurrenceDaily,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, constvars.RecurrenceDaily, body["data"].(map[string]interface{})["recurring"])

	status, body = s.do(t, http.MethodGet, "/api/availability/doctor", doctor, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]interface{}), 1)

	status, _ = s.do(t, http.MethodDelete, "/api/availability/"+ruleID, doctor, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodDelete, "/api/availability/"+ruleID, doctor, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookingRateLimit(t *testing.T) {
	s := newTestServer(t, 1)
	alice := token(t, "pat-alice", constvars.RolePatient)
	bookingBody := map[string]string{"doctorId": "doc-1", "date": "2030-01-07", "startTime": "09:00", "endTime": "10:00"}

	status, _ := s.do(t, http.MethodPost, "/api/bookings", alice, bookingBody)
	assert.Equal(t, http.StatusConflict, status)

	status, body := s.do(t, http.MethodPost, "/api/bookings", alice, bookingBody)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, true, body["retryable"])
}

func TestDoctorRoutesPassCredential(t *testing.T) {
	s := newTestServer(t, 10)
	alice := token(t, "pat-alice", constvars.RolePatient)

	s.doctors.On("ListVerified", mock.Anything, alice, "cardio").
		Return([]models.Doctor{{DoctorID: "doc-1", FullName: "Dr. Alice Moreau", Specialty: "Cardiology"}}, nil).Once()
	s.doctors.On("FindByID", mock.Anything, alice, "doc-404").
		Return(nil, exceptions.ErrDoctorNotFound(nil, "doc-404")).Once()

	status, body := s.do(t, http.MethodGet, "/api/doctors/verified?search=cardio", alice, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]interface{}), 1)

	status, body = s.do(t, http.MethodGet, "/api/doctors/doc-404", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, string(exceptions.KindNotFound), body["error_kind"])

	s.doctors.AssertExpectations(t)
}
