package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	"guesthouse/infras/jwt"
	jwtMocks "guesthouse/infras/jwt/mocks"
	otelMocks "guesthouse/infras/otel/mocks"
	authService "guesthouse/internal/domains/auth/service"
	bookingMocks "guesthouse/internal/domains/booking/mocks"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	calendarMocks "guesthouse/internal/domains/calendar/mocks"
	calendarDto "guesthouse/internal/domains/calendar/model/dto"
	roomRepository "guesthouse/internal/domains/room/repository"
	roomService "guesthouse/internal/domains/room/service"
	authHandler "guesthouse/internal/handlers/auth"
	bookingHandler "guesthouse/internal/handlers/booking"
	roomHandler "guesthouse/internal/handlers/room"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/failure"
	transport "guesthouse/transport/http"
	"guesthouse/transport/http/middleware"
	"guesthouse/transport/http/router"
)

type server struct {
	handler  http.Handler
	bookings *bookingMocks.MockBookingService
	calendar *calendarMocks.MockCalendar
	jwt      *jwtMocks.MockJWT
}

func newServer(t *testing.T) server {
	t.Helper()

	ctrl := gomock.NewController(t)
	otel := otelMocks.NewOtel()
	cfg := &config.Config{}

	s := server{
		bookings: bookingMocks.NewMockBookingService(ctrl),
		calendar: calendarMocks.NewMockCalendar(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}

	handlers := router.DomainHandlers{
		Auth:    authHandler.New(authService.New(cfg, otel, s.jwt), otel),
		Room:    roomHandler.New(roomService.New(roomRepository.NewMemory(), otel), s.calendar, otel),
		Booking: bookingHandler.New(s.bookings, otel),
	}

	s.handler = transport.New(
		cfg,
		router.New(handlers, middleware.NewAuthMiddleware(s.jwt, otel)),
		middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(ctrl)),
	)

	return s
}

func (s server) do(method, target, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	s.handler.ServeHTTP(recorder, request)

	return recorder
}

func (s server) admin() {
	s.jwt.EXPECT().ValidateToken("admin-token", jwt.AccessToken).Return(&jwt.Claims{
		Role:             "admin",
		Type:             jwt.AccessToken,
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "admin"},
	}, nil)
}

const validBooking = `{
	"room_id": "room-1",
	"guest_name": "Ana",
	"guest_email": "ana@example.com",
	"check_in": "2024-06-01",
	"check_out": "2024-06-05",
	"guests": 2
}`

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	health := s.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"message":"OK"}`, health.Body.String())

	metrics := s.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "go_goroutines")
}

func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(s server)
		wantCode  int
		wantBody  string
	}{
		{
			name: "accepted",
			body: validBooking,
			setupMock: func(s server) {
				s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{ID: "b-1", Status: "pending"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "dates taken",
			body: validBooking,
			setupMock: func(s server) {
				s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("selected dates are not available"))
			},
			wantCode: http.StatusConflict,
			wantBody: `{"error":"selected dates are not available"}`,
		},
		{
			name: "room closed",
			body: validBooking,
			setupMock: func(s server) {
				s.bookings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Forbidden("room is not accepting bookings for these dates"))
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "malformed date",
			body:      strings.Replace(validBooking, "2024-06-05", "05/06/2024", 1),
			setupMock: func(server) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "not json",
			body:      "room-1",
			setupMock: func(server) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			tt.setupMock(s)

			recorder := s.do(http.MethodPost, "/v1/bookings", tt.body, "")

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}

func TestRoomsAndCalendar(t *testing.T) {
	s := newServer(t)

	rooms := s.do(http.MethodGet, "/v1/rooms", "", "")
	assert.Equal(t, http.StatusOK, rooms.Code)
	assert.Contains(t, rooms.Body.String(), `"name":"El Sofa"`)

	s.calendar.EXPECT().Calendar(gomock.Any(), "room-3", 14).Return(calendarDto.CalendarResponse{RoomID: "room-3"}, nil)

	calendar := s.do(http.MethodGet, "/v1/rooms/room-3/calendar?days=14", "", "")
	assert.Equal(t, http.StatusOK, calendar.Code)

	invalid := s.do(http.MethodGet, "/v1/rooms/room-3/calendar?days=two", "", "")
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	for _, target := range []string{"/v1/admin/bookings", "/v1/admin/dashboard", "/v1/admin/rooms"} {
		recorder := s.do(http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, target)
	}
}

func TestAdminBookings(t *testing.T) {
	t.Run("list with filters", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		s.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, _ any, filter dto.BookingFilter) (dto.GetBookingsResponse, error) {
				assert.Equal(t, "room-2", filter.RoomID)
				assert.Equal(t, model.StatusPending, filter.Status)

				return dto.GetBookingsResponse{TotalPage: 1}, nil
			})

		recorder := s.do(http.MethodGet, "/v1/admin/bookings?room_id=room-2&status=pending", "", "admin-token")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown status filter", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		recorder := s.do(http.MethodGet, "/v1/admin/bookings?status=archived", "", "admin-token")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("confirm", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		s.bookings.EXPECT().
			UpdateStatus(gomock.Any(), "b-1", dto.UpdateStatusRequest{Status: "confirmed"}).
			Return(dto.BookingResponse{ID: "b-1", Status: "confirmed"}, nil)

		recorder := s.do(http.MethodPatch, "/v1/admin/bookings/b-1/status", `{"status":"confirmed"}`, "admin-token")
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		s.bookings.EXPECT().Delete(gomock.Any(), "b-9").Return(failure.NotFound("booking not found"))

		recorder := s.do(http.MethodDelete, "/v1/admin/bookings/b-9", "", "admin-token")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("export", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		s.bookings.EXPECT().Export(gomock.Any(), gomock.Any()).Return([]byte("PK"), nil)

		recorder := s.do(http.MethodGet, "/v1/admin/bookings/export", "", "admin-token")
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", recorder.Header().Get("Content-Type"))
		assert.Contains(t, recorder.Header().Get("Content-Disposition"), "bookings-")
	})

	t.Run("store failure is masked", func(t *testing.T) {
		s := newServer(t)
		s.admin()

		s.bookings.EXPECT().Dashboard(gomock.Any()).Return(dto.DashboardResponse{}, assert.AnError)

		recorder := s.do(http.MethodGet, "/v1/admin/dashboard", "", "admin-token")
		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.JSONEq(t, `{"error":"internal server error"}`, recorder.Body.String())
	})
}
