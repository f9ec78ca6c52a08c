package bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdmissionService struct {
	lastRequest *AdmitRequest
	result      *AdmissionResult
}

func (s *stubAdmissionService) AdmitBooking(_ context.Context, req AdmitRequest) (*AdmissionResult, error) {
	s.lastRequest = &req
	return s.result, nil
}

func (s *stubAdmissionService) GetBooking(_ context.Context, _ uuid.UUID) (*Booking, error) {
	return nil, ErrBookingNotFound
}

func (s *stubAdmissionService) GetUserBookings(_ context.Context, _ uuid.UUID, _ BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func (s *stubAdmissionService) GetAllBookings(_ context.Context, _ BookingListQuery) ([]Booking, int64, error) {
	return nil, 0, nil
}

func newAdmitRouter(service Service, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/events/:slug/book", func(ctx *gin.Context) {
		ctx.Set("user_id", userID.String())
	}, NewController(service).AdmitBooking)
	return router
}

func admittedResult() *AdmissionResult {
	return &AdmissionResult{
		Outcome:      OutcomeAdmitted,
		PaymentState: PaymentStateUnpaid,
		Message:      "Booking confirmed.",
	}
}

func TestAdmitBookingAcceptsEmptyBody(t *testing.T) {
	service := &stubAdmissionService{result: admittedResult()}
	router := newAdmitRouter(service, uuid.New())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/events/community-meetup/book", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, service.lastRequest)
	assert.Equal(t, "community-meetup", service.lastRequest.EventSlug)
}

func TestAdmitBookingParsesChunkedBody(t *testing.T) {
	service := &stubAdmissionService{result: admittedResult()}
	router := newAdmitRouter(service, uuid.New())

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"payment_intent_id": "pi_123"}`)
	request := httptest.NewRequest(http.MethodPost, "/events/rock-night/book", body)
	// Chunked transfer encoding: length unknown up front.
	request.ContentLength = -1
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	require.NotNil(t, service.lastRequest)
	assert.Equal(t, "pi_123", service.lastRequest.PaymentIntentID)
}

func TestAdmitBookingRejectsMalformedBody(t *testing.T) {
	service := &stubAdmissionService{result: admittedResult()}
	router := newAdmitRouter(service, uuid.New())

	recorder := httptest.NewRecorder()
	body := strings.NewReader(`{"payment_intent_id": `)
	request := httptest.NewRequest(http.MethodPost, "/events/rock-night/book", body)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, service.lastRequest)
}
