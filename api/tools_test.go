package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/voxair/flightdesk/internal/service/booking"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookInput, meta booking.Meta) (booking.Result, error) {
	args := m.Called(ctx, input, meta)
	return args.Get(0).(booking.Result), args.Error(1)
}

func (m *MockBookingUseCase) Lookup(ctx context.Context, recordLocator string, meta booking.Meta) (booking.Result, error) {
	args := m.Called(ctx, recordLocator, meta)
	return args.Get(0).(booking.Result), args.Error(1)
}

func (m *MockBookingUseCase) Change(ctx context.Context, input booking.ChangeInput, meta booking.Meta) (booking.Result, error) {
	args := m.Called(ctx, input, meta)
	return args.Get(0).(booking.Result), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, recordLocator string, meta booking.Meta) (booking.Result, error) {
	args := m.Called(ctx, recordLocator, meta)
	return args.Get(0).(booking.Result), args.Error(1)
}

func newToolContext(t *testing.T, w *httptest.ResponseRecorder, req toolRequest) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)

	body, err := json.Marshal(req)
	assert.NoError(t, err)
	c.Request = httptest.NewRequest("POST", "/swaig", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestToolHandler_dispatch_Book(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{
		Function: "book_flight",
		Argument: toolArgument{
			Parsed: []map[string]interface{}{{
				"from_city":      "jfk",
				"to_city":        "lax",
				"departure_date": "2026-10-01",
				"first_name":     "Jane",
				"last_name":      "Doe",
				"seat_pref":      "aisle",
				"contact_number": "5551234567",
			}},
		},
		MetaDataToken: "session-1",
		MetaData:      map[string]interface{}{"call_id": "abc"},
	})

	expectedInput := booking.BookInput{
		FromCity:      "jfk",
		ToCity:        "lax",
		DepartureDate: "2026-10-01",
		FirstName:     "Jane",
		LastName:      "Doe",
		SeatPref:      "aisle",
		ContactNumber: "5551234567",
	}
	expectedMeta := booking.Meta{Token: "session-1", Data: map[string]interface{}{"call_id": "abc"}}

	mockService.On("Book", c.Request.Context(), expectedInput, expectedMeta).
		Return(booking.Result{OK: true, Text: "Flight booked successfully!", Data: map[string]interface{}{}}, nil)

	handler.dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response toolResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Flight booked successfully!", response.Response)
	assert.Empty(t, response.Data)

	mockService.AssertExpectations(t)
}

func TestToolHandler_dispatch_Lookup(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{
		Function: "lookup_flight",
		Argument: toolArgument{
			Parsed: []map[string]interface{}{{"record_locator": "ab12cd"}},
		},
	})

	mockService.On("Lookup", c.Request.Context(), "ab12cd", booking.Meta{}).
		Return(booking.Result{
			OK:   true,
			Text: "Record locator: AB12CD",
			Data: map[string]interface{}{"record_locator": "AB12CD"},
		}, nil)

	handler.dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response toolResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Record locator: AB12CD", response.Response)
	assert.Equal(t, "AB12CD", response.Data["record_locator"])

	mockService.AssertExpectations(t)
}

func TestToolHandler_dispatch_Change(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{
		Function: "change_flight",
		Argument: toolArgument{
			Parsed: []map[string]interface{}{{
				"record_locator": "AB12CD",
				"new_to_city":    "SFO",
			}},
		},
	})

	expectedInput := booking.ChangeInput{RecordLocator: "AB12CD", NewToCity: "SFO"}

	mockService.On("Change", c.Request.Context(), expectedInput, booking.Meta{}).
		Return(booking.Result{OK: true, Text: "Flight updated successfully.", Data: map[string]interface{}{}}, nil)

	handler.dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestToolHandler_dispatch_Cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{
		Function: "cancel_flight",
		Argument: toolArgument{
			Parsed: []map[string]interface{}{{"record_locator": "AB12CD"}},
		},
	})

	mockService.On("Cancel", c.Request.Context(), "AB12CD", booking.Meta{}).
		Return(booking.Result{OK: true, Text: "Flight canceled successfully.", Data: map[string]interface{}{}}, nil)

	handler.dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response toolResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Flight canceled successfully.", response.Response)

	mockService.AssertExpectations(t)
}

func TestToolHandler_dispatch_UnknownFunction(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{Function: "upgrade_flight"})

	handler.dispatch(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToolHandler_dispatch_GetSignature(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewToolHandler(mockService)

	w := httptest.NewRecorder()
	c := newToolContext(t, w, toolRequest{Function: "get_signature"})

	handler.dispatch(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var listed []toolSignature
	err := json.Unmarshal(w.Body.Bytes(), &listed)
	assert.NoError(t, err)
	assert.Len(t, listed, 4)
	assert.Equal(t, "book_flight", listed[0].Function)
}
