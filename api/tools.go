package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voxair/flightdesk/internal/service/booking"
)

// ToolHandler exposes the booking use cases as named tool calls for the
// voice-agent dispatch layer. Every call carries a function name, a parsed
// argument map and an opaque session token/metadata pair; every reply is a
// (response text, structured data) pair.
type ToolHandler struct {
	service booking.BookingUseCase
}

type toolRequest struct {
	Function      string                 `json:"function"`
	Argument      toolArgument           `json:"argument"`
	MetaDataToken string                 `json:"meta_data_token"`
	MetaData      map[string]interface{} `json:"meta_data"`
}

type toolArgument struct {
	Parsed []map[string]interface{} `json:"parsed"`
	Raw    string                   `json:"raw"`
}

type toolResponse struct {
	Response string                 `json:"response"`
	Data     map[string]interface{} `json:"data"`
}

type argumentSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

type toolSignature struct {
	Function    string         `json:"function"`
	Description string         `json:"description"`
	Arguments   []argumentSpec `json:"arguments"`
}

// signatures declares the fixed calling contract of each tool.
var signatures = []toolSignature{
	{
		Function:    "book_flight",
		Description: "Book a flight",
		Arguments: []argumentSpec{
			{Name: "from_city", Type: "string", Description: "Origin airport IATA code (3 letters)", Required: true},
			{Name: "to_city", Type: "string", Description: "Destination airport IATA code (3 letters)", Required: true},
			{Name: "departure_date", Type: "string", Description: "Departure date in YYYY-MM-DD", Required: true},
			{Name: "return_date", Type: "string", Description: "Return date in YYYY-MM-DD", Required: false},
			{Name: "first_name", Type: "string", Description: "First name of passenger", Required: true},
			{Name: "last_name", Type: "string", Description: "Last name of passenger", Required: true},
			{Name: "seat_pref", Type: "string", Description: "Seat preference (window, aisle, or middle)", Required: true},
			{Name: "contact_number", Type: "string", Description: "Contact Phone Number (10 digits)", Required: true},
		},
	},
	{
		Function:    "lookup_flight",
		Description: "Lookup a flight",
		Arguments: []argumentSpec{
			{Name: "record_locator", Type: "string", Description: "Record locator for the booking", Required: true},
		},
	},
	{
		Function:    "change_flight",
		Description: "Change flight details",
		Arguments: []argumentSpec{
			{Name: "record_locator", Type: "string", Description: "Record locator for the booking", Required: true},
			{Name: "new_departure_date", Type: "string", Description: "New departure date", Required: false},
			{Name: "new_return_date", Type: "string", Description: "New return date", Required: false},
			{Name: "new_from_city", Type: "string", Description: "New origin airport IATA code", Required: false},
			{Name: "new_to_city", Type: "string", Description: "New destination airport IATA code", Required: false},
		},
	},
	{
		Function:    "cancel_flight",
		Description: "Cancel a flight",
		Arguments: []argumentSpec{
			{Name: "record_locator", Type: "string", Description: "Record locator to cancel", Required: true},
		},
	},
}

func NewToolHandler(service booking.BookingUseCase) *ToolHandler {
	return &ToolHandler{service: service}
}

func (h *ToolHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.dispatch)
	router.GET("/signatures", h.listSignatures)
}

func (h *ToolHandler) listSignatures(c *gin.Context) {
	c.JSON(http.StatusOK, signatures)
}

func (h *ToolHandler) dispatch(c *gin.Context) {
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Function == "get_signature" {
		h.listSignatures(c)
		return
	}

	args := map[string]interface{}{}
	if len(req.Argument.Parsed) > 0 {
		args = req.Argument.Parsed[0]
	}
	meta := booking.Meta{Token: req.MetaDataToken, Data: req.MetaData}
	ctx := c.Request.Context()

	var (
		result booking.Result
		err    error
	)
	switch req.Function {
	case "book_flight":
		result, err = h.service.Book(ctx, booking.BookInput{
			FromCity:      stringArg(args, "from_city"),
			ToCity:        stringArg(args, "to_city"),
			DepartureDate: stringArg(args, "departure_date"),
			ReturnDate:    stringArg(args, "return_date"),
			FirstName:     stringArg(args, "first_name"),
			LastName:      stringArg(args, "last_name"),
			SeatPref:      stringArg(args, "seat_pref"),
			ContactNumber: stringArg(args, "contact_number"),
		}, meta)
	case "lookup_flight":
		result, err = h.service.Lookup(ctx, stringArg(args, "record_locator"), meta)
	case "change_flight":
		result, err = h.service.Change(ctx, booking.ChangeInput{
			RecordLocator:    stringArg(args, "record_locator"),
			NewDepartureDate: stringArg(args, "new_departure_date"),
			NewReturnDate:    stringArg(args, "new_return_date"),
			NewFromCity:      stringArg(args, "new_from_city"),
			NewToCity:        stringArg(args, "new_to_city"),
		}, meta)
	case "cancel_flight":
		result, err = h.service.Cancel(ctx, stringArg(args, "record_locator"), meta)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown function: " + req.Function})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toolResponse{Response: result.Text, Data: result.Data})
}

func stringArg(args map[string]interface{}, name string) string {
	if v, ok := args[name].(string); ok {
		return v
	}
	return ""
}
