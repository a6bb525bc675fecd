package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timetrack/backend/internal/middleware"
	"timetrack/backend/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

type addBookingRequest struct {
	Day       string `json:"bookingday"`
	Starttime string `json:"starttime"`
	Endtime   string `json:"endtime"`
	Activity  int64  `json:"activity"`
	Comment   string `json:"comment"`
}

type changeBookingRequest struct {
	Day       *string `json:"bookingday"`
	Starttime *string `json:"starttime"`
	Endtime   *string `json:"endtime"`
	Activity  *int64  `json:"activity"`
	Comment   *string `json:"comment"`
}

type splitBookingRequest struct {
	Starttime string `json:"starttime"`
	Duration  int    `json:"duration"`
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

func (h *BookingHandler) List(c *gin.Context) {
	firstDay := c.Query("firstDay")
	if firstDay == "" {
		writeError(c, invalidFirstDay())
		return
	}

	userID := middleware.UserID(c)
	bookings, apiErr := h.bookingService.GetBookings(c.Request.Context(), userID, firstDay, c.Query("firstDayAfter"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) Add(c *gin.Context) {
	var req addBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	booking, apiErr := h.bookingService.AddBooking(c.Request.Context(), userID, service.AddBookingInput{
		Day:       req.Day,
		Starttime: req.Starttime,
		Endtime:   req.Endtime,
		Activity:  req.Activity,
		Comment:   req.Comment,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (h *BookingHandler) Change(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req changeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	booking, apiErr := h.bookingService.ChangeBooking(c.Request.Context(), userID, id, service.ChangeBookingInput{
		Day:       req.Day,
		Starttime: req.Starttime,
		Endtime:   req.Endtime,
		Activity:  req.Activity,
		Comment:   req.Comment,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *BookingHandler) Split(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req splitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	userID := middleware.UserID(c)
	booking, apiErr := h.bookingService.SplitBooking(c.Request.Context(), userID, id, service.SplitBookingInput{
		Starttime: req.Starttime,
		Duration:  req.Duration,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	userID := middleware.UserID(c)
	if apiErr := h.bookingService.DeleteBooking(c.Request.Context(), userID, id); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.Status(http.StatusNoContent)
}
