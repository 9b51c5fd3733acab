package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/mei131412/gui-airline/internal/service/reservations"
)

type ReservationHandler struct {
	service reservations.ReservationUseCase
}

type paymentResponse struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type reservationResponse struct {
	ID           string           `json:"id"`
	Status       string           `json:"status"`
	FlightNumber string           `json:"flight_number"`
	SeatNumber   string           `json:"seat_number"`
	Passenger    string           `json:"passenger"`
	CreatedAt    string           `json:"created_at"`
	Payment      *paymentResponse `json:"payment,omitempty"`
}

type cancelResponse struct {
	reservationResponse
	RefundAmount int64  `json:"refund_amount"`
	RefundMethod string `json:"refund_method"`
}

func NewReservationHandler(service reservations.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.cancel)
}

func (h *ReservationHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]reservationResponse, 0, len(all))
	for _, reservation := range all {
		out = append(out, toReservationResponse(reservation))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var req reservations.CreateReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(reservationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toReservationResponse(reservation))
}

func (h *ReservationHandler) get(c *gin.Context) {
	reservation, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(reservation))
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	reservation, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(reservationErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := cancelResponse{reservationResponse: toReservationResponse(reservation)}
	if pay := reservation.Payment(); pay != nil {
		resp.RefundAmount = pay.Amount
		resp.RefundMethod = pay.Method
	}
	c.JSON(http.StatusOK, resp)
}

func reservationErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatOccupied),
		errors.Is(err, domain.ErrReservationNotConfirmed),
		errors.Is(err, reservations.ErrSeatHeld):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func toReservationResponse(reservation *domain.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:           reservation.ID,
		Status:       string(reservation.Status()),
		FlightNumber: reservation.Flight.Number,
		SeatNumber:   reservation.SeatNumber,
		Passenger:    reservation.Passenger.FullName(),
		CreatedAt:    reservation.CreatedAt.Format(time.RFC3339),
	}
	if pay := reservation.Payment(); pay != nil {
		resp.Payment = &paymentResponse{
			ID:        pay.ID,
			Amount:    pay.Amount,
			Method:    pay.Method,
			Status:    string(pay.Status()),
			CreatedAt: pay.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
