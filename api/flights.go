package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mei131412/gui-airline/internal/domain"
	"github.com/mei131412/gui-airline/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type flightResponse struct {
	FlightNumber   string `json:"flight_number"`
	Date           string `json:"flight_date"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	Gate           string `json:"gate"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

type seatResponse struct {
	SeatNumber string   `json:"seat_number"`
	Class      string   `json:"class"`
	Price      int64    `json:"price"`
	Amenities  []string `json:"amenities"`
	Occupied   bool     `json:"occupied"`
}

type fareResponse struct {
	Class     string   `json:"class"`
	Price     int64    `json:"price"`
	Amenities []string `json:"amenities"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.search)
	router.GET("/:number", h.get)
	router.GET("/:number/seats", h.seats)
	router.GET("/:number/seats/available", h.availableSeats)
	router.GET("/:number/fares", h.fares)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req flights.CreateFlightInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) search(c *gin.Context) {
	summaries, err := h.service.Search(c.Request.Context(), c.Query("destination"), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) seats(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toSeatResponses(flight.Seats()))
}

func (h *FlightHandler) availableSeats(c *gin.Context) {
	flight, err := h.service.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toSeatResponses(flight.AvailableSeats()))
}

func (h *FlightHandler) fares(c *gin.Context) {
	if _, err := h.service.GetByNumber(c.Request.Context(), c.Param("number")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	fares := make([]fareResponse, 0, 3)
	for _, class := range domain.FareClasses() {
		fare := domain.FareFor(class)
		fares = append(fares, fareResponse{
			Class:     string(class),
			Price:     fare.Price,
			Amenities: fare.Amenities,
		})
	}
	c.JSON(http.StatusOK, fares)
}

func toFlightResponse(flight *domain.Flight) flightResponse {
	summary := flight.Summary()
	return flightResponse{
		FlightNumber:   summary.FlightNumber,
		Date:           summary.Date,
		Destination:    summary.Destination,
		DepartureTime:  summary.DepartureTime,
		ArrivalTime:    summary.ArrivalTime,
		Gate:           summary.Gate,
		TotalSeats:     summary.TotalSeats,
		AvailableSeats: summary.AvailableSeats,
	}
}

func toSeatResponses(seats []domain.Seat) []seatResponse {
	out := make([]seatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, seatResponse{
			SeatNumber: seat.Number,
			Class:      string(seat.Class),
			Price:      seat.Price,
			Amenities:  seat.Amenities,
			Occupied:   seat.Occupied,
		})
	}
	return out
}
