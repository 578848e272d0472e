package handlers

import (
	"SanteSenegal/services"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	service *services.CalendarService
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

func (h *CalendarHandler) GetHolidaysBetween(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(400, gin.H{"error": "start and end query parameters are required"})
		return
	}
	holidays, err := h.service.HolidaysBetween(c, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, holidays)
}

func (h *CalendarHandler) GetHolidaysForMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(400, gin.H{"error": "Invalid month"})
		return
	}
	holidays, err := h.service.HolidaysForMonth(c, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, holidays)
}

func (h *CalendarHandler) CheckHoliday(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}
	holiday, err := h.service.IsHoliday(c, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"date": date, "holiday": holiday})
}

func (h *CalendarHandler) SyncYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid year"})
		return
	}
	if err := h.service.SyncYear(c, year); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Holidays synced", "year": year})
}

func (h *CalendarHandler) TestConnectivity(c *gin.Context) {
	if err := h.service.TestConnectivity(c); err != nil {
		c.JSON(503, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"message": "Holiday provider reachable"})
}
