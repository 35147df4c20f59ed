package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matchup/helper"
	"matchup/models"
	"matchup/services"
)

type EventController struct {
	*CrudController[models.Event, models.EventInput, models.EventPatch]
	events *services.EventService
}

func NewEventController(events *services.EventService) *EventController {
	return &EventController{
		CrudController: NewCrudController[models.Event, models.EventInput, models.EventPatch](events),
		events:         events,
	}
}

// GetAll lists events, narrowed by the hobby, creator, status and
// lat/lng/radius query parameters when present.
func (ctl *EventController) GetAll(c *gin.Context) {
	q, err := eventQuery(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ctx, cancel := opContext(c)
	defer cancel()

	events, err := ctl.events.Search(ctx, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func eventQuery(c *gin.Context) (services.EventQuery, error) {
	q := services.EventQuery{
		Hobby:   c.Query("hobby"),
		Creator: c.Query("creator"),
		Status:  c.Query("status"),
	}

	lat, lng, radius := c.Query("lat"), c.Query("lng"), c.Query("radius")
	if lat == "" && lng == "" && radius == "" {
		return q, nil
	}
	if lat == "" || lng == "" || radius == "" {
		return q, helper.BadRequest("lat, lng and radius must be given together")
	}

	latV, errLat := strconv.ParseFloat(lat, 64)
	lngV, errLng := strconv.ParseFloat(lng, 64)
	radiusV, errRadius := strconv.ParseFloat(radius, 64)
	if errLat != nil || errLng != nil || errRadius != nil || radiusV < 0 {
		return q, helper.BadRequest("lat, lng and radius must be numbers")
	}

	near := models.NewGeoPoint(lngV, latV)
	q.Near = &near
	q.Radius = radiusV
	return q, nil
}
