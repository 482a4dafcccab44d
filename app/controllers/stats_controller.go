package controllers

import (
	"net/http"

	"github.com/shringarlabs/shringar/app/services"
	"github.com/shringarlabs/shringar/pkg/response"
)

type StatsController struct {
	service *services.StatsService
}

func NewStatsController() *StatsController {
	return &StatsController{service: services.NewStatsService()}
}

func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Dashboard()
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Success(w, stats)
}
