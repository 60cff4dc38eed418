package controllers

import (
	"context"
	"net/http"

	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/app"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/dtos"
	"github.com/Harambee-Dao/Harambee-Dao-Backend/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app: app}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// DB is nil when running on the in-memory stores.
	if c.app.DB != nil {
		if err := c.app.DB.Ping(context.Background()); err != nil {
			utils.Logger.WithError(err).Error("Database unreachable")
			utils.RespondErrorWithCode(
				w,
				http.StatusServiceUnavailable,
				utils.ErrCodeInternal,
				"Database unreachable",
				nil,
				err,
			)
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
