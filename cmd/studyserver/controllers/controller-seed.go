package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// SeedHandler wipes and reloads one catalog table from its CSV file.
// Destructive; only wired up when SEED_ENABLED=true.
func SeedHandler(c *gin.Context) {
	if !services.SeedingEnabled() {
		c.JSON(
			http.StatusForbidden,
			gin.H{
				"error":   "seeding disabled",
				"status":  http.StatusForbidden,
				"message": "Seeding endpoints are disabled. Set SEED_ENABLED=true before the study starts.",
			})
		return
	}

	dataset := c.Param("dataset")
	count, err := services.Seed(dataset)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleTypeNotFound(c, dataset)
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "dataset": dataset, "rows": count})
}
