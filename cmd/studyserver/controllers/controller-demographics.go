package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// PostDemographicsHandler takes the intake survey. Side effects: idempotent
// condition assignment, wholesale demographic replace, knowledge ratings.
func PostDemographicsHandler(c *gin.Context) {
	var request models.DemographicsRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	for topic, rating := range request.Knowledge {
		if rating < 1 || rating > 7 {
			helpers.HandleInvalidInputError(c, fmt.Errorf("rating for %q must be between 1 and 7", topic))
			return
		}
	}

	conditions, err := services.SubmitDemographics(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "conditions": conditions})
}

// GetConditionsHandler returns the stored condition pair of a participant
func GetConditionsHandler(c *gin.Context) {
	participantID, err := participantFromParam(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	conditions, err := services.GetConditions(participantID)
	if errors.Is(err, services.ErrNotFound) {
		helpers.HandleTypeNotFound(c, fmt.Sprintf("participant %d", participantID))
		return
	} else if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, conditions)
}
