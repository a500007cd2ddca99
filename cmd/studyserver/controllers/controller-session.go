package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
)

// GetSessionHandler returns the participant's orchestration state
func GetSessionHandler(c *gin.Context) {
	participantID, err := participantFromParam(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	c.JSON(http.StatusOK, Sessions.Get(participantID).Snapshot())
}

type visitRequest struct {
	StimulusID int `json:"stimulusId" binding:"required"`
}

// PostSessionVisitHandler marks one stimulus of the active set as visited
func PostSessionVisitHandler(c *gin.Context) {
	participantID, err := participantFromParam(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	var request visitRequest
	err = c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = Sessions.Get(participantID).MarkVisited(request.StimulusID)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	c.JSON(http.StatusOK, Sessions.Get(participantID).Snapshot())
}

// PostSessionStepHandler advances a fixed-step phase by one step
func PostSessionStepHandler(c *gin.Context) {
	participantID, err := participantFromParam(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	Sessions.Get(participantID).RecordStep()
	c.JSON(http.StatusOK, Sessions.Get(participantID).Snapshot())
}

// PostSessionAdvanceHandler moves to the next phase once the current
// completion predicate holds. Advancing a finished session is a no-op.
func PostSessionAdvanceHandler(c *gin.Context) {
	participantID, err := participantFromParam(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	_, err = Sessions.Get(participantID).Advance()
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	c.JSON(http.StatusOK, Sessions.Get(participantID).Snapshot())
}
