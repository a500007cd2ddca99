package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// GetPassagesHandler serves the condition-filtered passages of a phase and
// registers them as the active set of the participant's session.
func GetPassagesHandler(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	participantID, err := participantFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	passages, err := services.GetPassages(phase, participantID)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	if participantID != nil {
		ids := make([]int, len(passages))
		for i, passage := range passages {
			ids[i] = passage.PassageID
		}
		Sessions.Get(*participantID).SetStimuli(ids)
	}

	c.JSON(http.StatusOK, passages)
}

// GetPartCQuestionsHandler serves the Part C comprehension questions
func GetPartCQuestionsHandler(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	participantID, err := participantFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	questions, err := services.GetPartCQuestions(phase, participantID)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// PostPartCSubmitHandler persists the answers for one passage and marks it
// visited in the session machine.
func PostPartCSubmitHandler(c *gin.Context) {
	var request models.PartCSubmitRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.SubmitPartC(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	_ = Sessions.Get(request.ParticipantID).MarkVisited(request.PassageID)
	respondSuccess(c)
}
