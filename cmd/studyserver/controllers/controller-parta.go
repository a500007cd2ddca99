package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// GetSentencesHandler serves the Part A reading items of a phase. When a
// participant is supplied, the item count is registered with the session
// machine as the phase's required step count.
func GetSentencesHandler(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	sentences, err := services.GetSentences(phase)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	participantID, err := participantFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	if participantID != nil {
		ids := make([]int, len(sentences))
		for i, sentence := range sentences {
			ids[i] = sentence.SentenceID
		}
		Sessions.Get(*participantID).SetStimuli(ids)
	}

	c.JSON(http.StatusOK, sentences)
}

// GetPartAQuestionsHandler serves the Part A comprehension questions
func GetPartAQuestionsHandler(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	questions, err := services.GetPartAQuestions(phase)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// PostPartALogHandler appends one self-paced reading event
func PostPartALogHandler(c *gin.Context) {
	var request models.PartALogRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.LogPartAEvent(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}

// PostPartASubmitQuestionsHandler persists a full question block
func PostPartASubmitQuestionsHandler(c *gin.Context) {
	var request models.SubmitQuestionsRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.SubmitPartAQuestions(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}
