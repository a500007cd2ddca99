package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// GetStoriesHandler serves the condition-filtered story set of a phase and
// registers it as the active foraging set of the participant's session.
func GetStoriesHandler(c *gin.Context) {
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

	stories, err := services.GetStories(phase, participantID)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	if participantID != nil {
		ids := make([]int, len(stories))
		for i, story := range stories {
			ids[i] = story.StoryID
		}
		Sessions.Get(*participantID).SetStimuli(ids)
	}

	c.JSON(http.StatusOK, stories)
}

// GetSegmentsHandler serves the ordered segment sequence of one story
func GetSegmentsHandler(c *gin.Context) {
	storyID, err := strconv.Atoi(c.Query("storyId"))
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}
	participantID, err := participantFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	segments, err := services.GetSegments(storyID, participantID)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, segments)
}

// GetPartBQuestionsHandler serves the Part B comprehension questions
func GetPartBQuestionsHandler(c *gin.Context) {
	phase, err := phaseFromQuery(c)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	questions, err := services.GetPartBQuestions(phase)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// PostPartBActionHandler logs one continue/switch/select decision. A
// "select" additionally marks the story visited in the session machine.
func PostPartBActionHandler(c *gin.Context) {
	var request models.PartBActionRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.RecordPartBAction(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	if request.Action == string(datamodel.ActionSelect) {
		// visited bookkeeping is best effort: an id outside the active
		// set is the client's problem, not a request failure
		_ = Sessions.Get(request.ParticipantID).MarkVisited(request.StoryID)
	}

	respondSuccess(c)
}

// PostPartBSubmitHandler persists the summary and comprehension answers
func PostPartBSubmitHandler(c *gin.Context) {
	var request models.PartBSubmitRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.SubmitPartB(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}
