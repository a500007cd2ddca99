package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// GetAssessmentQuestionsHandler serves the final comprehension assessment
func GetAssessmentQuestionsHandler(c *gin.Context) {
	questions, err := services.GetAssessmentQuestions()
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// PostAssessmentSubmitHandler persists the final answer block
func PostAssessmentSubmitHandler(c *gin.Context) {
	var request models.AssessmentSubmitRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.SubmitAssessment(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}
