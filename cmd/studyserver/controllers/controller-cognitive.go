package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/helpers"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/models"
	"github.com/nickhuo/read-or-switch-sub000/cmd/studyserver/services"
)

// GetVocabularyHandler serves the vocabulary test items
func GetVocabularyHandler(c *gin.Context) {
	items, err := services.GetVocabularyItems()
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// PostVocabularyHandler appends one vocabulary answer
func PostVocabularyHandler(c *gin.Context) {
	var request models.VocabularyResponseRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.RecordVocabularyResponse(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}

// GetLetterComparisonHandler serves one round of letter-comparison pairs
func GetLetterComparisonHandler(c *gin.Context) {
	roundNumber, err := strconv.Atoi(c.Query("round"))
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	items, err := services.GetLetterItems(roundNumber)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// PostLetterComparisonHandler inserts or revises one judgment
func PostLetterComparisonHandler(c *gin.Context) {
	var request models.LetterComparisonRequest

	err := c.BindJSON(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	err = services.RecordLetterComparison(request)
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}

	respondSuccess(c)
}
