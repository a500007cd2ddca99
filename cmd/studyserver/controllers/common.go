package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nickhuo/read-or-switch-sub000/internal/session"
	"github.com/nickhuo/read-or-switch-sub000/pkg/datamodel"
)

// Sessions is the shared per-participant orchestration registry,
// initialized by main before the router starts.
var Sessions = session.NewRegistry(nil)

// phaseFromQuery parses the mandatory ?phase= parameter
func phaseFromQuery(c *gin.Context) (datamodel.Phase, error) {
	return datamodel.ParsePhase(c.Query("phase"))
}

// participantFromQuery parses the optional ?participantId= parameter. A
// missing parameter yields nil, which the catalog treats as "no condition
// filter".
func participantFromQuery(c *gin.Context) (*int64, error) {
	raw := c.Query("participantId")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func participantFromParam(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("participantId"), 10, 64)
}

func respondSuccess(c *gin.Context) {
	c.JSON(200, gin.H{"success": true})
}
