package controllers

import (
	"net/http"

	"reservapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextWorkspace pulls the workspace set by the auth middleware. Every
// handler goes through here, so no query can run without its tenant filter.
func contextWorkspace(c *gin.Context) (string, bool) {
	v, exists := c.Get("workspaceId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Workspace not found in context")
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		utils.RespondWithError(c, http.StatusUnauthorized, "Workspace not found in context")
		return "", false
	}
	return id, true
}

func contextUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func customerIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return uuid.Nil, false
	}
	return id, true
}
