package handlers

import (
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

func (a API) ListUsers(c *gin.Context) {
	res, err := a.Users.List(c.Request.Context(), pageRequest(c, services.UserListOptions))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}

func (a API) GetUser(c *gin.Context) {
	u, err := a.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, u)
}

func (a API) ListSubmissions(c *gin.Context) {
	res, err := a.Submissions.List(c.Request.Context(), pageRequest(c, services.SubmissionListOptions))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}
