package handlers

import (
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

func (a API) ListProjects(c *gin.Context) {
	res, err := a.Projects.List(c.Request.Context(), pageRequest(c, services.ProjectListOptions))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}

func (a API) GetProject(c *gin.Context) {
	detail, err := a.Projects.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, detail)
}

func (a API) ListImages(c *gin.Context) {
	res, err := a.Images.List(c.Request.Context(), pageRequest(c, services.ImageListOptions), c.Query("project_id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}
