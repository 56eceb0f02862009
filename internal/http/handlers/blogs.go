package handlers

import (
	"strconv"

	"admindash/internal/http/middleware"
	"admindash/internal/repositories"
	"admindash/internal/services"

	"github.com/gin-gonic/gin"
)

func (a API) blogs(c *gin.Context) services.BlogService {
	s := a.Blogs
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (a API) ListBlogs(c *gin.Context) {
	includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted"))
	q := repositories.BlogQuery{
		Page:           pageRequest(c, services.BlogListOptions),
		ProjectID:      c.Query("project_id"),
		IncludeDeleted: includeDeleted,
	}
	res, err := a.blogs(c).List(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}

func (a API) GetBlog(c *gin.Context) {
	blog, err := a.blogs(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, blog)
}

func (a API) DeleteBlog(c *gin.Context) {
	actor := "unknown"
	if u, ok := middleware.CurrentUser(c); ok && u.Email != "" {
		actor = u.Email
	}
	blog, err := a.blogs(c).Delete(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, blog)
}

func (a API) RestoreBlog(c *gin.Context) {
	blog, err := a.blogs(c).Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, blog)
}
