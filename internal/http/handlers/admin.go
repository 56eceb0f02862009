package handlers

import (
	"net/http"
	"strings"

	"admindash/internal/domain/models"
	"admindash/internal/http/middleware"
	"admindash/internal/services"
	"admindash/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a API) ListLogs(c *gin.Context) {
	res, err := a.Logs.List(c.Request.Context(), pageRequest(c, services.LogListOptions), c.Query("level"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}

func (a API) LogSummary(c *gin.Context) {
	counts, err := a.Logs.Summary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, counts)
}

func (a API) crawl(c *gin.Context) services.CrawlService {
	s := a.Crawl
	s.RequestID = middleware.GetRequestID(c)
	return s
}

func (a API) ListCrawlTasks(c *gin.Context) {
	res, err := a.crawl(c).List(c.Request.Context(), pageRequest(c, services.CrawlListOptions), c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondList(c, res)
}

func (a API) GetCrawlTask(c *gin.Context) {
	task, err := a.crawl(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, task)
}

func (a API) CreateCrawlTask(c *gin.Context) {
	var in models.CrawlTaskInput
	if !BindJSONOrError(c, &in) {
		return
	}
	task, err := a.crawl(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": task})
}

func (a API) CacheStats(c *gin.Context) {
	respondOK(c, a.Cache.Stats())
}

// ClearCache drops keys under ?prefix, or everything when no prefix is given.
func (a API) ClearCache(c *gin.Context) {
	prefix := strings.TrimSpace(c.Query("prefix"))
	removed := -1
	if prefix != "" {
		removed = a.Cache.InvalidatePattern(prefix)
	} else {
		a.Cache.Clear()
	}
	utils.LogEvent(middleware.GetRequestID(c), "cache", "clear", "cache cleared", zap.String("prefix", prefix))

	data := gin.H{"prefix": prefix}
	if removed >= 0 {
		data["removed"] = removed
	}
	respondOK(c, data)
}
