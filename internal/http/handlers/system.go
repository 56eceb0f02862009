package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	intconfig "admindash/internal/config"
	intdb "admindash/internal/db"

	"github.com/gin-gonic/gin"
)

// RequiredTables are the relational tables the dashboard reads.
var RequiredTables = []string{
	"projects", "project_images", "system_logs", "usage",
	"authorized_users", "free_analysis_submissions",
}

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for /api/routes.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
}

// DBCheck pings both stores and lists missing relational tables.
func (a API) DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	db := a.DB
	if db == nil {
		db = intconfig.DB
	}
	mdb := a.Mongo
	if mdb == nil {
		mdb = intconfig.Mongo
	}

	status := http.StatusOK
	sqlState := gin.H{"ok": false}
	if db == nil {
		sqlState["error"] = "not connected"
		status = http.StatusServiceUnavailable
	} else if err := db.PingContext(ctx); err != nil {
		sqlState["error"] = "ping failed"
		status = http.StatusServiceUnavailable
	} else {
		missing := intdb.MissingTables(ctx, db, RequiredTables...)
		sqlState["ok"] = len(missing) == 0
		sqlState["missing_tables"] = missing
		if len(missing) > 0 {
			status = http.StatusServiceUnavailable
		}
	}

	mongoState := gin.H{"ok": false}
	if mdb == nil {
		mongoState["error"] = "not connected"
		status = http.StatusServiceUnavailable
	} else if err := mdb.Client().Ping(ctx, nil); err != nil {
		mongoState["error"] = "ping failed"
		status = http.StatusServiceUnavailable
	} else {
		mongoState["ok"] = true
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"data":    gin.H{"sql": sqlState, "mongo": mongoState},
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		RespondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready")
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	respondOK(c, out)
}
