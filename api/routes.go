package api

import (
	"net/http"
	"time"

	limits "github.com/gin-contrib/size"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	timeout "github.com/vearne/gin-timeout"

	"github.com/checkmarble/caseview-backend/usecases"
	"github.com/checkmarble/caseview-backend/utils"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultCommentTimeout = 55 * time.Second
	maxCommentUploadBytes = 30 * 1024 * 1024 // 30MB
)

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.Timeout(
		timeout.WithTimeout(duration),
		timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		timeout.WithDefaultMsg("Request timeout"),
	)
}

func addRoutes(r *gin.Engine, conf Configuration, uc usecases.Usecases, auth utils.Authentication) {
	requestTimeout := conf.DefaultTimeout
	if requestTimeout == 0 {
		requestTimeout = defaultTimeout
	}
	commentTimeout := conf.CommentTimeout
	if commentTimeout == 0 {
		commentTimeout = defaultCommentTimeout
	}
	uploadLimit := conf.MaxCommentUploadBytes
	if uploadLimit == 0 {
		uploadLimit = maxCommentUploadBytes
	}

	r.GET("/liveness", handleLivenessProbe)
	if conf.EnablePrometheus {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	router := r.Group("/", auth.Middleware)
	timed := router.Group("/", timeoutMiddleware(requestTimeout))

	timed.GET("/caseviews", handleListCaseviews(uc))
	timed.GET("/caseviews/:caseview_id", handleGetCaseview(uc))
	timed.POST("/caseviews/:caseview_id/search-and-update", handleSearchAndUpdateCaseview(uc))
	timed.PATCH("/caseviews/:caseview_id", handlePatchCaseview(uc))
	timed.GET("/caseviews/:caseview_id/activities", handleListCaseviewActivities(uc))
	timed.DELETE("/caseviews/:caseview_id/lock", handleUnlockCaseview(uc))
	timed.GET("/caseviews/:caseview_id/audit-trails", handleListAuditTrails(uc))
	router.POST("/caseviews/:caseview_id/comments",
		limits.RequestSizeLimiter(uploadLimit),
		timeoutMiddleware(commentTimeout),
		handlePostComment(uc))

	timed.GET("/audit-trails/:history_id", handleGetAuditTrailDetails(uc))

	timed.GET("/documents/:document_key", handleGetDocumentContent(uc))
	timed.GET("/comments/:comment_id/attachments/:attachment_id", handleGetCommentAttachment(uc))

	timed.GET("/data-definitions", handleGetServiceDataDefinition(uc))
	timed.GET("/data-definitions/merged", handleGetMergedDataDefinitions(uc))
	timed.POST("/data-definitions/merged/refresh", handleRefreshMergedDataDefinitions(uc))

	timed.GET("/security-policies", handleListSecurityPolicies(uc))
	timed.GET("/valid-values", handleListValidValues(uc))
}
