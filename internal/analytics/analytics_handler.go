package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pto-tracker/internal/shared/apperror"
	"pto-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const dashboardCacheTTL = 2 * time.Minute

type Handler struct {
	service Service
	rdb     *redis.Client
	group   singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("analytics.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("analytics.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

// Dashboard serves the aggregated dashboard for a year. Responses are cached
// briefly in Redis, and concurrent cache misses for the same year collapse
// into a single aggregation.
func (h *Handler) Dashboard(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid year parameter", nil)
			return
		}
		year = parsed
	}
	if year == 0 {
		year = time.Now().Year()
	}

	cacheKey := fmt.Sprintf("analytics:dashboard:%d", year)
	if h.rdb != nil {
		cached, err := h.rdb.Get(c.Request.Context(), cacheKey).Bytes()
		if err == nil {
			var dash DashboardResponse
			if err := json.Unmarshal(cached, &dash); err == nil {
				response.Success(c, http.StatusOK, dash, nil)
				return
			}
		}
	}

	result, err, _ := h.group.Do(cacheKey, func() (any, error) {
		dash, err := h.service.Dashboard(c.Request.Context(), year)
		if err != nil {
			return nil, err
		}
		if h.rdb != nil {
			if payload, merr := json.Marshal(dash); merr == nil {
				if cerr := h.rdb.Set(c.Request.Context(), cacheKey, payload, dashboardCacheTTL).Err(); cerr != nil {
					h.logger.Warn("failed to cache dashboard", zap.String("key", cacheKey), zap.Error(cerr))
				}
			}
		}
		return dash, nil
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("dashboard request failed",
			zap.Int("year", year),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, result.(DashboardResponse), nil)
}
