package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"marketplace/models"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bindJSON decodes the request body into v and answers 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		getLogger(c).Debug("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Invalid request", Details: err.Error()})
		return false
	}
	return true
}

// pageParams reads ?page and ?pageSize; absent values are zero so the service default applies.
func pageParams(c *gin.Context) (page, pageSize int, ok bool) {
	verr := &models.ValidationError{}
	read := func(key string) int {
		raw := c.Query(key)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr.Add(key, "must be a positive integer")
		}
		return n
	}
	page, pageSize = read("page"), read("pageSize")
	if page > models.MaxPage {
		verr.Add("page", fmt.Sprintf("must be at most %d", models.MaxPage))
	}
	if err := verr.OrNil(); err != nil {
		utils.RespondError(c, "Invalid paging", err)
		return 0, 0, false
	}
	return page, pageSize, true
}
