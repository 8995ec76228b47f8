package api

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/storefront/storefront-backend/models"
)

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrapf(models.BadParameterError, "%s must be a positive integer", name)
	}
	return id, nil
}
