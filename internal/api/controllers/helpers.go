package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"facturo/pkg/utils"
)

// pathID reads a positive numeric path parameter.
func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, utils.ErrInvalidInput
	}
	return uint(id), nil
}
