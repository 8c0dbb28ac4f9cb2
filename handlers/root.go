package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const rootMessage = "If you are looking to estimate car prices from their features, you are in the right place."

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, rootMessage)
}
