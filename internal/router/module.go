package router

import "github.com/gin-gonic/gin"

// Module is a feature bundle that registers its routes on the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
