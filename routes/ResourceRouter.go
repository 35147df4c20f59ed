package routes

import (
	"github.com/gin-gonic/gin"
)

// ResourceHandlers is the handler set of a CRUD resource.
type ResourceHandlers interface {
	GetAll(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourceRouter mounts the six CRUD routes under path. Writes always need a
// token; reads only when protectReads is set.
func ResourceRouter(incomingRoutes *gin.RouterGroup, path string, ctl ResourceHandlers, requireAuth gin.HandlerFunc, protectReads bool) {
	group := incomingRoutes.Group(path)

	reads := group
	if protectReads {
		reads = group.Group("", requireAuth)
	}
	reads.GET("", ctl.GetAll)
	reads.GET("/:id", ctl.GetByID)

	writes := group.Group("", requireAuth)
	writes.POST("", ctl.Create)
	writes.PUT("/:id", ctl.Update)
	writes.PATCH("/:id", ctl.Patch)
	writes.DELETE("/:id", ctl.Delete)
}
