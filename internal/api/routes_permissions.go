package api

import (
	"github.com/gin-gonic/gin"

	"github.com/charlesng35/orgauthz/internal/handlers"
)

func registerPermissionRoutes(api *gin.RouterGroup, h *handlers.PermissionHandler) {
	perms := api.Group("/permissions")
	{
		perms.GET("/categories", h.Categories)
		perms.GET("/templates", h.Templates)
		perms.POST("/resolve", h.Resolve)
		perms.POST("/validate", h.Validate)
	}

	api.GET("/roles/:id/permissions", h.RolePermissions)

	members := api.Group("/members/:id/permissions")
	{
		members.GET("", h.MemberPermissions)
		members.GET("/:permission", h.CheckMember)
	}
}
