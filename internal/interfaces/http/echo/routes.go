package echo

import e "github.com/labstack/echo/v4"

type Handlers struct {
	Auth          *AuthHandler
	Orgs          *OrgHandler
	Members       *MemberHandler
	Imports       *ImportHandler
	Events        *EventHandler
	Notifications *NotificationHandler
}

func RegisterRoutes(server *e.Echo, h Handlers, sessions sessionResolver) {
	api := server.Group("/api/v1")

	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/signin", h.Auth.Signin)
	api.GET("/auth/verify-email", h.Auth.VerifyEmail)

	authed := api.Group("", RequireAuth(sessions))
	authed.GET("/auth/whoami", h.Auth.Whoami)
	authed.POST("/auth/logout", h.Auth.Logout)
	authed.POST("/auth/logout-all", h.Auth.LogoutAll)

	authed.POST("/orgs", h.Orgs.Create)
	authed.GET("/orgs", h.Orgs.List)
	authed.GET("/orgs/:slug", h.Orgs.Get)
	authed.PATCH("/orgs/:slug", h.Orgs.Update)
	authed.POST("/orgs/:slug/archive", h.Orgs.Archive)
	authed.DELETE("/orgs/:slug", h.Orgs.Delete)

	authed.GET("/orgs/:slug/members", h.Members.List)
	authed.GET("/orgs/:slug/members/:username", h.Members.Get)
	authed.PUT("/orgs/:slug/members/:username", h.Members.Upsert)
	authed.DELETE("/orgs/:slug/members/:username", h.Members.Remove)

	authed.POST("/orgs/:slug/imports/members", h.Imports.ImportMembers)
	authed.GET("/orgs/:slug/imports/members/:id", h.Imports.GetImportJob)

	authed.POST("/orgs/:slug/events", h.Events.Create)
	authed.GET("/orgs/:slug/events", h.Events.List)
	authed.DELETE("/orgs/:slug/events/:id", h.Events.Delete)
	authed.GET("/orgs/:slug/meetings/:meeting_id", h.Events.GetByMeetingID)

	authed.GET("/notifications", h.Notifications.List)
	authed.POST("/notifications/:id/read", h.Notifications.MarkRead)
	authed.POST("/notifications/read-all", h.Notifications.MarkAllRead)
	authed.DELETE("/notifications/:id", h.Notifications.Delete)
	authed.DELETE("/notifications", h.Notifications.DeleteAll)
}
