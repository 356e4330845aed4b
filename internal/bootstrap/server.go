package bootstrap

import (
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	appauth "github.com/orgstack/orgstack/internal/application/auth"
	appevent "github.com/orgstack/orgstack/internal/application/event"
	appnotification "github.com/orgstack/orgstack/internal/application/notification"
	apporg "github.com/orgstack/orgstack/internal/application/org"
	"github.com/orgstack/orgstack/internal/config"
	"github.com/orgstack/orgstack/internal/infrastructure/mailer"
	"github.com/orgstack/orgstack/internal/infrastructure/repository"
	httpecho "github.com/orgstack/orgstack/internal/interfaces/http/echo"
	"gorm.io/gorm"
)

// NewHTTPServer wires repositories, use cases and handlers into a
// configured echo instance.
func NewHTTPServer(cfg config.Config, db *gorm.DB, mail *mailer.Publisher, logger *log.Logger) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("10M"))

	users := repository.NewUserRepository(db)
	sessions := repository.NewSessionTokenRepository(db)
	orgs := repository.NewOrganizationRepository(db)
	memberships := repository.NewMembershipRepository(db)
	events := repository.NewEventRepository(db)
	notifications := repository.NewNotificationRepository(db)
	importJobs := repository.NewMemberImportJobRepository(db)

	emailTokens := appauth.NewEmailTokenCodec(cfg.TokenSecret)

	handlers := httpecho.Handlers{
		Auth: httpecho.NewAuthHandler(
			appauth.NewSignup(users, emailTokens, mail, cfg.BaseURL, logger),
			appauth.NewSignin(users, sessions),
			appauth.NewVerifyEmail(users, emailTokens),
			appauth.NewLogout(sessions),
			appauth.NewLogoutAll(sessions),
		),
		Orgs: httpecho.NewOrgHandler(
			apporg.NewCreateOrganization(orgs, memberships),
			apporg.NewListOrganizations(orgs),
			apporg.NewGetOrganization(orgs),
			apporg.NewUpdateOrganization(orgs),
			apporg.NewArchiveOrganization(orgs),
			apporg.NewDeleteOrganization(orgs),
		),
		Members: httpecho.NewMemberHandler(
			apporg.NewListMembers(memberships),
			apporg.NewGetMembership(memberships),
			apporg.NewUpsertMember(orgs, users, memberships, notifications, logger),
			apporg.NewRemoveMember(orgs, users, memberships, notifications, logger),
		),
		Imports: httpecho.NewImportHandler(
			apporg.NewStartMemberImport(orgs, importJobs),
			apporg.NewGetImportJob(importJobs),
		),
		Events: httpecho.NewEventHandler(
			appevent.NewCreateEvent(orgs, memberships, events, users, notifications, logger),
			appevent.NewListEvents(events),
			appevent.NewDeleteEvent(events, memberships, users, notifications, logger),
			appevent.NewGetEventByMeetingID(events),
		),
		Notifications: httpecho.NewNotificationHandler(
			appnotification.NewListNotifications(notifications),
			appnotification.NewMarkRead(notifications),
			appnotification.NewMarkAllRead(notifications),
			appnotification.NewDeleteNotification(notifications),
			appnotification.NewDeleteAllNotifications(notifications),
		),
	}

	httpecho.RegisterRoutes(server, handlers, sessions)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
