package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"mediavault/internal/http/middleware"
	"mediavault/internal/service"
)

// Services bundles everything the route table needs.
type Services struct {
	Users     service.UserService
	Instances service.InstanceService
	Groups    service.GroupService
	Resources service.ResourceService
	Comments  service.CommentService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Read routes
// accept anonymous callers and let the access policy decide; mutating routes
// sit behind RequireCaller.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	auth := app.Group("/auth")
	auth.Post("/register", Register(svcs.Users))
	auth.Post("/login", Login(svcs.Users))
	auth.Get("/me", middleware.RequireCaller(), Me(svcs.Users))

	guarded := middleware.RequireCaller()

	instances := app.Group("/instances")
	instances.Get("/", guarded, ListInstances(svcs.Instances))
	instances.Post("/", guarded, CreateInstance(svcs.Instances))
	instances.Get("/:id", GetInstance(svcs.Instances))
	instances.Put("/:id", guarded, UpdateInstance(svcs.Instances))
	instances.Put("/:id/thumbnail", guarded, ReplaceThumbnail(svcs.Instances))
	instances.Post("/:id/visibility", guarded, ToggleVisibility(svcs.Instances))
	instances.Post("/:id/password", guarded, ChangeInstancePassword(svcs.Instances))
	instances.Delete("/:id", guarded, DeleteInstance(svcs.Instances))

	instances.Get("/:id/groups", ListGroups(svcs.Groups))
	instances.Post("/:id/groups", guarded, CreateGroup(svcs.Groups))
	instances.Get("/:id/groups/:groupId", GetGroup(svcs.Groups))
	instances.Put("/:id/groups/:groupId", guarded, RenameGroup(svcs.Groups))
	instances.Post("/:id/groups/:groupId/move", guarded, MoveGroup(svcs.Groups))
	instances.Delete("/:id/groups/:groupId", guarded, DeleteGroup(svcs.Groups))

	instances.Get("/:id/groups/:groupId/resources", ListResources(svcs.Resources))
	instances.Post("/:id/groups/:groupId/resources", guarded, PublishResource(svcs.Resources))
	instances.Get("/:id/resources/:resourceId", GetResource(svcs.Resources))
	instances.Put("/:id/resources/:resourceId", guarded, UpdateResourceTitle(svcs.Resources))
	instances.Post("/:id/resources/:resourceId/move", guarded, MoveResource(svcs.Resources))
	instances.Delete("/:id/resources/:resourceId", guarded, DeleteResource(svcs.Resources))

	instances.Get("/:id/comments", ListComments(svcs.Comments))
	instances.Post("/:id/comments", guarded, CreateComment(svcs.Comments))
	instances.Put("/:id/comments/:commentId", guarded, UpdateComment(svcs.Comments))
	instances.Delete("/:id/comments/:commentId", guarded, DeleteComment(svcs.Comments))
}
