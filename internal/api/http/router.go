package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/epwerk/field-service/internal/api/http/handlers"
	"github.com/epwerk/field-service/internal/auth"
	"github.com/epwerk/field-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Projects       *handlers.ProjectsHandler
	Customers      *handlers.CustomersHandler
	Categories     *handlers.CategoriesHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.AuthMiddleware.HandleOptional, cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	authGroup.Post("/password", cfg.AuthMiddleware.Handle, cfg.Users.ChangePassword)

	// Ticket intake is the public face of the service; everything past it
	// requires a staff account.
	app.Post("/tickets", cfg.Tickets.SubmitTicket)

	staff := auth.RequireRole(domain.RoleAdmin, domain.RoleProjectManager, domain.RoleOffice)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle, staff)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateTicket)
	tickets.Post("/:id/convert", cfg.Tickets.ConvertTicket)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	projects.Get("/", cfg.Projects.ListProjects)
	projects.Get("/stats", staff, cfg.Projects.Stats)
	projects.Post("/", staff, cfg.Projects.CreateProject)
	projects.Get("/:id", cfg.Projects.GetProject)
	projects.Patch("/:id", staff, cfg.Projects.UpdateProject)
	projects.Delete("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleProjectManager), cfg.Projects.DeleteProject)
	projects.Post("/:id/members", staff, cfg.Projects.AddMember)
	projects.Delete("/:id/members", staff, cfg.Projects.RemoveMember)
	projects.Post("/:id/stages", staff, cfg.Projects.CreateStage)
	projects.Patch("/stages/:stageId", staff, cfg.Projects.UpdateStage)
	projects.Delete("/stages/:stageId", staff, cfg.Projects.DeleteStage)

	customers := app.Group("/customers", cfg.AuthMiddleware.Handle, staff)
	customers.Get("/", cfg.Customers.ListCustomers)
	customers.Get("/:id", cfg.Customers.GetCustomer)
	customers.Post("/", cfg.Customers.CreateCustomer)
	customers.Patch("/:id", cfg.Customers.UpdateCustomer)
	customers.Delete("/:id", cfg.Customers.DeleteCustomer)

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	categories.Get("/", cfg.Categories.ListCategories)
	categories.Get("/:id", cfg.Categories.GetCategory)
	categories.Post("/", staff, cfg.Categories.CreateCategory)
	categories.Patch("/:id", staff, cfg.Categories.UpdateCategory)
	categories.Delete("/:id", auth.RequireRole(domain.RoleAdmin, domain.RoleProjectManager), cfg.Categories.DeleteCategory)

	tasks := app.Group("/tasks", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	tasks.Get("/", cfg.Tasks.ListTasks)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Post("/", cfg.Tasks.CreateTask)
	tasks.Patch("/:id", cfg.Tasks.UpdateTask)
	tasks.Delete("/:id", cfg.Tasks.DeleteTask)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Patch("/:id/role", cfg.Users.SetRole)
	users.Patch("/:id/active", cfg.Users.SetActive)
}
