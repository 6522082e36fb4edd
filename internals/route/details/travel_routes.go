package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifService "tripku_backend/internals/features/home/notifications/service"
	adventureController "tripku_backend/internals/features/travel/adventures/controller"
	postController "tripku_backend/internals/features/travel/posts/controller"
	reviewController "tripku_backend/internals/features/travel/reviews/controller"
	tripRequestController "tripku_backend/internals/features/travel/triprequests/controller"
)

func TravelPublicRoutes(public fiber.Router, db *gorm.DB, v *validator.Validate) {
	adventures := adventureController.NewAdventureController(db, v)
	posts := postController.NewPostController(db, v)
	reviews := reviewController.NewReviewController(db, v)

	public.Get("/adventures", adventures.List)
	public.Get("/adventures/:slug", adventures.GetBySlug)
	public.Get("/adventures/:id/reviews", reviews.ListByAdventure)

	public.Get("/posts", posts.List)
	public.Get("/posts/:slug", posts.GetBySlug)
}

func TravelUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate, notifier *notifService.Dispatcher) {
	reviews := reviewController.NewReviewController(db, v)
	tripRequests := tripRequestController.NewTripRequestController(db, v, notifier)

	user.Put("/adventures/:id/review", reviews.Upsert)
	user.Delete("/adventures/:id/review", reviews.DeleteMine)

	user.Post("/trip-requests", tripRequests.Create)
	user.Get("/trip-requests", tripRequests.ListMine)
}

func TravelAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	adventures := adventureController.NewAdventureController(db, v)
	posts := postController.NewPostController(db, v)
	tripRequests := tripRequestController.NewTripRequestController(db, v, nil)

	admin.Post("/adventures", adventures.Create)
	admin.Patch("/adventures/:id", adventures.Update)
	admin.Delete("/adventures/:id", adventures.Delete)

	admin.Post("/posts", posts.Create)
	admin.Patch("/posts/:id", posts.Update)
	admin.Delete("/posts/:id", posts.Delete)

	admin.Get("/trip-requests", tripRequests.ListAll)
	admin.Patch("/trip-requests/:id", tripRequests.Triage)
}
