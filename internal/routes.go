package internal

import (
	"net/http"

	"hnblocks/internal/controllers"
	"hnblocks/internal/providers"
	"hnblocks/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/time-blocks", http.HandlerFunc(apiController.GetTimeBlocks))
	routers.Get("/api/stories", http.HandlerFunc(apiController.GetStories))
	routers.Get("/api/view", http.HandlerFunc(apiController.GetView))
	routers.Get("/api/settings", http.HandlerFunc(apiController.GetSettings))
	routers.Put("/api/settings", http.HandlerFunc(apiController.PutSettings))
	return routers
}
