package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shishikan-sg/shishikan/internal/database"
	"github.com/shishikan-sg/shishikan/internal/model"
	"github.com/shishikan-sg/shishikan/internal/search"
	"github.com/shishikan-sg/shishikan/internal/server/identity"
	"github.com/shishikan-sg/shishikan/internal/server/middlewares"
	"github.com/shishikan-sg/shishikan/internal/server/service"
	"github.com/shishikan-sg/shishikan/internal/server/session"
	"github.com/shishikan-sg/shishikan/internal/storage"
	"github.com/sirupsen/logrus"
)

// A Controller is an Iversion Of Control pattern used to init the server package.
type Controller struct {
	Version        string
	Database       database.Client
	Index          search.Index
	Storage        storage.Store
	Verifier       identity.Verifier
	Logger         logrus.FieldLogger
	NoRegistration bool
	// Session params
	AccessTokenTTL time.Duration
	// Directory served under /images, empty when images are stored elsewhere.
	ImagesPath string
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.HideBanner = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())
	engine.Use(middleware.BodyLimit(fmt.Sprintf("%dM", storage.MaxImageSize>>20+1)))
	engine.Use(middlewares.Logger(ctrl.Logger))

	engine.Binder = middlewares.NewBinder()
	engine.Validator = middlewares.NewValidator()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"^/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.Database, ctrl.AccessTokenTTL)

	identify := middlewares.Identify(sessions)
	restrict := middlewares.Session(sessions)
	router := engine.Group("")

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// auth handlers
	//
	auth := &auth{
		service: service.NewAuth(ctrl.Database, sessions, ctrl.Verifier, ctrl.NoRegistration),
	}
	router.POST("/auth/google", auth.Google)
	router.POST("/auth/sign_out", auth.SignOut, restrict)
	router.GET("/users/me", auth.Me, restrict)

	//
	// list handlers
	//
	list := &list{
		db:     ctrl.Database,
		lists:  service.NewList(ctrl.Database),
		foods:  service.NewFood(ctrl.Database, ctrl.Index, ctrl.Logger),
		search: service.NewSearch(ctrl.Database, ctrl.Index),
	}
	router.GET("/lists", list.Index, restrict)
	router.POST("/lists", list.Create, restrict)
	router.GET("/lists/:id", list.Show, identify)
	router.GET("/users/:id/lists", list.UserLists, identify)
	router.POST("/lists/:id/foods", list.AddFood, restrict)
	router.GET("/lists/:id/foods", list.Foods, identify)

	//
	// search handlers
	//
	searcher := &searcher{
		db:     ctrl.Database,
		search: service.NewSearch(ctrl.Database, ctrl.Index),
	}
	router.GET("/categories", searcher.Categories)
	router.GET("/search", searcher.Search, identify)

	//
	// image handlers
	//
	image := &image{
		store: ctrl.Storage,
	}
	router.POST("/images", image.Upload, restrict)
	if ctrl.ImagesPath != "" {
		router.Static("/images", ctrl.ImagesPath)
	}

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}

func currentUser(c echo.Context) *model.User {
	user, ok := c.Get(middlewares.CurrentUserContextKey).(*model.User)
	if ok {
		return user
	}
	return nil
}

func currentSession(c echo.Context) *model.Session {
	session, ok := c.Get(middlewares.CurrentSessionContextKey).(*model.Session)
	if ok {
		return session
	}
	return nil
}
