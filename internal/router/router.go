package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipehub/internal/auth"
	"recipehub/internal/handler"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Recipe       *handler.RecipeHandler
	Social       *handler.SocialHandler
	MealPlan     *handler.MealPlanHandler
	Notification *handler.NotificationHandler
	Media        *handler.MediaHandler
	WS           *handler.WSHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, logger *slog.Logger, jwtService *auth.JWTService, h Handlers) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/users", h.User.CreateUser)
	api.DELETE("/users", h.User.DeleteUser)
	api.POST("/users/search", h.User.SearchUsers)
	api.GET("/users/:id", h.User.GetUser)
	api.GET("/users/:id/recipes", h.User.ListRecipes)
	api.GET("/users/:id/saved-recipes", h.User.ListSavedRecipes)
	api.GET("/users/:id/followers", h.User.Followers)
	api.GET("/users/:id/following", h.User.Following)
	api.GET("/users/:id/followers/count", h.User.CountFollowers)
	api.GET("/users/:id/notifications", h.User.Notifications)
	api.GET("/users/:id/meal-plan", h.User.MealPlan)

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)

	api.POST("/recipes", h.Recipe.CreateRecipe)
	api.POST("/recipes/search", h.Recipe.SearchRecipes)
	api.GET("/recipes/:id", h.Recipe.GetRecipe)
	api.PUT("/recipes/:id", h.Recipe.UpdateRecipe)
	api.DELETE("/recipes/:id", h.Recipe.DeleteRecipe)

	api.POST("/follows", h.Social.Follow)
	api.DELETE("/follows", h.Social.Unfollow)
	api.POST("/follows/check", h.Social.CheckFollow)
	api.POST("/saved-recipes", h.Social.SaveRecipe)
	api.DELETE("/saved-recipes", h.Social.UnsaveRecipe)

	api.POST("/meal-plan", h.MealPlan.AddMeal)
	api.DELETE("/meal-plan", h.MealPlan.RemoveMeal)

	api.GET("/notifications/:id", h.Notification.GetNotification)
	api.POST("/notifications/:id/read", h.Notification.MarkRead)

	api.POST("/media/upload", h.Media.Upload)
	api.GET("/media", h.Media.Download)

	api.GET("/ws/notifications", h.WS.Notifications)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.ClaimsContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateAccessToken(token)
		},
	}))
	secured.GET("/me", h.Auth.Me)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns the validator installed on the echo instance.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
