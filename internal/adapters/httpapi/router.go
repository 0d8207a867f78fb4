package httpapi

import (
	"context"
	"net/http"
	"time"

	"blogly/internal/adapters/httpapi/middleware"
	"blogly/internal/config"
	"blogly/internal/core/forms"
	commentPort "blogly/internal/ports/comment"
	postPort "blogly/internal/ports/post"
	userPort "blogly/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// UserUseCase is the inbound port the user controller and session
// middleware depend on.
type UserUseCase interface {
	RegisterUser(ctx context.Context, username, email, password, confirmPassword string) (*userPort.UserDTO, error)
	Authenticate(ctx context.Context, email, password string) (*userPort.UserDTO, error)
	StartSession(ctx context.Context, userID string) (*userPort.Session, error)
	EndSession(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) *userPort.UserDTO
}

type PostUseCase interface {
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, int64, error)
	GetPost(ctx context.Context, id string) (*postPort.PostDTO, error)
	CreatePost(ctx context.Context, author userPort.UserDTO, in forms.PostInput) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, id string, in forms.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id string) (bool, error)
}

type CommentUseCase interface {
	AddComment(ctx context.Context, author userPort.UserDTO, postID string, in forms.CommentInput) (*commentPort.CommentDTO, error)
	ListComments(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
}

// Pinger reports whether the store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	SecureCookies bool
	Debug         bool
}

// SetupRoutes only wires routing; the use cases are injected from main.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	store Pinger,
	opts Options,
) *gin.Engine {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(config.Logger),
		middleware.RequestLogger(config.Logger),
		middleware.SecureHeaders(),
		middleware.Session(userUC, opts.SecureCookies),
	)
	r.SetHTMLTemplate(loadTemplates())
	r.StaticFS("/static", staticFiles())

	v := &view{secureCookies: opts.SecureCookies}
	uc := NewUserController(userUC, v)
	pc := NewPostController(postUC, commentUC, v)
	pages := NewPageController(v)

	r.GET("/healthz", healthz(store))

	// Public pages
	r.GET("/", pages.Index)
	r.GET("/login", uc.LoginForm)
	// Every route that changes state, GETs included, must start on this site.
	guard := middleware.RejectCrossSite()

	r.POST("/login", guard, uc.Login)
	r.GET("/register", uc.RegisterForm)
	r.POST("/register", guard, uc.Register)

	auth := r.Group("/", middleware.RequireAuth())
	auth.GET("/home", pc.Home)
	auth.GET("/about", pages.About)
	auth.GET("/contact", pages.Contact)
	auth.GET("/logout", guard, uc.Logout)
	auth.GET("/create-blog", pc.CreateForm)
	auth.POST("/create-blog", guard, pc.Create)
	auth.GET("/blog/:id", pc.View)
	auth.POST("/blog/:id", guard, pc.AddComment)
	auth.GET("/edit/:id", pc.EditForm)
	auth.POST("/edit/:id", guard, pc.Edit)
	auth.GET("/delete/:id", guard, pc.Delete)

	r.NoRoute(func(c *gin.Context) {
		v.render(c, http.StatusNotFound, "error.html", gin.H{
			"Status":  http.StatusNotFound,
			"Message": "The page you are looking for does not exist.",
		})
	})
	return r
}

func healthz(store Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
