package httpapi

import (
	"net/http"

	"blogly/internal/adapters/httpapi/middleware"
	"blogly/internal/core/apperr"
	"blogly/internal/core/forms"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const duplicateTitle = "A post with this title already exists."

// PostController serves posts and the comments under them.
type PostController struct {
	pc PostUseCase
	cc CommentUseCase
	v  *view
}

func NewPostController(pc PostUseCase, cc CommentUseCase, v *view) *PostController {
	return &PostController{pc: pc, cc: cc, v: v}
}

func (ctl *PostController) Home(c *gin.Context) {
	posts, count, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		ctl.v.renderError(c, err)
		return
	}
	ctl.v.render(c, http.StatusOK, "home.html", gin.H{"Posts": posts, "Count": count})
}

func (ctl *PostController) CreateForm(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "create_blog.html", gin.H{"Form": forms.PostInput{}})
}

func (ctl *PostController) Create(c *gin.Context) {
	in, ok := ctl.bindPost(c)
	if !ok {
		return
	}
	if errs := forms.Validate(&in); !errs.Valid() {
		ctl.v.render(c, http.StatusUnprocessableEntity, "create_blog.html", gin.H{"Form": in, "Errors": errs})
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := ctl.pc.CreatePost(c.Request.Context(), *user, in); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			errs := forms.FieldErrors{}
			errs.Add("title", duplicateTitle)
			ctl.v.render(c, http.StatusConflict, "create_blog.html", gin.H{"Form": in, "Errors": errs})
			return
		}
		ctl.v.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

func (ctl *PostController) EditForm(c *gin.Context) {
	post, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		ctl.v.renderError(c, err)
		return
	}
	ctl.v.render(c, http.StatusOK, "edit.html", gin.H{
		"ID": post.ID,
		"Form": forms.PostInput{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			BgImg:    post.BgImg,
			Content:  post.Content,
		},
	})
}

func (ctl *PostController) Edit(c *gin.Context) {
	id := c.Param("id")
	if _, err := ctl.pc.GetPost(c.Request.Context(), id); err != nil {
		ctl.v.renderError(c, err)
		return
	}
	in, ok := ctl.bindPost(c)
	if !ok {
		return
	}
	if errs := forms.Validate(&in); !errs.Valid() {
		ctl.v.render(c, http.StatusUnprocessableEntity, "edit.html", gin.H{"ID": id, "Form": in, "Errors": errs})
		return
	}

	if _, err := ctl.pc.UpdatePost(c.Request.Context(), id, in); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			errs := forms.FieldErrors{}
			errs.Add("title", duplicateTitle)
			ctl.v.render(c, http.StatusConflict, "edit.html", gin.H{"ID": id, "Form": in, "Errors": errs})
			return
		}
		ctl.v.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

// Delete redirects home whether or not the post existed.
func (ctl *PostController) Delete(c *gin.Context) {
	if _, err := ctl.pc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		ctl.v.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/home")
}

func (ctl *PostController) View(c *gin.Context) {
	ctl.renderPost(c, http.StatusOK, forms.CommentInput{}, nil)
}

func (ctl *PostController) AddComment(c *gin.Context) {
	id := c.Param("id")
	var in forms.CommentInput
	if err := c.ShouldBindWith(&in, binding.FormPost); err != nil {
		ctl.v.renderError(c, apperr.Wrap(apperr.Validation, "The form could not be processed.", err))
		return
	}
	in.Normalize()

	if errs := forms.Validate(&in); !errs.Valid() {
		ctl.renderPost(c, http.StatusUnprocessableEntity, in, errs)
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := ctl.cc.AddComment(c.Request.Context(), *user, id, in); err != nil {
		ctl.v.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/blog/"+id)
}

func (ctl *PostController) renderPost(c *gin.Context, status int, in forms.CommentInput, errs forms.FieldErrors) {
	ctx := c.Request.Context()
	post, err := ctl.pc.GetPost(ctx, c.Param("id"))
	if err != nil {
		ctl.v.renderError(c, err)
		return
	}
	comments, err := ctl.cc.ListComments(ctx, post.ID)
	if err != nil {
		ctl.v.renderError(c, err)
		return
	}
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	ctl.v.render(c, status, "blog.html", gin.H{
		"Post":     post,
		"Comments": comments,
		"Form":     in,
		"Errors":   errs,
	})
}

func (ctl *PostController) bindPost(c *gin.Context) (forms.PostInput, bool) {
	var in forms.PostInput
	if err := c.ShouldBindWith(&in, binding.FormPost); err != nil {
		ctl.v.renderError(c, apperr.Wrap(apperr.Validation, "The form could not be processed.", err))
		return in, false
	}
	in.Normalize()
	return in, true
}

