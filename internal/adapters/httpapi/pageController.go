package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageController serves the static pages.
type PageController struct{ v *view }

func NewPageController(v *view) *PageController { return &PageController{v: v} }

func (ctl *PageController) Index(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "index.html", nil)
}

func (ctl *PageController) About(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "about.html", nil)
}

func (ctl *PageController) Contact(c *gin.Context) {
	ctl.v.render(c, http.StatusOK, "contact.html", nil)
}
