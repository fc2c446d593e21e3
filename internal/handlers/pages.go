package handlers

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"enet_panel/web"
)

const htmlContentType = "text/html; charset=utf-8"

// registerPageRoutes serves the shell at / and every fragment by name.
func (h *Handler) registerPageRoutes(r *gin.Engine) {
	r.GET("/", h.page(web.IndexPage))
	r.GET("/"+web.IndexPage, h.page(web.IndexPage))
	for _, name := range web.Fragments() {
		r.GET("/"+name, h.page(name))
	}
}

func (h *Handler) page(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := fs.ReadFile(web.FS(), name)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("page_read_failed", "page", name, "err", err)
			}
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, htmlContentType, b)
	}
}
