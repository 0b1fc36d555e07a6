package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curso/internal/app/models/dto"
	"github.com/yigit/curso/internal/web"
)

// PageController serves the static pages
type PageController struct{}

// NewPageController creates a new PageController
func NewPageController() *PageController {
	return &PageController{}
}

// Index renders the landing page
func (p *PageController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.ViewIndex, dto.StaticPage{Title: "Início", Status: http.StatusOK})
}

// Unavailable renders the "not available yet" page
func (p *PageController) Unavailable(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.ViewUnavailable, dto.StaticPage{Title: "Indisponível", Status: http.StatusOK})
}
