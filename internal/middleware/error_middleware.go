package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/curso/internal/app/models/dto"
	"github.com/yigit/curso/internal/pkg/apperrors"
	"github.com/yigit/curso/internal/pkg/logger"
	"github.com/yigit/curso/internal/web"
)

// HandleError renders the error view matching err and aborts the request
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		renderError(c, http.StatusNotFound, web.ViewNotFound, "Página não encontrada")
	case errors.Is(err, apperrors.ErrTooManyRequests):
		renderError(c, http.StatusTooManyRequests, web.ViewUnavailable, "Muitas tentativas")
	default:
		logger.Error().Err(err).
			Str("requestID", RequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		renderError(c, http.StatusInternalServerError, web.ViewServerError, "Erro interno")
	}
}

func renderError(c *gin.Context, status int, view, title string) {
	page := dto.StaticPage{
		Title:     title,
		Status:    status,
		RequestID: RequestID(c),
	}
	if status == http.StatusTooManyRequests {
		page.Message = "Você enviou muitos cadastros em pouco tempo. Tente novamente em instantes."
	}
	c.HTML(status, view, page)
	c.Abort()
}

// NotFound renders the 404 view for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		HandleError(c, apperrors.ErrResourceNotFound)
	}
}

// Recovery turns panics into the 500 view
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		HandleError(c, fmt.Errorf("panic recovered: %v", recovered))
	})
}
