package web

import (
	"embed"
	"html/template"

	"KrakenCandles/internal/report"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"price": report.Price,
}

// NewRouter builds the gin engine. Routes that call upstream are throttled
// per client with limit requests per second and the given burst.
func NewRouter(h *Handler, limit float64, burst int) *gin.Engine {
	r := gin.New()
	r.Use(RecoveryMiddleware, ZerologMiddleware())

	tmpl := template.Must(template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	limiter := RateLimiter(limit, burst)

	r.GET("/", limiter, h.Index)
	h.RegisterRoutes(r.Group("/api"), limiter)

	return r
}
