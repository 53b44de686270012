package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	log "github.com/sirupsen/logrus"

	"release-viewer/internal/adapters/primary/http/dto"
	"release-viewer/internal/core/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// LoadTemplates installs the page templates on r.
func LoadTemplates(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

// rateLimitFlashKey carries the hint of a reload across its redirect; hints
// are not part of cached snapshots.
const rateLimitFlashKey = "flash_rate_limit"

var (
	filterChoices = []string{"", ".html", ".pdf", ".docx", ".webp"}
	limitChoices  = []int{10, 20, 30, 50}
)

type pageData struct {
	View      dto.ReleaseViewResponse
	Filters   []option
	Limits    []option
	RateLimit string
}

func newPageData(v *domain.View) pageData {
	data := pageData{
		View:      dto.ToReleaseViewResponse(v),
		RateLimit: dto.RateLimitMessage(v.RateLimit),
	}

	for _, ext := range filterChoices {
		label := ext
		if label == "" {
			label = "All files"
		}
		data.Filters = append(data.Filters, option{Value: ext, Label: label, Selected: ext == v.Query.FilterExt})
	}

	limits := limitChoices
	known := false
	for _, n := range limits {
		known = known || n == v.Query.Limit
	}
	if !known {
		limits = append([]int{v.Query.Limit}, limits...)
	}
	for _, n := range limits {
		s := strconv.Itoa(n)
		data.Limits = append(data.Limits, option{Value: s, Label: s, Selected: n == v.Query.Limit})
	}
	return data
}

func bindQuery(c *gin.Context) (dto.ReleaseQueryRequest, bool) {
	var req dto.ReleaseQueryRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	return req, true
}

func (h *Handler) Index(c *gin.Context) {
	req, ok := bindQuery(c)
	if !ok {
		return
	}

	view, err := h.releaseSvc.Load(c.Request.Context(), h.scope(c), req.ToQuery(), req.Force)
	if err != nil {
		log.WithError(err).Warn("render releases page failed")
		mapPageError(c, err)
		return
	}

	data := newPageData(view)
	if flash := h.sessions.PopString(c.Request.Context(), rateLimitFlashKey); flash != "" && data.RateLimit == "" {
		data.RateLimit = flash
	}

	c.HTML(http.StatusOK, "index.tmpl", data)
}

// ReloadPage clears the session cache, fetches again and redirects to the
// page for the same query, which is then served from the fresh cache entry.
func (h *Handler) ReloadPage(c *gin.Context) {
	req, ok := bindQuery(c)
	if !ok {
		return
	}

	view, err := h.releaseSvc.Reload(c.Request.Context(), h.scope(c), req.ToQuery())
	if err != nil {
		log.WithError(err).Warn("reload releases page failed")
		mapPageError(c, err)
		return
	}

	if view.RateLimit != nil {
		h.sessions.Put(c.Request.Context(), rateLimitFlashKey, dto.RateLimitMessage(view.RateLimit))
	}

	c.Redirect(http.StatusSeeOther, pageURL(view.Query))
}

func pageURL(q domain.Query) string {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.FilterExt != "" {
		v.Set("filter", q.FilterExt)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	return "/?" + v.Encode()
}

func (h *Handler) ListReleases(c *gin.Context) {
	req, ok := bindQuery(c)
	if !ok {
		return
	}

	view, err := h.releaseSvc.Load(c.Request.Context(), h.scope(c), req.ToQuery(), req.Force)
	if err != nil {
		log.WithError(err).Warn("list releases failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReleaseViewResponse(view))
}

func (h *Handler) ReloadReleases(c *gin.Context) {
	req, ok := bindQuery(c)
	if !ok {
		return
	}

	view, err := h.releaseSvc.Reload(c.Request.Context(), h.scope(c), req.ToQuery())
	if err != nil {
		log.WithError(err).Warn("reload releases failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReleaseViewResponse(view))
}
