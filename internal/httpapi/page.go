package httpapi

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/mkTasks/internal/log"
	"github.com/MihkelHunter/mkTasks/internal/todo"
	"github.com/MihkelHunter/mkTasks/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var filterLabels = map[todo.FilterMode]string{
	todo.FilterAll:        "📋 All",
	todo.FilterCompleted:  "✅ Completed",
	todo.FilterIncomplete: "⏳ Incomplete",
	todo.FilterDeleted:    "🗑 Deleted",
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// PageHandler renders the HTML page and handles its form posts. Every post
// redirects back to the page.
type PageHandler struct {
	model  *view.Model
	logger *slog.Logger
}

func NewPageHandler(model *view.Model) *PageHandler {
	return &PageHandler{model: model, logger: log.NewModuleLogger("http", "page")}
}

type filterButton struct {
	Mode    string
	Label   string
	Current bool
}

type pageData struct {
	Input              string
	MenuOpen           bool
	Filters            []filterButton
	ShowingDeleted     bool
	Active             []view.ActiveRow
	Deleted            []view.DeletedRow
	ShowDeleteSelected bool
}

func (h *PageHandler) Index(c *gin.Context) {
	current := h.model.Filter()
	filters := make([]filterButton, 0, len(todo.Filters))
	for _, f := range todo.Filters {
		filters = append(filters, filterButton{Mode: f.String(), Label: filterLabels[f], Current: f == current})
	}

	data := pageData{
		Input:          h.model.Input(),
		MenuOpen:       h.model.MenuOpen(),
		Filters:        filters,
		ShowingDeleted: h.model.ShowingDeleted(),
	}
	if data.ShowingDeleted {
		data.Deleted = h.model.DeletedRows()
		data.ShowDeleteSelected = h.model.ShowDeleteSelected()
	} else {
		data.Active = h.model.ActiveRows()
	}
	c.HTML(http.StatusOK, "index.html", data)
}

func (h *PageHandler) Add(c *gin.Context) {
	h.model.SetInput(c.PostForm("text"))
	_, err := h.model.Submit()
	h.done(c, err)
}

func (h *PageHandler) Menu(c *gin.Context) {
	h.model.ToggleMenu()
	h.done(c, nil)
}

func (h *PageHandler) Filter(c *gin.Context) {
	mode, err := todo.ParseFilter(c.PostForm("mode"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	h.model.SetFilter(mode)
	h.done(c, nil)
}

func (h *PageHandler) Toggle(c *gin.Context)  { h.indexed(c, h.model.ToggleComplete) }
func (h *PageHandler) Delete(c *gin.Context)  { h.indexed(c, h.model.Delete) }
func (h *PageHandler) Restore(c *gin.Context) { h.indexed(c, h.model.Restore) }
func (h *PageHandler) Select(c *gin.Context)  { h.indexed(c, h.model.ToggleSelect) }

func (h *PageHandler) Purge(c *gin.Context) {
	h.done(c, h.model.DeleteSelected())
}

func (h *PageHandler) indexed(c *gin.Context, op func(int) error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid index")
		return
	}
	h.done(c, op(index))
}

// done redirects to the page. A stale index is dropped silently, as the
// page may have been rendered before another change.
func (h *PageHandler) done(c *gin.Context, err error) {
	if err != nil && !errors.Is(err, todo.ErrIndexOutOfRange) {
		h.logger.Error("page action failed", "path", c.FullPath(), "error", err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
