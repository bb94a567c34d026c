package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/mkTasks/internal/export"
	"github.com/MihkelHunter/mkTasks/internal/httpapi/response"
	"github.com/MihkelHunter/mkTasks/internal/log"
	"github.com/MihkelHunter/mkTasks/internal/todo"
	"github.com/MihkelHunter/mkTasks/internal/view"
)

const codeBadRequest = 100001

// TaskHandler serves the JSON API over a view.Model.
type TaskHandler struct {
	model  *view.Model
	logger *slog.Logger
}

func NewTaskHandler(model *view.Model) *TaskHandler {
	return &TaskHandler{model: model, logger: log.NewModuleLogger("http", "tasks")}
}

// TaskDTO is one row of the active list.
type TaskDTO struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// DeletedDTO is one row of the deleted list.
type DeletedDTO struct {
	Index    int    `json:"index"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
}

// CreateTaskRequest is the body of POST /tasks. Text may be blank; blank
// text is ignored rather than rejected.
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// List returns the active list under ?filter=all|completed|incomplete.
func (h *TaskHandler) List(c *gin.Context) {
	mode, err := todo.ParseFilter(c.Query("filter"))
	if err != nil || mode == todo.FilterDeleted {
		response.Error(c, http.StatusBadRequest, codeBadRequest, "unknown filter")
		return
	}

	entries := todo.Visible(h.model.Service().Tasks(), mode)
	dtos := make([]TaskDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, TaskDTO{Index: e.Index, Text: e.Task.Text, Completed: e.Task.Completed})
	}
	response.Success(c, gin.H{"filter": mode.String(), "tasks": dtos})
}

// Create adds a task. data.added is false when the text was blank.
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, codeBadRequest, "invalid body")
		return
	}

	added, err := h.model.Service().Add(req.Text)
	if err != nil {
		h.fail(c, 800001, "add task failed", err)
		return
	}
	response.Success(c, gin.H{"added": added})
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	h.indexed(c, 800002, "toggle task failed", h.model.ToggleComplete)
}

// Delete moves a task to the deleted list.
func (h *TaskHandler) Delete(c *gin.Context) {
	h.indexed(c, 800003, "delete task failed", h.model.Delete)
}

// ListDeleted returns the deleted list with selection marks.
func (h *TaskHandler) ListDeleted(c *gin.Context) {
	rows := h.model.DeletedRows()
	dtos := make([]DeletedDTO, 0, len(rows))
	for _, r := range rows {
		dtos = append(dtos, DeletedDTO{Index: r.Index, Text: r.Text, Selected: r.Selected})
	}
	response.Success(c, gin.H{
		"tasks":              dtos,
		"showDeleteSelected": h.model.ShowDeleteSelected(),
	})
}

func (h *TaskHandler) Restore(c *gin.Context) {
	h.indexed(c, 800004, "restore task failed", h.model.Restore)
}

func (h *TaskHandler) Select(c *gin.Context) {
	h.indexed(c, 800005, "select task failed", h.model.ToggleSelect)
}

// DeleteSelected permanently removes the selected deleted tasks.
func (h *TaskHandler) DeleteSelected(c *gin.Context) {
	if err := h.model.DeleteSelected(); err != nil {
		h.fail(c, 800006, "delete selected failed", err)
		return
	}
	response.Success(c, nil)
}

// Export downloads both lists as ?format=json|csv|pdf.
func (h *TaskHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	svc := h.model.Service()
	data, err := export.Export(format, svc.Tasks(), svc.Deleted())
	if errors.Is(err, export.ErrUnknownFormat) {
		response.Error(c, http.StatusBadRequest, codeBadRequest, "unknown format")
		return
	}
	if err != nil {
		h.fail(c, 800007, "export failed", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="tasks.`+format+`"`)
	c.Data(http.StatusOK, export.ContentType(format), data)
}

func (h *TaskHandler) indexed(c *gin.Context, code int, msg string, op func(int) error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, codeBadRequest, "invalid index")
		return
	}
	if err := op(index); err != nil {
		h.fail(c, code, msg, err)
		return
	}
	response.Success(c, nil)
}

func (h *TaskHandler) fail(c *gin.Context, code int, msg string, err error) {
	if errors.Is(err, todo.ErrIndexOutOfRange) {
		response.Error(c, http.StatusNotFound, code, "task not found")
		return
	}
	h.logger.Error(msg, "error", err)
	response.ErrorWithDetail(c, http.StatusInternalServerError, code, msg, err.Error())
}
