package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TasksController enqueues background work and reports task status.
type TasksController struct {
	queue TaskQueue
	books BookGetter
}

func NewTasksController(queue TaskQueue, books BookGetter) *TasksController {
	return &TasksController{
		queue: queue,
		books: books,
	}
}

// EnrichBook handles POST /api/books/:id/enrich
func (tc *TasksController) EnrichBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := tc.books.GetBook(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "get book for enrichment")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	tc.enqueue(c, tasks.EnrichBookTask{BookID: id})
}

// EnrichAllMissing handles POST /api/books/enrich-missing
func (tc *TasksController) EnrichAllMissing(c *gin.Context) {
	tc.enqueue(c, tasks.EnrichAllBooksTask{})
}

// CleanupLinks handles POST /api/maintenance/cleanup-links
func (tc *TasksController) CleanupLinks(c *gin.Context) {
	tc.enqueue(c, tasks.CleanupOrphanLinksTask{})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	status, err := tc.queue.Status(c.Request.Context(), taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

func (tc *TasksController) enqueue(c *gin.Context, task backlite.Task) {
	queue := task.Config().Name
	taskID, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+queue)
		return
	}
	respondAccepted(c, taskID, queue)
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
