package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navkit/navd/internal/domain/registry"
	"github.com/navkit/navd/internal/domain/rendezvous"
	"github.com/navkit/navd/internal/domain/stack"
	"github.com/navkit/navd/internal/shared/types"
)

// Handlers holds the HTTP handler dependencies
type Handlers struct {
	stack      *stack.Manager
	rendezvous *rendezvous.Manager
	registry   *registry.Manager
}

// NewHandlers creates the HTTP handlers
func NewHandlers(stackMgr *stack.Manager, rz *rendezvous.Manager, reg *registry.Manager) *Handlers {
	return &Handlers{
		stack:      stackMgr,
		rendezvous: rz,
		registry:   reg,
	}
}

// Root returns service information
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "navd",
		"status":  "running",
	})
}

// Health returns liveness status
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"depth":  h.stack.Len(),
	})
}

// GetStack returns the current snapshot
func (h *Handlers) GetStack(c *gin.Context) {
	snapshot := h.stack.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"snapshot": snapshot,
		"can_pop":  snapshot.Len() > 1,
	})
}

// GetViews returns the rendered views for the current snapshot
func (h *Handlers) GetViews(c *gin.Context) {
	snapshot := h.stack.Snapshot()
	views, err := h.registry.RenderStack(snapshot)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seq":   snapshot.Seq,
		"views": views,
	})
}

// GetStats returns stack and rendezvous statistics
func (h *Handlers) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stack":      h.stack.Stats(),
		"rendezvous": h.rendezvous.Stats(),
	})
}

// Push appends a page to the stack
func (h *Handlers) Push(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	h.stack.Push(page)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": h.stack.Snapshot(),
	})
}

// Pop removes the top page unless it is the root
func (h *Handlers) Pop(c *gin.Context) {
	didPop := h.stack.Pop()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"did_pop":  didPop,
		"snapshot": h.stack.Snapshot(),
	})
}

// Replace swaps the top page
func (h *Handlers) Replace(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	h.stack.Replace(page)
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"snapshot": h.stack.Snapshot(),
	})
}

// Reset replaces the whole stack with a single page. A pending rendezvous
// waiter is canceled first so it never outlives the stack it was pushed on.
func (h *Handlers) Reset(c *gin.Context) {
	page, ok := h.bindPage(c)
	if !ok {
		return
	}

	canceled := h.rendezvous.Cancel()
	h.stack.ReplaceAll(page)
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"canceled_waiter": canceled,
		"snapshot":        h.stack.Snapshot(),
	})
}

// Return resolves the pending rendezvous with a value and pops the top page
func (h *Handlers) Return(c *gin.Context) {
	var req struct {
		Value *bool `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return
	}

	delivered, didPop := h.rendezvous.ReturnWith(*req.Value)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"delivered": delivered,
		"did_pop":   didPop,
		"snapshot":  h.stack.Snapshot(),
	})
}

// bindPage decodes and validates the page body shared by the mutation
// handlers
func (h *Handlers) bindPage(c *gin.Context) (types.Page, bool) {
	var req struct {
		Page types.Page `json:"page"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request: " + err.Error(),
		})
		return types.Page{}, false
	}
	if err := req.Page.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return types.Page{}, false
	}
	return req.Page, true
}
