package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harrisonrobin/budgetsync/pkg/budget"
)

// hookSecretHeader carries the handshake secret; the remote system expects
// its exact value echoed back before it will deliver events.
const hookSecretHeader = "X-Hook-Secret"

type webhookPayload struct {
	Events []struct {
		Resource struct {
			GID          string `json:"gid"`
			ResourceType string `json:"resource_type"`
		} `json:"resource"`
	} `json:"events"`
}

func (p webhookPayload) toEvent() *budget.Event {
	event := &budget.Event{}
	for _, e := range p.Events {
		if e.Resource.GID == "" {
			continue
		}
		event.Resources = append(event.Resources, budget.ResourceRef{
			GID:  e.Resource.GID,
			Type: e.Resource.ResourceType,
		})
	}
	return event
}

// handleWebhook answers the registration handshake or processes an event
// delivery. The handshake must be echoed before any event handling happens.
func (s *Server) handleWebhook(c *gin.Context) {
	if secret := c.GetHeader(hookSecretHeader); secret != "" {
		s.secrets.Set(secret)
		c.Header(hookSecretHeader, secret)
		s.log.Info("webhook handshake accepted")
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.log.Error("malformed webhook payload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	targets := s.orch.DetermineTargets(ctx, payload.toEvent())
	results := s.orch.RunPass(ctx, targets)
	c.JSON(http.StatusOK, gin.H{
		"status":           "received",
		"updated_projects": results,
	})
}

func (s *Server) handleSetup(c *gin.Context) {
	ctx := c.Request.Context()
	results := s.orch.RunPass(ctx, s.orch.DetermineTargets(ctx, nil))
	if anySucceeded(results) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Project status tasks created and metrics updated",
			"results": results,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Failed to setup project status",
		"results": results,
	})
}

func (s *Server) handleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	results := s.orch.RunPass(ctx, s.orch.DetermineTargets(ctx, nil))
	if anySucceeded(results) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Project statuses manually updated",
			"results": results,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Failed to update project statuses",
		"results": results,
	})
}

type statusRow struct {
	Name    string
	Success bool
}

// handleUpdateStatus runs a full pass and renders the outcome as an HTML
// table for operators.
func (s *Server) handleUpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	results := s.orch.RunPass(ctx, s.orch.DetermineTargets(ctx, nil))

	succeeded := 0
	rows := make([]statusRow, 0, len(results))
	for projectGID, ok := range results {
		if ok {
			succeeded++
		}
		rows = append(rows, statusRow{Name: s.orch.ProjectName(ctx, projectGID), Success: ok})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	c.HTML(http.StatusOK, "status.html", gin.H{
		"Succeeded": succeeded,
		"Now":       time.Now().Format("2006-01-02 15:04:05"),
		"Rows":      rows,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handleRegisterWebhook registers one workspace-level subscription pointed
// at this service's /webhook URL. Events are filtered per-task on arrival,
// so a single workspace hook covers every eligible project.
func (s *Server) handleRegisterWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if s.opts.PublicBaseURL == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "PUBLIC_BASE_URL is not configured",
		})
		return
	}
	targetURL := strings.TrimRight(s.opts.PublicBaseURL, "/") + "/webhook"

	template, err := s.gw.GetProject(ctx, s.opts.TemplateProjectGID)
	if err != nil || template.Workspace.GID == "" {
		s.log.Error("resolving workspace for webhook registration", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Could not determine workspace ID",
		})
		return
	}

	hook, err := s.gw.CreateWebhook(ctx, template.Workspace.GID, targetURL)
	if err != nil {
		s.log.Error("registering webhook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Failed to register webhook: %v", err),
		})
		return
	}

	s.log.Info("webhook registered",
		zap.String("workspace", template.Workspace.GID), zap.String("webhook", hook.GID))
	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"message":     fmt.Sprintf("Webhook registered for workspace %s", template.Workspace.GID),
		"webhook_gid": hook.GID,
		"target_url":  targetURL,
	})
}

func anySucceeded(results map[string]bool) bool {
	for _, ok := range results {
		if ok {
			return true
		}
	}
	return false
}
