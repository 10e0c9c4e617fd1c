// Package server is the HTTP boundary: webhook handshake and event intake,
// manual reconciliation triggers, and the human-facing status page.
package server

import (
	"context"
	"html/template"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harrisonrobin/budgetsync/pkg/asana"
	"github.com/harrisonrobin/budgetsync/pkg/budget"
)

// Reconciler is the slice of the orchestrator the handlers use.
type Reconciler interface {
	DetermineTargets(ctx context.Context, event *budget.Event) []string
	RunPass(ctx context.Context, targets []string) map[string]bool
	ProjectName(ctx context.Context, projectGID string) string
}

// Registrar is the slice of the remote gateway needed to register the
// workspace-level webhook subscription.
type Registrar interface {
	GetProject(ctx context.Context, projectGID string) (asana.Project, error)
	CreateWebhook(ctx context.Context, resourceGID, targetURL string) (asana.Webhook, error)
}

// Options carries the wiring the server cannot derive itself.
type Options struct {
	PublicBaseURL      string
	TemplateProjectGID string
}

// Server owns the gin router and the handshake secret slot.
type Server struct {
	orch    Reconciler
	gw      Registrar
	secrets *SecretStore
	opts    Options
	router  *gin.Engine
	log     *zap.Logger
}

func New(orch Reconciler, gw Registrar, opts Options, log *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.New("status.html").Parse(statusPageTemplate)))

	s := &Server{
		orch:    orch,
		gw:      gw,
		secrets: NewSecretStore(),
		opts:    opts,
		router:  router,
		log:     log,
	}

	router.POST("/webhook", s.handleWebhook)
	router.GET("/setup", s.handleSetup)
	router.GET("/update", s.handleUpdate)
	router.GET("/update-status", s.handleUpdateStatus)
	router.GET("/health", s.handleHealth)
	router.GET("/register-webhook", s.handleRegisterWebhook)

	return s
}

// Run blocks serving HTTP on addr.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
