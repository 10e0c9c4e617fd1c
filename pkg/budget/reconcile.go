package budget

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Event is a normalized inbound change notification: zero or more resource
// references extracted from a webhook delivery.
type Event struct {
	Resources []ResourceRef
}

// ResourceRef identifies one changed remote resource.
type ResourceRef struct {
	GID  string
	Type string
}

// Orchestrator runs reconciliation passes: it determines which projects
// need recomputation and drives the per-project pipeline (resolve fields,
// ensure status task, aggregate, render, write back).
type Orchestrator struct {
	gw       Gateway
	resolver *Resolver
	status   *StatusManager
	agg      *Aggregator

	templateProjectGID string
	concurrency        int
	locks              projectLocks
	log                *zap.Logger
	now                func() time.Time
}

func NewOrchestrator(gw Gateway, resolver *Resolver, status *StatusManager, templateProjectGID string, concurrency int, log *zap.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		gw:                 gw,
		resolver:           resolver,
		status:             status,
		agg:                NewAggregator(gw),
		templateProjectGID: templateProjectGID,
		concurrency:        concurrency,
		log:                log,
		now:                time.Now,
	}
}

// DetermineTargets resolves an inbound event to the set of eligible projects
// to recompute. Task references are expanded to their parent projects, and
// each project passes the field-eligibility gate or is silently dropped.
// With no event, or when the event yields nothing eligible, it falls back to
// scanning the whole workspace of the configured template project.
func (o *Orchestrator) DetermineTargets(ctx context.Context, event *Event) []string {
	var targets []string
	checked := make(map[string]bool)

	if event != nil {
		for _, ref := range event.Resources {
			if ref.Type != "task" || ref.GID == "" {
				continue
			}
			task, err := o.gw.GetTask(ctx, ref.GID)
			if err != nil {
				o.log.Error("fetching changed task",
					zap.String("task", ref.GID), zap.Error(err))
				continue
			}
			for _, p := range task.Projects {
				if checked[p.GID] {
					continue
				}
				checked[p.GID] = true
				if _, ok := o.resolver.ResolveFields(ctx, p.GID); ok {
					targets = append(targets, p.GID)
				}
			}
		}
	}
	if len(targets) > 0 {
		return targets
	}

	// Fallback: enumerate every project in the template project's workspace.
	template, err := o.gw.GetProject(ctx, o.templateProjectGID)
	if err != nil {
		o.log.Error("resolving template project workspace",
			zap.String("project", o.templateProjectGID), zap.Error(err))
		return nil
	}
	projects, err := o.gw.ListProjects(ctx, template.Workspace.GID)
	if err != nil {
		o.log.Error("listing workspace projects",
			zap.String("workspace", template.Workspace.GID), zap.Error(err))
		return nil
	}
	for _, p := range projects {
		if _, ok := o.resolver.ResolveFields(ctx, p.GID); ok {
			targets = append(targets, p.GID)
		}
	}
	return targets
}

// RunPass updates every target project independently with bounded fan-out.
// One project's failure is logged and recorded as false without disturbing
// the others; the pass itself never errors.
func (o *Orchestrator) RunPass(ctx context.Context, targets []string) map[string]bool {
	results := make(map[string]bool, len(targets))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for _, projectGID := range targets {
		projectGID := projectGID
		g.Go(func() error {
			err := o.updateProject(gctx, projectGID)
			if err != nil {
				o.log.Error("project update failed",
					zap.String("project", projectGID), zap.Error(err))
			} else {
				o.log.Info("project metrics updated", zap.String("project", projectGID))
			}
			mu.Lock()
			results[projectGID] = err == nil
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return results
}

// updateProject runs the per-project pipeline under the project's lease so
// concurrent passes cannot double-create the status task or interleave
// writes for the same project.
func (o *Orchestrator) updateProject(ctx context.Context, projectGID string) error {
	unlock := o.locks.lock(projectGID)
	defer unlock()

	mapping, ok := o.resolver.ResolveFields(ctx, projectGID)
	if !ok {
		return fmt.Errorf("project %s is missing cost fields", projectGID)
	}

	statusGID, err := o.status.FindOrCreateStatus(ctx, projectGID)
	if err != nil {
		return err
	}

	summary, err := o.agg.Aggregate(ctx, projectGID, statusGID, mapping)
	if err != nil {
		return err
	}

	project, err := o.gw.GetProject(ctx, projectGID)
	if err != nil {
		return fmt.Errorf("fetching project %s: %w", projectGID, err)
	}
	name := project.Name
	if name == "" {
		name = "Construction Project"
	}

	notes := Render(name, summary, o.now())
	if err := o.gw.UpdateTaskNotes(ctx, statusGID, notes); err != nil {
		return fmt.Errorf("writing summary to status task %s: %w", statusGID, err)
	}
	return nil
}

// ProjectName returns the project's display name for human-facing output,
// with a stable fallback when the fetch fails.
func (o *Orchestrator) ProjectName(ctx context.Context, projectGID string) string {
	p, err := o.gw.GetProject(ctx, projectGID)
	if err != nil || p.Name == "" {
		return "Project " + projectGID
	}
	return p.Name
}

// projectLocks hands out one mutex per project GID. Locks are never
// discarded; the population is bounded by the number of projects seen.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *projectLocks) lock(projectGID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[projectGID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[projectGID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
