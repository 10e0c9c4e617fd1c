package budget

import (
	"context"

	"go.uber.org/zap"
)

// FieldMapping is the pair of custom field GIDs a project must carry to be
// eligible for budget tracking. It is recomputed every pass; staleness
// within one pass is acceptable.
type FieldMapping struct {
	EstimatedGID string
	ActualGID    string
}

// Resolver looks up the estimated/actual cost field GIDs for a project by
// exact display-name match.
type Resolver struct {
	gw            Gateway
	estimatedName string
	actualName    string
	log           *zap.Logger
}

func NewResolver(gw Gateway, estimatedName, actualName string, log *zap.Logger) *Resolver {
	return &Resolver{gw: gw, estimatedName: estimatedName, actualName: actualName, log: log}
}

// ResolveFields returns the project's field mapping, or ok=false when the
// project lacks either field or the lookup fails. A failed lookup is logged
// and swallowed: one misconfigured project must not abort a batch.
func (r *Resolver) ResolveFields(ctx context.Context, projectGID string) (FieldMapping, bool) {
	settings, err := r.gw.ListCustomFieldSettings(ctx, projectGID)
	if err != nil {
		r.log.Error("listing custom field settings",
			zap.String("project", projectGID), zap.Error(err))
		return FieldMapping{}, false
	}

	var m FieldMapping
	for _, s := range settings {
		switch s.CustomField.Name {
		case r.estimatedName:
			m.EstimatedGID = s.CustomField.GID
		case r.actualName:
			m.ActualGID = s.CustomField.GID
		}
	}
	if m.EstimatedGID == "" || m.ActualGID == "" {
		r.log.Debug("project missing cost fields, skipping",
			zap.String("project", projectGID))
		return FieldMapping{}, false
	}
	return m, true
}
