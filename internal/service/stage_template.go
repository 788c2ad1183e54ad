package service

import (
	"encoding/json"
	"strings"

	"github.com/epwerk/field-service/internal/domain"
)

// stageTemplate mirrors the JSON payload stored on a category:
// {"stages":[{"name":"...","status":"...","order":0}, ...]}.
type stageTemplate struct {
	Stages []stageTemplateEntry `json:"stages"`
}

// stageTemplateEntry keeps status and order loosely typed so malformed
// values degrade to defaults instead of failing the conversion.
type stageTemplateEntry struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Order  any    `json:"order"`
}

// ExpandStageTemplate turns a category's stored template into stage
// blueprints. Emitted order is template order; the order field is carried as
// a display sort key, it never re-sorts the sequence. Status defaults to
// Planned, order to 0 when absent or non-numeric. A nil category or empty
// template yields an empty sequence.
func ExpandStageTemplate(category *domain.Category) []domain.StageBlueprint {
	if !category.HasTemplate() {
		return nil
	}

	var tmpl stageTemplate
	if err := json.Unmarshal(category.StageTemplate, &tmpl); err != nil {
		return nil
	}

	blueprints := make([]domain.StageBlueprint, 0, len(tmpl.Stages))
	for _, entry := range tmpl.Stages {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		status := domain.StageStatus(strings.TrimSpace(entry.Status))
		if status == "" {
			status = domain.StageStatusPlanned
		}
		blueprints = append(blueprints, domain.StageBlueprint{
			Name:      name,
			Status:    status,
			SortOrder: coerceOrder(entry.Order),
		})
	}
	return blueprints
}

func coerceOrder(val any) int {
	switch v := val.(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
