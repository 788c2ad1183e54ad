package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epwerk/field-service/internal/domain"
)

func TestExpandStageTemplate(t *testing.T) {
	category := &domain.Category{
		StageTemplate: []byte(`{"stages":[
			{"name":"Survey","order":3},
			{"name":"Build","status":"InProgress","order":1},
			{"name":"Handover"}
		]}`),
	}

	blueprints := ExpandStageTemplate(category)
	require.Len(t, blueprints, 3)

	// Template order is preserved; the order value is only a sort key for
	// display and never reorders the sequence.
	assert.Equal(t, "Survey", blueprints[0].Name)
	assert.Equal(t, 3, blueprints[0].SortOrder)
	assert.Equal(t, domain.StageStatusPlanned, blueprints[0].Status)

	assert.Equal(t, "Build", blueprints[1].Name)
	assert.Equal(t, domain.StageStatus("InProgress"), blueprints[1].Status)
	assert.Equal(t, 1, blueprints[1].SortOrder)

	assert.Equal(t, "Handover", blueprints[2].Name)
	assert.Equal(t, 0, blueprints[2].SortOrder)
}

func TestExpandStageTemplateSkipsBlankNames(t *testing.T) {
	category := &domain.Category{
		StageTemplate: []byte(`{"stages":[{"name":"  "},{"name":"Real"},{"name":""}]}`),
	}
	blueprints := ExpandStageTemplate(category)
	require.Len(t, blueprints, 1)
	assert.Equal(t, "Real", blueprints[0].Name)
}

func TestExpandStageTemplateDegenerateInputs(t *testing.T) {
	assert.Empty(t, ExpandStageTemplate(nil))
	assert.Empty(t, ExpandStageTemplate(&domain.Category{}))
	assert.Empty(t, ExpandStageTemplate(&domain.Category{StageTemplate: []byte(`not json`)}))
	assert.Empty(t, ExpandStageTemplate(&domain.Category{StageTemplate: []byte(`{"stages":[]}`)}))
}

func TestExpandStageTemplateNonNumericOrder(t *testing.T) {
	category := &domain.Category{
		StageTemplate: []byte(`{"stages":[{"name":"Odd","order":"first"}]}`),
	}
	blueprints := ExpandStageTemplate(category)
	require.Len(t, blueprints, 1)
	assert.Equal(t, 0, blueprints[0].SortOrder)
}
