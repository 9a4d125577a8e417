package entity

import (
	"github.com/go-playground/validator/v10"

	"github.com/D4rk1d3/study/internal/common"
)

var validate = validator.New()

// ProcessingSettings controls one processing run. Immutable once the run
// starts; supplied at document creation and stored as JSON alongside the
// document row. Field names match the wire settings payload.
type ProcessingSettings struct {
	SummarizationLevel int    `json:"summarizationLevel" validate:"min=1,max=5"`
	GenerateIndex      bool   `json:"generateIndex"`
	GenerateGlossary   bool   `json:"generateGlossary"`
	DeduplicateContent bool   `json:"deduplicateContent"`
	ExportFormat       string `json:"exportFormat" validate:"oneof=pdf docx html xlsx"`

	// AI rewrite pass. UseAI is a request, not a guarantee: when no
	// assistant credential is configured the run degrades to the
	// traditional path without error.
	UseAI        bool `json:"useAI,omitempty"`
	RewriteLevel int  `json:"rewriteLevel,omitempty" validate:"omitempty,min=1,max=5"`

	// LastError is written by the orchestrator when a run fails. It is the
	// only mutable annotation on settings.
	LastError string `json:"lastError,omitempty"`
}

// NewProcessingSettings validates and returns settings, applying defaults
// for zero values (level 3, pdf output, rewrite level 3 when AI requested).
func NewProcessingSettings(s ProcessingSettings) (ProcessingSettings, error) {
	if s.SummarizationLevel == 0 {
		s.SummarizationLevel = 3
	}
	if s.ExportFormat == "" {
		s.ExportFormat = "pdf"
	}
	if s.UseAI && s.RewriteLevel == 0 {
		s.RewriteLevel = 3
	}
	if err := validate.Struct(s); err != nil {
		return ProcessingSettings{}, common.E(common.KindMissingEntity, "settings", "invalid processing settings", err)
	}
	return s, nil
}
