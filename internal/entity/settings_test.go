package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessingSettingsDefaults(t *testing.T) {
	s, err := NewProcessingSettings(ProcessingSettings{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.SummarizationLevel)
	assert.Equal(t, "pdf", s.ExportFormat)
	assert.Zero(t, s.RewriteLevel, "rewrite level stays unset without AI")
}

func TestNewProcessingSettingsAIDefaults(t *testing.T) {
	s, err := NewProcessingSettings(ProcessingSettings{UseAI: true})
	require.NoError(t, err)
	assert.Equal(t, 3, s.RewriteLevel)
}

func TestNewProcessingSettingsValidation(t *testing.T) {
	tests := []struct {
		name string
		in   ProcessingSettings
	}{
		{"level too high", ProcessingSettings{SummarizationLevel: 6}},
		{"level negative", ProcessingSettings{SummarizationLevel: -1}},
		{"unknown format", ProcessingSettings{ExportFormat: "epub"}},
		{"rewrite level too high", ProcessingSettings{UseAI: true, RewriteLevel: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProcessingSettings(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestNewProcessingSettingsAllFormats(t *testing.T) {
	for _, format := range []string{"pdf", "docx", "html", "xlsx"} {
		s, err := NewProcessingSettings(ProcessingSettings{ExportFormat: format})
		require.NoError(t, err, format)
		assert.Equal(t, format, s.ExportFormat)
	}
}

func TestMetadataMerge(t *testing.T) {
	a := ProcessedMetadata{
		Headings: []Heading{{Text: "One", Level: 1}},
		Keywords: []string{"alpha", "beta"},
	}
	b := ProcessedMetadata{
		Headings: []Heading{{Text: "Two", Level: 2}},
		Keywords: []string{"beta", "gamma"},
	}

	a.Merge(b)
	assert.Equal(t, []Heading{{Text: "One", Level: 1}, {Text: "Two", Level: 2}}, a.Headings)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, a.Keywords)
}
