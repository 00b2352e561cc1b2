package resumes

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSelection() Selection {
	return Selection{
		Jobs:     []Job{{Title: "Engineer", Company: "Acme", StartDate: "2020", BulletPoints: []string{"Built the billing service"}}},
		Projects: []Project{{Name: "CLI", Description: "Task runner", Technologies: []string{"Go"}, Link: "https://example.com"}},
		Skills:   []Skill{{Name: "Go", Category: "Languages"}, {Name: "Postgres"}},
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	for _, template := range []string{"modern", "professional", "creative", "minimal", "unknown", ""} {
		var buf bytes.Buffer
		doc := Document{
			Template:     template,
			PersonalInfo: PersonalInfo{Name: "Jane Doe", Email: "jane@example.com", Location: "Zürich"},
			Summary:      "Backend engineer.",
			Education:    []Education{{Degree: "BSc", Institution: "ETH", GraduationDate: "2019"}},
			Certifications: []Certification{
				{Name: "CKA", Issuer: "CNCF", Date: "2023"},
			},
		}
		require.NoError(t, RenderPDF(&buf, doc, sampleSelection()), template)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), template)
	}
}

func TestStyleForFallsBackToDefault(t *testing.T) {
	assert.Equal(t, defaultStyle, styleFor("unknown"))
	assert.Equal(t, templateStyles["creative"], styleFor(" Creative "))
	assert.NotEqual(t, white, styleFor("creative").page)
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2020 - Present", dateRange("2020", ""))
	assert.Equal(t, "2020 - 2022", dateRange("2020", "2022"))
	assert.Equal(t, "", dateRange("", ""))
}

func TestPDFFileName(t *testing.T) {
	assert.Equal(t, "jane-doe-resume.pdf", pdfFileName("Jane Doe"))
	assert.Equal(t, "resume.pdf", pdfFileName("  "))
}
