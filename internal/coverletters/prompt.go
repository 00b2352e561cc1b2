package coverletters

import (
	"strings"

	"career-backend/internal/stories"
)

// Prompt asks for a cover letter using the given stories as background.
func Prompt(jobDescription string, selected []stories.Story) string {
	parts := make([]string, 0, len(selected))
	for _, s := range selected {
		parts = append(parts, "Title: "+s.Title+"\n"+s.Content)
	}
	return "Using the following stories as background about me, write a professional cover letter for this job: " +
		jobDescription + "\n\nMy stories:\n" + strings.Join(parts, "\n\n")
}
