package resumes

import (
	"fmt"
	"strings"
)

const objectivePromptTemplate = `I need help modifying my resume objective to better match a job description. 

Current Resume Objective:
%s

Job Description:
%s

Please analyze the job description and modify my resume objective to:
1. Highlight relevant skills and experiences that match the job requirements
2. Use keywords from the job description
3. Make it more specific to this role
4. Keep it concise (2-3 sentences)
5. Maintain a professional tone

Please provide only the modified objective without any explanations.`

// ObjectivePrompt asks for a rewritten resume objective aimed at jobDescription.
func ObjectivePrompt(jobDescription, currentObjective string) string {
	return fmt.Sprintf(objectivePromptTemplate, currentObjective, jobDescription)
}

// OptimizePrompt asks for concrete edits that align the selected resume material with a job.
func OptimizePrompt(jobDescription string, sel Selection, resumeText string) string {
	var b strings.Builder
	b.WriteString("I need help tailoring my resume to a job description.\n\nJob Description:\n")
	b.WriteString(jobDescription)
	b.WriteString("\n")

	if len(sel.Jobs) > 0 {
		b.WriteString("\nExperience:\n")
		for _, j := range sel.Jobs {
			fmt.Fprintf(&b, "- %s at %s (%s - %s)\n", j.Title, j.Company, j.StartDate, j.EndDate)
			for _, point := range j.BulletPoints {
				fmt.Fprintf(&b, "  * %s\n", point)
			}
		}
	}
	if len(sel.Projects) > 0 {
		b.WriteString("\nProjects:\n")
		for _, p := range sel.Projects {
			fmt.Fprintf(&b, "- %s: %s", p.Name, p.Description)
			if len(p.Technologies) > 0 {
				fmt.Fprintf(&b, " [%s]", strings.Join(p.Technologies, ", "))
			}
			b.WriteString("\n")
		}
	}
	if len(sel.Skills) > 0 {
		b.WriteString("\nSkills:\n")
		b.WriteString(formatSkills(sel.Skills))
		b.WriteString("\n")
	}
	if strings.TrimSpace(resumeText) != "" {
		b.WriteString("\nCurrent Resume:\n")
		b.WriteString(resumeText)
		b.WriteString("\n")
	}

	b.WriteString(`
Please suggest improvements so this resume better matches the job:
1. Rewrite bullet points to use keywords from the job description
2. Point out missing skills the job asks for
3. Recommend which experience and projects to emphasize
4. Keep every suggestion truthful to the material above

Respond with a concise list of suggestions only.`)
	return b.String()
}

// formatSkills renders skills as "Name (Category)" joined by commas.
func formatSkills(skills []Skill) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Category != "" {
			parts = append(parts, s.Name+" ("+s.Category+")")
		} else {
			parts = append(parts, s.Name)
		}
	}
	return strings.Join(parts, ", ")
}
