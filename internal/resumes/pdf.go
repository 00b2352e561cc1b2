package resumes

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

type PersonalInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

type Education struct {
	Degree          string `json:"degree"`
	Institution     string `json:"institution"`
	GraduationDate  string `json:"graduationDate"`
	GPA             string `json:"gpa"`
	RelevantCourses string `json:"relevantCourses"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

// Document holds the resume fields that are not stored as records.
type Document struct {
	Template       string          `json:"template"`
	PersonalInfo   PersonalInfo    `json:"personalInfo"`
	Summary        string          `json:"summary"`
	Education      []Education     `json:"education"`
	Certifications []Certification `json:"certifications"`
}

type rgb struct{ r, g, b int }

// pdfStyle is the per-template look. Sizes are in points.
type pdfStyle struct {
	page      rgb
	name      rgb
	section   rgb
	rule      rgb
	ruleWidth float64
}

var (
	colorText  = rgb{0x33, 0x33, 0x33}
	colorMuted = rgb{0x66, 0x66, 0x66}
	white      = rgb{0xff, 0xff, 0xff}
)

var templateStyles = map[string]pdfStyle{
	"modern":       {page: white, name: rgb{0x34, 0x98, 0xdb}, section: rgb{0x34, 0x98, 0xdb}, rule: rgb{0x34, 0x98, 0xdb}, ruleWidth: 2},
	"professional": {page: white, name: rgb{0x2c, 0x3e, 0x50}, section: rgb{0x2c, 0x3e, 0x50}, rule: rgb{0x2c, 0x3e, 0x50}, ruleWidth: 1},
	"creative":     {page: rgb{0xf8, 0xf9, 0xfa}, name: rgb{0xe7, 0x4c, 0x3c}, section: rgb{0xe7, 0x4c, 0x3c}, rule: rgb{0xe7, 0x4c, 0x3c}, ruleWidth: 2},
	"minimal":      {page: white, name: rgb{0, 0, 0}, section: rgb{0, 0, 0}, rule: rgb{0, 0, 0}, ruleWidth: 1},
}

var defaultStyle = pdfStyle{page: white, name: rgb{0x2c, 0x3e, 0x50}, section: rgb{0x2c, 0x3e, 0x50}, rule: rgb{0xee, 0xee, 0xee}, ruleWidth: 1}

// styleFor returns the look of a template; unknown names get the default look.
func styleFor(template string) pdfStyle {
	if st, ok := templateStyles[strings.ToLower(strings.TrimSpace(template))]; ok {
		return st
	}
	return defaultStyle
}

const (
	pagePadding = 30.0
	lineFactor  = 1.4
)

type pdfWriter struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	style pdfStyle
	width float64
}

func (w *pdfWriter) color(c rgb) { w.pdf.SetTextColor(c.r, c.g, c.b) }

func (w *pdfWriter) text(size float64, bold bool, c rgb, txt string) {
	styleStr := ""
	if bold {
		styleStr = "B"
	}
	w.pdf.SetFont("Helvetica", styleStr, size)
	w.color(c)
	w.pdf.MultiCell(w.width, size*lineFactor, w.tr(txt), "", "L", false)
}

func (w *pdfWriter) indented(size float64, txt string) {
	w.pdf.SetFont("Helvetica", "", size)
	w.color(colorText)
	w.pdf.SetX(pagePadding + 10)
	w.pdf.MultiCell(w.width-10, size*lineFactor, w.tr(txt), "", "L", false)
}

func (w *pdfWriter) rule(c rgb, width float64) {
	y := w.pdf.GetY() + 2
	w.pdf.SetDrawColor(c.r, c.g, c.b)
	w.pdf.SetLineWidth(width)
	w.pdf.Line(pagePadding, y, pagePadding+w.width, y)
	w.pdf.SetY(y + 4)
}

func (w *pdfWriter) section(title string) {
	w.pdf.Ln(6)
	w.text(14, true, w.style.section, title)
	w.rule(w.style.rule, w.style.ruleWidth)
}

// RenderPDF lays out an A4 resume in the template's colors and writes it to out.
func RenderPDF(out io.Writer, doc Document, sel Selection) error {
	style := styleFor(doc.Template)
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pagePadding, pagePadding, pagePadding)
	pdf.SetAutoPageBreak(true, pagePadding)
	pageW, pageH := pdf.GetPageSize()
	if style.page != white {
		pdf.SetHeaderFunc(func() {
			pdf.SetFillColor(style.page.r, style.page.g, style.page.b)
			pdf.Rect(0, 0, pageW, pageH, "F")
		})
	}
	pdf.AddPage()

	w := &pdfWriter{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		style: style,
		width: pageW - 2*pagePadding,
	}

	w.text(24, true, style.name, doc.PersonalInfo.Name)
	if contact := contactLine(doc.PersonalInfo); contact != "" {
		w.text(9, false, colorMuted, contact)
	}
	w.rule(colorText, 1)

	if strings.TrimSpace(doc.Summary) != "" {
		w.section("PROFESSIONAL SUMMARY")
		w.pdf.SetFont("Helvetica", "", 10)
		w.color(colorText)
		w.pdf.MultiCell(w.width, 10*lineFactor, w.tr(doc.Summary), "", "J", false)
	}

	if len(sel.Jobs) > 0 {
		w.section("EXPERIENCE")
		for _, j := range sel.Jobs {
			heading := j.Title
			if j.Company != "" {
				heading += " at " + j.Company
			}
			w.text(12, true, colorText, heading)
			if meta := joinNonEmpty(" | ", dateRange(j.StartDate, j.EndDate), j.Location); meta != "" {
				w.text(10, false, colorMuted, meta)
			}
			for _, point := range j.BulletPoints {
				w.indented(9, "• "+point)
			}
			w.pdf.Ln(4)
		}
	}

	if len(sel.Skills) > 0 {
		w.section("SKILLS")
		w.text(9, false, colorText, formatSkills(sel.Skills))
	}

	if len(sel.Projects) > 0 {
		w.section("PROJECTS")
		for _, p := range sel.Projects {
			w.text(11, true, colorText, p.Name)
			if meta := joinNonEmpty(" - ", strings.Join(p.Technologies, ", "), p.Link); meta != "" {
				w.text(9, false, colorMuted, meta)
			}
			if p.Description != "" {
				w.indented(9, p.Description)
			}
			w.pdf.Ln(3)
		}
	}

	if len(doc.Education) > 0 {
		w.section("EDUCATION")
		for _, e := range doc.Education {
			w.text(12, true, colorText, joinNonEmpty(" - ", e.Degree, e.Institution))
			meta := e.GraduationDate
			if e.GPA != "" {
				meta = joinNonEmpty(" | ", meta, "GPA: "+e.GPA)
			}
			if meta != "" {
				w.text(10, false, colorMuted, meta)
			}
			if e.RelevantCourses != "" {
				w.indented(9, "Relevant Courses: "+e.RelevantCourses)
			}
			w.pdf.Ln(3)
		}
	}

	if len(doc.Certifications) > 0 {
		w.section("CERTIFICATIONS")
		for _, c := range doc.Certifications {
			w.text(12, true, colorText, joinNonEmpty(" - ", c.Name, c.Issuer))
			if meta := joinNonEmpty(" | ", c.Date, c.URL); meta != "" {
				w.text(10, false, colorMuted, meta)
			}
			w.pdf.Ln(2)
		}
	}

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// contactLine joins email, phone and location, then labelled links, with " | ".
func contactLine(info PersonalInfo) string {
	parts := []string{info.Email, info.Phone, info.Location}
	if info.LinkedIn != "" {
		parts = append(parts, "LinkedIn: "+info.LinkedIn)
	}
	if info.Portfolio != "" {
		parts = append(parts, "Portfolio: "+info.Portfolio)
	}
	return joinNonEmpty(" | ", parts...)
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	default:
		return end
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
