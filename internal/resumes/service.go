package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"career-backend/internal/analytics"
	"career-backend/internal/extract"
	"career-backend/internal/llm"
	"career-backend/internal/shared/storage/object"
	"career-backend/internal/shared/telemetry"
)

type JobInput struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	BulletPoints []string `json:"bulletPoints"`
}

type ProjectInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link"`
}

type SkillInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Selection is the material picked for the next resume.
type Selection struct {
	Jobs     []Job
	Projects []Project
	Skills   []Skill
}

// Service manages resume records and the AI helpers built on them.
type Service struct {
	Repos   Repos
	Store   object.ObjectStore
	LLM     llm.Completer
	Tracker analytics.Tracker
	Now     func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) track(ctx context.Context, userID, action string, props map[string]any) {
	merged := map[string]any{"action": action}
	for k, v := range props {
		merged[k] = v
	}
	analytics.Emit(ctx, s.Tracker, userID, analytics.EventResumeAction, merged)
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func required(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return value, nil
}

// Jobs

func (s *Service) ListJobs(ctx context.Context, userID string) ([]Job, error) {
	return s.Repos.Jobs.List(ctx, userID, false)
}

func (s *Service) CreateJob(ctx context.Context, userID string, in JobInput) (Job, error) {
	title, err := required(in.Title, "title")
	if err != nil {
		return Job{}, err
	}
	j := Job{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        title,
		Company:      strings.TrimSpace(in.Company),
		Location:     strings.TrimSpace(in.Location),
		StartDate:    strings.TrimSpace(in.StartDate),
		EndDate:      strings.TrimSpace(in.EndDate),
		BulletPoints: cleanList(in.BulletPoints),
		CreatedAt:    s.now(),
	}
	if err := s.Repos.Jobs.Create(ctx, j); err != nil {
		return Job{}, err
	}
	s.track(ctx, userID, "add_job", nil)
	return j, nil
}

func (s *Service) UpdateJob(ctx context.Context, userID, id string, in JobInput) (Job, error) {
	title, err := required(in.Title, "title")
	if err != nil {
		return Job{}, err
	}
	j, err := s.Repos.Jobs.Get(ctx, userID, id)
	if err != nil {
		return Job{}, err
	}
	j.Title = title
	j.Company = strings.TrimSpace(in.Company)
	j.Location = strings.TrimSpace(in.Location)
	j.StartDate = strings.TrimSpace(in.StartDate)
	j.EndDate = strings.TrimSpace(in.EndDate)
	j.BulletPoints = cleanList(in.BulletPoints)
	if err := s.Repos.Jobs.Update(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *Service) SelectJob(ctx context.Context, userID, id string, selected bool) (Job, error) {
	return s.Repos.Jobs.SetSelected(ctx, userID, id, selected)
}

func (s *Service) DeleteJob(ctx context.Context, userID, id string) error {
	return s.Repos.Jobs.Delete(ctx, userID, id)
}

// Projects

func (s *Service) ListProjects(ctx context.Context, userID string) ([]Project, error) {
	return s.Repos.Projects.List(ctx, userID, false)
}

func (s *Service) CreateProject(ctx context.Context, userID string, in ProjectInput) (Project, error) {
	name, err := required(in.Name, "name")
	if err != nil {
		return Project{}, err
	}
	p := Project{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Technologies: cleanList(in.Technologies),
		Link:         strings.TrimSpace(in.Link),
		CreatedAt:    s.now(),
	}
	if err := s.Repos.Projects.Create(ctx, p); err != nil {
		return Project{}, err
	}
	s.track(ctx, userID, "add_project", nil)
	return p, nil
}

func (s *Service) UpdateProject(ctx context.Context, userID, id string, in ProjectInput) (Project, error) {
	name, err := required(in.Name, "name")
	if err != nil {
		return Project{}, err
	}
	p, err := s.Repos.Projects.Get(ctx, userID, id)
	if err != nil {
		return Project{}, err
	}
	p.Name = name
	p.Description = strings.TrimSpace(in.Description)
	p.Technologies = cleanList(in.Technologies)
	p.Link = strings.TrimSpace(in.Link)
	if err := s.Repos.Projects.Update(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

func (s *Service) SelectProject(ctx context.Context, userID, id string, selected bool) (Project, error) {
	return s.Repos.Projects.SetSelected(ctx, userID, id, selected)
}

func (s *Service) DeleteProject(ctx context.Context, userID, id string) error {
	return s.Repos.Projects.Delete(ctx, userID, id)
}

// Skills

func (s *Service) ListSkills(ctx context.Context, userID string) ([]Skill, error) {
	return s.Repos.Skills.List(ctx, userID, false)
}

func (s *Service) CreateSkill(ctx context.Context, userID string, in SkillInput) (Skill, error) {
	name, err := required(in.Name, "name")
	if err != nil {
		return Skill{}, err
	}
	sk := Skill{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: s.now(),
	}
	if err := s.Repos.Skills.Create(ctx, sk); err != nil {
		return Skill{}, err
	}
	s.track(ctx, userID, "add_skill", nil)
	return sk, nil
}

func (s *Service) UpdateSkill(ctx context.Context, userID, id string, in SkillInput) (Skill, error) {
	name, err := required(in.Name, "name")
	if err != nil {
		return Skill{}, err
	}
	sk, err := s.Repos.Skills.Get(ctx, userID, id)
	if err != nil {
		return Skill{}, err
	}
	sk.Name = name
	sk.Category = strings.TrimSpace(in.Category)
	if err := s.Repos.Skills.Update(ctx, sk); err != nil {
		return Skill{}, err
	}
	return sk, nil
}

func (s *Service) SelectSkill(ctx context.Context, userID, id string, selected bool) (Skill, error) {
	return s.Repos.Skills.SetSelected(ctx, userID, id, selected)
}

func (s *Service) DeleteSkill(ctx context.Context, userID, id string) error {
	return s.Repos.Skills.Delete(ctx, userID, id)
}

// Files

func (s *Service) ListFiles(ctx context.Context, userID string) ([]File, error) {
	return s.Repos.Files.List(ctx, userID, false)
}

func (s *Service) GetFile(ctx context.Context, userID, id string) (File, error) {
	return s.Repos.Files.Get(ctx, userID, id)
}

// UploadFile stores a resume document and extracts its text.
// A file whose text cannot be read is kept with empty text.
func (s *Service) UploadFile(ctx context.Context, userID, fileName string, r io.Reader) (File, error) {
	if s.Store == nil {
		return File{}, errors.New("object store not configured")
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return File{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	stored, err := s.Store.Save(ctx, object.Upload{OwnerID: userID, Folder: object.FolderResumeFiles, FileName: fileName, Body: r})
	if err != nil {
		return File{}, err
	}
	key, size, mimeType := stored.Key, stored.Size, stored.MimeType

	text, err := extract.ExtractText(ctx, s.Store, key, mimeType, fileName)
	if err != nil {
		telemetry.Warn("resumes.extract_failed", map[string]any{"error": err, "mime_type": mimeType, "user_id": userID})
		text = ""
	}

	f := File{
		ID:            uuid.NewString(),
		UserID:        userID,
		FileName:      fileName,
		MimeType:      mimeType,
		SizeBytes:     size,
		StorageKey:    key,
		ExtractedText: text,
		CreatedAt:     s.now(),
	}
	if err := s.Repos.Files.Create(ctx, f); err != nil {
		s.removeObject(ctx, key)
		return File{}, err
	}
	s.track(ctx, userID, "upload_file", map[string]any{"mimeType": mimeType, "sizeBytes": size})
	return f, nil
}

func (s *Service) SelectFile(ctx context.Context, userID, id string, selected bool) (File, error) {
	return s.Repos.Files.SetSelected(ctx, userID, id, selected)
}

// DeleteFile removes the record and its stored object.
func (s *Service) DeleteFile(ctx context.Context, userID, id string) error {
	f, err := s.Repos.Files.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repos.Files.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.removeObject(ctx, f.StorageKey)
	return nil
}

func (s *Service) removeObject(ctx context.Context, key string) {
	if key == "" || s.Store == nil {
		return
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("resumes.object_delete_failed", map[string]any{"error": err})
	}
}

// Selected loads the caller's selected jobs, projects and skills concurrently.
func (s *Service) Selected(ctx context.Context, userID string) (Selection, error) {
	var sel Selection
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sel.Jobs, err = s.Repos.Jobs.List(gctx, userID, true)
		return err
	})
	g.Go(func() error {
		var err error
		sel.Projects, err = s.Repos.Projects.List(gctx, userID, true)
		return err
	})
	g.Go(func() error {
		var err error
		sel.Skills, err = s.Repos.Skills.List(gctx, userID, true)
		return err
	})
	if err := g.Wait(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// AI helpers

// Objective rewrites a resume objective for a job description.
func (s *Service) Objective(ctx context.Context, userID, jobDescription, currentObjective string) (string, error) {
	if strings.TrimSpace(jobDescription) == "" || strings.TrimSpace(currentObjective) == "" {
		return "", ErrObjectiveInput
	}
	reply, err := s.complete(ctx, ObjectivePrompt(jobDescription, currentObjective))
	if err != nil {
		analytics.Emit(ctx, s.Tracker, userID, analytics.EventError, map[string]any{"errorType": "Resume Objective Error", "error": err.Error()})
		return "", err
	}
	s.track(ctx, userID, "generate_objective", nil)
	return strings.TrimSpace(reply), nil
}

// Optimize suggests resume edits from the selected records and, when fileID is set, an uploaded resume.
func (s *Service) Optimize(ctx context.Context, userID, jobDescription, fileID string) (string, error) {
	jobDescription, err := required(jobDescription, "jobDescription")
	if err != nil {
		return "", err
	}
	sel, err := s.Selected(ctx, userID)
	if err != nil {
		return "", err
	}
	resumeText := ""
	if fileID = strings.TrimSpace(fileID); fileID != "" {
		f, err := s.Repos.Files.Get(ctx, userID, fileID)
		if err != nil {
			return "", err
		}
		resumeText = f.ExtractedText
	}
	if len(sel.Jobs)+len(sel.Projects)+len(sel.Skills) == 0 && strings.TrimSpace(resumeText) == "" {
		return "", fmt.Errorf("%w: select resume items or a resume file first", ErrInvalidInput)
	}
	reply, err := s.complete(ctx, OptimizePrompt(jobDescription, sel, resumeText))
	if err != nil {
		return "", err
	}
	s.track(ctx, userID, "optimize", map[string]any{"jobs": len(sel.Jobs), "projects": len(sel.Projects), "skills": len(sel.Skills)})
	return strings.TrimSpace(reply), nil
}

func (s *Service) complete(ctx context.Context, prompt string) (string, error) {
	if s.LLM == nil {
		return "", fmt.Errorf("%w: %w", ErrLLM, llm.ErrNotConfigured)
	}
	reply, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLLM, err)
	}
	return reply, nil
}

// RenderPDF writes the caller's selected records as a PDF resume.
func (s *Service) RenderPDF(ctx context.Context, userID string, doc Document, w io.Writer) error {
	if strings.TrimSpace(doc.PersonalInfo.Name) == "" {
		return fmt.Errorf("%w: personalInfo.name is required", ErrInvalidInput)
	}
	sel, err := s.Selected(ctx, userID)
	if err != nil {
		return err
	}
	if err := RenderPDF(w, doc, sel); err != nil {
		return err
	}
	s.track(ctx, userID, "download_pdf", map[string]any{"template": doc.Template})
	return nil
}
