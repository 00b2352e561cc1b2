package resumes

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

var jobsTable = table[Job]{
	name:    "resume_jobs",
	columns: []string{"id", "user_id", "title", "company", "location", "start_date", "end_date", "bullet_points", "selected", "created_at"},
	insertArgs: func(j Job) ([]any, error) {
		bullets, err := encodeStrings(j.BulletPoints)
		if err != nil {
			return nil, err
		}
		return []any{j.ID, j.UserID, j.Title, nullable(j.Company), nullable(j.Location), nullable(j.StartDate), nullable(j.EndDate), bullets, j.Selected, j.CreatedAt}, nil
	},
	updateSet: `title = $3, company = $4, location = $5, start_date = $6, end_date = $7, bullet_points = $8`,
	updateArgs: func(j Job) ([]any, error) {
		bullets, err := encodeStrings(j.BulletPoints)
		if err != nil {
			return nil, err
		}
		return []any{j.Title, nullable(j.Company), nullable(j.Location), nullable(j.StartDate), nullable(j.EndDate), bullets}, nil
	},
	scan: func(row rowScanner) (Job, error) {
		var j Job
		var company, location, start, end sql.NullString
		var bullets []byte
		if err := row.Scan(&j.ID, &j.UserID, &j.Title, &company, &location, &start, &end, &bullets, &j.Selected, &j.CreatedAt); err != nil {
			return Job{}, err
		}
		j.Company, j.Location, j.StartDate, j.EndDate = company.String, location.String, start.String, end.String
		var err error
		j.BulletPoints, err = decodeStrings(bullets)
		return j, err
	},
}

var projectsTable = table[Project]{
	name:    "resume_projects",
	columns: []string{"id", "user_id", "name", "description", "technologies", "link", "selected", "created_at"},
	insertArgs: func(p Project) ([]any, error) {
		tech, err := encodeStrings(p.Technologies)
		if err != nil {
			return nil, err
		}
		return []any{p.ID, p.UserID, p.Name, nullable(p.Description), tech, nullable(p.Link), p.Selected, p.CreatedAt}, nil
	},
	updateSet: `name = $3, description = $4, technologies = $5, link = $6`,
	updateArgs: func(p Project) ([]any, error) {
		tech, err := encodeStrings(p.Technologies)
		if err != nil {
			return nil, err
		}
		return []any{p.Name, nullable(p.Description), tech, nullable(p.Link)}, nil
	},
	scan: func(row rowScanner) (Project, error) {
		var p Project
		var description, link sql.NullString
		var tech []byte
		if err := row.Scan(&p.ID, &p.UserID, &p.Name, &description, &tech, &link, &p.Selected, &p.CreatedAt); err != nil {
			return Project{}, err
		}
		p.Description, p.Link = description.String, link.String
		var err error
		p.Technologies, err = decodeStrings(tech)
		return p, err
	},
}

var skillsTable = table[Skill]{
	name:    "resume_skills",
	columns: []string{"id", "user_id", "name", "category", "selected", "created_at"},
	insertArgs: func(s Skill) ([]any, error) {
		return []any{s.ID, s.UserID, s.Name, nullable(s.Category), s.Selected, s.CreatedAt}, nil
	},
	updateSet: `name = $3, category = $4`,
	updateArgs: func(s Skill) ([]any, error) {
		return []any{s.Name, nullable(s.Category)}, nil
	},
	scan: func(row rowScanner) (Skill, error) {
		var s Skill
		var category sql.NullString
		if err := row.Scan(&s.ID, &s.UserID, &s.Name, &category, &s.Selected, &s.CreatedAt); err != nil {
			return Skill{}, err
		}
		s.Category = category.String
		return s, nil
	},
}

var filesTable = table[File]{
	name:    "resume_files",
	columns: []string{"id", "user_id", "file_name", "mime_type", "size_bytes", "storage_key", "extracted_text", "selected", "created_at"},
	insertArgs: func(f File) ([]any, error) {
		return []any{f.ID, f.UserID, f.FileName, nullable(f.MimeType), f.SizeBytes, f.StorageKey, nullable(f.ExtractedText), f.Selected, f.CreatedAt}, nil
	},
	updateSet: `file_name = $3, extracted_text = $4`,
	updateArgs: func(f File) ([]any, error) {
		return []any{f.FileName, nullable(f.ExtractedText)}, nil
	},
	scan: func(row rowScanner) (File, error) {
		var f File
		var mimeType, text sql.NullString
		if err := row.Scan(&f.ID, &f.UserID, &f.FileName, &mimeType, &f.SizeBytes, &f.StorageKey, &text, &f.Selected, &f.CreatedAt); err != nil {
			return File{}, err
		}
		f.MimeType, f.ExtractedText = mimeType.String, text.String
		return f, nil
	},
}

func encodeStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func decodeStrings(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	return out, nil
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
