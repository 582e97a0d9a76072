package seed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talentflow/engine/internal/models"
)

// jobFixture is the YAML form of a seeded job
type jobFixture struct {
	ID         string     `yaml:"id"`
	Title      string     `yaml:"title"`
	Slug       string     `yaml:"slug"`
	Department string     `yaml:"department"`
	Location   string     `yaml:"location"`
	Type       string     `yaml:"type"`
	Status     string     `yaml:"status"`
	Tags       []string   `yaml:"tags"`
	Openings   int        `yaml:"openings"`
	Order      *int       `yaml:"order"`
	OpenDate   time.Time  `yaml:"open_date"`
	CloseDate  *time.Time `yaml:"close_date"`
}

// candidateFixture is the YAML form of a seeded candidate
type candidateFixture struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	Email     string    `yaml:"email"`
	Phone     string    `yaml:"phone"`
	JobID     string    `yaml:"job_id"`
	Stage     string    `yaml:"stage"`
	Score     int       `yaml:"score"`
	ResumeURL string    `yaml:"resume_url"`
	AppliedAt time.Time `yaml:"applied_at"`
}

type jobsFile struct {
	Jobs []jobFixture `yaml:"jobs"`
}

type candidatesFile struct {
	Candidates []candidateFixture `yaml:"candidates"`
}

// loadJobFixtures reads jobs.yaml from the fixture dir if one is configured.
// A nil result with no error means "no fixture, generate instead".
func (s *Seeder) loadJobFixtures() ([]*models.Job, error) {
	if s.dir == "" {
		return nil, nil
	}

	path := filepath.Join(s.dir, "jobs.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read job fixtures: %w", err)
	}

	var f jobsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse job fixtures: %w", err)
	}

	now := s.now()
	jobs := make([]*models.Job, 0, len(f.Jobs))
	for i, fx := range f.Jobs {
		job := &models.Job{
			ID:         fx.ID,
			Title:      fx.Title,
			Slug:       fx.Slug,
			Department: fx.Department,
			Location:   fx.Location,
			Type:       fx.Type,
			Status:     models.JobStatus(fx.Status),
			Tags:       fx.Tags,
			Openings:   fx.Openings,
			Order:      i,
			OpenDate:   fx.OpenDate,
			CloseDate:  fx.CloseDate,
			CreatedAt:  fx.OpenDate,
			UpdatedAt:  now,
		}
		if fx.Order != nil {
			job.Order = *fx.Order
		}
		if job.ID == "" {
			job.ID = fmt.Sprintf("job-%d", i+1)
		}
		if job.Slug == "" {
			job.Slug = models.Slugify(job.Title)
		}
		if job.OpenDate.IsZero() {
			job.OpenDate = now
			job.CreatedAt = now
		}
		jobs = append(jobs, job)
	}

	slog.Info("loaded job fixtures", "path", path, "count", len(jobs))
	return jobs, nil
}

// loadCandidateFixtures reads candidates.yaml from the fixture dir if one is
// configured
func (s *Seeder) loadCandidateFixtures() ([]*models.Candidate, error) {
	if s.dir == "" {
		return nil, nil
	}

	path := filepath.Join(s.dir, "candidates.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read candidate fixtures: %w", err)
	}

	var f candidatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse candidate fixtures: %w", err)
	}

	now := s.now()
	candidates := make([]*models.Candidate, 0, len(f.Candidates))
	for i, fx := range f.Candidates {
		c := &models.Candidate{
			ID:        fx.ID,
			Name:      fx.Name,
			Email:     fx.Email,
			Phone:     fx.Phone,
			JobID:     fx.JobID,
			Stage:     models.Stage(fx.Stage),
			Score:     fx.Score,
			ResumeURL: fx.ResumeURL,
			AppliedAt: fx.AppliedAt,
			UpdatedAt: now,
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("candidate-%d", i+1)
		}
		if c.Stage == "" {
			c.Stage = models.StageApplied
		}
		if c.AppliedAt.IsZero() {
			c.AppliedAt = now
		}
		candidates = append(candidates, c)
	}

	slog.Info("loaded candidate fixtures", "path", path, "count", len(candidates))
	return candidates, nil
}
