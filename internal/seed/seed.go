// Package seed populates an empty store with the demo dataset: 28 ordered
// job postings, 1200 candidates, timeline history, a user profile, a few
// unread notifications, and three sample assessments.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

var departments = []string{"Engineering", "Product", "Design", "Marketing", "Sales", "Operations", "Data Science", "Customer Success"}

var locations = []string{"Remote", "New York", "San Francisco", "London", "Berlin", "Singapore", "Austin", "Boston", "Seattle"}

var jobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

var tags = []string{"urgent", "senior", "junior", "remote-first", "hybrid", "leadership", "technical", "creative"}

var firstNames = []string{
	"Alex", "Jordan", "Morgan", "Casey", "Riley", "Taylor", "Jamie", "Avery", "Quinn", "Skyler",
	"Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason", "Isabella", "William",
	"Mia", "James", "Charlotte", "Benjamin", "Amelia", "Lucas", "Harper", "Henry", "Evelyn", "Alexander",
	"Michael", "Daniel", "Matthew", "Jackson", "Sebastian", "Jack", "Aiden", "Owen", "Samuel", "David",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
}

var jobTitles = []string{
	"Senior Frontend Engineer", "Backend Developer", "Full Stack Engineer", "DevOps Engineer", "Data Scientist",
	"Product Manager", "Senior Product Manager", "Product Designer", "UX Designer", "UX Researcher",
	"Marketing Manager", "Content Marketing Specialist", "SEO Specialist", "Growth Marketing Manager",
	"Sales Development Representative", "Account Executive", "Customer Success Manager", "Sales Engineer",
	"Engineering Manager", "Technical Lead", "Staff Engineer", "Principal Engineer", "Solutions Architect",
	"Data Analyst", "Business Analyst", "QA Engineer", "Security Engineer", "Mobile Developer",
}

const (
	jobCount       = 28
	candidateCount = 1200
	historyCount   = 100
)

// Seeder fills empty tables with demo data. The random source is injected
// so runs can be reproduced.
type Seeder struct {
	repo store.Repository
	rng  *rand.Rand
	now  func() time.Time
	dir  string
}

// Option configures the seeder
type Option func(*Seeder)

// WithFixtureDir points the seeder at a directory of YAML fixture files.
// A jobs.yaml or candidates.yaml found there replaces the generated set for
// that table.
func WithFixtureDir(dir string) Option {
	return func(s *Seeder) {
		s.dir = dir
	}
}

// WithClock replaces the wall clock
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) {
		s.now = now
	}
}

// New creates a seeder. Seed 0 seeds the random source from the clock.
func New(repo store.Repository, seed int64, opts ...Option) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Seeder{
		repo: repo,
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds every table that is currently empty. Tables with data are left
// alone, so restarting against a durable store never duplicates records.
func (s *Seeder) Run(ctx context.Context) error {
	jobs, err := s.seedJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed jobs: %w", err)
	}

	if err := s.seedCandidates(ctx, jobs); err != nil {
		return fmt.Errorf("failed to seed candidates: %w", err)
	}

	if err := s.seedProfile(ctx); err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}

	if err := s.seedNotifications(ctx); err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}

	if err := s.seedAssessments(ctx, jobs); err != nil {
		return fmt.Errorf("failed to seed assessments: %w", err)
	}

	return nil
}

func (s *Seeder) seedJobs(ctx context.Context) ([]*models.Job, error) {
	existing, err := s.repo.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	jobs, err := s.loadJobFixtures()
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = s.generateJobs()
	}

	for _, job := range jobs {
		if err := s.repo.CreateJob(ctx, job); err != nil {
			return nil, err
		}
	}
	slog.Info("seeded jobs", "count", len(jobs))
	return jobs, nil
}

func (s *Seeder) generateJobs() []*models.Job {
	now := s.now()
	statuses := []models.JobStatus{models.JobActive, models.JobActive, models.JobActive, models.JobDraft, models.JobArchived}

	jobs := make([]*models.Job, 0, jobCount)
	for i := 0; i < jobCount; i++ {
		title := jobTitles[i%len(jobTitles)]

		jobTags := make([]string, 0, 3)
		numTags := s.rng.Intn(3) + 1
		for t := 0; t < numTags; t++ {
			tag := tags[s.rng.Intn(len(tags))]
			if !contains(jobTags, tag) {
				jobTags = append(jobTags, tag)
			}
		}

		openDate := now.Add(-time.Duration(s.rng.Float64() * 90 * 24 * float64(time.Hour)))
		var closeDate *time.Time
		if s.rng.Float64() > 0.7 {
			d := openDate.Add(time.Duration((30 + s.rng.Float64()*60) * 24 * float64(time.Hour)))
			closeDate = &d
		}

		jobs = append(jobs, &models.Job{
			ID:         fmt.Sprintf("job-%d", i+1),
			Title:      title,
			Slug:       models.Slugify(fmt.Sprintf("%s-%d", title, i+1)),
			Department: departments[s.rng.Intn(len(departments))],
			Location:   locations[s.rng.Intn(len(locations))],
			Type:       jobTypes[s.rng.Intn(len(jobTypes))],
			Status:     statuses[i%len(statuses)],
			Tags:       jobTags,
			Openings:   s.rng.Intn(5) + 1,
			Order:      i,
			OpenDate:   openDate,
			CloseDate:  closeDate,
			CreatedAt:  openDate,
			UpdatedAt:  now,
		})
	}
	return jobs
}

func (s *Seeder) seedCandidates(ctx context.Context, jobs []*models.Job) error {
	existing, err := s.repo.ListCandidates(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 || len(jobs) == 0 {
		return nil
	}

	candidates, err := s.loadCandidateFixtures()
	if err != nil {
		return err
	}
	if candidates == nil {
		candidates = s.generateCandidates(jobs)
	}

	for _, c := range candidates {
		if err := s.repo.CreateCandidate(ctx, c); err != nil {
			return err
		}
	}
	slog.Info("seeded candidates", "count", len(candidates))

	return s.seedTimeline(ctx, candidates)
}

func (s *Seeder) generateCandidates(jobs []*models.Job) []*models.Candidate {
	now := s.now()
	stages := models.Stages()

	candidates := make([]*models.Candidate, 0, candidateCount)
	for i := 0; i < candidateCount; i++ {
		first := firstNames[s.rng.Intn(len(firstNames))]
		last := lastNames[s.rng.Intn(len(lastNames))]
		job := jobs[s.rng.Intn(len(jobs))]

		suffix := ""
		if i > 400 {
			suffix = fmt.Sprintf("%d", i)
		}

		hasResume := s.rng.Float64() > 0.5
		resumeURL := ""
		resumeViewed := false
		if hasResume {
			resumeURL = "/placeholder.svg"
			resumeViewed = s.rng.Float64() > 0.5
		}

		candidates = append(candidates, &models.Candidate{
			ID:    fmt.Sprintf("candidate-%d", i+1),
			Name:  first + " " + last,
			Email: fmt.Sprintf("%s.%s%s@example.com", strings.ToLower(first), strings.ToLower(last), suffix),
			Phone: fmt.Sprintf("+1 %d-%d-%d",
				s.rng.Intn(900)+100, s.rng.Intn(900)+100, s.rng.Intn(9000)+1000),
			JobID:        job.ID,
			Stage:        stages[s.rng.Intn(len(stages))],
			Score:        s.rng.Intn(100),
			ResumeViewed: resumeViewed,
			ResumeURL:    resumeURL,
			AppliedAt:    now.Add(-time.Duration(s.rng.Float64() * 60 * 24 * float64(time.Hour))),
			UpdatedAt:    now,
		})
	}
	return candidates
}

// seedTimeline backfills stage history for the first hundred candidates
func (s *Seeder) seedTimeline(ctx context.Context, candidates []*models.Candidate) error {
	now := s.now()
	stages := models.Stages()

	n := historyCount
	if n > len(candidates) {
		n = len(candidates)
	}

	for i := 0; i < n; i++ {
		numEntries := s.rng.Intn(4) + 1
		for j := 0; j < numEntries; j++ {
			stage := stages[min(j, len(stages)-1)]
			note := "Application submitted"
			if j > 0 {
				note = fmt.Sprintf("Moved to %s", stage)
			}

			entry := &models.TimelineEntry{
				ID:          fmt.Sprintf("timeline-%d-%d", i, j),
				CandidateID: candidates[i].ID,
				Stage:       stage,
				Timestamp:   now.Add(-time.Duration(numEntries-j) * 7 * 24 * time.Hour),
				Note:        note,
			}
			if err := s.repo.CreateTimelineEntry(ctx, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedProfile(ctx context.Context) error {
	if _, err := s.repo.GetProfile(ctx); err == nil {
		return nil
	}

	return s.repo.PutProfile(ctx, &models.UserProfile{
		ID:        "user-1",
		Name:      "Sarah Johnson",
		Email:     "sarah.johnson@talentflow.app",
		Role:      "Hiring Manager",
		Theme:     "light",
		CreatedAt: s.now(),
	})
}

func (s *Seeder) seedNotifications(ctx context.Context) error {
	existing, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := s.now()
	notifications := []*models.Notification{
		{ID: "notif-1", Title: "New candidate applied", Body: "A candidate applied to Senior Frontend Engineer", CreatedAt: now.Add(-time.Hour), RelatedID: "job-1"},
		{ID: "notif-2", Title: "Assessment submitted", Body: "Assessment submitted for Product Designer", CreatedAt: now.Add(-30 * time.Minute), RelatedID: "job-2"},
		{ID: "notif-3", Title: "Job expiring soon", Body: "Job posting for Marketing Manager is expiring in 2 days", CreatedAt: now.Add(-5 * time.Minute), RelatedID: "job-3"},
	}

	for _, n := range notifications {
		if err := s.repo.CreateNotification(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedAssessments(ctx context.Context, jobs []*models.Job) error {
	n := 3
	if n > len(jobs) {
		n = len(jobs)
	}

	now := s.now()
	for i := 0; i < n; i++ {
		job := jobs[i]
		if _, err := s.repo.GetAssessmentByJob(ctx, job.ID); err == nil {
			continue
		}

		a := &models.Assessment{
			ID:        "assessment-" + job.ID,
			JobID:     job.ID,
			Sections:  sampleSections(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.CreateAssessment(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// sampleSections returns the demo questionnaire: background, technical
// skills, and behavioral sections with one conditional question.
func sampleSections() []models.AssessmentSection {
	return []models.AssessmentSection{
		{
			ID:    "section-1",
			Title: "Background & Experience",
			Questions: []models.Question{
				{ID: "q1", Type: models.QuestionShortText, Prompt: "What is your current job title?", Required: true, MaxLength: intPtr(100)},
				{ID: "q2", Type: models.QuestionNumeric, Prompt: "How many years of experience do you have in this field?", Required: true, MinValue: intPtr(0), MaxValue: intPtr(50)},
				{ID: "q3", Type: models.QuestionSingle, Prompt: "Are you currently employed?", Options: []string{"Yes", "No"}, Required: true},
				{ID: "q4", Type: models.QuestionLongText, Prompt: "If yes, why are you looking for a new role?", MaxLength: intPtr(500), ConditionalOn: &models.Condition{QuestionID: "q3", Value: "Yes"}},
			},
		},
		{
			ID:    "section-2",
			Title: "Technical Skills",
			Questions: []models.Question{
				{ID: "q5", Type: models.QuestionMulti, Prompt: "Which programming languages are you proficient in? (Select all that apply)", Options: []string{"JavaScript", "TypeScript", "Python", "Java", "Go", "Rust", "C++", "Other"}, Required: true},
				{ID: "q6", Type: models.QuestionSingle, Prompt: "What is your preferred development environment?", Options: []string{"VS Code", "IntelliJ IDEA", "Vim/Neovim", "Sublime Text", "Other"}},
				{ID: "q7", Type: models.QuestionFile, Prompt: "Upload your resume (PDF format)", Required: true},
			},
		},
		{
			ID:    "section-3",
			Title: "Behavioral Questions",
			Questions: []models.Question{
				{ID: "q8", Type: models.QuestionLongText, Prompt: "Describe a challenging project you worked on and how you overcame obstacles.", Required: true, MaxLength: intPtr(1000)},
				{ID: "q9", Type: models.QuestionLongText, Prompt: "How do you handle disagreements with team members?", Required: true, MaxLength: intPtr(500)},
				{ID: "q10", Type: models.QuestionSingle, Prompt: "Do you prefer working independently or in a team?", Options: []string{"Independently", "In a team", "Both equally", "It depends on the project"}, Required: true},
			},
		},
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}
