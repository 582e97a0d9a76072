package hiring

import (
	"context"
	"testing"

	"github.com/talentflow/engine/internal/models"
	"github.com/talentflow/engine/internal/store"
)

func TestGetAssessmentMissingIsNil(t *testing.T) {
	svc := NewService(store.NewMemoryRepository(nil))

	a, err := svc.GetAssessment(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("a missing assessment must not be an error: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil for missing assessment, got %+v", a)
	}
}

func TestPutAssessmentUpserts(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryRepository(nil))

	first, err := svc.PutAssessment(ctx, "job-1", []models.AssessmentSection{
		{ID: "s1", Title: "Screening"},
	})
	if err != nil {
		t.Fatalf("PutAssessment failed: %v", err)
	}
	if first.JobID != "job-1" {
		t.Errorf("jobId not set, got %q", first.JobID)
	}

	second, err := svc.PutAssessment(ctx, "job-1", []models.AssessmentSection{
		{ID: "s1", Title: "Screening"},
		{ID: "s2", Title: "Technical"},
	})
	if err != nil {
		t.Fatalf("second PutAssessment failed: %v", err)
	}

	// Same record, replaced sections
	if second.ID != first.ID {
		t.Errorf("upsert must keep the record id, got %s vs %s", second.ID, first.ID)
	}
	if len(second.Sections) != 2 {
		t.Errorf("sections not replaced, got %d", len(second.Sections))
	}

	got, err := svc.GetAssessment(ctx, "job-1")
	if err != nil {
		t.Fatalf("GetAssessment failed: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Errorf("stored sections wrong, got %d", len(got.Sections))
	}
}

func TestSubmitAssessmentAppendOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemoryRepository(nil))

	responses := map[string]any{"q1": "Yes", "q2": 4}
	first, err := svc.SubmitAssessment(ctx, "job-1", "candidate-1", responses)
	if err != nil {
		t.Fatalf("SubmitAssessment failed: %v", err)
	}
	second, err := svc.SubmitAssessment(ctx, "job-1", "candidate-1", responses)
	if err != nil {
		t.Fatalf("repeat SubmitAssessment failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("repeat submissions must insert distinct records")
	}

	subs, err := svc.AssessmentResponses(ctx, "job-1")
	if err != nil {
		t.Fatalf("AssessmentResponses failed: %v", err)
	}
	if len(subs) != 2 {
		t.Errorf("expected 2 submissions, got %d", len(subs))
	}
}
