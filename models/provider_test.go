package models

import (
	"math"
	"testing"
)

func TestBuildGeneratedProfile(t *testing.T) {
	services := ServiceOfferings{
		{Category: "plumbing", Subcategory: "pipe repair", BasePrice: 500, Unit: "hour"},
		{Category: "plumbing", Subcategory: "tap installation", BasePrice: 300, Unit: "service"},
	}

	gp := BuildGeneratedProfile(services)

	want := "Professional plumbing provider with expertise in pipe repair, tap installation"
	if gp.Summary != want {
		t.Errorf("summary = %q, want %q", gp.Summary, want)
	}
	if len(gp.Skills) != 2 || gp.Skills[0] != "pipe repair" || gp.Skills[1] != "tap installation" {
		t.Errorf("unexpected skills: %v", gp.Skills)
	}
	if len(gp.Specialties) != 2 {
		t.Errorf("unexpected specialties: %v", gp.Specialties)
	}
	if gp.Experience == "" {
		t.Error("experience should not be empty")
	}
}

func TestBuildGeneratedProfileEmptyServices(t *testing.T) {
	gp := BuildGeneratedProfile(nil)
	if gp.Summary == "" {
		t.Error("summary should fall back to a generic template")
	}
	if len(gp.Skills) != 0 {
		t.Errorf("expected no skills, got %v", gp.Skills)
	}
}

func TestAddReview(t *testing.T) {
	p := Provider{}

	p.AddReview(4)
	if p.Rating.Count != 1 || p.Rating.Average != 4 {
		t.Fatalf("after first review: %+v", p.Rating)
	}

	p.AddReview(5)
	if p.Rating.Count != 2 {
		t.Fatalf("count = %d, want 2", p.Rating.Count)
	}
	if math.Abs(p.Rating.Average-4.5) > 1e-9 {
		t.Errorf("average = %v, want 4.5", p.Rating.Average)
	}

	p.AddReview(3)
	if math.Abs(p.Rating.Average-4.0) > 1e-9 {
		t.Errorf("average = %v, want 4.0", p.Rating.Average)
	}
}
