package textmatch_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/facultymetrics/dossier/internal/textmatch"
)

func TestSplitFacultyName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
		wantOK    bool
	}{
		{"two parts", "Maria Santos", "Maria", "Santos", true},
		{"three parts", "Juan Dela Cruz", "Juan Dela", "Cruz", true},
		{"extra whitespace", "  Maria   Santos  ", "Maria", "Santos", true},
		{"single part", "Maria", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := textmatch.SplitFacultyName(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if first != tt.wantFirst || last != tt.wantLast {
				t.Errorf("got (%q, %q), want (%q, %q)", first, last, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestNameVariants(t *testing.T) {
	variants := textmatch.NameVariants("Juan Dela", "Cruz")

	wanted := []string{
		"juan dela cruz",
		"cruz, juan dela",
		"cruz",
		"juan d. cruz",
		"juan cruz",
		"cruz, juan d.",
		"j. cruz",
		"cruz, j.",
	}
	for _, w := range wanted {
		if !slices.Contains(variants, w) {
			t.Errorf("variants missing %q: %v", w, variants)
		}
	}

	if slices.Contains(variants, "") {
		t.Error("variants contain an empty string")
	}
	for i := 1; i < len(variants); i++ {
		if variants[i] == variants[i-1] {
			t.Errorf("duplicate variant %q", variants[i])
		}
	}
}

func TestSections(t *testing.T) {
	text := "Certification of completion\n" +
		"for the study conducted.\n" +
		"Approved by:\n" +
		"Dr. Reyes\n" +
		"Panel of Examiners\n" +
		"Dr. Santos\n"

	sections := textmatch.Sections(text, []string{"approved by", "panel"})

	intro, ok := sections[textmatch.IntroSection]
	if !ok {
		t.Fatal("intro section missing")
	}
	if !strings.Contains(intro, "Certification of completion") {
		t.Errorf("intro = %q", intro)
	}
	if strings.Contains(intro, "Dr. Reyes") {
		t.Errorf("intro absorbed a later section: %q", intro)
	}

	approved, ok := sections["approved by"]
	if !ok {
		t.Fatal("approved by section missing")
	}
	if !strings.Contains(approved, "Approved by:") || !strings.Contains(approved, "Dr. Reyes") {
		t.Errorf("approved by = %q", approved)
	}
	if strings.Contains(approved, "Dr. Santos") {
		t.Errorf("approved by absorbed the panel section: %q", approved)
	}

	panel, ok := sections["panel"]
	if !ok {
		t.Fatal("panel section missing")
	}
	if !strings.Contains(panel, "Dr. Santos") {
		t.Errorf("panel = %q", panel)
	}
}

func TestSectionOrWhole(t *testing.T) {
	sections := map[string]string{"panel": "panel block", "committee": "committee block"}

	if got := textmatch.SectionOrWhole(sections, "whole", "adviser", "panel"); got != "panel block" {
		t.Errorf("got %q, want the first present section", got)
	}
	if got := textmatch.SectionOrWhole(sections, "whole", "adviser", "signatures"); got != "whole" {
		t.Errorf("got %q, want fallback to whole text", got)
	}
}

func TestFindNameNearRole(t *testing.T) {
	text := "Acknowledgments mention Maria Santos early on.\n" +
		strings.Repeat("filler line of unrelated words\n", 20) +
		"Maria Santos, Thesis Adviser\n"

	variant, context, ok := textmatch.FindNameNearRole(
		text,
		[]string{"maria santos"},
		[]string{`thesis[-\s]?adviser`},
	)
	if !ok {
		t.Fatal("expected a match")
	}
	if variant != "maria santos" {
		t.Errorf("variant = %q", variant)
	}
	if !strings.Contains(strings.ToLower(context), "thesis adviser") {
		t.Errorf("context window misses the role keyword: %q", context)
	}
}

func TestFindNameNearRoleOutsideWindow(t *testing.T) {
	// Name and role keyword more than the window apart never match.
	text := "Maria Santos\n" + strings.Repeat("x", 300) + "\nThesis Adviser"

	_, _, ok := textmatch.FindNameNearRole(
		text,
		[]string{"maria santos"},
		[]string{`thesis[-\s]?adviser`},
	)
	if ok {
		t.Error("matched a role keyword outside the proximity window")
	}
}

func TestAcademicYear(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"explicit ay", "completed in A.Y. 2022-2023", "2022-2023", true},
		{"explicit ay without periods", "AY 2021 - 2022", "2021-2022", true},
		{"bare consecutive range", "school year 2020-2021 cohort", "2020-2021", true},
		{"non-consecutive range rejected", "pages 2010-2015", "", false},
		{"single year expands", "defended in 2023", "2022-2023", true},
		{"out-of-range year ignored", "founded in 1998", "", false},
		{"nothing plausible", "no dates here", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := textmatch.AcademicYear(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProjectLevel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"special project", "completed the Special Project requirement", "SP", true},
		{"capstone", "capstone project defense", "CP", true},
		{"undergraduate thesis", "undergraduate thesis defense", "UT", true},
		{"masters thesis", "Master's Thesis titled", "MT", true},
		{"masters abbreviation", "defense of the MT manuscript", "MT", true},
		{"dissertation", "doctoral dissertation defense", "DD", true},
		{"specific beats abbreviation", "special project for the MT cohort", "SP", true},
		{"no level keyword", "general completion certificate", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := textmatch.ProjectLevel(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
