// Package triage categorizes the files of one upload, selects the
// classification anchor, builds the combined text the extractors run
// over, and applies the deterministic classification correction rule.
// The heuristics are pure functions over the artifact text and filename.
package triage

import (
	"fmt"
	"strings"

	"github.com/facultymetrics/dossier/internal/classifier"
)

// FileArtifact is the text and metadata of one source file, produced
// once by the source adapter and immutable through the pipeline run.
type FileArtifact struct {
	Text      string
	PageCount int
	FileName  string
	FileID    string
}

// Category is a file's triage classification.
type Category string

const (
	CategoryCertificate Category = "certificate"
	CategoryResearch    Category = "research"
	CategoryResolution  Category = "resolution"
	CategorySupporting  Category = "supporting"
)

// Categorize assigns a triage category by ordered keyword heuristics on
// the lower-cased filename and text. Certificate wins over research,
// research over resolution.
func Categorize(artifact FileArtifact) Category {
	name := strings.ToLower(artifact.FileName)
	text := strings.ToLower(artifact.Text)

	if strings.Contains(name, "certifi") || strings.Contains(text, "this is to certify") {
		return CategoryCertificate
	}
	if strings.Contains(text, "abstract") && strings.Contains(text, "introduction") && len(text) > 1000 {
		return CategoryResearch
	}
	if strings.Contains(text, "resolution") && (strings.Contains(text, "board") || strings.Contains(text, "no.")) {
		return CategoryResolution
	}
	return CategorySupporting
}

// SelectAnchor picks the classification anchor for an upload: the first
// certificate, else the first research document. Resolutions and plain
// supporting files never anchor; with no qualifying file the first file
// in upload order anchors. Returns the anchor's index, or -1 for an
// empty batch.
func SelectAnchor(artifacts []FileArtifact) int {
	if len(artifacts) == 0 {
		return -1
	}

	research := -1
	for i, artifact := range artifacts {
		switch Categorize(artifact) {
		case CategoryCertificate:
			return i
		case CategoryResearch:
			if research == -1 {
				research = i
			}
		}
	}
	if research != -1 {
		return research
	}
	return 0
}

// Combine concatenates every artifact into one combined text, anchor
// first and the rest in upload order, each under a filename header
// marker. Returns the combined text and the summed page count.
func Combine(artifacts []FileArtifact, anchor int) (string, int) {
	var (
		b     strings.Builder
		pages int
	)

	write := func(artifact FileArtifact) {
		fmt.Fprintf(&b, "===== %s =====\n%s\n\n", artifact.FileName, artifact.Text)
		pages += artifact.PageCount
	}

	if anchor >= 0 && anchor < len(artifacts) {
		write(artifacts[anchor])
	}
	for i, artifact := range artifacts {
		if i == anchor {
			continue
		}
		write(artifact)
	}
	return b.String(), pages
}

// Correction records an applied classification correction for auditing.
type Correction struct {
	Applied              bool
	OriginalCriterion    string
	OriginalSubCriterion string
}

// programKeywords flag anchor text describing curricular program work
// that the classifier systematically files under the wrong criterion.
var programKeywords = []string{"degree", "program", "curriculum"}

// Correct applies the program-leadership correction rule: a KRA 1 result
// whose anchor text mentions curricular program work is forced to
// criterion B, sub-criterion 2.1. Applied at most once, before routing.
func Correct(result classifier.Result, anchorText string) (classifier.Result, Correction) {
	if result.PrimaryKRA != "1" || result.SubCriterion == "2.1" {
		return result, Correction{}
	}

	text := strings.ToLower(anchorText)
	for _, keyword := range programKeywords {
		if strings.Contains(text, keyword) {
			audit := Correction{
				Applied:              true,
				OriginalCriterion:    result.Criterion,
				OriginalSubCriterion: result.SubCriterion,
			}
			result.Criterion = "B"
			result.SubCriterion = "2.1"
			return result, audit
		}
	}
	return result, Correction{}
}
