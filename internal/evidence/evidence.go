// Package evidence defines the canonical evidence-type tags, the routing
// from classifier output to a tag, and the extracted-item container shared
// by the extraction strategies.
package evidence

// Type is the canonical tag selecting which extraction and scoring
// strategy applies to a document. Types are derived by the router, never
// taken as input.
type Type string

// TypeNone marks a classification triple with no mapped evidence family.
// Extraction is skipped for it; this is not an error.
const TypeNone Type = ""

// Evidence types per KRA criterion.
const (
	TypeEvaluation Type = "kra1a_evaluation"

	TypeMaterialSole Type = "kra1b_sole"
	TypeMaterialCo   Type = "kra1b_co"
	TypeProgram      Type = "kra1b_program"

	TypeAdviser Type = "kra1c_adviser"
	TypePanel   Type = "kra1c_panel"
	TypeMentor  Type = "kra1c_mentor"

	TypeResearch           Type = "kra2a_research"
	TypeProjectLead        Type = "kra2a_research_to_project_lead"
	TypeProjectContributor Type = "kra2a_research_to_project_contributor"
	TypeCitationLocal      Type = "kra2a_citation_local"
	TypeCitationIntl       Type = "kra2a_citation_international"

	TypeInvention        Type = "kra2b_invention"
	TypeUtilityModel     Type = "kra2b_utility"
	TypeIndustrialDesign Type = "kra2b_industrial"
	TypeCommercialized   Type = "kra2b_commercialized"
	TypeNewSoftware      Type = "kra2b_new_software"
	TypeUpdatedSoftware  Type = "kra2b_updated_software"
	TypeBiologicalSole   Type = "kra2b_biological_sole"
	TypeBiologicalCo     Type = "kra2b_biological_co"

	TypePerformingArt Type = "kra2c_performing_art"
	TypeExhibition    Type = "kra2c_exhibition"
	TypeJuriedDesign  Type = "kra2c_juried_design"
	TypeLiterary      Type = "kra2c_literary"
)

// Item is one extracted evidence record. Kind and the optional fields are
// strategy-specific; TotalScore always carries the item's contribution to
// the upload score. Items are immutable once produced.
type Item struct {
	Kind                string  `json:"type"`
	Title               string  `json:"title,omitempty"`
	AcademicYear        string  `json:"academic_year,omitempty"`
	Level               string  `json:"level,omitempty"`
	Count               int     `json:"count,omitempty"`
	Role                string  `json:"role,omitempty"`
	Subtype             string  `json:"subtype,omitempty"`
	Scope               string  `json:"scope,omitempty"`
	Stage               string  `json:"stage,omitempty"`
	AuthorMode          string  `json:"author_mode,omitempty"`
	Journal             string  `json:"journal,omitempty"`
	Reviewer            string  `json:"reviewer,omitempty"`
	Indexing            string  `json:"indexing,omitempty"`
	DatePublished       string  `json:"date_published,omitempty"`
	ProgramName         string  `json:"program_name,omitempty"`
	ProgramAction       string  `json:"program_action,omitempty"`
	BoardResolution     string  `json:"board_resolution,omitempty"`
	SemesterAY          string  `json:"semester_ay,omitempty"`
	EvaluationType      string  `json:"evaluation_type,omitempty"`
	EquivalentPercent   string  `json:"equivalent_percentage,omitempty"`
	MatchedName         string  `json:"matched_name,omitempty"`
	MatchedContext      string  `json:"context_found_in,omitempty"`
	ContributionPercent float64 `json:"contribution_percent"`
	TotalScore          float64 `json:"total_score"`
}
