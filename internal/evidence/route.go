package evidence

import "strings"

// triple keys the static routing table.
type triple struct {
	kra, criterion, sub string
}

// routes maps each known (KRA, criterion, sub-criterion) triple to its
// evidence type. KRA 2A research outputs (sub-criteria 1.x) are not listed
// here: Route collapses them into the unified research family before
// consulting the table.
var routes = map[triple]Type{
	{"1", "A", "1.1"}: TypeEvaluation,
	{"1", "A", "1.2"}: TypeEvaluation,

	{"1", "B", "1.1"}: TypeMaterialSole,
	{"1", "B", "1.2"}: TypeMaterialCo,
	{"1", "B", "1.3"}: TypeMaterialSole,
	{"1", "B", "1.4"}: TypeMaterialCo,
	{"1", "B", "1.5"}: TypeMaterialSole,
	{"1", "B", "1.6"}: TypeMaterialCo,
	{"1", "B", "1.7"}: TypeMaterialCo,
	{"1", "B", "1.8"}: TypeMaterialCo,

	{"1", "B", "2.1"}: TypeProgram,
	{"1", "B", "2.2"}: TypeProgram,

	{"1", "C", "1.1"}: TypeAdviser,
	{"1", "C", "1.2"}: TypePanel,
	{"1", "C", "2"}:   TypeMentor,

	{"2", "A", "2.1"}: TypeProjectLead,
	{"2", "A", "2.2"}: TypeProjectContributor,
	{"2", "A", "3.1"}: TypeCitationLocal,
	{"2", "A", "3.2"}: TypeCitationIntl,

	{"2", "B", "1.1.1"}: TypeInvention,
	{"2", "B", "1.1.2"}: TypeUtilityModel,
	{"2", "B", "1.1.3"}: TypeIndustrialDesign,
	{"2", "B", "1.2.1"}: TypeCommercialized,
	{"2", "B", "1.2.2"}: TypeCommercialized,
	{"2", "B", "2.1.1"}: TypeNewSoftware,
	{"2", "B", "2.1.2"}: TypeUpdatedSoftware,
	{"2", "B", "2.2.1"}: TypeBiologicalSole,
	{"2", "B", "2.2.2"}: TypeBiologicalCo,

	{"2", "C", "1.1.1"}: TypePerformingArt,
	{"2", "C", "1.1.2"}: TypePerformingArt,
	{"2", "C", "1.2"}:   TypeExhibition,
	{"2", "C", "1.3"}:   TypeJuriedDesign,
	{"2", "C", "1.4.1"}: TypeLiterary,
	{"2", "C", "1.4.2"}: TypeLiterary,
	{"2", "C", "1.4.3"}: TypeLiterary,
	{"2", "C", "1.4.4"}: TypeLiterary,
}

// Route maps a classification triple to its evidence type. Every KRA 2A
// sub-criterion under the "1." prefix routes to the unified research
// family regardless of its exact value. An unmapped triple returns
// TypeNone; downstream extraction is skipped, never failed.
func Route(kra, criterion, subCriterion string) Type {
	if kra == "2" && criterion == "A" && strings.HasPrefix(subCriterion, "1.") {
		return TypeResearch
	}

	if t, ok := routes[triple{kra, criterion, subCriterion}]; ok {
		return t
	}
	return TypeNone
}
