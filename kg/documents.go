package kg

// documentNames maps graph group ids to the source documents indexed
// during ingestion. Citations resolve through this table.
var documentNames = map[string]string{
	"durian_pest_management_guide":    "Durian Pest Management Guide",
	"durian_disease_compendium":       "Durian Disease Compendium",
	"phytophthora_field_handbook":     "Phytophthora Field Handbook for Durian Orchards",
	"durian_ipm_handbook":             "Integrated Pest Management Handbook for Durian",
	"stem_borer_identification_notes": "Durian Stem Borer Identification Notes",
	"leaf_disorder_diagnostic_chart":  "Durian Leaf Disorder Diagnostic Chart",
	"orchard_sanitation_manual":       "Durian Orchard Sanitation Manual",
}

// ResolveDocumentName returns the citable name of the document a group
// id belongs to, or "" when the id is unknown.
func ResolveDocumentName(groupID string) string {
	return documentNames[groupID]
}

// DocumentNames returns a copy of the group id to document name table.
func DocumentNames() map[string]string {
	out := make(map[string]string, len(documentNames))
	for k, v := range documentNames {
		out[k] = v
	}
	return out
}
