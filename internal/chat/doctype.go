package chat

// Colombian identity document type labels.
var documentTypeLabels = map[int]string{
	1: "CC",
	2: "CE",
	3: "TI",
	4: "PA",
	5: "RC",
	6: "MS",
	7: "AS",
	8: "CD",
}

// DocumentTypeLabel maps a document-type identifier to its short label.
// Unknown identifiers fall back to "CC" rather than failing.
func DocumentTypeLabel(documentTypeId int) string {
	if label, ok := documentTypeLabels[documentTypeId]; ok {
		return label
	}
	return "CC"
}
