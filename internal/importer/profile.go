package importer

// Profile describes the header of a supported cost spreadsheet export.
// Adding a layout is adding an entry to profiles.
type Profile struct {
	Name      string
	NameCol   string
	AmountCol string
	TypeCol   string
	NoteCol   string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.AmountCol, p.TypeCol}
}

var profiles = []Profile{
	{
		Name:      "es",
		NameCol:   "Nombre",
		AmountCol: "Monto ARS",
		TypeCol:   "Tipo",
		NoteCol:   "Observación",
	},
	{
		Name:      "en",
		NameCol:   "Name",
		AmountCol: "Amount ARS",
		TypeCol:   "Type",
		NoteCol:   "Note",
	},
}
