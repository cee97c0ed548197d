package dataset

// Known column names of the diabetes risk indicator dataset.
const (
	ColPregnancies              = "Pregnancies"
	ColGlucose                  = "Glucose"
	ColBloodPressure            = "BloodPressure"
	ColSkinThickness            = "SkinThickness"
	ColInsulin                  = "Insulin"
	ColBMI                      = "BMI"
	ColDiabetesPedigreeFunction = "DiabetesPedigreeFunction"
	ColAge                      = "Age"
	ColOutcome                  = "Outcome"
)

// ColumnSpec declares how a known column is parsed.
type ColumnSpec struct {
	Name string
	Kind Kind
	// Binary columns only accept 0 and 1.
	Binary bool
}

// Schema is the fixed, ordered header set of the dataset.
var Schema = []ColumnSpec{
	{Name: ColPregnancies, Kind: KindInteger},
	{Name: ColGlucose, Kind: KindInteger},
	{Name: ColBloodPressure, Kind: KindInteger},
	{Name: ColSkinThickness, Kind: KindInteger},
	{Name: ColInsulin, Kind: KindInteger},
	{Name: ColBMI, Kind: KindFloat},
	{Name: ColDiabetesPedigreeFunction, Kind: KindFloat},
	{Name: ColAge, Kind: KindInteger},
	{Name: ColOutcome, Kind: KindInteger, Binary: true},
}

// ZeroSentinelColumns are the measurements where 0 is not physically possible
// and marks a missing reading.
var ZeroSentinelColumns = []string{
	ColGlucose,
	ColBloodPressure,
	ColSkinThickness,
	ColInsulin,
	ColBMI,
}

// LookupColumnSpec returns the schema entry for name.
func LookupColumnSpec(name string) (ColumnSpec, bool) {
	for _, spec := range Schema {
		if spec.Name == name {
			return spec, true
		}
	}
	return ColumnSpec{}, false
}

// SchemaColumnNames returns the known column names in canonical order.
func SchemaColumnNames() []string {
	names := make([]string, len(Schema))
	for i, spec := range Schema {
		names[i] = spec.Name
	}
	return names
}
