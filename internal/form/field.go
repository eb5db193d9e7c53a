package form

// Field names one of the seven soil/climate measurements.
type Field string

const (
	Nitrogen    Field = "nitrogen"
	Phosphorus  Field = "phosphorus"
	Potassium   Field = "potassium"
	Temperature Field = "temperature"
	Humidity    Field = "humidity"
	PH          Field = "ph"
	Rainfall    Field = "rainfall"
)

// NumFields is the fixed number of measurements on the form.
const NumFields = 7

// Spec is the static description of a field. Min and Max are advisory:
// they drive the input hint, never submission.
type Spec struct {
	Field Field
	Label string
	Unit  string
	Min   float64
	Max   float64
}

// InRange reports whether v lies within the advisory [Min, Max] range.
func (s Spec) InRange(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// specs is indexed by field position; order is the canonical form order.
var specs = [NumFields]Spec{
	{Field: Nitrogen, Label: "Nitrogen", Unit: "kg/ha", Min: 0, Max: 300},
	{Field: Phosphorus, Label: "Phosphorus", Unit: "kg/ha", Min: 0, Max: 200},
	{Field: Potassium, Label: "Potassium", Unit: "kg/ha", Min: 0, Max: 400},
	{Field: Temperature, Label: "Temperature", Unit: "°C", Min: 10, Max: 45},
	{Field: Humidity, Label: "Humidity", Unit: "%", Min: 0, Max: 100},
	{Field: PH, Label: "Soil pH", Unit: "pH", Min: 4, Max: 9},
	{Field: Rainfall, Label: "Rainfall", Unit: "mm", Min: 0, Max: 3000},
}

// Specs returns the seven field specs in canonical order.
func Specs() []Spec {
	out := make([]Spec, NumFields)
	copy(out, specs[:])
	return out
}

// Fields returns the seven field names in canonical order.
func Fields() []Field {
	out := make([]Field, NumFields)
	for i, s := range specs {
		out[i] = s.Field
	}
	return out
}

// SpecFor returns the spec for f.
func SpecFor(f Field) (Spec, bool) {
	i := indexOf(f)
	if i < 0 {
		return Spec{}, false
	}
	return specs[i], true
}

func indexOf(f Field) int {
	for i, s := range specs {
		if s.Field == f {
			return i
		}
	}
	return -1
}
