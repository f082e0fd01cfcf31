package entry

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date stamped on every submitted Entry.
const DateLayout = "2006-01-02"

// Entry represents one recorded set of health metrics.
type Entry struct {
	Weight         string `json:"weight"`
	Exercise       string `json:"exercise"`
	Sleep          string `json:"sleep"`
	Water          string `json:"water"`
	HeartRate      string `json:"heartRate"`
	BloodPressure  string `json:"bloodPressure"`
	BloodSugar     string `json:"bloodSugar"`
	CaloriesBurned string `json:"caloriesBurned"`
	Date           string `json:"date"`
}

// Field identifies one user-editable metric of an Entry.
type Field int

const (
	Weight Field = iota
	Exercise
	Sleep
	Water
	HeartRate
	BloodPressure
	BloodSugar
	CaloriesBurned
)

// Fields lists the user-editable fields in form order.
var Fields = []Field{
	Weight,
	Exercise,
	Sleep,
	Water,
	HeartRate,
	BloodPressure,
	BloodSugar,
	CaloriesBurned,
}

var fieldInfo = [...]struct {
	name   string
	label  string
	column string
}{
	Weight:         {"weight", "Weight", "Weight"},
	Exercise:       {"exercise", "Exercise Duration (minutes)", "Exercise Duration"},
	Sleep:          {"sleep", "Sleep (hours)", "Sleep"},
	Water:          {"water", "Water Intake (liters)", "Water Intake"},
	HeartRate:      {"heartRate", "Heart Rate (bpm)", "Heart Rate"},
	BloodPressure:  {"bloodPressure", "Blood Pressure (mmHg)", "Blood Pressure"},
	BloodSugar:     {"bloodSugar", "Blood Sugar Levels (mg/dL)", "Blood Sugar Levels"},
	CaloriesBurned: {"caloriesBurned", "Calories Burned", "Calories Burned"},
}

func (f Field) valid() bool {
	return f >= Weight && f <= CaloriesBurned
}

// Name returns the JSON key of the field.
func (f Field) Name() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldInfo[f].name
}

func (f Field) String() string {
	return f.Name()
}

// Label returns the form label, including the unit where there is one.
func (f Field) Label() string {
	if !f.valid() {
		return f.Name()
	}
	return fieldInfo[f].label
}

// Column returns the history table header for the field.
func (f Field) Column() string {
	if !f.valid() {
		return f.Name()
	}
	return fieldInfo[f].column
}

// Numeric reports whether the field is entered as a number.
// Blood pressure is free text ("120/80").
func (f Field) Numeric() bool {
	return f.valid() && f != BloodPressure
}

// ParseField resolves a JSON key to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if fieldInfo[f].name == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}

func (e *Entry) ptr(f Field) *string {
	switch f {
	case Weight:
		return &e.Weight
	case Exercise:
		return &e.Exercise
	case Sleep:
		return &e.Sleep
	case Water:
		return &e.Water
	case HeartRate:
		return &e.HeartRate
	case BloodPressure:
		return &e.BloodPressure
	case BloodSugar:
		return &e.BloodSugar
	case CaloriesBurned:
		return &e.CaloriesBurned
	}
	return nil
}

// Get returns the value of f, or "" for an unknown field.
func (e Entry) Get(f Field) string {
	if p := e.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set overwrites the value of f. Unknown fields are ignored.
func (e *Entry) Set(f Field, value string) {
	if p := e.ptr(f); p != nil {
		*p = value
	}
}

// Missing returns the empty fields in form order.
func (e Entry) Missing() []Field {
	var missing []Field
	for _, f := range Fields {
		if e.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Stamp returns the calendar date of t in UTC.
func Stamp(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
