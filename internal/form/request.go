package form

import (
	"fmt"
	"math"
	"strconv"
)

// MissingFieldError indicates a required field was left blank.
type MissingFieldError struct {
	Field Field
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Please enter %s", e.Field)
}

// InvalidFieldError indicates a field passed the input filter but does not
// hold a finite number (for example a lone ".").
type InvalidFieldError struct {
	Field Field
	Value string
	Err   error
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Please enter a valid %s", e.Field)
}

func (e *InvalidFieldError) Unwrap() error { return e.Err }

// Request is the wire payload for a prediction: exactly the seven fields as
// floating-point numbers.
type Request struct {
	Nitrogen    float64 `json:"nitrogen"`
	Phosphorus  float64 `json:"phosphorus"`
	Potassium   float64 `json:"potassium"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Validate returns the first empty field in canonical order, then the first
// unparseable one. Ranges are not checked.
func Validate(v Values) error {
	_, err := parseAll(v)
	return err
}

// BuildRequest validates v and converts it into a Request.
func BuildRequest(v Values) (Request, error) {
	nums, err := parseAll(v)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Nitrogen:    nums[0],
		Phosphorus:  nums[1],
		Potassium:   nums[2],
		Temperature: nums[3],
		Humidity:    nums[4],
		PH:          nums[5],
		Rainfall:    nums[6],
	}, nil
}

// Get returns the value of f in the request.
func (r Request) Get(f Field) float64 {
	switch f {
	case Nitrogen:
		return r.Nitrogen
	case Phosphorus:
		return r.Phosphorus
	case Potassium:
		return r.Potassium
	case Temperature:
		return r.Temperature
	case Humidity:
		return r.Humidity
	case PH:
		return r.PH
	case Rainfall:
		return r.Rainfall
	}
	return math.NaN()
}

func parseAll(v Values) ([NumFields]float64, error) {
	var nums [NumFields]float64
	for i, s := range specs {
		if v.raw[i] == "" {
			return nums, &MissingFieldError{Field: s.Field}
		}
	}
	for i, s := range specs {
		raw := v.raw[i]
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nums, &InvalidFieldError{Field: s.Field, Value: raw, Err: err}
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nums, &InvalidFieldError{Field: s.Field, Value: raw, Err: fmt.Errorf("not a finite number")}
		}
		nums[i] = n
	}
	return nums, nil
}
