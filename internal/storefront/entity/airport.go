package entity

type FieldKind string

const (
	FieldOrigin      FieldKind = "origin"
	FieldDestination FieldKind = "destination"
)

func (k FieldKind) Valid() bool {
	return k == FieldOrigin || k == FieldDestination
}

type Airport struct {
	ID          int
	Code        string
	Name        string
	City        string
	Country     string
	Description string
}

type Airline struct {
	Code string
	Name string
	Logo string
}
