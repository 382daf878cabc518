package enums

import "fmt"

// PersonType distinguishes the parties a transaction can be attributed to.
type PersonType string

const (
	PersonTypeCustomer  PersonType = "CUSTOMER"
	PersonTypeMiddleMan PersonType = "MIDDLE_MAN"
	PersonTypeBroker    PersonType = "BROKER"
)

var validPersonTypes = []PersonType{
	PersonTypeCustomer,
	PersonTypeMiddleMan,
	PersonTypeBroker,
}

// IsValid reports whether the value matches the canonical person type enum.
func (t PersonType) IsValid() bool {
	for _, candidate := range validPersonTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParsePersonType converts raw input into PersonType.
func ParsePersonType(value string) (PersonType, error) {
	for _, candidate := range validPersonTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid person type %q", value)
}
