package enums

import "fmt"

// FlexibleGradeMode selects how a grade variation is purchased.
type FlexibleGradeMode string

const (
	FlexibleGradeModeFull   FlexibleGradeMode = "full"
	FlexibleGradeModeHalf   FlexibleGradeMode = "half"
	FlexibleGradeModeCustom FlexibleGradeMode = "custom"
)

var validFlexibleGradeModes = []FlexibleGradeMode{
	FlexibleGradeModeFull,
	FlexibleGradeModeHalf,
	FlexibleGradeModeCustom,
}

// String implements fmt.Stringer.
func (f FlexibleGradeMode) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FlexibleGradeMode.
func (f FlexibleGradeMode) IsValid() bool {
	for _, candidate := range validFlexibleGradeModes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFlexibleGradeMode converts raw input into a FlexibleGradeMode.
func ParseFlexibleGradeMode(value string) (FlexibleGradeMode, error) {
	for _, candidate := range validFlexibleGradeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid flexible grade mode %q", value)
}
