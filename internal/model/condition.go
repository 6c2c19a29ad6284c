package model

// Condition is a human-friendly market state for a timestep.
// Keep these values stable; they are intended for CSV output.
type Condition string

const (
	ConditionShortage Condition = "SHORTAGE"
	ConditionCleared  Condition = "CLEARED"
	ConditionSurplus  Condition = "SURPLUS"
)

// ConditionFromExcess classifies excess demand D-S. Values within tol of zero
// count as cleared.
func ConditionFromExcess(excess, tol float64) Condition {
	switch {
	case excess > tol:
		return ConditionShortage
	case excess < -tol:
		return ConditionSurplus
	default:
		return ConditionCleared
	}
}
