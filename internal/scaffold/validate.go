package scaffold

// Reporter is the diagnostic channel validation failures are reported on.
type Reporter interface {
	Errorf(format string, args ...any)
}

// ValidateForCrud reports whether a model shape can drive CRUD generation.
// The checks run in a fixed order: an absent or unnamed shape fails
// silently, because whatever produced it already reported; a shape with no
// members and a shape with no identified primary key each fail with one
// diagnostic naming the model type.
func ValidateForCrud(model *ModelShapeDescriptor, reporter Reporter) bool {
	if model == nil || model.TypeName == "" {
		return false
	}

	if len(model.Members) == 0 {
		reporter.Errorf("model type %s has no members usable for generation", model.TypeName)
		return false
	}

	if model.PrimaryKeyName == "" {
		reporter.Errorf("no primary key found on model type %s", model.TypeName)
		return false
	}

	return true
}
