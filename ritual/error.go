package ritual

// MisfireMessage is carried by the spell error every ritual raises.
const MisfireMessage = "Spell misfire!"

// SpellError is the only failure a ritual intercepts.
type SpellError struct {
	Message string
}

func (e *SpellError) Error() string {
	return e.Message
}

// Misfire always fails.
func Misfire() error {
	return &SpellError{Message: MisfireMessage}
}
