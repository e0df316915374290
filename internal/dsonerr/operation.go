package dsonerr

// Operation names the codec entry point an error was raised from.
type Operation int8

const (
	Unknown Operation = iota
	Serialize
	Deserialize
	Stringify
	Parse
	Clone
	Equal
	Marshal
	Unmarshal
)

func (o Operation) String() string {
	operations := map[Operation]string{
		Unknown:     "unknown",
		Serialize:   "serialize",
		Deserialize: "deserialize",
		Stringify:   "stringify",
		Parse:       "parse",
		Clone:       "clone",
		Equal:       "equal",
		Marshal:     "marshal",
		Unmarshal:   "unmarshal",
	}

	if str, ok := operations[o]; ok {
		return str
	}
	return "unknown"
}
