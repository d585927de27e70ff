package domain

import (
	"fmt"
	"strings"
)

// Knowledge is the tri-state answer to "would this player know the solution?".
// The zero value is not a valid Knowledge.
type Knowledge int

const (
	KnowsNo    Knowledge = iota + 1 // undetermined in every case considered
	KnowsMaybe                      // determined in some cases only
	KnowsYes                        // determined in every case considered
)

// Valid reports whether k is one of KnowsNo, KnowsMaybe or KnowsYes.
func (k Knowledge) Valid() bool {
	return k >= KnowsNo && k <= KnowsYes
}

func (k Knowledge) String() string {
	switch k {
	case KnowsNo:
		return "no"
	case KnowsMaybe:
		return "maybe"
	case KnowsYes:
		return "yes"
	default:
		return fmt.Sprintf("Knowledge(%d)", int(k))
	}
}

// ParseKnowledge accepts no, maybe or yes in any case.
func ParseKnowledge(s string) (Knowledge, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no":
		return KnowsNo, nil
	case "maybe":
		return KnowsMaybe, nil
	case "yes":
		return KnowsYes, nil
	}
	return 0, fmt.Errorf("invalid knowledge %q: want no, maybe or yes", s)
}

func (k Knowledge) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid knowledge %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Knowledge) UnmarshalText(b []byte) error {
	v, err := ParseKnowledge(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
