package solver

import (
	"fmt"

	"svw.info/cheryl/internal/domain"
)

// Knows reports whether a player whose information leaves exactly the
// compatible candidates open has determined the answer.
func Knows(compatible []domain.Candidate) domain.Knowledge {
	if len(compatible) == 1 {
		return domain.KnowsYes
	}
	return domain.KnowsNo
}

// Aggregate combines the knowledge of several possible cases: yes if every
// case is yes, no if every case is no, maybe otherwise. No cases at all is
// vacuously yes. Aggregate panics on an invalid Knowledge.
func Aggregate(cases ...domain.Knowledge) domain.Knowledge {
	allYes, allNo := true, true
	for i, k := range cases {
		if !k.Valid() {
			panic(fmt.Sprintf("solver: invalid knowledge %d in case %d", int(k), i))
		}
		if k != domain.KnowsYes {
			allYes = false
		}
		if k != domain.KnowsNo {
			allNo = false
		}
	}
	switch {
	case allYes:
		return domain.KnowsYes
	case allNo:
		return domain.KnowsNo
	default:
		return domain.KnowsMaybe
	}
}
