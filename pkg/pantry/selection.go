package pantry

// Selection tracks which ingredient ids are chosen for recipe generation.
// Membership is idempotent and purely in memory.
type Selection map[string]struct{}

func NewSelection() Selection {
	return make(Selection)
}

func (s Selection) Select(id string, included bool) {
	if included {
		s[id] = struct{}{}
	} else {
		delete(s, id)
	}
}

func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Selection) Len() int {
	return len(s)
}
