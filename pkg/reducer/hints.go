package reducer

import "strings"

// Hints tag fields by dotted path so reduction does not have to guess their
// encoding from the submitted values. When any hint is present only tagged
// fields are treated as selection maps.
type Hints struct {
	// Selections lists multi-select fields submitted as option -> bool maps.
	Selections []string `json:"selections,omitempty"`
	// Booleans lists boolean-select fields submitted as "true" / "false".
	Booleans []string `json:"booleans,omitempty"`
}

// IsZero reports whether no field is tagged.
func (h Hints) IsZero() bool {
	return len(h.Selections) == 0 && len(h.Booleans) == 0
}

type hintSet struct {
	selections map[string]struct{}
	booleans   map[string]struct{}
	// containers holds every dotted prefix of a tagged path.
	containers map[string]struct{}
}

func newHintSet(h Hints) *hintSet {
	if h.IsZero() {
		return nil
	}
	set := &hintSet{
		selections: make(map[string]struct{}, len(h.Selections)),
		booleans:   make(map[string]struct{}, len(h.Booleans)),
		containers: make(map[string]struct{}),
	}
	for _, path := range h.Selections {
		set.selections[path] = struct{}{}
		set.addContainers(path)
	}
	for _, path := range h.Booleans {
		set.booleans[path] = struct{}{}
		set.addContainers(path)
	}
	return set
}

func (s *hintSet) addContainers(path string) {
	for idx := strings.LastIndexByte(path, '.'); idx > 0; idx = strings.LastIndexByte(path, '.') {
		path = path[:idx]
		s.containers[path] = struct{}{}
	}
}

// encloses reports whether a tagged field lives below path.
func (s *hintSet) encloses(path string) bool {
	_, ok := s.containers[path]
	return ok
}

func (s *hintSet) selection(path string) bool {
	_, ok := s.selections[path]
	return ok
}

func (s *hintSet) boolean(path string) bool {
	_, ok := s.booleans[path]
	return ok
}
