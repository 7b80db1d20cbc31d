package progress

// MapType identifies the region map an entry is drawn on.
type MapType string

const (
	Europe   MapType = "europe"
	Americus MapType = "americus"
	Zipangu  MapType = "zipangu"
)

// KnownMapTypes returns the built-in maps in display order.
func KnownMapTypes() []MapType {
	return []MapType{Europe, Americus, Zipangu}
}

// DisplayName returns a human-readable name for a map type.
func (m MapType) DisplayName() string {
	switch m {
	case Europe:
		return "Europe"
	case Americus:
		return "Americus"
	case Zipangu:
		return "Zipangu"
	default:
		return string(m)
	}
}

// Entry is one quest a learner has attempted on a given map.
type Entry struct {
	QuestID  string  // element id of the quest's region in the map document
	MapType  MapType // map the quest is drawn on
	Attempts int     // recorded attempts, never negative
}
