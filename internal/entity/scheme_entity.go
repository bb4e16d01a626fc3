package entity

type Scheme struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Benefits    string   `json:"benefits" yaml:"benefits"`
	States      []string `json:"states" yaml:"states"`
	Link        string   `json:"link,omitempty" yaml:"link,omitempty"`
}

// AvailableEverywhere reports whether the scheme is national ("all" states).
func (s Scheme) AvailableEverywhere() bool {
	for _, st := range s.States {
		if st == "all" {
			return true
		}
	}
	return false
}
