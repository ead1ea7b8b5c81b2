package domain

// Animal is the identity record an instance reports about itself.
// It is regenerated from static configuration on every request and is
// never mutated after construction.
type Animal struct {
	// ID is derived as "domain:normalized-name" from the instance URL
	// and the animal name.
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Description string `json:"description"`
	InstanceURL string `json:"instance_url"`

	// Optional descriptive fields.
	Habitat string `json:"habitat,omitempty"`
	Diet    string `json:"diet,omitempty"`
	FunFact string `json:"fun_fact,omitempty"`
	Emoji   string `json:"emoji,omitempty"`
	Color   string `json:"color,omitempty"`
}
