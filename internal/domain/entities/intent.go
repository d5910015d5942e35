package entities

// Profile carries user context forwarded to the remote ranker. The engine
// never interprets it.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Age      int    `json:"age,omitempty"`
	Location string `json:"location,omitempty"`
}

// Intent is what the user is in the mood for.
type Intent struct {
	Mood     string  `json:"mood"`
	Cravings string  `json:"cravings"`
	Profile  Profile `json:"profile"`
}
