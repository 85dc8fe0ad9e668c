package domain

// Entry is one vocabulary record. Frequency is an abstract relative weight.
type Entry struct {
	Word      string `json:"word" yaml:"word" mapstructure:"word"`
	Frequency int    `json:"frequency" yaml:"frequency" mapstructure:"frequency"`
}
