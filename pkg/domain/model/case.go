package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Case is one fixed (symptoms, diagnosis) pair of the reference set
type Case struct {
	Symptoms  string `toml:"symptoms" json:"symptoms"`
	Diagnosis string `toml:"diagnosis" json:"diagnosis"`
}

// Validate checks that both texts are present
func (c *Case) Validate() error {
	if c.Symptoms == "" {
		return goerr.New("case symptoms are required", goerr.V("diagnosis", c.Diagnosis))
	}
	if c.Diagnosis == "" {
		return goerr.New("case diagnosis is required", goerr.V("symptoms", c.Symptoms))
	}
	return nil
}

// CaseSet is the ordered reference set. Order is significant: ties resolve to the earliest case.
type CaseSet []Case

// Validate checks that the set is non-empty and every case is valid
func (s CaseSet) Validate() error {
	if len(s) == 0 {
		return goerr.New("case set is empty")
	}
	for i := range s {
		if err := s[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid case", goerr.V("index", i))
		}
	}
	return nil
}

// Symptoms returns the symptom texts in load order
func (s CaseSet) Symptoms() []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Symptoms
	}
	return out
}
