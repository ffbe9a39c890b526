package model

import "time"

// Range is a deployed instance of a range template.
type Range struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	TemplateID string     `json:"template_id"`
	Name       string     `json:"name"`
	Provider   Provider   `json:"provider"`
	Region     Region     `json:"region"`
	State      RangeState `json:"state"`

	// Object storage keys for the terraform state file and rendered plan.
	StateKey string `json:"-"`
	PlanKey  string `json:"-"`
	// Optional README rendered for the range.
	ReadmeKey string `json:"-"`

	DeployedAt time.Time `json:"deployed_at"`
}
