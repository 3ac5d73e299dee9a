package types

import "strings"

// Application statuses.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// CreateJobRequest is a recruiter's new job posting. Skills is the
// comma-separated list typed into the posting form.
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location,omitempty" validate:"max=200"`
	Skills      string `json:"skills,omitempty"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// SkillNames splits Skills on commas and returns the non-empty, trimmed,
// lower-cased names in order of first appearance.
func (r *CreateJobRequest) SkillNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, part := range strings.Split(r.Skills, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// UpdateApplicationStatusRequest is a recruiter's decision on an application.
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// Validate validates the UpdateApplicationStatusRequest using the validator.
func (r *UpdateApplicationStatusRequest) Validate() error {
	return validate.Struct(r)
}

// Sort orders for the careers listing.
const (
	SortByDate  = "date"
	SortByMatch = "match"
)
