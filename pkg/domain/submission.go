package domain

import "time"

// AnonymousIdentity is the fallback when no identity claim is available.
const AnonymousIdentity = "unknown"

// IdentityClaims are the optional identity fields an identity
// collaborator can expose.
type IdentityClaims struct {
	PreferredName string `json:"preferredName,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
}

// Display picks the first available claim in priority order
// (preferredName, email, name), falling back to AnonymousIdentity.
// Safe on a nil receiver.
func (c *IdentityClaims) Display() string {
	if c == nil {
		return AnonymousIdentity
	}
	for _, v := range []string{c.PreferredName, c.Email, c.Name} {
		if v != "" {
			return v
		}
	}
	return AnonymousIdentity
}

// Submission is the final payload handed to the persistence collaborator.
type Submission struct {
	ID          string      `json:"id"`
	SurveyID    string      `json:"surveyId"`
	SurveyTitle string      `json:"surveyTitle"`
	Identity    string      `json:"identity"`
	CompletedAt time.Time   `json:"completedAt"`
	Responses   ResponseSet `json:"responses"`
}
