package prestapp

import "log/slog"

// A User is an applicant who signed up through the identity provider.
//
// Email doubles as the identity provider's username
// and as the link between a User and their Loans.
// A User is created on sign-up, updated through profile edits, and never deleted.
type User struct {
	Model
	Email       string `json:"email" gorm:"uniqueIndex"`
	ExternalID  string `json:"externalId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// HasAccess asserts whether the User may access authenticated resources.
func (u User) HasAccess() bool { return u.Exists() && u.Email != "" }

// GetID exposes the User's ID for logging.
func (u User) GetID() uint { return u.ID }

// GetEmail exposes the User's email for logging.
func (u User) GetEmail() string { return u.Email }

// LogValue implements [log/slog.LogValuer], omitting contact details.
func (u User) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("id", uint64(u.ID)),
		slog.String("email", u.Email),
		slog.Attr{Key: "phoneNumber", Value: MaskedLogValue},
	)
}
