package models

// CustomGoal is a user-authored goal template. Text may contain the
// NamePlaceholder token, substituted with a student's name when the template
// is applied by the UI layer.
type CustomGoal struct {
	ID      int64  `json:"id"`
	Subject string `json:"subject" validate:"required"`
	Text    string `json:"text" validate:"required"`
}

// NamePlaceholder is the token replaced by the student name when a custom
// goal template is instantiated.
const NamePlaceholder = "[name]"
