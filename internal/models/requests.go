package models

// Typed request bodies for every mutating operation. Each is validated at the
// handler boundary before any business rule runs.

// RegisterRequest is the body for POST /auth/registration.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,max=254,email"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
}

// ProfileUpdateRequest is the body for PUT/PATCH /auth/update. All three
// fields are required as a set; partial updates are rejected wholesale.
type ProfileUpdateRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,max=254,email"`
	Nickname string `json:"nickname" validate:"required,max=30"`
}

// PasswordChangeRequest is the body for PUT /auth/password-change.
type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password" validate:"required"`
	NewPassword  string `json:"new_password" validate:"required"`
	NewPassword2 string `json:"new_password2" validate:"required"`
}

// QuizGroupCreateRequest is the body for POST /quiz/quizgroup.
type QuizGroupCreateRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Subtitle    string `json:"subtitle" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// QuizGroupUpdateRequest is the body for PUT /quiz/quizgroup/:id. Nil fields
// were omitted from the request and keep their previous values.
type QuizGroupUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=100"`
	Subtitle    *string `json:"subtitle" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

// QuizCreateRequest is the body for POST /quiz/quiz.
type QuizCreateRequest struct {
	Question     string   `json:"question" validate:"required,max=500"`
	Answer       JSON     `json:"answer" validate:"required"`
	Tags         []string `json:"tags"`
	RelatedGroup *string  `json:"related_group"`
}

// QuizUpdateRequest is the body for PUT /quiz/quiz/:id. A nil Tags field
// leaves the association set untouched; a non-nil value replaces it in full.
// A nil RelatedGroup keeps the current group reference.
type QuizUpdateRequest struct {
	Question     *string   `json:"question" validate:"omitempty,max=500"`
	Answer       JSON      `json:"answer"`
	Tags         *[]string `json:"tags"`
	RelatedGroup *string   `json:"related_group"`
}
