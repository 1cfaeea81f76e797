package models

import "time"

// QuizGroup is a user-owned collection of quizzes. Titles are unique across
// all groups, not per owner.
type QuizGroup struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string    `json:"title" gorm:"uniqueIndex;type:varchar(100)"`
	Subtitle    string    `json:"subtitle" gorm:"type:varchar(200)"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	CreatedByID string    `json:"-" gorm:"type:varchar(36);index"`
	CreatedBy   User      `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID implements Owned.
func (g *QuizGroup) OwnerID() string {
	return g.CreatedByID
}

// QuizGroupView is the API representation of a quiz group.
type QuizGroupView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

// View renders the group for API responses. CreatedBy must be preloaded.
func (g *QuizGroup) View() QuizGroupView {
	return QuizGroupView{
		ID:          g.ID,
		Title:       g.Title,
		Subtitle:    g.Subtitle,
		Description: g.Description,
		CreatedBy:   g.CreatedBy.Nickname,
	}
}
