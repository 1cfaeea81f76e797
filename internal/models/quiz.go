package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSON stores an arbitrary JSON document in a text column. The answer payload
// shape is not constrained by this layer.
type JSON []byte

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("unsupported type %T for JSON column", value)
	}
	return nil
}

// MarshalJSON emits the stored document verbatim.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON keeps the raw document bytes. A literal null reads as unset,
// so a null answer can never replace a stored document.
func (j *JSON) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*j = nil
		return nil
	}
	*j = append((*j)[:0], data...)
	return nil
}

// Quiz is a single user-owned question with an arbitrary answer payload,
// optional tags and an optional group membership.
type Quiz struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Question       string     `json:"question" gorm:"type:varchar(500)"`
	Answer         JSON       `json:"answer" gorm:"type:text"`
	Tags           []Tag      `json:"-" gorm:"many2many:quiz_tags"`
	RelatedGroupID *string    `json:"-" gorm:"type:varchar(36);index"`
	RelatedGroup   *QuizGroup `json:"-" gorm:"foreignKey:RelatedGroupID;constraint:OnDelete:SET NULL"`
	IsChecked      bool       `json:"is_checked" gorm:"default:false"`
	CreatedByID    string     `json:"-" gorm:"type:varchar(36);index"`
	CreatedBy      User       `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// OwnerID implements Owned.
func (q *Quiz) OwnerID() string {
	return q.CreatedByID
}

// QuizView is the API representation of a quiz.
type QuizView struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Answer       JSON     `json:"answer"`
	IsChecked    bool     `json:"is_checked"`
	Tags         []string `json:"tags"`
	RelatedGroup string   `json:"related_group"`
	CreatedBy    string   `json:"created_by"`
}

// View renders the quiz for API responses. Tags, RelatedGroup and CreatedBy
// must be preloaded.
func (q *Quiz) View() QuizView {
	tagNames := make([]string, 0, len(q.Tags))
	for _, tag := range q.Tags {
		tagNames = append(tagNames, tag.Name)
	}
	view := QuizView{
		ID:        q.ID,
		Question:  q.Question,
		Answer:    q.Answer,
		IsChecked: q.IsChecked,
		Tags:      tagNames,
		CreatedBy: q.CreatedBy.Nickname,
	}
	if q.RelatedGroup != nil {
		view.RelatedGroup = q.RelatedGroup.Title
	}
	return view
}
