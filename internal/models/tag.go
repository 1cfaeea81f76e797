package models

// Tag labels quizzes. Tags have no owner and are administered out of band;
// private tags never appear in public listings and cannot be attached to a
// quiz through the standard mutation path.
type Tag struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string `json:"name" gorm:"uniqueIndex;type:varchar(50)"`
	IsPrivate bool   `json:"-" gorm:"default:false"`
}
