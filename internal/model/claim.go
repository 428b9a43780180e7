package model

import "gorm.io/gorm"

type Claim struct {
	gorm.Model
	WorkHourID  uint   `json:"work_hour_id" gorm:"unique;not null"` // one claim per record
	TeacherID   uint   `json:"teacher_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Teacher  Teacher   `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Comments []Comment `json:"comments" gorm:"foreignKey:ClaimID"`
}

// Comment is append-only; UUID is the client-generated idempotency key
// carried on both the durable write and the channel broadcast so every
// viewer can de-duplicate the two delivery paths.
type Comment struct {
	gorm.Model
	UUID       string `json:"uuid" gorm:"unique;not null"`
	ClaimID    uint   `json:"claim_id"`
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
	Content    string `json:"content"`
}
