package blog

import "gorm.io/gorm"

// Post is a persisted snapshot of one generation's inputs, outputs, and metadata.
// Rows are immutable after creation; there is no update path.
type Post struct {
	gorm.Model
	Topic     string  `gorm:"size:500;not null;index"`
	Tone      string  `gorm:"size:50"`
	Length    string  `gorm:"size:20"`
	Keywords  string  `gorm:"type:text"`
	Title     string  `gorm:"size:500"`
	Content   string  `gorm:"type:text;not null"`
	WordCount int     `gorm:"not null"`
	SEOScore  float64 `gorm:"column:seo_score;not null"`
}

// TableName defines the table name for the Post model.
func (Post) TableName() string {
	return "blog_posts"
}
