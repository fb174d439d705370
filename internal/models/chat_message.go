package models

// ChatMessage is immutable once sent. UserRole is the sender's role at send time.
// Seq records arrival order at the remote database and breaks timestamp ties.
type ChatMessage struct {
	Seq       uint64 `gorm:"primaryKey;autoIncrement" json:"-"`
	ID        string `gorm:"type:varchar(64);uniqueIndex;not null" json:"id"`
	UserID    string `gorm:"type:varchar(64);not null" json:"userId"`
	UserName  string `gorm:"type:varchar(255)" json:"userName"`
	UserRole  Role   `gorm:"type:varchar(20)" json:"userRole"`
	Text      string `gorm:"type:text;not null" json:"text"`
	Timestamp int64  `gorm:"index;not null" json:"timestamp"`
}
