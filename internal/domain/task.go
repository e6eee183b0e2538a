package domain

// Task is a todo item owned by a single user.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	UserID      uint   `gorm:"not null;index" json:"userId"`
}

// TableName overrides the gorm table name.
func (Task) TableName() string { return "tasks" }
