package entity

type Movie struct {
	ID       int64  `db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title    string `db:"title" gorm:"column:title;not null"`
	Genre    string `db:"genre" gorm:"column:genre;size:50;not null"`
	Duration int    `db:"duration" gorm:"column:duration;not null"`
}

// TableName maps Movie to the movies table for gorm.
func (Movie) TableName() string {
	return "movies"
}
