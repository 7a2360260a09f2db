package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     *string        `json:"description,omitempty"`
	Servings        *int           `json:"servings,omitempty"`
	PrepTimeMinutes *int           `gorm:"column:prep_time" json:"prep_time_minutes,omitempty"`
	CookTimeMinutes *int           `gorm:"column:cook_time" json:"cook_time_minutes,omitempty"`
	ImageURL        *string        `json:"image_url,omitempty"`
	AuthorID        uuid.UUID      `gorm:"not null;index" json:"author_id"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Author      *User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredients []*Ingredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
	Steps       []*Step       `gorm:"foreignKey:RecipeID" json:"steps,omitempty"`
	Tags        []*Tag        `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Quantity *string   `json:"quantity,omitempty"`
	Unit     *string   `json:"unit,omitempty"`
	RecipeID uuid.UUID `gorm:"not null;index" json:"recipe_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

type Step struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Order       int       `gorm:"column:order;not null" json:"order"`
	Instruction string    `gorm:"not null" json:"instruction"`
	RecipeID    uuid.UUID `gorm:"not null;index" json:"recipe_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

// RecipeTag is the join row behind the Recipe.Tags association. Writes go
// through it explicitly so that tag linking happens inside the aggregate
// transaction.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
