package model

type Industry struct {
	Base

	Name        string  `gorm:"column:name;size:255;not null;uniqueIndex:idx_industries_name"`
	Description *string `gorm:"column:description;size:65536"`
	ImageURL    *string `gorm:"column:image_url;size:500"`
	IsActive    bool    `gorm:"column:is_active;not null"`
}

func (*Industry) TableName() string {
	return "industries"
}
