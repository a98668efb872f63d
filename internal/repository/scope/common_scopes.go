package scope

import "gorm.io/gorm"

func OrderBySeq(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}
