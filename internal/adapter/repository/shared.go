package repository

import (
	"gorm.io/gorm"

	"github.com/eslkits/drillbox/internal/repository"
)

// paginate applies offset/limit when a page size is set. Listings with
// no page size return everything, matching the usecases' expectations.
func paginate(p repository.Pagination) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.PageSize <= 0 {
			return db
		}
		offset := p.Offset()
		if offset < 0 {
			offset = 0
		}
		return db.Offset(int(offset)).Limit(int(p.PageSize))
	}
}
