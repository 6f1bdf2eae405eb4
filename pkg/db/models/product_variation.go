package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brunomacedo/vitrinezap-backend/pkg/types"
)

// ProductVariation is a concrete purchasable option of a product: a plain
// color/size or a grade (size-run assortment) with an optional flexible
// purchase configuration.
type ProductVariation struct {
	ID                uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID                  `gorm:"column:product_id;type:uuid;not null"`
	Color             *string                    `gorm:"column:color"`
	Size              *string                    `gorm:"column:size"`
	IsGrade           bool                       `gorm:"column:is_grade;not null;default:false"`
	GradeName         *string                    `gorm:"column:grade_name"`
	GradeSizes        pq.StringArray             `gorm:"column:grade_sizes;type:text[]"`
	GradePairsPerSize pq.Int64Array              `gorm:"column:grade_pairs_per_size;type:integer[]"`
	FlexibleGrade     *types.FlexibleGradeConfig `gorm:"column:flexible_grade;type:jsonb"`
	IsActive          bool                       `gorm:"column:is_active;not null;default:true"`
	CreatedAt         time.Time                  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                  `gorm:"column:updated_at;autoUpdateTime"`
}

// GradeComposition assembles the typed grade description from the stored
// arrays, or nil when the variation is not a grade.
func (v ProductVariation) GradeComposition() *types.GradeInfo {
	if !v.IsGrade {
		return nil
	}
	name := ""
	if v.GradeName != nil {
		name = *v.GradeName
	}
	pairs := make([]int, len(v.GradePairsPerSize))
	for i, count := range v.GradePairsPerSize {
		pairs[i] = int(count)
	}
	return &types.GradeInfo{
		Name:         name,
		Sizes:        append([]string{}, v.GradeSizes...),
		PairsPerSize: pairs,
	}
}
