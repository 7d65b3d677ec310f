package dashboard

import (
	"context"

	"github.com/firmdex/firmdex-api/internal/models"
)

// DistributionRow is one bucket of a grouped count, keyed the way the admin
// client expects it (Mongo $group output shape).
type DistributionRow struct {
	Label string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// Overview is the read-only aggregate behind GET /api/home.
type Overview struct {
	TotalCompanies      int64             `json:"totalCompanies"`
	TotalProducts       int64             `json:"totalProducts"`
	LatestCompanies     []*models.Company `json:"latestCompanies"`
	LatestProducts      []*models.Product `json:"latestProducts"`
	CompanyDistribution []DistributionRow `json:"companyDistribution"`
	ProductDistribution []DistributionRow `json:"productDistribution"`
}

// Reader produces the dashboard aggregate. Pure read, no side effects.
type Reader interface {
	Overview(ctx context.Context) (*Overview, error)
}

// latestCount is how many recent records each entity contributes.
const latestCount = 3
