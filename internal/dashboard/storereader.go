package dashboard

import (
	"context"
	"sort"

	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
)

// scanPageSize is the window listAll walks the store with.
const scanPageSize = 500

// StoreReader derives the aggregate from plain list queries. It backs the
// memory mode, where no aggregation pipeline exists.
type StoreReader struct {
	companies store.Store[models.Company]
	products  store.Store[models.Product]
}

func NewStoreReader(companies store.Store[models.Company], products store.Store[models.Product]) *StoreReader {
	return &StoreReader{companies: companies, products: products}
}

func (r *StoreReader) Overview(ctx context.Context) (*Overview, error) {
	companies, err := listAll(ctx, r.companies)
	if err != nil {
		return nil, err
	}
	products, err := listAll(ctx, r.products)
	if err != nil {
		return nil, err
	}

	out := &Overview{
		TotalCompanies:  int64(len(companies)),
		TotalProducts:   int64(len(products)),
		LatestCompanies: companies,
		LatestProducts:  products,
	}
	if len(out.LatestCompanies) > latestCount {
		out.LatestCompanies = out.LatestCompanies[:latestCount]
	}
	if len(out.LatestProducts) > latestCount {
		out.LatestProducts = out.LatestProducts[:latestCount]
	}

	countries := map[string]int64{}
	for _, c := range companies {
		countries[c.IncorporationCountry]++
	}
	categories := map[string]int64{}
	for _, p := range products {
		categories[p.Category]++
	}
	out.CompanyDistribution = distributionRows(countries)
	out.ProductDistribution = distributionRows(categories)
	return out, nil
}

// listAll walks every page so the distributions cover the full record set and
// always agree with the reported totals. Records come back newest first.
func listAll[T any](ctx context.Context, s store.Store[T]) ([]*T, error) {
	all := []*T{}
	q := store.ListQuery{Page: 1, Limit: scanPageSize, Sort: "createdAt", Desc: true}
	for {
		page, err := s.List(ctx, q)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) == 0 || int64(len(all)) >= page.TotalCount {
			return all, nil
		}
		q.Page++
	}
}

func distributionRows(counts map[string]int64) []DistributionRow {
	rows := make([]DistributionRow, 0, len(counts))
	for label, n := range counts {
		rows = append(rows, DistributionRow{Label: label, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
