package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/firmdex/firmdex-api/internal/models"
	"github.com/firmdex/firmdex-api/internal/store"
)

func TestStoreReader_CoversEveryPage(t *testing.T) {
	ctx := context.Background()
	companies := store.NewMemory[models.Company]("legalNumber")
	products := store.NewMemory[models.Product]()

	// more records than one scan window so the reader has to keep paging
	total := scanPageSize + 120
	wantUSA := int64(0)
	wantDE := int64(0)
	for i := 0; i < total; i++ {
		country := "USA"
		if i%3 == 0 {
			country = "Germany"
			wantDE++
		} else {
			wantUSA++
		}
		if _, err := companies.Insert(ctx, &models.Company{
			Name:                 fmt.Sprintf("Company %04d", i),
			LegalNumber:          fmt.Sprintf("ln-%d", i),
			IncorporationCountry: country,
		}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	overview, err := NewStoreReader(companies, products).Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.TotalCompanies != int64(total) {
		t.Fatalf("expected %d companies, got %d", total, overview.TotalCompanies)
	}
	if len(overview.LatestCompanies) != latestCount {
		t.Fatalf("expected %d latest companies, got %d", latestCount, len(overview.LatestCompanies))
	}
	if got := overview.LatestCompanies[0].Name; got != fmt.Sprintf("Company %04d", total-1) {
		t.Fatalf("latest company should be the newest record, got %s", got)
	}

	// the distribution must cover every record, not just the first window
	var sum int64
	byLabel := map[string]int64{}
	for _, row := range overview.CompanyDistribution {
		sum += row.Count
		byLabel[row.Label] = row.Count
	}
	if sum != overview.TotalCompanies {
		t.Fatalf("distribution covers %d records but total is %d", sum, overview.TotalCompanies)
	}
	if byLabel["USA"] != wantUSA || byLabel["Germany"] != wantDE {
		t.Fatalf("unexpected distribution: %v (want USA=%d Germany=%d)", byLabel, wantUSA, wantDE)
	}
}
