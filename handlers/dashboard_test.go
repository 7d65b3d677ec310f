package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDashboard_EmptyStore(t *testing.T) {
	g := newTestRouter(t)

	// /api/home is public
	w := doRequest(t, g, http.MethodGet, "/api/home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var overview struct {
		TotalCompanies  int                      `json:"totalCompanies"`
		TotalProducts   int                      `json:"totalProducts"`
		LatestCompanies []map[string]interface{} `json:"latestCompanies"`
		LatestProducts  []map[string]interface{} `json:"latestProducts"`
	}
	decodeBody(t, w, &overview)
	require.Zero(t, overview.TotalCompanies)
	require.Zero(t, overview.TotalProducts)
	require.Empty(t, overview.LatestCompanies)
	require.Empty(t, overview.LatestProducts)
}

func TestDashboard_Overview(t *testing.T) {
	g := newTestRouter(t)
	token := loginToken(t, g)

	countries := []string{"USA", "USA", "USA", "Germany", "Germany", "France"}
	var lastCompany string
	for i, country := range countries {
		w := doRequest(t, g, http.MethodPost, "/api/companies", token,
			map[string]interface{}{"name": companyName(i), "legalNumber": companyName(i), "incorporationCountry": country})
		require.Equal(t, http.StatusCreated, w.Code)
		var created map[string]interface{}
		decodeBody(t, w, &created)
		lastCompany = created["_id"].(string)
	}
	categories := []string{"tools", "tools", "food"}
	for i, category := range categories {
		createProduct(t, g, token, "P"+companyName(i), category, lastCompany)
	}

	w := doRequest(t, g, http.MethodGet, "/api/home", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var overview struct {
		TotalCompanies      int                      `json:"totalCompanies"`
		TotalProducts       int                      `json:"totalProducts"`
		LatestCompanies     []map[string]interface{} `json:"latestCompanies"`
		LatestProducts      []map[string]interface{} `json:"latestProducts"`
		CompanyDistribution []struct {
			Label string `json:"_id"`
			Count int    `json:"count"`
		} `json:"companyDistribution"`
		ProductDistribution []struct {
			Label string `json:"_id"`
			Count int    `json:"count"`
		} `json:"productDistribution"`
	}
	decodeBody(t, w, &overview)

	require.Equal(t, 6, overview.TotalCompanies)
	require.Equal(t, 3, overview.TotalProducts)

	// the three most recently created, newest first
	require.Len(t, overview.LatestCompanies, 3)
	require.Equal(t, companyName(5), overview.LatestCompanies[0]["name"])
	require.Equal(t, companyName(4), overview.LatestCompanies[1]["name"])
	require.Equal(t, companyName(3), overview.LatestCompanies[2]["name"])
	require.Len(t, overview.LatestProducts, 3)

	// grouped counts sorted descending
	require.Equal(t, "USA", overview.CompanyDistribution[0].Label)
	require.Equal(t, 3, overview.CompanyDistribution[0].Count)
	require.Equal(t, "Germany", overview.CompanyDistribution[1].Label)
	require.Equal(t, 2, overview.CompanyDistribution[1].Count)
	require.Equal(t, "France", overview.CompanyDistribution[2].Label)

	require.Equal(t, "tools", overview.ProductDistribution[0].Label)
	require.Equal(t, 2, overview.ProductDistribution[0].Count)
	require.Equal(t, "food", overview.ProductDistribution[1].Label)
}

func companyName(i int) string {
	return string(rune('A'+i)) + "-co"
}
