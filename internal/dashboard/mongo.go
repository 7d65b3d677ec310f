package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firmdex/firmdex-api/internal/models"
)

// MongoReader computes the aggregate server-side with $group pipelines.
type MongoReader struct {
	companies *mongo.Collection
	products  *mongo.Collection
}

func NewMongoReader(companies, products *mongo.Collection) *MongoReader {
	return &MongoReader{companies: companies, products: products}
}

func (r *MongoReader) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{
		LatestCompanies:     []*models.Company{},
		LatestProducts:      []*models.Product{},
		CompanyDistribution: []DistributionRow{},
		ProductDistribution: []DistributionRow{},
	}

	var err error
	if out.TotalCompanies, err = r.companies.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if out.TotalProducts, err = r.products.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}

	if err := r.latest(ctx, r.companies, &out.LatestCompanies); err != nil {
		return nil, err
	}
	if err := r.latest(ctx, r.products, &out.LatestProducts); err != nil {
		return nil, err
	}

	if out.CompanyDistribution, err = r.distribution(ctx, r.companies, "incorporationCountry"); err != nil {
		return nil, err
	}
	if out.ProductDistribution, err = r.distribution(ctx, r.products, "category"); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MongoReader) latest(ctx context.Context, col *mongo.Collection, dst interface{}) error {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(latestCount)
	cur, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, dst)
}

func (r *MongoReader) distribution(ctx context.Context, col *mongo.Collection, field string) ([]DistributionRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	rows := []DistributionRow{}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
