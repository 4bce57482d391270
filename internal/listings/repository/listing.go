package repository

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	listingserrors "staybook/internal/listings/errors"
	"staybook/pkg/config"
	"staybook/pkg/db/mongostore"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Source document fields in listingsAndReviews.
const (
	fieldMarket       = "address.market"
	fieldPropertyType = "property_type"
	fieldBedrooms     = "bedrooms"
)

type ListingRepository interface {
	Search(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error)
}

type mongoListingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoListingRepository(cfg *config.Config, store *mongostore.Store) ListingRepository {
	return &mongoListingRepository{
		cfg:        cfg,
		collection: store.Collection(cfg.ListingsCollection),
	}
}

// listingDocument keeps _id and price raw: the data set stores ids as
// strings and prices as Decimal128, but neither is guaranteed.
type listingDocument struct {
	ID           bson.RawValue `bson:"_id"`
	Name         string        `bson:"name"`
	Summary      string        `bson:"summary"`
	Price        bson.RawValue `bson:"price"`
	ReviewScores struct {
		Rating *float64 `bson:"review_scores_rating"`
	} `bson:"review_scores"`
}

// BuildFilter translates search filters into a query document. Location
// is a case-insensitive substring match on the market.
func BuildFilter(filters model.SearchFilters) (bson.M, error) {
	query := bson.M{}

	if loc := strings.TrimSpace(filters.Location); loc != "" {
		query[fieldMarket] = bson.M{"$regex": regexp.QuoteMeta(loc), "$options": "i"}
	}
	if pt := strings.TrimSpace(filters.PropertyType); pt != "" {
		query[fieldPropertyType] = pt
	}

	switch beds := strings.TrimSpace(filters.Bedrooms); beds {
	case "":
	case model.BedroomsAtLeastFour:
		query[fieldBedrooms] = bson.M{"$gte": 4}
	default:
		n, err := strconv.Atoi(beds)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", listingserrors.ErrInvalidBedrooms, beds)
		}
		query[fieldBedrooms] = n
	}

	return query, nil
}

func (r *mongoListingRepository) Search(ctx context.Context, filters model.SearchFilters) ([]model.Listing, error) {
	query, err := BuildFilter(filters)
	if err != nil {
		return nil, err
	}

	ctx, cancel := mongostore.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "summary", Value: 1},
			{Key: "price", Value: 1},
			{Key: "review_scores", Value: 1},
		}).
		SetLimit(config.MaxListingResults)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := make([]model.Listing, 0)
	for cursor.Next(ctx) {
		var doc listingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return listings, nil
}

func (d listingDocument) toModel() model.Listing {
	return model.Listing{
		ID:          rawID(d.ID),
		Name:        d.Name,
		Summary:     d.Summary,
		Price:       rawNumber(d.Price),
		ReviewScore: d.ReviewScores.Rating,
	}
}

func rawID(v bson.RawValue) string {
	switch v.Type {
	case bson.TypeString:
		return v.StringValue()
	case bson.TypeObjectID:
		return v.ObjectID().Hex()
	case bson.TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case bson.TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	default:
		return ""
	}
}

// rawNumber reads a stored amount of any numeric type. Unparseable values read as 0.
func rawNumber(v bson.RawValue) float64 {
	switch v.Type {
	case bson.TypeDecimal128:
		f, err := strconv.ParseFloat(v.Decimal128().String(), 64)
		if err != nil {
			return 0
		}
		return f
	case bson.TypeDouble:
		return v.Double()
	case bson.TypeInt32:
		return float64(v.Int32())
	case bson.TypeInt64:
		return float64(v.Int64())
	case bson.TypeString:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.StringValue()), 64)
		return f
	default:
		return 0
	}
}
