package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	intconfig "admindash/internal/config"
	"admindash/internal/domain"
	"admindash/internal/domain/models"
	"admindash/internal/enrich"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var blogSortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"title":      "title",
	"status":     "status",
}

// BlogQuery narrows a blog listing. Deleted blogs are hidden unless IncludeDeleted is set.
type BlogQuery struct {
	Page           domain.PageRequest
	ProjectID      string
	IncludeDeleted bool
}

type blogDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Slug      string        `bson:"slug"`
	Status    string        `bson:"status"`
	Content   string        `bson:"content,omitempty"`
	ProjectID string        `bson:"project_id"`
	UserID    string        `bson:"user_id"`
	IsActive  *bool         `bson:"is_active"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
	DeletedAt *time.Time    `bson:"deleted_at"`
	DeletedBy *string       `bson:"deleted_by"`
}

// toModel treats a missing is_active as active; older documents predate the flag.
func (d blogDocument) toModel() models.Blog {
	active := d.IsActive == nil || *d.IsActive
	return models.Blog{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Slug:      d.Slug,
		Status:    d.Status,
		Content:   d.Content,
		ProjectID: d.ProjectID,
		UserID:    d.UserID,
		IsActive:  active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		DeletedAt: d.DeletedAt,
		DeletedBy: d.DeletedBy,
	}
}

type BlogRepository struct {
	Coll *mongo.Collection
}

func (r BlogRepository) coll() *mongo.Collection {
	if r.Coll != nil {
		return r.Coll
	}
	return intconfig.Mongo.Collection("blogs")
}

// ParseBlogID validates a blog id.
func ParseBlogID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return oid, domain.ValidationError{Field: "id", Msg: "must be a 24-character hex object id", Err: err}
	}
	return oid, nil
}

func blogFilter(q BlogQuery) bson.D {
	filter := bson.D{}
	if !q.IncludeDeleted {
		filter = append(filter, bson.E{Key: "is_active", Value: bson.D{{Key: "$ne", Value: false}}})
	}
	if q.ProjectID != "" {
		filter = append(filter, bson.E{Key: "project_id", Value: q.ProjectID})
	}
	if q.Page.Search != "" {
		re := bson.Regex{Pattern: regexp.QuoteMeta(q.Page.Search), Options: "i"}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "status", Value: re}},
		}})
	}
	return filter
}

func blogSort(req domain.PageRequest) bson.D {
	field, ok := blogSortFields[req.SortField]
	dir := -1
	if !ok {
		field = "created_at"
	} else if req.SortOrder == domain.SortAsc {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func (r BlogRepository) List(ctx context.Context, q BlogQuery) ([]models.Blog, error) {
	opts := options.Find().
		SetSort(blogSort(q.Page)).
		SetSkip(int64(q.Page.Offset())).
		SetLimit(int64(q.Page.Limit)).
		SetProjection(bson.D{{Key: "content", Value: 0}})

	cur, err := r.coll().Find(ctx, blogFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Blog{}
	for cur.Next(ctx) {
		var d blogDocument
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toModel())
	}
	return out, cur.Err()
}

func (r BlogRepository) Count(ctx context.Context, q BlogQuery) (int, error) {
	n, err := r.coll().CountDocuments(ctx, blogFilter(q))
	return int(n), err
}

func (r BlogRepository) GetByID(ctx context.Context, id string) (models.Blog, error) {
	oid, err := ParseBlogID(id)
	if err != nil {
		return models.Blog{}, err
	}
	var d blogDocument
	err = r.coll().FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Blog{}, domain.NotFoundError{Resource: "blog", Err: err}
	}
	if err != nil {
		return models.Blog{}, err
	}
	return d.toModel(), nil
}

// SoftDelete marks an active blog inactive. It reports false when no active blog matched.
func (r BlogRepository) SoftDelete(ctx context.Context, id, actor string, at time.Time) (bool, error) {
	oid, err := ParseBlogID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "is_active", Value: bson.D{{Key: "$ne", Value: false}}}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: false},
			{Key: "deleted_at", Value: at},
			{Key: "deleted_by", Value: actor},
			{Key: "updated_at", Value: at},
		}}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Restore reactivates a deleted blog. It reports false when no deleted blog matched.
func (r BlogRepository) Restore(ctx context.Context, id string, at time.Time) (bool, error) {
	oid, err := ParseBlogID(id)
	if err != nil {
		return false, err
	}
	res, err := r.coll().UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "is_active", Value: false}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: true},
			{Key: "deleted_at", Value: nil},
			{Key: "deleted_by", Value: nil},
			{Key: "updated_at", Value: at},
		}}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// BlogDetailsByIDs resolves referenced blogs with one $in query. Malformed ids are skipped.
func (r BlogRepository) BlogDetailsByIDs(ctx context.Context, ids []string) (map[string]enrich.BlogDetails, error) {
	out := make(map[string]enrich.BlogDetails, len(ids))
	oids := bson.A{}
	for _, id := range ids {
		if oid, err := bson.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.coll().Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}},
		options.Find().SetProjection(bson.D{{Key: "title", Value: 1}, {Key: "slug", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var d blogDocument
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out[d.ID.Hex()] = enrich.BlogDetails{ID: d.ID.Hex(), Title: d.Title, Slug: d.Slug}
	}
	return out, cur.Err()
}
