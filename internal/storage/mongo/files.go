package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Callmevbdu/alx-files-manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const filesCollection = "files"

type fileDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"userId"`
	Name       string             `bson:"name"`
	Type       string             `bson:"type"`
	IsPublic   bool               `bson:"isPublic"`
	ParentID   string             `bson:"parentId"`
	ContentRef string             `bson:"contentRef,omitempty"`
}

func (d fileDoc) toDomain() domain.File {
	parent := domain.RootParent()
	if d.ParentID != "" && d.ParentID != "0" {
		parent = domain.FolderParent(d.ParentID)
	}

	return domain.File{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		Name:       d.Name,
		Type:       domain.FileType(d.Type),
		IsPublic:   d.IsPublic,
		Parent:     parent,
		ContentRef: d.ContentRef,
	}
}

type fileStore struct {
	collection *mongo.Collection
}

type FileStoreDependencies struct {
	Database *mongo.Database
}

func NewFileStore(deps FileStoreDependencies) domain.FileStore {
	return &fileStore{
		collection: deps.Database.Collection(filesCollection),
	}
}

func (s *fileStore) Insert(ctx context.Context, f domain.File) (domain.File, error) {
	doc := fileDoc{
		// ObjectIDs are assigned monotonically within a process, which
		// makes _id the listing sort key.
		ID:         primitive.NewObjectID(),
		UserID:     f.UserID,
		Name:       f.Name,
		Type:       string(f.Type),
		IsPublic:   f.IsPublic,
		ParentID:   f.Parent.Key(),
		ContentRef: f.ContentRef,
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return domain.File{}, fmt.Errorf("failed to insert file: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *fileStore) Get(ctx context.Context, id string) (domain.File, error) {
	return s.findOne(ctx, id, "")
}

func (s *fileStore) GetOwned(ctx context.Context, id, userID string) (domain.File, error) {
	return s.findOne(ctx, id, userID)
}

func (s *fileStore) findOne(ctx context.Context, id, userID string) (domain.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.File{}, domain.ErrNotFound
	}

	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["userId"] = userID
	}

	var doc fileDoc

	err = s.collection.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.File{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.File{}, fmt.Errorf("failed to find file: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *fileStore) ListChildren(ctx context.Context, userID string, parent domain.ParentRef, page int) ([]domain.File, error) {
	if page < 0 {
		return []domain.File{}, nil
	}

	filter := bson.M{
		"userId":   userID,
		"parentId": parent.Key(),
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(page) * domain.ListPageSize).
		SetLimit(domain.ListPageSize)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []fileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode file listing: %w", err)
	}

	files := make([]domain.File, 0, len(docs))
	for _, doc := range docs {
		files = append(files, doc.toDomain())
	}

	return files, nil
}

func (s *fileStore) SetPublic(ctx context.Context, id, userID string, isPublic bool) (domain.File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.File{}, domain.ErrNotFound
	}

	// The filter is owner-scoped so a mismatch is indistinguishable from
	// a missing record.
	filter := bson.M{"_id": oid, "userId": userID}
	update := bson.M{"$set": bson.M{"isPublic": isPublic}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc fileDoc

	err = s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.File{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.File{}, fmt.Errorf("failed to update file visibility: %w", err)
	}

	return doc.toDomain(), nil
}

func (s *fileStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count files: %w", err)
	}

	return count, nil
}
