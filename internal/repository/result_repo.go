package repository

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveytoolkit/internal/model"
)

// ResultRepo handles MongoDB operations for serialized respondent results
type ResultRepo interface {
	// Append stores results after the existing ones and returns the new total
	Append(ctx context.Context, surveyID string, results []json.RawMessage) (int64, error)
	// List returns the results of a survey in ingestion order
	List(ctx context.Context, surveyID string) ([]json.RawMessage, error)
	Count(ctx context.Context, surveyID string) (int64, error)
	DeleteBySurvey(ctx context.Context, surveyID string) error
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("results"),
	}
}

// EnsureIndexes creates the (surveyId, seq) index used for ordered reads
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("results").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "surveyId", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *resultRepo) Append(ctx context.Context, surveyID string, results []json.RawMessage) (int64, error) {
	next, err := r.Count(ctx, surveyID)
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return next, nil
	}

	now := time.Now()
	docs := make([]interface{}, len(results))
	for i, data := range results {
		docs[i] = model.SurveyResult{
			SurveyID:  surveyID,
			Seq:       next + int64(i),
			Data:      data,
			CreatedAt: now,
		}
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return 0, err
	}
	return next + int64(len(results)), nil
}

func (r *resultRepo) List(ctx context.Context, surveyID string) ([]json.RawMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"surveyId": surveyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.SurveyResult
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		out[i] = d.Data
	}
	return out, nil
}

func (r *resultRepo) Count(ctx context.Context, surveyID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"surveyId": surveyID})
}

func (r *resultRepo) DeleteBySurvey(ctx context.Context, surveyID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"surveyId": surveyID})
	return err
}
