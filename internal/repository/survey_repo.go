package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveytoolkit/internal/model"
)

// SurveyRepo handles MongoDB operations for survey definitions
type SurveyRepo interface {
	Create(ctx context.Context, survey *model.SurveyDefinition) (string, error)
	GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error)
	GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyDefinition, error)
	Delete(ctx context.Context, id string) error
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) Create(ctx context.Context, survey *model.SurveyDefinition) (string, error) {
	survey.CreatedAt = time.Now()
	survey.UpdatedAt = survey.CreatedAt

	doc := *survey
	doc.ID = ""
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	survey.ID = oid.Hex()
	return survey.ID, nil
}

// GetByID returns nil, nil when the survey does not exist or id is not an ObjectID
func (r *surveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var survey model.SurveyDefinition
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&survey)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	survey.ID = id
	return &survey, nil
}

func (r *surveyRepo) GetByHostID(ctx context.Context, hostID string) ([]*model.SurveyDefinition, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"definition": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"hostId": hostID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []*model.SurveyDefinition
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
