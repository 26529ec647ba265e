package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveytoolkit/internal/config"
	"surveytoolkit/internal/logging"
	"surveytoolkit/internal/model"
	"surveytoolkit/internal/repository"
	"surveytoolkit/internal/service"
	"surveytoolkit/internal/surveyjs"
)

const definition = `{
  "title": "Smartphone Launch Feedback",
  "pages": [
    {
      "name": "about",
      "elements": [
        {"type": "text", "name": "age", "title": "How old are you?", "inputType": "number"},
        {
          "type": "radiogroup",
          "name": "model",
          "title": "Which model did you purchase?",
          "choices": [
            {"value": 1, "text": "Standard Model"},
            {"value": 2, "text": "Pro / Plus Model"},
            {"value": 3, "text": "Ultra / Max Model"}
          ]
        },
        {
          "type": "checkbox",
          "name": "features",
          "title": "Which features impressed you?",
          "choices": ["Display", "Battery", "Camera", "Speed", "Design"],
          "hasOther": true,
          "hasNone": true
        }
      ]
    },
    {
      "name": "rating",
      "elements": [
        {
          "type": "matrix",
          "name": "rate",
          "title": "Rate the phone",
          "columns": [
            {"value": 1, "text": "Poor"},
            {"value": 2, "text": "Fair"},
            {"value": 3, "text": "Good"},
            {"value": 4, "text": "Excellent"}
          ],
          "rows": [
            {"value": "overall", "text": "Overall satisfaction"},
            {"value": "performance", "text": "Everyday performance"}
          ]
        },
        {
          "type": "panel",
          "name": "improve",
          "title": "Improvements",
          "elements": [
            {"type": "text", "name": "change", "title": "What is one thing you would change?"}
          ]
        }
      ]
    }
  ]
}`

var results = []string{
	`{"age": 31, "model": 2, "features": ["Camera", "Battery"], "rate": {"overall": 4, "performance": 3}, "change": "Longer battery life"}`,
	`{"age": 45, "model": 1, "features": ["Display"], "rate": {"overall": 3, "performance": 3}, "change": "The price"}`,
	`{"age": 24, "model": 3, "features": ["other"], "features-Comment": "Stylus", "rate": {"overall": 4, "performance": 4}}`,
	`{"model": 2, "features": ["none"], "rate": {"overall": 2}, "change": "Faster charging and a lighter body"}`,
	`{"age": "38,5", "model": 1, "features": ["Speed", "Design", "Camera"], "rate": {"overall": 3, "performance": 2}, "change": "Camera in low light"}`,
}

func main() {
	cfg := config.Load()
	logging.Init(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		fatal("failed to connect to MongoDB", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		fatal("failed to create indexes", err)
	}

	raw := make([][]byte, len(results))
	for i, r := range results {
		raw[i] = []byte(r)
	}
	survey, err := surveyjs.BuildSurvey([]byte(definition), raw, cfg.Analysis.Parser)
	if err != nil {
		fatal("sample survey is invalid", err)
	}

	// Same host ID the configured account gets at login
	hostID := service.HostID(cfg.Auth.HostUsername)

	def := &model.SurveyDefinition{
		HostID:     hostID,
		Title:      "Smartphone Launch Feedback",
		Definition: json.RawMessage(definition),
		Questions:  len(survey.Questions()),
	}
	surveyID, err := repository.NewSurveyRepo(db).Create(ctx, def)
	if err != nil {
		fatal("failed to insert survey", err)
	}

	stored := make([]json.RawMessage, len(results))
	for i, r := range results {
		stored[i] = json.RawMessage(r)
	}
	total, err := repository.NewResultRepo(db).Append(ctx, surveyID, stored)
	if err != nil {
		fatal("failed to insert results", err)
	}

	fmt.Printf("Created survey '%s' (%s) with %d questions and %d results for host '%s'\n",
		def.Title, surveyID, def.Questions, total, hostID)
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
