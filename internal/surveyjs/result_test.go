package surveyjs

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"surveytoolkit/internal/model"
)

func TestFlatten(t *testing.T) {
	record := map[string]any{
		"age": 20,
		"carBrandRatings": map[string]any{
			"Peugeot": "3",
			"Skoda":   "5",
		},
		"phones": []any{"Nokia"},
	}
	want := map[string]any{
		"age":                     20,
		"carBrandRatings_Peugeot": "3",
		"carBrandRatings_Skoda":   "5",
		"phones":                  []any{"Nokia"},
	}
	if got := Flatten(record); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFlattenOneLevelOnly(t *testing.T) {
	deep := map[string]any{"inner": "x"}
	got := Flatten(map[string]any{"a": map[string]any{"b": deep}})
	if !reflect.DeepEqual(got, map[string]any{"a_b": deep}) {
		t.Errorf("unexpected flattening %v", got)
	}
}

func TestDecodeResult(t *testing.T) {
	record, err := DecodeResult([]byte(`{"age": 35.5, "code": 2}`))
	if err != nil {
		t.Fatalf("DecodeResult failed: %v", err)
	}
	if record["age"] != json.Number("35.5") || record["code"] != json.Number("2") {
		t.Errorf("unexpected record %v", record)
	}

	for _, bad := range []string{`[1, 2]`, `null`, `{`} {
		if _, err := DecodeResult([]byte(bad)); !errors.Is(err, ErrMalformedResult) {
			t.Errorf("%s: expected ErrMalformedResult, got %v", bad, err)
		}
	}
}

const carsDefinition = `{"pages": [{"name": "page1", "elements": [
	{"type": "text", "name": "age", "title": "How old are you?", "validators": [{"type": "numeric"}]},
	{"type": "text", "name": "opinion"},
	{"type": "radiogroup", "name": "gender", "title": "What's your gender?", "hasOther": true,
	 "choices": [{"value": "male", "text": "Male"}, {"value": "female", "text": "Female"}]},
	{"type": "matrix", "name": "carBrandRatings", "title": "How do you rate...?",
	 "columns": ["1", "2", "3", "4", "5"], "rows": ["Peugeot", "Skoda"]}
]}]}`

func TestBuildSurvey(t *testing.T) {
	results := [][]byte{
		[]byte(`{"age": "20", "opinion": "it's fantastic!", "gender": "male", "carBrandRatings": {"Peugeot": "3", "Skoda": 5}}`),
		[]byte(`{"age": "35,5", "gender": "other", "gender-Comment": "prefer not to say"}`),
		[]byte(`{}`),
	}
	survey, err := BuildSurvey([]byte(carsDefinition), results, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildSurvey failed: %v", err)
	}
	if survey.Len() != 3 {
		t.Fatalf("expected 3 results, got %d", survey.Len())
	}

	age, _ := survey.Question("age")
	want := []model.Answer[float64]{model.Some(20.0), model.Some(35.5), {}}
	if got := age.(*model.NumericQuestion).Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected ages %v, got %v", want, got)
	}

	opinion, _ := survey.Question("opinion")
	if got := opinion.(*model.FreeTextQuestion).Answers(); !reflect.DeepEqual(got, []string{"it's fantastic!", "", ""}) {
		t.Errorf("unexpected opinions %q", got)
	}

	gender, _ := survey.Question("gender")
	wantGender := []model.Answer[model.Key]{
		model.Some(model.TextKey("male")),
		model.Some(model.TextKey("other")),
		{},
	}
	if got := gender.(*model.SingleChoiceQuestion).Answers(); !reflect.DeepEqual(got, wantGender) {
		t.Errorf("expected %v, got %v", wantGender, got)
	}

	skoda, ok := survey.Question("carBrandRatings_Skoda")
	if !ok {
		t.Fatal("expected matrix row question")
	}
	if got := skoda.(*model.SingleChoiceQuestion).Answers()[0]; got != model.Some(model.CodeKey(5)) {
		t.Errorf("expected code 5, got %v", got)
	}

	tbl, err := survey.ToTable(model.TableOptions{})
	if err != nil {
		t.Fatalf("ToTable failed: %v", err)
	}
	wantCols := []string{"age", "opinion", "gender", "gender-Comment", "carBrandRatings_Peugeot", "carBrandRatings_Skoda"}
	if !reflect.DeepEqual(tbl.Names(), wantCols) {
		t.Errorf("expected %v, got %v", wantCols, tbl.Names())
	}
}

func TestBuildSurveyErrors(t *testing.T) {
	_, err := BuildSurvey([]byte(carsDefinition), [][]byte{[]byte(`{"gender": "robot"}`)}, DefaultOptions())
	if !errors.Is(err, model.ErrInvalidChoiceValue) {
		t.Errorf("expected ErrInvalidChoiceValue, got %v", err)
	}

	_, err = BuildSurvey([]byte(carsDefinition), [][]byte{[]byte(`"x"`)}, DefaultOptions())
	if !errors.Is(err, ErrMalformedResult) {
		t.Errorf("expected ErrMalformedResult, got %v", err)
	}

	dup := `{"pages": [{"elements": [{"type": "text", "name": "a"}, {"type": "text", "name": "a"}]}]}`
	if _, err := BuildSurvey([]byte(dup), nil, DefaultOptions()); !errors.Is(err, model.ErrDuplicateQuestionName) {
		t.Errorf("expected ErrDuplicateQuestionName, got %v", err)
	}
}
