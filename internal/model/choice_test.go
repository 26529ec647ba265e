package model

import (
	"errors"
	"reflect"
	"testing"
)

var phoneBrands = []string{"Huawei", "iPhone", "Nokia", "Samsung", "Xiaomi"}

func codeChoices(labels ...string) *Choices {
	items := make([]Choice, len(labels))
	for i, l := range labels {
		items[i] = Choice{Key: CodeKey(i + 1), Label: l}
	}
	return NewChoices(items...)
}

func keys(values ...any) []Key {
	out := make([]Key, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case int:
			out[i] = CodeKey(x)
		case string:
			out[i] = TextKey(x)
		}
	}
	return out
}

func TestSingleChoiceValidation(t *testing.T) {
	q := NewSingleChoiceQuestion("fruit", "", NewChoices(
		Choice{Key: TextKey("a"), Label: "Apple"},
		Choice{Key: TextKey("b"), Label: "Banana"},
	))

	err := q.AddAnswer("c")
	if !errors.Is(err, ErrInvalidChoiceValue) {
		t.Fatalf("expected ErrInvalidChoiceValue, got %v", err)
	}
	var choiceErr *InvalidChoiceError
	if !errors.As(err, &choiceErr) || choiceErr.Value != "c" || choiceErr.Question != "fruit" {
		t.Errorf("unexpected error details %v", err)
	}

	if err := q.AddAnswer("a"); err != nil {
		t.Fatalf("AddAnswer(a) failed: %v", err)
	}
	if got := q.Answers(); len(got) != 1 || got[0] != Some(TextKey("a")) {
		t.Errorf("unexpected answers %v", got)
	}
}

func TestSingleChoiceWithoutChoicesAcceptsAnything(t *testing.T) {
	q := NewSingleChoiceQuestion("brand", "", nil)
	if err := q.SetAnswers([]any{"Nokia", 3, nil, ""}); err != nil {
		t.Fatalf("SetAnswers failed: %v", err)
	}
	got := q.Answers()
	if got[0] != Some(TextKey("Nokia")) || got[1] != Some(TextKey("3")) || !got[2].Missing() || !got[3].Missing() {
		t.Errorf("unexpected answers %v", got)
	}
	if q.DataType() != DataTypeString {
		t.Errorf("expected string data type, got %s", q.DataType())
	}
}

func TestSingleChoiceIntegerChoices(t *testing.T) {
	q := NewSingleChoiceQuestion("rating", "", ChoicesFromValues("1", "2", "3"))
	if q.DataType() != DataTypeInt {
		t.Fatalf("expected int data type, got %s", q.DataType())
	}
	if err := q.SetAnswers([]any{"2", 3.0, 1}); err != nil {
		t.Fatalf("SetAnswers failed: %v", err)
	}
	want := []Answer[Key]{Some(CodeKey(2)), Some(CodeKey(3)), Some(CodeKey(1))}
	if got := q.Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if err := q.AddAnswer(2.5); !errors.Is(err, ErrInvalidChoiceValue) {
		t.Errorf("expected ErrInvalidChoiceValue for a fractional code, got %v", err)
	}
}

func TestSingleChoiceSetChoicesRevalidates(t *testing.T) {
	q := NewSingleChoiceQuestion("brand", "", nil)
	_ = q.SetAnswers([]any{"Nokia", "Windows Phone"})

	err := q.SetChoices(ChoicesFromValues(phoneBrands...))
	if !errors.Is(err, ErrInvalidChoiceValue) {
		t.Fatalf("expected ErrInvalidChoiceValue, got %v", err)
	}
	if q.Choices() != nil {
		t.Errorf("failed SetChoices must keep the previous choices")
	}

	q2 := NewSingleChoiceQuestion("rating", "", nil)
	_ = q2.SetAnswers([]any{"1", nil, "2"})
	if err := q2.SetChoices(ChoicesFromValues("1", "2")); err != nil {
		t.Fatalf("SetChoices failed: %v", err)
	}
	want := []Answer[Key]{Some(CodeKey(1)), {}, Some(CodeKey(2))}
	if got := q2.Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected re-decoded answers %v, got %v", want, got)
	}
}

func TestSingleChoiceToSeriesCodes(t *testing.T) {
	raws := []any{"Samsung", "iPhone", "Nokia", "iPhone", nil, "Huawei", "Xiaomi"}

	q := NewSingleChoiceQuestion("phone", "", ChoicesFromValues(phoneBrands...))
	_ = q.SetAnswers(raws)
	col := q.ToSeries(false)
	if got, want := col.Codes(), []int{3, 1, 2, 1, -1, 0, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected codes %v, got %v", want, got)
	}

	free := NewSingleChoiceQuestion("phone", "", nil)
	_ = free.SetAnswers(raws)
	col = free.ToSeries(false)
	if got, want := col.Categories, []any{"Huawei", "Nokia", "Samsung", "Xiaomi", "iPhone"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected categories %v, got %v", want, got)
	}
	if got, want := col.Codes(), []int{2, 4, 1, 4, -1, 0, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected codes %v, got %v", want, got)
	}
}

func TestSingleChoiceToLabelSeries(t *testing.T) {
	q := NewSingleChoiceQuestion("phone", "Your phone?", codeChoices("iPhone", "Samsung"))
	_ = q.SetAnswers([]any{2, nil, 1})
	col := q.ToSeries(true)
	if col.Name != "Your phone?" {
		t.Errorf("unexpected name %q", col.Name)
	}
	if want := []any{"Samsung", nil, "iPhone"}; !reflect.DeepEqual(col.Values, want) {
		t.Errorf("expected %v, got %v", want, col.Values)
	}
	if want := []any{"iPhone", "Samsung"}; !reflect.DeepEqual(col.Categories, want) {
		t.Errorf("expected categories %v, got %v", want, col.Categories)
	}
}

func TestSingleChoiceSummary(t *testing.T) {
	q := NewSingleChoiceQuestion("phone", "Phone", codeChoices("iPhone", "Samsung", "Nokia"))
	_ = q.SetAnswers([]any{2, 2, nil, 1})
	sum, err := q.Summary(SummaryOptions{})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	want := []Frequency{{"iPhone", 1}, {"Samsung", 2}, {"Nokia", 0}}
	if !reflect.DeepEqual(sum.Counts, want) {
		t.Errorf("expected %v, got %v", want, sum.Counts)
	}
}

func TestSingleChoiceOptimize(t *testing.T) {
	q := NewSingleChoiceQuestion("phone", "", nil)
	_ = q.SetAnswers([]any{"Samsung", nil, "Huawei", "Samsung"})
	q.Optimize()

	if want := []Choice{{CodeKey(1), "Huawei"}, {CodeKey(2), "Samsung"}}; !reflect.DeepEqual(q.Choices().Items(), want) {
		t.Errorf("expected choices %v, got %v", want, q.Choices().Items())
	}
	want := []Answer[Key]{Some(CodeKey(2)), {}, Some(CodeKey(1)), Some(CodeKey(2))}
	if got := q.Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if q.DataType() != DataTypeInt {
		t.Errorf("expected int data type after optimize")
	}
}

func TestMultipleChoiceAddAnswer(t *testing.T) {
	tests := []struct {
		name    string
		choices *Choices
		raw     any
		want    Answer[[]Key]
	}{
		{name: "list without choices", raw: []any{"Windows Phone", "Nokia"}, want: Some(keys("Windows Phone", "Nokia"))},
		{name: "scalar is wrapped", raw: "Windows Phone", want: Some(keys("Windows Phone"))},
		{name: "null is missing", raw: nil},
		{name: "empty list is missing", raw: []any{}},
		{name: "list with choices", choices: ChoicesFromValues(phoneBrands...), raw: []any{"Huawei", "iPhone"}, want: Some(keys("Huawei", "iPhone"))},
		{name: "integer choices", choices: codeChoices("iPhone", "Samsung"), raw: []any{1.0, 2.0}, want: Some(keys(1, 2))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMultipleChoiceQuestion("favouritePhones", "", tt.choices)
			if err := q.AddAnswer(tt.raw); err != nil {
				t.Fatalf("AddAnswer failed: %v", err)
			}
			if got := q.Answers()[0]; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMultipleChoiceNotInChoices(t *testing.T) {
	q := NewMultipleChoiceQuestion("favouritePhones", "", ChoicesFromValues(phoneBrands...))
	if err := q.AddAnswer([]any{"Nokia", "Windows Phone"}); !errors.Is(err, ErrInvalidChoiceValue) {
		t.Errorf("expected ErrInvalidChoiceValue, got %v", err)
	}
	if err := q.AddAnswer("Windows Phone"); !errors.Is(err, ErrInvalidChoiceValue) {
		t.Errorf("expected ErrInvalidChoiceValue, got %v", err)
	}
	if q.Len() != 0 {
		t.Errorf("invalid answers must not be appended")
	}
}

func phonesQuestion(t *testing.T, choices *Choices, answers ...any) *MultipleChoiceQuestion {
	t.Helper()
	q := NewMultipleChoiceQuestion("favouritePhones", "What are your favourite phone brands?", choices)
	if err := q.SetAnswers(answers); err != nil {
		t.Fatalf("SetAnswers failed: %v", err)
	}
	return q
}

func dummyTable(q *MultipleChoiceQuestion, toLabels bool) map[string][]any {
	out := make(map[string][]any)
	for _, c := range q.ToDummies(toLabels) {
		out[c.Name] = c.Values
	}
	return out
}

func TestToDummies(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues(phoneBrands...),
		[]any{"Samsung", "iPhone"}, nil, []any{"Nokia"}, []any{"Huawei", "Xiaomi"})
	want := map[string][]any{
		"favouritePhones_Huawei":  {0, nil, 0, 1},
		"favouritePhones_iPhone":  {1, nil, 0, 0},
		"favouritePhones_Nokia":   {0, nil, 1, 0},
		"favouritePhones_Samsung": {1, nil, 0, 0},
		"favouritePhones_Xiaomi":  {0, nil, 0, 1},
	}
	if got := dummyTable(q, false); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	var names []string
	for _, c := range q.ToDummies(false) {
		names = append(names, c.Name)
	}
	if names[0] != "favouritePhones_Huawei" || names[4] != "favouritePhones_Xiaomi" {
		t.Errorf("dummies must follow choice order, got %v", names)
	}
}

func TestToDummiesWithUnusedChoices(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues(phoneBrands...),
		[]any{"Samsung", "iPhone"}, nil, nil, []any{"Huawei", "Xiaomi"})
	want := map[string][]any{
		"favouritePhones_Huawei":  {0, nil, nil, 1},
		"favouritePhones_iPhone":  {1, nil, nil, 0},
		"favouritePhones_Nokia":   {0, nil, nil, 0},
		"favouritePhones_Samsung": {1, nil, nil, 0},
		"favouritePhones_Xiaomi":  {0, nil, nil, 1},
	}
	if got := dummyTable(q, false); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestToDummiesWithEmptyData(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues(phoneBrands...), nil, nil)
	got := dummyTable(q, false)
	if len(got) != len(phoneBrands) {
		t.Fatalf("expected %d dummies, got %d", len(phoneBrands), len(got))
	}
	for name, values := range got {
		if !reflect.DeepEqual(values, []any{nil, nil}) {
			t.Errorf("%s: expected all missing, got %v", name, values)
		}
	}
}

func TestToDummiesWithConversionToLabels(t *testing.T) {
	q := phonesQuestion(t, codeChoices(phoneBrands...),
		[]any{4, 2}, nil, []any{3}, []any{1, 5})
	want := map[string][]any{
		"What are your favourite phone brands?: Huawei":  {0, nil, 0, 1},
		"What are your favourite phone brands?: iPhone":  {1, nil, 0, 0},
		"What are your favourite phone brands?: Nokia":   {0, nil, 1, 0},
		"What are your favourite phone brands?: Samsung": {1, nil, 0, 0},
		"What are your favourite phone brands?: Xiaomi":  {0, nil, 0, 1},
	}
	if got := dummyTable(q, true); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestToDummiesWhenNoChoicesGiven(t *testing.T) {
	q := phonesQuestion(t, nil,
		[]any{"Samsung", "iPhone"}, nil, []any{"Nokia"}, []any{"Huawei", "Xiaomi"})
	var names []string
	for _, c := range q.ToDummies(false) {
		names = append(names, c.Name)
	}
	want := []string{
		"favouritePhones_Huawei",
		"favouritePhones_Nokia",
		"favouritePhones_Samsung",
		"favouritePhones_Xiaomi",
		"favouritePhones_iPhone",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestDummyVariables(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues("Huawei", "iPhone"))
	want := []VariableMetadata{
		{Name: "favouritePhones_Huawei", Label: "What are your favourite phone brands?: Huawei", Type: QuestionTypeDummy},
		{Name: "favouritePhones_iPhone", Label: "What are your favourite phone brands?: iPhone", Type: QuestionTypeDummy},
	}
	if got := q.DummyVariables(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	free := phonesQuestion(t, nil, []any{"Samsung", "iPhone"}, nil)
	got := free.DummyVariables()
	if len(got) != 2 || got[0].Name != "favouritePhones_Samsung" || got[1].Label != "What are your favourite phone brands?: iPhone" {
		t.Errorf("unexpected dummy variables %v", got)
	}
}

func TestMultipleChoiceToSeries(t *testing.T) {
	q := phonesQuestion(t, codeChoices("iPhone", "Samsung", "Huawei", "Xiaomi", "Nokia"),
		[]any{2, 1}, nil, []any{5}, []any{3, 4})
	col := q.ToSeries(true)
	want := []any{[]any{"Samsung", "iPhone"}, nil, []any{"Nokia"}, []any{"Huawei", "Xiaomi"}}
	if col.Name != "What are your favourite phone brands?" || !reflect.DeepEqual(col.Values, want) {
		t.Errorf("unexpected series %s %v", col.Name, col.Values)
	}
}

func TestMultipleChoiceOptimize(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues("iPhone", "Samsung", "Huawei", "Xiaomi", "Nokia"),
		[]any{"Samsung", "iPhone"}, nil, []any{"Nokia"}, []any{"Huawei", "Xiaomi"})
	q.Optimize()

	wantChoices := codeChoices("iPhone", "Samsung", "Huawei", "Xiaomi", "Nokia").Items()
	if got := q.Choices().Items(); !reflect.DeepEqual(got, wantChoices) {
		t.Errorf("expected choices %v, got %v", wantChoices, got)
	}
	want := []Answer[[]Key]{Some(keys(2, 1)), {}, Some(keys(5)), Some(keys(3, 4))}
	if got := q.Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	q.Optimize()
	if got := q.Answers(); !reflect.DeepEqual(got, want) {
		t.Errorf("optimize on integer codes must be a no-op, got %v", got)
	}
}

func TestMultipleChoiceSummary(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues(phoneBrands...),
		[]any{"Samsung", "iPhone"}, nil, []any{"iPhone"})
	sum, err := q.Summary(SummaryOptions{})
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	want := []Frequency{{"Huawei", 0}, {"iPhone", 2}, {"Nokia", 0}, {"Samsung", 1}, {"Xiaomi", 0}}
	if !reflect.DeepEqual(sum.Counts, want) {
		t.Errorf("expected %v, got %v", want, sum.Counts)
	}
}

func TestMultipleChoiceMetadata(t *testing.T) {
	q := phonesQuestion(t, ChoicesFromValues("b", "a"), []any{"a"})
	meta := q.Metadata(MetadataOptions{Optimize: true})
	if len(meta) != 1 || !reflect.DeepEqual(meta[0].ValueLabels, codeChoices("b", "a").Items()) {
		t.Errorf("unexpected metadata %v", meta)
	}
	if q.DataType() != DataTypeStringList {
		t.Errorf("metadata must not optimize the question itself")
	}
}
