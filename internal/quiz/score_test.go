package quiz

import "testing"

func scoreTestQuestions() []Question {
	return []Question{
		{ID: 1, Text: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: "4"},
		{ID: 2, Text: "Sky color?", OptionA: "Green", OptionB: "Red", OptionC: "Blue", OptionD: "Yellow", CorrectAnswer: "Blue"},
		{ID: 3, Text: "Largest planet?", OptionA: "Mars", OptionB: "Jupiter", OptionC: "Venus", OptionD: "Earth", CorrectAnswer: "Jupiter"},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		answers   map[int64]string
		wantScore int
	}{
		{"all correct", map[int64]string{1: "4", 2: "Blue", 3: "Jupiter"}, 30},
		{"partial", map[int64]string{1: "4", 2: "Red"}, 10},
		{"none answered", nil, 0},
		{"wrong letter-like answers", map[int64]string{1: "A", 2: "C"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, max := Score(scoreTestQuestions(), tt.answers)
			if score != tt.wantScore {
				t.Fatalf("score = %d, want %d", score, tt.wantScore)
			}
			if max != 30 {
				t.Fatalf("max = %d, want 30", max)
			}
		})
	}
}

func TestGroupByClass(t *testing.T) {
	quizzes := []Quiz{
		{ID: 1, Name: "Quiz One", ClassName: "CIS 53"},
		{ID: 2, Name: "Quiz Two", ClassName: ""},
		{ID: 3, Name: "Quiz Three", ClassName: "CIS 53"},
	}

	classes := GroupByClass(quizzes)
	if len(classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(classes))
	}
	if len(classes["CIS 53"]) != 2 {
		t.Fatalf("expected 2 quizzes in CIS 53, got %d", len(classes["CIS 53"]))
	}
	if len(classes["Other"]) != 1 || classes["Other"][0].Name != "Quiz Two" {
		t.Fatalf("unnamed class not grouped under Other: %+v", classes["Other"])
	}
}
