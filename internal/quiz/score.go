package quiz

// PointsPerQuestion matches the fixed scoring weight used on the dashboard.
const PointsPerQuestion = 10

// Score grades a submission against the quiz's questions. Answers are keyed by
// question row id and compared against the stored correct option text; missing
// or wrong answers score zero for that question.
func Score(questions []Question, answers map[int64]string) (score, max int) {
	for _, question := range questions {
		if answers[question.ID] == question.CorrectAnswer {
			score += PointsPerQuestion
		}
	}
	return score, len(questions) * PointsPerQuestion
}

// GroupByClass buckets quizzes under their class name, using "Other" for
// quizzes without one. Bucket order is up to the caller.
func GroupByClass(quizzes []Quiz) map[string][]Quiz {
	classes := make(map[string][]Quiz)
	for _, q := range quizzes {
		name := q.ClassName
		if name == "" {
			name = "Other"
		}
		classes[name] = append(classes[name], q)
	}
	return classes
}
