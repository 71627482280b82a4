package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"classquiz/internal/quiz"
)

const maxAttempts = 3

// Run drives an interactive practice session against the stored quizzes.
// Practice runs are not recorded.
func Run(ctx context.Context, quizzes quiz.QuizStore, in io.Reader, out io.Writer) error {
	available, err := quizzes.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	if len(available) == 0 {
		fmt.Fprintln(out, "No quizzes available. Run the migrations first.")
		return nil
	}

	reader := bufio.NewReader(in)
	selected, ok := selectQuiz(reader, out, available)
	if !ok {
		fmt.Fprintln(out, "No quiz selected.")
		return nil
	}

	questions, err := quizzes.GetQuestions(ctx, selected.ID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		fmt.Fprintln(out, "This quiz has no questions.")
		return nil
	}

	fmt.Fprintf(out, "\nStarting %s\n", selected.Name)
	score := 0
	for idx, question := range questions {
		printQuestion(out, idx+1, question)

		options := question.Options()
		chosenIndex, ok := getAnswer(reader, out, len(options))
		fmt.Fprintln(out)
		if !ok {
			fmt.Fprintf(out, "Skipping. Correct answer was %s\n\n", question.CorrectAnswer)
			continue
		}

		if options[chosenIndex] == question.CorrectAnswer {
			fmt.Fprintln(out, "Correct!")
			score += quiz.PointsPerQuestion
		} else {
			fmt.Fprintf(out, "Wrong. Correct answer was %s\n", question.CorrectAnswer)
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "\nFinal score: %d/%d\n", score, len(questions)*quiz.PointsPerQuestion)
	return nil
}

func selectQuiz(reader *bufio.Reader, out io.Writer, available []quiz.Quiz) (quiz.Quiz, bool) {
	fmt.Fprintln(out, "Available quizzes:")
	for idx, item := range available {
		label := item.Name
		if item.ClassName != "" {
			label = item.ClassName + " - " + label
		}
		fmt.Fprintf(out, "%d. %s\n", idx+1, label)
	}
	fmt.Fprintf(out, "\nPick a quiz (1-%d): ", len(available))

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		line, err := reader.ReadString('\n')
		if err != nil {
			return quiz.Quiz{}, false
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && choice >= 1 && choice <= len(available) {
			return available[choice-1], true
		}
		if attempt < maxAttempts {
			fmt.Fprintf(out, "Invalid choice. Please enter a number 1-%d: ", len(available))
		}
	}
	return quiz.Quiz{}, false
}

func printQuestion(out io.Writer, number int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: %s\n\n", number, question.Text)
	for idx, option := range question.Options() {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, option)
	}
	fmt.Fprintln(out)
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		userAnswer, err := reader.ReadString('\n')
		if err != nil {
			return -1, false
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), true
			}
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return -1, false
}
