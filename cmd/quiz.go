package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studynav/internal/catalog"
	"github.com/abhisek/studynav/internal/quiz"
	"github.com/abhisek/studynav/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a quiz",
	Long:  "Take the catalog's practice quiz, or one loaded from --file. --plain runs it line by line on stdin/stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		plain, _ := cmd.Flags().GetBool("plain")

		q, err := loadQuiz(file)
		if err != nil {
			return err
		}
		if !plain {
			return launch(cmd, q)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		session, err := runPlainQuiz(os.Stdin, os.Stdout, q)
		if err != nil {
			return err
		}
		return saveAttempt(cmd.Context(), st.EventRepo(), session)
	},
}

func init() {
	quizCmd.Flags().StringP("file", "f", "", "Quiz JSON file (defaults to the catalog quiz)")
	quizCmd.Flags().Bool("plain", false, "Line-based quiz without the TUI")
}

func loadQuiz(file string) (*quiz.Quiz, error) {
	if file != "" {
		return quiz.LoadFile(file)
	}
	cat, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	q := cat.Quiz
	return &q, nil
}

// runPlainQuiz drives a session from line input. It returns the completed
// session, or an error when input ends first.
func runPlainQuiz(in io.Reader, out io.Writer, q *quiz.Quiz) (*quiz.Session, error) {
	s := quiz.NewSession(q)
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "%s (%d questions, pass at %d%%)\n", q.Title, q.Len(), q.PassingScore)
	if q.TimeLimit > 0 {
		fmt.Fprintf(out, "Suggested time: %d min\n", q.TimeLimit)
	}

	for {
		snap := s.Snapshot()
		if snap.Complete {
			break
		}
		question := snap.Question

		fmt.Fprintf(out, "\nQuestion %d/%d", snap.CurrentIndex+1, snap.Total)
		if question.Difficulty != "" {
			fmt.Fprintf(out, " [%s]", question.Difficulty.Label())
		}
		fmt.Fprintf(out, "\n%s\n", question.Text)
		for i, opt := range question.Options {
			fmt.Fprintf(out, "  %s. %s\n", quiz.OptionLabel(i), opt)
		}

		for s.Snapshot().State != quiz.StateRevealed {
			fmt.Fprintf(out, "Answer (%s-%s): ", quiz.OptionLabel(0), quiz.OptionLabel(len(question.Options)-1))
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("read answer: %w", err)
				}
				return nil, errors.New("quiz abandoned: input ended")
			}
			idx, ok := parseAnswer(scanner.Text(), len(question.Options))
			if !ok {
				fmt.Fprintln(out, "Please enter one of the option letters.")
				continue
			}
			s.SelectOption(idx)
			s.SubmitAnswer()
		}

		answer := s.Snapshot().Answers[snap.CurrentIndex]
		if question.IsCorrect(answer) {
			fmt.Fprintln(out, "✓ Correct!")
		} else {
			fmt.Fprintf(out, "✗ Not quite. The answer is %s.\n", quiz.OptionLabel(question.CorrectAnswer))
		}
		if question.Explanation != "" {
			fmt.Fprintf(out, "  %s\n", question.Explanation)
		}

		if err := s.Advance(); err != nil {
			return nil, err
		}
	}

	res, _ := s.Result()
	verdict := "PASSED"
	if !res.Passed {
		verdict = "NEEDS REVIEW"
	}
	fmt.Fprintf(out, "\nYou scored %d%% (%d/%d correct): %s\n", res.Score, res.Correct, res.Total, verdict)
	return s, nil
}

// parseAnswer accepts an option letter or a 1-based number.
func parseAnswer(text string, n int) (int, bool) {
	text = strings.TrimSpace(strings.ToUpper(text))
	if text == "" {
		return 0, false
	}
	if idx, err := strconv.Atoi(text); err == nil {
		idx--
		return idx, idx >= 0 && idx < n
	}
	if len(text) != 1 {
		return 0, false
	}
	idx := int(text[0] - 'A')
	return idx, idx >= 0 && idx < n
}

func saveAttempt(ctx context.Context, repo store.EventRepo, s *quiz.Session) error {
	res, ok := s.Result()
	if !ok {
		return nil
	}
	q := s.Quiz()
	data := store.QuizAttemptData{
		SessionID: s.ID,
		QuizID:    q.ID,
		QuizTitle: q.Title,
		Score:     res.Score,
		Correct:   res.Correct,
		Total:     res.Total,
		Passed:    res.Passed,
		Duration:  time.Since(s.StartedAt),
	}
	if err := repo.AppendQuizAttempt(ctx, data); err != nil {
		return err
	}
	logger.WithField("session_id", s.ID).WithField("score", res.Score).Info("quiz attempt saved")
	return nil
}
