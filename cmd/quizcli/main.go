// quizcli plays one day's quiz in the terminal: fetch a date from the API
// (or a local data dir), answer/skip/mark/jump through the questions, then
// walk the filtered review and optionally export a PDF report.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prepwise/dailyquiz/internal/config"
	"github.com/prepwise/dailyquiz/internal/progress"
	"github.com/prepwise/dailyquiz/internal/quiz"
	"github.com/prepwise/dailyquiz/internal/quizclient"
	"github.com/prepwise/dailyquiz/internal/quizfile"
	"github.com/prepwise/dailyquiz/internal/report"
	"github.com/prepwise/dailyquiz/internal/session"
)

func main() {
	cfg := config.FromEnv()

	date := flag.String("date", time.Now().Format("2006-01-02"), "quiz date (YYYY-MM-DD)")
	apiURL := flag.String("api", "", "quiz API base URL; empty means local data dir")
	dataDir := flag.String("data", cfg.DataDir, "local quiz data directory")
	reportDir := flag.String("reports", cfg.ReportDir, "directory for exported PDF reports")
	flag.Parse()

	doc, err := loadDocument(*apiURL, *dataDir, *date)
	if err != nil {
		log.Fatal(err)
	}

	sess := session.New()
	if err := sess.Load(doc); err != nil {
		log.Fatalf("load quiz: %v", err)
	}

	in := bufio.NewScanner(os.Stdin)
	runQuiz(in, sess)

	res := sess.Results()
	printDashboard(res)
	recordProgress(cfg.ProgressPath, *date, res.Score)

	runReview(in, sess, doc, *reportDir)
}

// loadDocument resolves a date to a quiz document: API when configured, the
// static file layout otherwise. A missing date falls back to probing for the
// most recent available quizzes so the user gets a suggestion, not a wall.
func loadDocument(apiURL, dataDir, date string) (quiz.Document, error) {
	if apiURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		doc, err := quizclient.New(apiURL, nil).GetByDate(ctx, date)
		if errors.Is(err, quizclient.ErrTransient) {
			return quiz.Document{}, fmt.Errorf("quiz service unreachable, try again: %v", err)
		}
		if errors.Is(err, quiz.ErrNotFound) {
			return quiz.Document{}, fmt.Errorf("no quiz for %s; try a recent date", date)
		}
		return doc, err
	}

	doc, err := quizfile.Load(dataDir, date)
	if errors.Is(err, quiz.ErrNotFound) {
		day, perr := time.Parse("2006-01-02", date)
		if perr != nil {
			return quiz.Document{}, quiz.ErrInvalidDate
		}
		recent := quizfile.Recent(dataDir, day, 5, 90)
		if len(recent) == 0 {
			return quiz.Document{}, fmt.Errorf("no quiz for %s and none in the last 90 days", date)
		}
		var dates []string
		for _, f := range recent {
			dates = append(dates, f.Date)
		}
		return quiz.Document{}, fmt.Errorf("no quiz for %s; most recent available: %s", date, strings.Join(dates, ", "))
	}
	return doc, err
}

func runQuiz(in *bufio.Scanner, sess *session.Session) {
	for sess.State() == session.StateActive {
		i := sess.Current()
		q, _ := sess.Question(i)
		printQuestion(sess, i, q)

		fmt.Print("> ")
		if !in.Scan() {
			_ = sess.Complete()
			return
		}
		cmd := strings.TrimSpace(strings.ToLower(in.Text()))
		switch {
		case cmd == "":
		case cmd == "q":
			_ = sess.Complete()
		case cmd == "n":
			_ = sess.Advance()
		case cmd == "s":
			_ = sess.Skip(i)
		case cmd == "m":
			on, err := sess.ToggleMark(i)
			if err == nil && on {
				fmt.Println("marked for review")
			} else if err == nil {
				fmt.Println("review mark removed")
			}
		case cmd == "h":
			sess.MarkHintUsed()
			correct, _ := sess.CorrectOption(i)
			fmt.Printf("hint: look at option %c\n", 'A'+correct)
		case strings.HasPrefix(cmd, "j "):
			target, err := strconv.Atoi(strings.TrimSpace(cmd[2:]))
			if err != nil || sess.Jump(target-1) != nil {
				fmt.Println("no such question")
			}
		case cmd == "t":
			if sess.PauseTimer() {
				fmt.Println("timer running")
			} else {
				fmt.Println("timer paused")
			}
		case len(cmd) == 1 && cmd[0] >= 'a' && cmd[0] <= 'z':
			opt := int(cmd[0] - 'a')
			ok, err := sess.SelectOption(i, opt)
			switch {
			case errors.Is(err, session.ErrBadOption):
				fmt.Println("no such option")
			case err != nil:
				fmt.Println(err)
			case ok:
				fmt.Println("correct!")
				printRationale(q)
			default:
				correct, _ := sess.CorrectOption(i)
				fmt.Printf("incorrect - correct answer: %c. %s\n", 'A'+correct, q.Options[correct])
				printRationale(q)
			}
		default:
			fmt.Println("commands: a-d answer, n next, s skip, m mark, j N jump, h hint, t timer, q end")
		}
	}
}

func printQuestion(sess *session.Session, i int, q quiz.Question) {
	acted, pct := sess.Progress()
	fmt.Printf("\n[%d/%d answered, %d%%] elapsed %s", acted, sess.Len(), pct, clock(sess.Elapsed()))
	if sess.Marked(i) {
		fmt.Print("  (marked)")
	}
	fmt.Printf("\nQ%d. %s\n", i+1, q.Text)
	for j, opt := range q.Options {
		fmt.Printf("  %c. %s\n", 'A'+j, opt)
	}
	if a, _ := sess.AnswerAt(i); a >= 0 {
		fmt.Printf("  (already answered: %c)\n", 'A'+int(a))
	}
}

func printRationale(q quiz.Question) {
	if q.Rationale != "" {
		fmt.Println("explanation:", q.Rationale)
	}
}

func printDashboard(res session.Results) {
	fmt.Printf("\n===== Results =====\n")
	fmt.Printf("Score     %d / %d\n", res.Score, res.Total)
	fmt.Printf("Correct   %d\nWrong     %d\nSkipped   %d\n", res.Correct, res.Wrong, res.Skipped)
	fmt.Printf("Accuracy  %d%%\n", res.Accuracy)
	fmt.Printf("Time      %s (avg %ds per question)\n", clock(res.Elapsed), res.AvgSecs)
	fmt.Println(res.Rating)
}

func recordProgress(path, date string, score int) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		day = time.Now()
	}
	snap, newBest, err := progress.NewTracker(path).Record(day, score)
	if err != nil {
		log.Printf("progress not saved: %v", err)
		return
	}
	fmt.Printf("Streak: %d days  Personal best: %d\n", snap.Streak, snap.HighScore)
	if newBest {
		fmt.Println("New high score!")
	}
}

func runReview(in *bufio.Scanner, sess *session.Session, doc quiz.Document, reportDir string) {
	rev := session.NewReview(sess)
	fmt.Println("\nreview: f all|wrong|skipped filter, n/p move, j N jump, e export pdf, x exit")
	printReviewQuestion(sess, rev)

	for {
		fmt.Print("review> ")
		if !in.Scan() {
			return
		}
		cmd := strings.TrimSpace(strings.ToLower(in.Text()))
		switch {
		case cmd == "x" || cmd == "q":
			return
		case cmd == "n":
			if !rev.Next() {
				fmt.Println("end of list")
			}
			printReviewQuestion(sess, rev)
		case cmd == "p":
			if !rev.Prev() {
				fmt.Println("start of list")
			}
			printReviewQuestion(sess, rev)
		case strings.HasPrefix(cmd, "f "):
			f := session.Filter(strings.TrimSpace(cmd[2:]))
			if f != session.FilterAll && f != session.FilterWrong && f != session.FilterSkipped {
				fmt.Println("filters: all, wrong, skipped")
				continue
			}
			if len(rev.SetFilter(f)) == 0 {
				fmt.Printf("no %s questions\n", f)
			}
			printReviewQuestion(sess, rev)
		case strings.HasPrefix(cmd, "j "):
			target, err := strconv.Atoi(strings.TrimSpace(cmd[2:]))
			if err != nil || rev.JumpTo(target-1) != nil {
				fmt.Println("no such question")
			}
			printReviewQuestion(sess, rev)
		case cmd == "e":
			path, err := report.NewGenerator(reportDir).Render(sess, doc)
			if err != nil {
				fmt.Println("export failed:", err)
				continue
			}
			fmt.Println("report written to", path)
		default:
			fmt.Println("review: f all|wrong|skipped, n, p, j N, e, x")
		}
	}
}

func printReviewQuestion(sess *session.Session, rev *session.Review) {
	i, ok := rev.Current()
	if !ok {
		return
	}
	pos, total := rev.Position()
	q, _ := sess.Question(i)
	st, _ := sess.StatusOf(i)
	fmt.Printf("\nQuestion %d of %d", i+1, sess.Len())
	if rev.Filter() != session.FilterAll {
		fmt.Printf(" (%d of %d filtered)", pos, total)
	}
	fmt.Printf(" - %s\n%s\n", st, q.Text)

	correct, _ := sess.CorrectOption(i)
	answer, _ := sess.AnswerAt(i)
	for j, opt := range q.Options {
		mark := "  "
		switch {
		case j == correct:
			mark = "✓ "
		case answer == session.Answer(j):
			mark = "✗ "
		}
		fmt.Printf("  %s%c. %s\n", mark, 'A'+j, opt)
	}
	if spent, err := sess.TimeSpent(i); err == nil && spent > 0 {
		fmt.Printf("  time on question: %ds\n", int(spent.Seconds()))
	}
	if q.Rationale != "" {
		fmt.Println("  explanation:", q.Rationale)
	}
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
