// Package report renders a completed session into a paginated PDF. The
// export is a read-only snapshot: it never touches session state, and any
// block failure aborts the whole file.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/prepwise/dailyquiz/internal/quiz"
	"github.com/prepwise/dailyquiz/internal/session"
)

var (
	// ErrNotCompleted means the session has not reached Completed state.
	ErrNotCompleted = errors.New("session not completed, nothing to export")
	// ErrRender wraps rendering-backend failures.
	ErrRender = errors.New("report rendering failed")
)

const (
	pageTop    = 15.0
	pageBottom = 15.0
	pageLeft   = 15.0
	lineHt     = 5.5
	blockGap   = 4.0
)

type Generator struct {
	OutDir string
}

func NewGenerator(outDir string) *Generator { return &Generator{OutDir: outDir} }

// Render writes the session report and returns the file path. Blocks are
// emitted in strict question order; a block that does not fit the remaining
// page starts a new page, and a block taller than a full page is scaled down
// to fit exactly one page.
func (g *Generator) Render(sess *session.Session, doc quiz.Document) (string, error) {
	if sess.State() != session.StateCompleted {
		return "", ErrNotCompleted
	}
	res := sess.Results()
	if len(res.Questions) != len(doc.Questions) {
		return "", fmt.Errorf("%w: session does not match document", ErrRender)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeft, pageTop, pageLeft)
	pdf.SetAutoPageBreak(false, pageBottom)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	usableW := pageW - 2*pageLeft
	usableH := pageH - pageTop - pageBottom

	title := fmt.Sprintf("Daily Quiz Report - %s", doc.Date)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(usableW, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	emit := func(b block) error {
		// First pass: capture layout (height at full size).
		h := b.height(pdf, usableW)
		if pdf.Err() {
			return fmt.Errorf("%w: %v", ErrRender, pdf.Error())
		}
		if h+blockGap > pageH-pageBottom-pdf.GetY() {
			pdf.AddPage()
		}
		// Second pass: compose, scaling down a block taller than one page.
		if h > usableH {
			scale := usableH / h
			y := pdf.GetY()
			pdf.TransformBegin()
			pdf.TransformScale(scale*100, scale*100, pageLeft, y)
			b.draw(pdf, tr, usableW)
			pdf.TransformEnd()
			pdf.SetY(y + usableH)
		} else {
			b.draw(pdf, tr, usableW)
			pdf.Ln(blockGap)
		}
		if pdf.Err() {
			return fmt.Errorf("%w: %v", ErrRender, pdf.Error())
		}
		return nil
	}

	for i := range doc.Questions {
		if err := emit(questionBlock{q: doc.Questions[i], r: res.Questions[i]}); err != nil {
			return "", err
		}
	}
	if err := emit(summaryBlock{res: res}); err != nil {
		return "", err
	}

	// Compose the whole document in memory first so a failure never leaves a
	// partial file on disk.
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := os.MkdirAll(g.OutDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("quiz-report-%s-%s.pdf", doc.Date, uuid.NewString()[:8])
	path := filepath.Join(g.OutDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type block interface {
	height(pdf *fpdf.Fpdf, w float64) float64
	draw(pdf *fpdf.Fpdf, tr func(string) string, w float64)
}

type questionBlock struct {
	q quiz.Question
	r session.QuestionResult
}

func (b questionBlock) lines() []string {
	var out []string
	out = append(out, fmt.Sprintf("Q%d. %s", b.r.Index+1, b.q.Text))
	for i, opt := range b.q.Options {
		mark := " "
		switch {
		case i == b.r.CorrectIndex:
			mark = "*" // correct option
		case b.r.Answer == session.Answer(i):
			mark = "x" // the user's wrong pick
		}
		out = append(out, fmt.Sprintf(" %s %c. %s", mark, 'A'+i, opt))
	}
	out = append(out, "Your answer: "+answerLabel(b.q, b.r))
	out = append(out, fmt.Sprintf("Correct answer: %c. %s", 'A'+b.r.CorrectIndex, b.q.Options[b.r.CorrectIndex]))
	if b.q.Rationale != "" {
		out = append(out, "Explanation: "+b.q.Rationale)
	}
	if b.r.LatencySeconds > 0 {
		out = append(out, fmt.Sprintf("Answered in %ds", b.r.LatencySeconds))
	}
	return out
}

func (b questionBlock) height(pdf *fpdf.Fpdf, w float64) float64 {
	pdf.SetFont("Helvetica", "", 11)
	n := 0
	for _, line := range b.lines() {
		n += len(pdf.SplitText(line, w))
	}
	return float64(n) * lineHt
}

func (b questionBlock) draw(pdf *fpdf.Fpdf, tr func(string) string, w float64) {
	for i, line := range b.lines() {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.MultiCell(w, lineHt, tr(line), "", "L", false)
	}
}

func answerLabel(q quiz.Question, r session.QuestionResult) string {
	switch r.Status {
	case session.StatusSkipped:
		return "skipped"
	case session.StatusUnanswered:
		return "not answered"
	default:
		return fmt.Sprintf("%c. %s", 'A'+int(r.Answer), q.Options[int(r.Answer)])
	}
}

type summaryBlock struct {
	res session.Results
}

func (b summaryBlock) lines() []string {
	r := b.res
	return []string{
		"Summary",
		fmt.Sprintf("Score: %d / %d", r.Score, r.Total),
		fmt.Sprintf("Correct: %d   Wrong: %d   Skipped: %d", r.Correct, r.Wrong, r.Skipped),
		fmt.Sprintf("Accuracy: %d%%", r.Accuracy),
		fmt.Sprintf("Total time: %02d:%02d   Avg. %ds per question", r.Elapsed/60, r.Elapsed%60, r.AvgSecs),
		r.Rating,
	}
}

func (b summaryBlock) height(pdf *fpdf.Fpdf, w float64) float64 {
	pdf.SetFont("Helvetica", "", 11)
	n := 0
	for _, line := range b.lines() {
		n += len(pdf.SplitText(line, w))
	}
	return float64(n) * lineHt
}

func (b summaryBlock) draw(pdf *fpdf.Fpdf, tr func(string) string, w float64) {
	for i, line := range b.lines() {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.MultiCell(w, lineHt, tr(line), "", "L", false)
	}
}
