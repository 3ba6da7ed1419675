package entitylink

import (
	"bufio"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/chatseg/errors"
	"github.com/kbukum/chatseg/logger"
	"github.com/kbukum/chatseg/score"
	"github.com/kbukum/chatseg/util"
	"github.com/kbukum/chatseg/validation"
)

// DefaultUnknownEntityID marks labels that are excluded from scoring.
const DefaultUnknownEntityID = "Unknown"

// maxLineSize bounds a single JSONL record.
const maxLineSize = 64 << 20

// Unit is one scoreable entity mention.
type Unit struct {
	DocumentID  int
	SurfaceForm string
	EntityID    string
}

// DocumentUnits are the units one document contributes.
type DocumentUnits struct {
	GroundTruth []Unit
	Predicted   []Unit
	// Ignored counts predicted mentions consumed by unknown-entity labels.
	Ignored int
}

// BuildUnits validates rec and derives the ground-truth and predicted units
// of one document.
func BuildUnits(documentID int, rec Record, unknownEntityID string) (DocumentUnits, error) {
	if err := validation.Validate(rec); err != nil {
		return DocumentUnits{}, err
	}
	var units DocumentUnits
	text := []rune(*rec.Text)

	var filtered []string
	for _, label := range rec.Labels {
		surface, err := label.spanText(text)
		if err != nil {
			return DocumentUnits{}, err
		}
		surface = strings.TrimSpace(surface)
		if *label.EntityID == unknownEntityID {
			filtered = append(filtered, surface)
			continue
		}
		units.GroundTruth = append(units.GroundTruth, Unit{
			DocumentID: documentID, SurfaceForm: surface, EntityID: *label.EntityID,
		})
	}

	mentions := ExtractMentions(*rec.Output)
	if len(mentions) != len(rec.OutputQID) {
		return DocumentUnits{}, errors.MalformedInput(
			fmt.Sprintf("output has %d mentions but output_qid has %d entries", len(mentions), len(rec.OutputQID)),
		).WithDetails(map[string]any{"mentions": len(mentions), "output_qid": len(rec.OutputQID)})
	}

	for i, mention := range mentions {
		mention = strings.TrimSpace(mention)
		var consumed bool
		if filtered, consumed = util.RemoveFirst(filtered, mention); consumed {
			units.Ignored++
			continue
		}
		units.Predicted = append(units.Predicted, Unit{
			DocumentID: documentID, SurfaceForm: mention, EntityID: rec.OutputQID[i],
		})
	}
	return units, nil
}

// Result is the outcome of scoring one input.
type Result struct {
	score.Metrics
	Documents   int `json:"documents"`
	GroundTruth int `json:"ground_truth"`
	Predicted   int `json:"predicted"`
	Ignored     int `json:"ignored"`
}

// Evaluator scores JSONL inputs. The zero value uses DefaultUnknownEntityID
// and does not log.
type Evaluator struct {
	UnknownEntityID string
	Logger          *logger.Logger
}

// NewEvaluator creates an Evaluator. An empty unknownEntityID selects the
// default and a nil log disables logging.
func NewEvaluator(unknownEntityID string, log *logger.Logger) *Evaluator {
	return &Evaluator{UnknownEntityID: unknownEntityID, Logger: log}
}

func (e *Evaluator) unknownID() string {
	return util.Coalesce(e.UnknownEntityID, DefaultUnknownEntityID)
}

func (e *Evaluator) log() *logger.Logger {
	if e.Logger == nil {
		return logger.Nop()
	}
	return e.Logger
}

// Evaluate reads one record per line from r and scores all of them.
// Blank lines are skipped and do not take a document id. The first
// malformed record aborts the run, since later document ids would no
// longer line up.
func (e *Evaluator) Evaluate(r io.Reader) (Result, error) {
	start := time.Now()
	log := e.log().WithComponent("entitylink")
	unknown := e.unknownID()

	var gold, pred []Unit
	var res Result

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(strings.TrimSpace(string(raw))) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return Result{}, atLine(errors.MalformedInput("invalid JSON").WithCause(err), line)
		}
		docID := res.Documents
		units, err := BuildUnits(docID, rec, unknown)
		if err != nil {
			return Result{}, atLine(err, line)
		}
		gold = append(gold, units.GroundTruth...)
		pred = append(pred, units.Predicted...)
		res.Ignored += units.Ignored
		res.Documents++

		log.Debug("document scored", logger.Fields(
			logger.FieldDocumentID, docID,
			logger.FieldLine, line,
			"ground_truth", len(units.GroundTruth),
			"predicted", len(units.Predicted),
			"ignored", units.Ignored,
		))
	}
	if err := scanner.Err(); err != nil {
		return Result{}, atLine(errors.MalformedInput("cannot read input").WithCause(err), line+1)
	}

	res.Metrics = score.MultisetF1(gold, pred)
	res.GroundTruth = len(gold)
	res.Predicted = len(pred)

	fields := logger.DurationFields("evaluate", time.Since(start))
	fields["documents"] = res.Documents
	fields["f1"] = res.F1
	log.Info("evaluation complete", fields)
	return res, nil
}

// EvaluateFile scores the JSONL file at path.
func (e *Evaluator) EvaluateFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, errors.MalformedInput("cannot open input file").WithCause(err).WithDetail("path", path)
	}
	defer f.Close()

	res, err := e.Evaluate(f)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithDetail("path", path)
		}
		return Result{}, err
	}
	return res, nil
}

// atLine prefixes err's message with the input line and records it in the
// details. Non-AppErrors are wrapped as MALFORMED_INPUT.
func atLine(err error, line int) *errors.AppError {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.MalformedInput(err.Error()).WithCause(err)
	}
	appErr.Message = fmt.Sprintf("line %d: %s", line, appErr.Message)
	return appErr.WithDetail("line", line)
}
