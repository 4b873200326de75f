package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/superlumen/internal/hostapi"
	"github.com/specialistvlad/superlumen/internal/security"
	"github.com/specialistvlad/superlumen/internal/surface"
	"github.com/specialistvlad/superlumen/internal/viewmodel"
)

// Bounds on the number of recovery question rows.
const (
	MinQuestions = 5
	MaxQuestions = 20
)

const (
	rowsSelector = "table.list tbody tr"
	qaRow        = `<td><input type="text" class="question" placeholder="Enter: Question" maxlength="128"></td>` +
		`<td><input type="text" class="answer" placeholder="Enter: Answer" maxlength="896"></td>` +
		`<td class="text-right"><button type="button" class="button button-delete-qa"><i class="fa fa-trash"></i></button></td>`
)

// RecoveryQuestions edits the question and answer pairs that protect the
// wallet password.
type RecoveryQuestions struct {
	screen

	record hostapi.RecoveryRecord
}

// NewRecoveryQuestions is the factory of the recovery-questions screen.
func NewRecoveryQuestions() viewmodel.ViewModel { return &RecoveryQuestions{} }

// Render implements viewmodel.ViewModel.
func (r *RecoveryQuestions) Render(ctx context.Context) error {
	r.call(ctx, hostapi.PathRecoveryRead, nil, r.onRead)
	r.focusFirstInput()
	r.on("#link-help-guidelines", surface.EventClick, func(ev *surface.Event) {
		if help := r.find("#help-guidelines"); help != nil {
			help.SetVisible(!help.Visible())
		}
		ev.PreventDefault()
	})
	r.on(".button-add-qa", surface.EventClick, func(*surface.Event) {
		r.addRow(true)
	})
	r.on(".button-cancel", surface.EventClick, func(*surface.Event) {
		r.closeWindow()
	})
	r.on(".button-save", surface.EventClick, func(*surface.Event) {
		r.save(ctx)
	})
	return nil
}

func (r *RecoveryQuestions) onRead(reply *hostapi.Reply, err error) {
	var rec hostapi.RecoveryRecord
	if err != nil {
		r.Logger().Warn("Failed to read the recovery record", "error", err)
	} else if reply.HasModel() {
		if err := reply.Decode(&rec); err != nil {
			r.Logger().Warn("Failed to decode the recovery record", "error", err)
		}
	}
	if len(rec.Questions) == 0 {
		for range MinQuestions {
			r.addRow(false)
		}
		r.updateMetrics()
		return
	}
	for i, q := range rec.Questions {
		row := r.addRow(false)
		if row == nil {
			break
		}
		setField(row, ".question", q)
		if i < len(rec.Answers) {
			setField(row, ".answer", rec.Answers[i])
		}
	}
	r.updateModel()
	r.updateMetrics()
}

func setField(row *surface.Element, sel, v string) {
	if el, _ := row.Query(sel); el != nil {
		el.SetValue(v)
	}
}

func field(row *surface.Element, sel string) string {
	if el, _ := row.Query(sel); el != nil {
		return el.Value()
	}
	return ""
}

// addRow appends an empty row, or returns nil once MaxQuestions rows exist.
func (r *RecoveryQuestions) addRow(focus bool) *surface.Element {
	tbody := r.find("table.list tbody")
	if tbody == nil {
		return nil
	}
	count := len(r.findAll(rowsSelector))
	if count >= MaxQuestions {
		r.setDisabled(".button-add-qa", true)
		return nil
	}

	row := r.Document().CreateElement("tr")
	if err := row.SetInnerHTML(qaRow); err != nil {
		r.Logger().Error("Failed to build question row", "error", err)
		return nil
	}
	inputs, _ := row.QueryAll(".question, .answer")
	for _, in := range inputs {
		in.On(surface.EventInput, func(*surface.Event) { r.updateMetrics() })
		in.On(surface.EventChange, func(*surface.Event) { r.updateMetrics() })
	}
	if del, _ := row.Query(".button-delete-qa"); del != nil {
		del.On(surface.EventClick, func(*surface.Event) { r.deleteRow(row) })
	}
	if err := tbody.AppendChild(row); err != nil {
		r.Logger().Error("Failed to append question row", "error", err)
		return nil
	}
	if focus {
		if q, _ := row.Query(".question"); q != nil {
			q.Focus()
		}
	}
	r.setDisabled(".button-add-qa", count+1 >= MaxQuestions)
	return row
}

func (r *RecoveryQuestions) deleteRow(row *surface.Element) {
	row.Discard()
	r.setDisabled(".button-add-qa", len(r.findAll(rowsSelector)) >= MaxQuestions)
	r.updateMetrics()
}

// pairs returns the rows where both the question and the answer are filled.
func (r *RecoveryQuestions) pairs() hostapi.RecoveryRecord {
	rec := hostapi.RecoveryRecord{Questions: []string{}, Answers: []string{}}
	for _, row := range r.findAll(rowsSelector) {
		q, a := field(row, ".question"), field(row, ".answer")
		if q != "" && a != "" {
			rec.Questions = append(rec.Questions, q)
			rec.Answers = append(rec.Answers, a)
		}
	}
	return rec
}

// updateMetrics shows the number of complete pairs and the strength of all
// answers together, and enables saving once enough pairs exist.
func (r *RecoveryQuestions) updateMetrics() security.Rank {
	rec := r.pairs()
	rank := security.Strength(strings.Join(rec.Answers, ""))
	if el := r.find(".span-answer-count"); el != nil {
		el.SetText(strconv.Itoa(len(rec.Answers)))
	}
	if el := r.find(".span-answer-strength"); el != nil {
		el.SetText(rank.Label)
	}
	r.setDisabled(".button-save", len(rec.Answers) < MinQuestions)
	return rank
}

func (r *RecoveryQuestions) updateModel() {
	r.record = r.pairs()
}

func (r *RecoveryQuestions) save(ctx context.Context) {
	rank := r.updateMetrics()
	r.updateModel()
	switch {
	case len(r.record.Answers) < MinQuestions:
		r.alert(fmt.Sprintf("At least %d questions must be configured.", MinQuestions))
		return
	case rank.Rank <= security.StrengthWeak:
		r.alert("Your total answer strength is too weak. Recovery records must have at least medium strength protection.")
		return
	}
	r.call(ctx, hostapi.PathRecoverySave, []any{r.record}, func(reply *hostapi.Reply, err error) {
		switch {
		case err != nil || reply == nil:
			if err != nil {
				r.Logger().Error("Failed to save the recovery record", "error", err)
			}
			r.alert("Unable to save recovery record settings due to the wallet being locked or unavailable.")
		case reply.Failed():
			r.alert("Failed to save the recovery record:\n" + strings.Join(reply.Errors, "\n"))
		default:
			r.closeWindow()
		}
	})
}
