package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/canvass"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/ports"
)

// errQuit signals that the respondent asked to leave the survey.
var errQuit = errors.New("quit")

// RunSession drives one interactive survey pass on the terminal.
func RunSession(ctx context.Context, opts RunOptions, store ports.ResumeStore, logger *slog.Logger) error {
	source := ResolveSource(opts.Ref)

	sessOpts := []canvass.Option{
		canvass.WithLogger(logger),
		canvass.WithIdentity(staticIdentity{
			name:          opts.Name,
			email:         opts.Email,
			preferredName: opts.PreferredName,
		}),
	}
	if opts.SessionID != "" {
		sessOpts = append(sessOpts,
			canvass.WithSessionID(opts.SessionID),
			canvass.WithStore(store),
		)
	}
	if opts.SubmitURL != "" {
		sessOpts = append(sessOpts, canvass.WithSubmitter(NewHTTPSubmitter(opts.SubmitURL)))
	} else {
		sessOpts = append(sessOpts, canvass.WithSubmitter(newPrintSubmitter(os.Stdout)))
	}

	sess := canvass.New(source, sessOpts...)
	if err := sess.Load(ctx, opts.Ref); err != nil {
		return fmt.Errorf("loading survey: %w", err)
	}

	ui := newTerminal(os.Stdout, bufio.NewReader(os.Stdin))
	survey := sess.Survey()

	ui.title(survey.Title)
	if survey.Description != "" {
		ui.markdown(survey.Description)
	}
	if opts.SessionID != "" && sess.CurrentStepIndex() > 0 {
		ui.system("Resuming at step %d of %d.", sess.CurrentStepIndex()+1, len(sess.Steps()))
	}

	err := runSteps(ctx, sess, ui)
	if errors.Is(err, errQuit) {
		ui.system("Progress saved. Run again with the same session to resume.")
		return nil
	}
	return err
}

func runSteps(ctx context.Context, sess *canvass.Session, ui *terminal) error {
	for {
		if err := ctx.Err(); err != nil {
			return errQuit
		}

		step := sess.CurrentStep()
		if step == nil {
			ui.warn("This survey has no steps.")
			return nil
		}
		ui.stepHeader(sess.CurrentStepIndex()+1, len(sess.Steps()), step)

		for i := range step.Questions {
			q := &step.Questions[i]
			if !sess.ShouldShowQuestion(q) {
				continue
			}
			if err := askQuestion(ctx, sess, ui, q); err != nil {
				return err
			}
		}

		if !sess.HasNextStep() {
			return finishSurvey(ctx, sess, ui)
		}

		if sess.NextStep(ctx) {
			continue
		}

		// Blocked by unanswered required questions. Re-ask just those.
		missing := sess.MissingRequired()
		ui.warn("Required questions are still unanswered.")
		for _, id := range missing {
			q := sess.Survey().QuestionByID(id)
			if q == nil {
				continue
			}
			if err := askQuestion(ctx, sess, ui, q); err != nil {
				return err
			}
		}
	}
}

func finishSurvey(ctx context.Context, sess *canvass.Session, ui *terminal) error {
	if missing := sess.MissingRequired(); len(missing) > 0 {
		ui.warn("Required questions are still unanswered: %s", strings.Join(missing, ", "))
		for _, id := range missing {
			q := sess.Survey().QuestionByID(id)
			if q == nil {
				continue
			}
			if err := askQuestion(ctx, sess, ui, q); err != nil {
				return err
			}
		}
	}

	ok, err := ui.confirm("Submit your responses?")
	if err != nil {
		return err
	}
	if !ok {
		return errQuit
	}

	sub, err := sess.Submit(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptySubmission) {
			ui.warn("Nothing to submit.")
			return nil
		}
		return fmt.Errorf("submitting responses: %w", err)
	}

	sess.ClearResponses(ctx)
	ui.system("Thank you, %s. Submission %s recorded.", sub.Identity, sub.ID)
	return nil
}

// askQuestion prompts until it gets a usable answer, an explicit skip,
// or a quit command.
func askQuestion(ctx context.Context, sess *canvass.Session, ui *terminal, q *domain.Question) error {
	ui.question(q)

	for {
		value, skipped, err := promptValue(ui, q)
		if err != nil {
			if errors.Is(err, errQuit) {
				return errQuit
			}
			ui.warn("%v", err)
			continue
		}
		if skipped {
			if q.Required && ui.showRequiredHint {
				ui.warn("This question is required. You can answer it before moving on.")
			}
			return nil
		}

		comment := ""
		if q.AllowComment {
			comment, err = ui.readLine("Comment (optional)")
			if err != nil {
				return err
			}
		}

		sess.SaveResponse(ctx, q.ID, value, comment)
		return nil
	}
}

// promptValue reads and parses one answer for the question type.
// Returns skipped=true when the respondent left the answer blank.
func promptValue(ui *terminal, q *domain.Question) (any, bool, error) {
	switch q.Type {
	case "choice":
		return promptChoice(ui, q)
	case "checkbox":
		return promptCheckbox(ui, q)
	case "scale":
		return promptScale(ui, q)
	case "ranking":
		return promptRanking(ui, q)
	default:
		// Free text covers unknown types too, so new question types
		// degrade to a plain prompt instead of failing.
		line, err := ui.readLine("")
		if err != nil {
			return nil, false, err
		}
		if line == "" {
			return nil, true, nil
		}
		return line, false, nil
	}
}

func promptChoice(ui *terminal, q *domain.Question) (any, bool, error) {
	cfg, err := decodeChoice(q)
	if err != nil || len(cfg.Options) == 0 {
		return nil, false, fmt.Errorf("question %q has no options", q.ID)
	}
	ui.options(cfg.Options)

	line, err := ui.readLine("Choose one")
	if err != nil {
		return nil, false, err
	}
	if line == "" {
		return nil, true, nil
	}

	idx, err := parseOptionIndex(line, len(cfg.Options))
	if err != nil {
		return nil, false, err
	}
	return cfg.Options[idx].ID, false, nil
}

func promptCheckbox(ui *terminal, q *domain.Question) (any, bool, error) {
	cfg, err := decodeChoice(q)
	if err != nil || len(cfg.Options) == 0 {
		return nil, false, fmt.Errorf("question %q has no options", q.ID)
	}
	ui.options(cfg.Options)

	line, err := ui.readLine("Choose any (comma separated)")
	if err != nil {
		return nil, false, err
	}
	if line == "" {
		return nil, true, nil
	}

	checked := map[string]any{}
	for _, part := range strings.Split(line, ",") {
		idx, err := parseOptionIndex(strings.TrimSpace(part), len(cfg.Options))
		if err != nil {
			return nil, false, err
		}
		checked[cfg.Options[idx].ID] = true
	}
	return checked, false, nil
}

func promptScale(ui *terminal, q *domain.Question) (any, bool, error) {
	cfg, err := decodeScale(q)
	if err != nil {
		return nil, false, err
	}
	hint := fmt.Sprintf("%d-%d", cfg.Min, cfg.Max)
	if cfg.MinLabel != "" || cfg.MaxLabel != "" {
		hint = fmt.Sprintf("%d=%s .. %d=%s", cfg.Min, cfg.MinLabel, cfg.Max, cfg.MaxLabel)
	}

	line, err := ui.readLine(hint)
	if err != nil {
		return nil, false, err
	}
	if line == "" {
		return nil, true, nil
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return nil, false, fmt.Errorf("enter a number between %d and %d", cfg.Min, cfg.Max)
	}
	if n < cfg.Min || n > cfg.Max {
		return nil, false, fmt.Errorf("%d is outside %d-%d", n, cfg.Min, cfg.Max)
	}
	return n, false, nil
}

// promptRanking asks for option numbers in order of preference and
// stores a score per option, highest score first.
func promptRanking(ui *terminal, q *domain.Question) (any, bool, error) {
	cfg, err := decodeChoice(q)
	if err != nil || len(cfg.Options) == 0 {
		return nil, false, fmt.Errorf("question %q has no options", q.ID)
	}
	ui.options(cfg.Options)

	line, err := ui.readLine("Rank them, favorite first (comma separated)")
	if err != nil {
		return nil, false, err
	}
	if line == "" {
		return nil, true, nil
	}

	parts := strings.Split(line, ",")
	scores := map[string]any{}
	for i, part := range parts {
		idx, err := parseOptionIndex(strings.TrimSpace(part), len(cfg.Options))
		if err != nil {
			return nil, false, err
		}
		id := cfg.Options[idx].ID
		if _, dup := scores[id]; dup {
			return nil, false, fmt.Errorf("option %d listed twice", idx+1)
		}
		scores[id] = len(parts) - i
	}
	return scores, false, nil
}

func parseOptionIndex(input string, count int) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > count {
		return 0, fmt.Errorf("pick a number between 1 and %d", count)
	}
	return n - 1, nil
}

// staticIdentity returns the identity passed on the command line.
type staticIdentity struct {
	name, email, preferredName string
}

func (s staticIdentity) Claims(ctx context.Context) (*domain.IdentityClaims, error) {
	if s.name == "" && s.email == "" && s.preferredName == "" {
		return nil, nil
	}
	return &domain.IdentityClaims{
		Name:          s.name,
		Email:         s.email,
		PreferredName: s.preferredName,
	}, nil
}
