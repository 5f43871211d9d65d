package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned by prompts when the operator aborts input
// (Ctrl-C, or EOF on piped stdin).
var ErrInterrupted = errors.New("input interrupted")

// Prompter is the narrow prompting capability the wizard depends on.
// Tests substitute a scripted implementation.
type Prompter interface {
	// Input asks for a text answer. An empty answer resolves to defaultValue
	// when one is set; required inputs re-prompt until non-empty.
	Input(label, defaultValue string, required bool) (string, error)
	// InputValidated re-prompts until validate accepts the answer.
	InputValidated(label, defaultValue string, validate func(string) error) (string, error)
	// Secret asks for a hidden answer (passwords).
	Secret(label string) (string, error)
	// Confirm asks a yes/no question. Empty input declines.
	Confirm(label string) (bool, error)
	// MultiSelect asks the user to pick any number of options.
	MultiSelect(label string, options, defaults []string) ([]string, error)
}

// NewPrompter returns a survey-backed prompter when stdin is a terminal and
// a plain line-based prompter otherwise (piped input, CI).
func NewPrompter(u *UI) Prompter {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return &SurveyPrompter{}
	}
	return NewLinePrompter(os.Stdin, u.output)
}

// ParseConfirmation interprets a confirmation answer: "y"/"yes" (any case)
// accepts, "n"/"no" or an empty answer declines. Anything else is an error
// and the caller should re-prompt.
func ParseConfirmation(answer string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	default:
		return false, fmt.Errorf("please answer 'y' or 'n', got %q", answer)
	}
}

// SurveyPrompter asks questions interactively through survey.
type SurveyPrompter struct{}

func mapSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInterrupted
	}
	return err
}

// Input prompts the user for text input
func (p *SurveyPrompter) Input(label, defaultValue string, required bool) (string, error) {
	var result string
	q := &survey.Input{
		Message: label,
		Default: defaultValue,
	}

	var opts []survey.AskOpt
	if required && defaultValue == "" {
		opts = append(opts, survey.WithValidator(survey.Required))
	}

	if err := survey.AskOne(q, &result, opts...); err != nil {
		return "", mapSurveyErr(err)
	}
	return strings.TrimSpace(result), nil
}

// InputValidated prompts with custom validation, re-asking until it passes
func (p *SurveyPrompter) InputValidated(label, defaultValue string, validate func(string) error) (string, error) {
	var result string
	q := &survey.Input{
		Message: label,
		Default: defaultValue,
	}

	validator := func(ans interface{}) error {
		s, _ := ans.(string)
		return validate(strings.TrimSpace(s))
	}

	if err := survey.AskOne(q, &result, survey.WithValidator(validator)); err != nil {
		return "", mapSurveyErr(err)
	}
	return strings.TrimSpace(result), nil
}

// Secret prompts for password input (hidden)
func (p *SurveyPrompter) Secret(label string) (string, error) {
	var result string
	q := &survey.Password{
		Message: label,
	}

	if err := survey.AskOne(q, &result, survey.WithValidator(survey.Required)); err != nil {
		return "", mapSurveyErr(err)
	}
	return result, nil
}

// Confirm prompts for a yes/no answer, declining by default
func (p *SurveyPrompter) Confirm(label string) (bool, error) {
	var result bool
	q := &survey.Confirm{
		Message: label,
		Default: false,
	}

	if err := survey.AskOne(q, &result); err != nil {
		return false, mapSurveyErr(err)
	}
	return result, nil
}

// MultiSelect prompts the user to select any number of options
func (p *SurveyPrompter) MultiSelect(label string, options, defaults []string) ([]string, error) {
	var selected []string
	q := &survey.MultiSelect{
		Message: label,
		Options: options,
		Default: defaults,
	}

	if err := survey.AskOne(q, &selected); err != nil {
		return nil, mapSurveyErr(err)
	}
	return selected, nil
}

// LinePrompter reads answers line by line from a reader. It is used when
// stdin is not a terminal and by tests that drive the wizard with scripted
// input.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a line-based prompter
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrInterrupted
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}

// Input prompts for text input, falling back to the default on empty answers
func (p *LinePrompter) Input(label, defaultValue string, required bool) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", label, defaultValue)
		} else {
			fmt.Fprintf(p.out, "%s: ", label)
		}

		answer, err := p.readLine()
		if err != nil {
			return "", err
		}

		if answer != "" {
			return answer, nil
		}
		if defaultValue != "" {
			return defaultValue, nil
		}
		if !required {
			return "", nil
		}
		fmt.Fprintln(p.out, "This field is required. Please enter a value.")
	}
}

// InputValidated prompts until the validator accepts the answer
func (p *LinePrompter) InputValidated(label, defaultValue string, validate func(string) error) (string, error) {
	for {
		answer, err := p.Input(label, defaultValue, true)
		if err != nil {
			return "", err
		}
		if err := validate(answer); err != nil {
			fmt.Fprintln(p.out, err.Error())
			continue
		}
		return answer, nil
	}
}

// Secret prompts for a password. Without a terminal the input is echoed.
func (p *LinePrompter) Secret(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "This field is required. Please enter a value.")
	}
}

// Confirm prompts for a yes/no answer, re-asking on anything unrecognized
func (p *LinePrompter) Confirm(label string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [y/N]: ", label)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		result, err := ParseConfirmation(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter 'y' for yes or 'n' for no.")
			continue
		}
		return result, nil
	}
}

// MultiSelect prompts for a comma-separated selection from a numbered list.
// An empty answer keeps the defaults.
func (p *LinePrompter) MultiSelect(label string, options, defaults []string) ([]string, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(p.out, "Selection (comma-separated numbers) [%s]: ", strings.Join(defaults, ", "))
		answer, err := p.readLine()
		if err != nil {
			return nil, err
		}

		if answer == "" {
			return defaults, nil
		}

		var selected []string
		valid := true
		for _, field := range strings.Split(answer, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || n < 1 || n > len(options) {
				fmt.Fprintf(p.out, "Please enter numbers between 1 and %d.\n", len(options))
				valid = false
				break
			}
			selected = append(selected, options[n-1])
		}
		if valid {
			return selected, nil
		}
	}
}
