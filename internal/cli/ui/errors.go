package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ffibind/ffibind/internal/dataclass"
)

// ErrorLevel represents the severity of a message box
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Detail       string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError renders a message box:
//
//	❌ CLASS NOT FOUND: Derivd
//	   No class named 'Derivd' is defined.
//
//	   Did you mean: Derived?
//
//	   → See all classes: ffibind classes
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	headerColor := color.New(color.FgRed, color.Bold)
	bodyColor := color.New(color.FgRed)
	symbol := "❌"
	if opts.Level == ErrorLevelWarning {
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	}
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
		yellow.DisableColor()
		cyan.DisableColor()
	}

	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	if opts.Detail != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Detail)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to w
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// ClassNotFoundError reports an unknown class name with close matches
func ClassNotFoundError(name string, known []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:      "Class not found",
		Problem:      name,
		Detail:       fmt.Sprintf("No class named '%s' is defined.", name),
		Suggestions:  Suggest(name, known, 3),
		HelpCommands: []string{"See all classes: ffibind classes"},
		NoColor:      noColor,
	})
}

// DataclassError renders a definition or construction error. Unknown
// keywords and attributes get suggestions drawn from candidates.
func DataclassError(err error, candidates []string, noColor bool) string {
	var cfgErr *dataclass.ConfigurationError
	if errors.As(err, &cfgErr) {
		return FormatError(ErrorOptions{
			Context:      "Invalid class " + cfgErr.Code,
			Problem:      subject(cfgErr.Class, cfgErr.Field),
			Detail:       cfgErr.Message,
			HelpCommands: []string{"Check the class declaration in your manifest"},
			NoColor:      noColor,
		})
	}

	var typeErr *dataclass.TypeError
	if errors.As(err, &typeErr) {
		detail := typeErr.Message
		if typeErr.Cause != nil {
			detail += ": " + typeErr.Cause.Error()
		}
		opts := ErrorOptions{
			Context: "Type error " + typeErr.Code,
			Problem: subject(typeErr.Class, typeErr.Field),
			Detail:  detail,
			NoColor: noColor,
		}
		switch typeErr.Code {
		case dataclass.ErrUnexpectedKeyword, dataclass.ErrUnknownAttribute:
			opts.Suggestions = Suggest(typeErr.Field, candidates, 3)
		}
		if typeErr.Class != "" {
			opts.HelpCommands = []string{"Show the constructor: ffibind signature " + typeErr.Class}
		}
		return FormatError(opts)
	}

	return FormatError(ErrorOptions{Problem: err.Error(), NoColor: noColor})
}

// ConfigError reports a problem loading ffibind.yaml
func ConfigError(err error, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "Configuration",
		Problem: "cannot load configuration",
		Detail:  err.Error(),
		HelpCommands: []string{
			"Check ffibind.yaml or pass --config <path>",
			"Override a value with FFIBIND_<KEY>, e.g. FFIBIND_LOG_LEVEL=debug",
		},
		NoColor: noColor,
	})
}

func subject(class, field string) string {
	switch {
	case class != "" && field != "":
		return class + "." + field
	case class != "":
		return class
	default:
		return field
	}
}
