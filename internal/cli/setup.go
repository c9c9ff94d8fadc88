package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"bigcal/internal/config"
	"bigcal/internal/google/calendar"
	"bigcal/internal/timeparse"
)

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup for calendars and display settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			cfg := app.Config

			printSection("Calendars")
			if app.Session.HasCredentials() {
				if err := setupCalendars(cmd, app, cfg); err != nil {
					return err
				}
			} else {
				fmt.Printf("No credentials at %s; demo events will be shown.\n", app.Session.CredentialsPath)
			}

			printSection("Display")
			if err := setupDisplay(cfg); err != nil {
				return err
			}

			if err := config.Save(app.ConfigPath, cfg); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", app.ConfigPath)
			return nil
		},
	}
	return cmd
}

func setupCalendars(cmd *cobra.Command, app *App, cfg *config.Config) error {
	client, err := app.calendarClient(cmd.Context())
	if err != nil {
		return err
	}
	items, err := client.ListCalendars(cmd.Context())
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No calendars found.")
		return nil
	}

	choices := buildCalendarChoices(items)
	var defaults []string
	for _, choice := range choices {
		if cfg.Wants(choice.Item.ID, choice.Item.Selected) {
			defaults = append(defaults, choice.Label)
		}
	}

	prompt := &survey.MultiSelect{
		Message:  "Calendars to show",
		Options:  labelsFromChoices(choices),
		Default:  defaults,
		PageSize: 12,
	}
	var selected []string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return err
	}
	cfg.Calendars = cfg.Calendars[:0]
	for _, label := range selected {
		if choice, ok := findChoice(choices, label); ok {
			cfg.Calendars = append(cfg.Calendars, choice.Item.ID)
		}
	}
	return nil
}

func setupDisplay(cfg *config.Config) error {
	tz, err := askLabel("Timezone (IANA name or \"local\")", cfg.Timezone, func(v any) error {
		_, err := timeparse.LoadLocation(fmt.Sprint(v))
		return err
	})
	if err != nil {
		return err
	}
	cfg.Timezone = tz

	visible, err := askLabel("Events shown per day", strconv.Itoa(cfg.VisibleEvents), func(v any) error {
		n, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(v)))
		if err != nil || n < 1 {
			return fmt.Errorf("enter a number of at least 1")
		}
		return nil
	})
	if err != nil {
		return err
	}
	cfg.VisibleEvents, _ = strconv.Atoi(visible)
	return nil
}

func buildCalendarChoices(cals []calendar.Calendar) []choiceItem[calendar.Calendar] {
	counts := map[string]int{}
	for _, c := range cals {
		counts[c.Name]++
	}
	index := map[string]int{}
	choices := make([]choiceItem[calendar.Calendar], 0, len(cals))
	for _, c := range cals {
		label := c.Name
		if c.Primary {
			label = fmt.Sprintf("%s (primary)", label)
		}
		if counts[c.Name] > 1 {
			index[c.Name]++
			label = fmt.Sprintf("%s (%d)", label, index[c.Name])
		}
		choices = append(choices, choiceItem[calendar.Calendar]{Label: label, Item: c})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func askLabel(message, defaultValue string, validate survey.Validator) (string, error) {
	var input string
	prompt := &survey.Input{Message: message, Default: defaultValue}
	opts := []survey.AskOpt{survey.WithValidator(survey.Required)}
	if validate != nil {
		opts = append(opts, survey.WithValidator(validate))
	}
	if err := survey.AskOne(prompt, &input, opts...); err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n", bold(title))
}
