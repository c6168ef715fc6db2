// Package wizard collects a new goal definition interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/solarreach/goalscan/internal/models"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Categories offered by the wizard. Stored goals may use any category.
var Categories = []string{"ux", "data", "quality", "content", "other"}

// ValidateID checks that id is kebab-case and not already taken.
func ValidateID(id string, existing []string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("id is required")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("id %q must be kebab-case (lowercase letters, digits and dashes)", id)
	}
	for _, e := range existing {
		if e == id {
			return fmt.Errorf("goal %q already exists", id)
		}
	}
	return nil
}

// Slugify turns a free-form title into a candidate goal id.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// RunGoalWizard runs an interactive huh form to collect a goal. existing
// lists the ids already in the store so duplicates are rejected up front.
func RunGoalWizard(in io.Reader, out io.Writer, existing []string) (*models.Goal, error) {
	var (
		title       string
		id          string
		description string
		category    string
		guidance    string
	)

	options := make([]huh.Option[string], 0, len(Categories))
	for _, c := range Categories {
		options = append(options, huh.NewOption(c, c))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Description("Short name shown in reports").
				Placeholder("Reviews panel fallback copy").
				Value(&title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Goal id").
				Description("kebab-case; leave empty to derive it from the title").
				Value(&id).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return ValidateID(s, existing)
				}),
			huh.NewText().
				Title("Description").
				Description("What does done look like?").
				Value(&description),
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&category),
			huh.NewText().
				Title("Guidance").
				Description("Hints for whoever picks this up").
				Value(&guidance),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return buildGoal(id, title, description, category, guidance, existing)
}

func buildGoal(id, title, description, category, guidance string, existing []string) (*models.Goal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = Slugify(title)
	}
	if err := ValidateID(id, existing); err != nil {
		return nil, err
	}
	return &models.Goal{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    category,
		Guidance:    strings.TrimSpace(guidance),
	}, nil
}
