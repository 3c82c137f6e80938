package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/ubigu/hedgehog-map/internal/client"
	"github.com/ubigu/hedgehog-map/internal/geo"
	"github.com/ubigu/hedgehog-map/internal/hedgehog"
)

const (
	msgNameRequired     = "Lisää nimi"
	msgAgeRequired      = "Lisää ikä"
	msgAgeNotNumber     = "Ikä täytyy olla positiivinen numero tai nolla"
	msgAgeTooOld        = "Ikä ei voi olla yli 15 vuotta"
	msgGenderRequired   = "Valitse sukupuoli"
	msgLocationRequired = "Valitse sijainti kartalta klikkaamalla"
	msgCreated          = "Siili lisätty onnistuneesti!"
	msgNetworkError     = "Verkkovirhe. Yritä uudelleen."
	msgSaveFailed       = "Virhe tallentaessa tietoja"
)

// Form field keys, also used for per-field error messages.
const (
	keyName     = "name"
	keyAge      = "age"
	keyGender   = "gender"
	keyLocation = "location"
)

type formField int

const (
	fieldName formField = iota
	fieldAge
	fieldGender
	fieldSubmit
)

var genderChoices = []struct {
	value hedgehog.Gender
	label string
}{
	{hedgehog.GenderFemale, "Naaras"},
	{hedgehog.GenderMale, "Uros"},
	{hedgehog.GenderUnknown, "Tuntematon"},
}

func genderLabel(g hedgehog.Gender) string {
	for _, c := range genderChoices {
		if c.value == g {
			return c.label
		}
	}
	return string(g)
}

// Form collects a new sighting. The location comes from the map through
// SetCoordinate.
type Form struct {
	api        API
	name       textinput.Model
	age        textinput.Model
	gender     int // index into genderChoices, -1 when unset
	focus      formField
	coordinate *orb.Point
	errors     map[string]string
	submitting bool
	success    bool
	focused    bool
}

func NewForm(api API) Form {
	name := textinput.New()
	name.Placeholder = "Nimi"
	name.CharLimit = 100
	name.Width = 30

	age := textinput.New()
	age.Placeholder = "Ikä"
	age.CharLimit = 5
	age.Width = 6

	return Form{
		api:    api,
		name:   name,
		age:    age,
		gender: -1,
		errors: map[string]string{},
	}
}

// SetCoordinate records the latest map click and clears a location error.
func (f *Form) SetCoordinate(p orb.Point) {
	f.coordinate = &p
	delete(f.errors, keyLocation)
}

func (f *Form) Focus() tea.Cmd {
	f.focused = true
	return f.syncFocus()
}

func (f *Form) Blur() {
	f.focused = false
	f.name.Blur()
	f.age.Blur()
}

func (f Form) Submitting() bool { return f.submitting }

// Errors returns the current per-field messages.
func (f Form) Errors() map[string]string { return f.errors }

func (f *Form) syncFocus() tea.Cmd {
	f.name.Blur()
	f.age.Blur()
	if !f.focused || f.submitting {
		return nil
	}
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldAge:
		return f.age.Focus()
	}
	return nil
}

// validate checks every field at once and returns a message per failing field.
func (f Form) validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(f.name.Value()) == "" {
		errs[keyName] = msgNameRequired
	}

	if raw := strings.TrimSpace(f.age.Value()); raw == "" {
		errs[keyAge] = msgAgeRequired
	} else if v, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(v) || v < 0 {
		errs[keyAge] = msgAgeNotNumber
	} else if v > hedgehog.MaxAge {
		errs[keyAge] = msgAgeTooOld
	}

	if f.gender < 0 {
		errs[keyGender] = msgGenderRequired
	}
	if f.coordinate == nil {
		errs[keyLocation] = msgLocationRequired
	}
	return errs
}

// input builds the create request. Only call after validate passed.
func (f Form) input() hedgehog.Input {
	v, _ := strconv.ParseFloat(strings.TrimSpace(f.age.Value()), 64)
	age := int(v)
	loc := geo.Encode(*f.coordinate)
	return hedgehog.Input{
		Name:     f.name.Value(),
		Age:      &age,
		Gender:   genderChoices[f.gender].value,
		Location: &loc,
	}
}

func (f Form) submit() (Form, tea.Cmd) {
	f.errors = f.validate()
	if len(f.errors) > 0 {
		return f, nil
	}
	f.submitting = true
	f.success = false
	f.syncFocus()
	return f, submitHedgehog(f.api, f.input())
}

func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		f.submitting = false
		if msg.err != nil {
			f.errors = map[string]string{keyLocation: failureMessage(msg.err)}
			return f, f.syncFocus()
		}
		f.success = true
		f.errors = map[string]string{}
		f.name.SetValue("")
		f.age.SetValue("")
		f.gender = -1
		f.focus = fieldName
		return f, tea.Batch(f.syncFocus(), emit(CreatedMsg{Hedgehog: msg.hedgehog}))

	case tea.KeyMsg:
		if f.submitting {
			return f, nil
		}
		switch msg.String() {
		case "enter":
			return f.submit()
		case "up":
			f.focus = (f.focus + fieldSubmit) % (fieldSubmit + 1)
			return f, f.syncFocus()
		case "down":
			f.focus = (f.focus + 1) % (fieldSubmit + 1)
			return f, f.syncFocus()
		}
		if f.focus == fieldGender {
			switch msg.String() {
			case "left", "h":
				if f.gender <= 0 {
					f.gender = len(genderChoices) - 1
				} else {
					f.gender--
				}
				delete(f.errors, keyGender)
			case "right", "l", " ":
				f.gender = (f.gender + 1) % len(genderChoices)
				delete(f.errors, keyGender)
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		before := f.name.Value()
		f.name, cmd = f.name.Update(msg)
		if f.name.Value() != before {
			delete(f.errors, keyName)
		}
	case fieldAge:
		before := f.age.Value()
		f.age, cmd = f.age.Update(msg)
		if f.age.Value() != before {
			delete(f.errors, keyAge)
		}
	}
	return f, cmd
}

// failureMessage turns a create failure into the text shown under the form.
func failureMessage(err error) string {
	if hedgehog.Classify(err).Kind == hedgehog.KindNetwork {
		return msgNetworkError
	}
	if msg, ok := client.ServerMessage(err); ok && msg != "" {
		return msg
	}
	return msgSaveFailed
}

func (f Form) View() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Lisää uusi siili"))
	if f.success {
		rows = append(rows, successStyle.Render(msgCreated))
	}

	rows = append(rows,
		f.label(fieldName, "Nimi")+" "+f.name.View(),
		f.fieldError(keyName),
		f.label(fieldAge, "Ikä")+" "+f.age.View(),
		f.fieldError(keyAge),
		f.label(fieldGender, "Sukupuoli")+" "+f.genderView(),
		f.fieldError(keyGender),
		"",
		f.locationView(),
		f.fieldError(keyLocation),
		"",
		f.submitView(),
	)

	var out []string
	for _, r := range rows {
		if r != "" || len(out) == 0 || out[len(out)-1] != "" {
			out = append(out, r)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (f Form) label(field formField, text string) string {
	if f.focused && f.focus == field && !f.submitting {
		return titleStyle.Render("› " + text)
	}
	return mutedStyle.Render("  " + text)
}

func (f Form) fieldError(key string) string {
	if msg, ok := f.errors[key]; ok {
		return errorStyle.Render("    " + msg)
	}
	return ""
}

func (f Form) genderView() string {
	parts := make([]string, 0, len(genderChoices))
	for i, c := range genderChoices {
		mark := "( )"
		if i == f.gender {
			mark = "(•)"
		}
		parts = append(parts, mark+" "+c.label)
	}
	return strings.Join(parts, "  ")
}

func (f Form) locationView() string {
	if f.coordinate == nil {
		return mutedStyle.Render(msgLocationRequired)
	}
	return fmt.Sprintf("Valittu sijainti: E %.0f, N %.0f", f.coordinate.X(), f.coordinate.Y())
}

func (f Form) submitView() string {
	switch {
	case f.submitting:
		return mutedStyle.Render("[ Tallennetaan... ]")
	case f.focused && f.focus == fieldSubmit:
		return selectedItemStyle.Render("[ Lisää siili ]")
	}
	return "[ Lisää siili ]"
}
