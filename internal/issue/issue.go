// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"sort"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	// FragmentNotFoundId: a requested fragment has no source.
	FragmentNotFoundId Id = iota + 1
	// FragmentParseErrorId: a fragment source could not be read or decoded.
	FragmentParseErrorId
	// UnknownPresetId: an upper-case token is not a registered preset.
	UnknownPresetId
	// RemovalFailedId: a negation token names something not in the list.
	RemovalFailedId
	// DuplicateFragmentId: a fragment name was added twice.
	DuplicateFragmentId
	// UnmetDependenciesId: a dependency has no provider in the request.
	UnmetDependenciesId
	// OrderViolationId: a provider appears after its dependent (strict mode).
	OrderViolationId
	// DuplicateProviderId: a capability is provided twice (strict mode).
	DuplicateProviderId
	// ConfigLoadFailedId: the configuration file is invalid.
	ConfigLoadFailedId
	// OutputWriteFailedId: the artifact could not be written.
	OutputWriteFailedId
)

const (
	// StyleAuto picks a style from the terminal background.
	StyleAuto = "auto"
	// StyleDark is the glamour dark style.
	StyleDark = "dark"
	// StyleLight is the glamour light style.
	StyleLight = "light"
)

type (
	// Id identifies a failure kind.
	Id int

	// MarkdownMsg is the Markdown text of a guide.
	MarkdownMsg string

	// Issue is a Markdown guide explaining one failure kind.
	Issue struct {
		id    Id
		title string
		mdMsg MarkdownMsg
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// Title returns the one-line heading of the guide.
func (i *Issue) Title() string {
	return i.title
}

// MarkdownMsg returns the raw guide.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the guide for a terminal. style is StyleAuto, StyleDark or
// StyleLight; anything else falls back to StyleAuto.
func (i *Issue) Render(style string) (string, error) {
	return render("# "+i.title+"\n"+string(i.mdMsg), style)
}

var render = func(md, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	switch style {
	case StyleDark, StyleLight:
		opts = append(opts, glamour.WithStandardStyle(style))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

var (
	fragmentNotFoundIssue = &Issue{
		id:    FragmentNotFoundId,
		title: "Fragment not found",
		mdMsg: `
A requested fragment has no source in the fragment directory.

## Where fragments are looked up
For a fragment named ` + "`N`" + ` the composer tries, in order:
1. ` + "`<plugins_dir>/N.cue`" + ` (structured descriptor)
2. ` + "`<plugins_dir>/N<extension>`" + ` (plain source, ` + "`.py`" + ` by default)

## Things you can try
- List the fragments the composer can see:
~~~
$ composer list
~~~
- Check the spelling of the name, or point at another directory with ` + "`--plugins-dir`" + `.
- Drop the fragment from a preset with a negation token, e.g. ` + "`DEFAULTS -index`" + `.`,
	}

	fragmentParseErrorIssue = &Issue{
		id:    FragmentParseErrorId,
		title: "Fragment could not be parsed",
		mdMsg: `
The fragment source exists but could not be read or decoded.

## Common causes
- A ` + "`.cue`" + ` descriptor with an unknown field or a value of the wrong type
- A line longer than the composer accepts
- Missing read permission

## Descriptor shape
~~~cue
provides: "auth"
depends: ["core", "config"]
imports: ["import os"]
body: """
    def authenticate(f):
        return f
    """
~~~`,
	}

	unknownPresetIssue = &Issue{
		id:    UnknownPresetId,
		title: "Unknown preset",
		mdMsg: `
Tokens written entirely in upper case are preset names, and this one is not registered.

## Things you can try
- List the registered presets:
~~~
$ composer presets
~~~
- Write fragment names in lower case.
- A negated preset such as ` + "`-DEFAULTS`" + ` is read as a preset name. Remove the preset's fragments one by one instead.
- Register the preset in your configuration:
~~~cue
presets: [{name: "MINIMAL", fragments: ["config", "core", "main"]}]
~~~`,
	}

	removalFailedIssue = &Issue{
		id:    RemovalFailedId,
		title: "Cannot remove fragment",
		mdMsg: `
A negation token (` + "`-name`" + `) only removes a fragment already added by an earlier token.

## Things you can try
- Place the negation after the preset or name that adds the fragment:
~~~
$ composer out.py DEFAULTS -index
~~~
- Check what a preset expands to with ` + "`composer presets`" + `.`,
	}

	duplicateFragmentIssue = &Issue{
		id:    DuplicateFragmentId,
		title: "Fragment added twice",
		mdMsg: `
A request may name each fragment once. The name was already added, directly or through a preset.

## Things you can try
- Remove the explicit name when a preset already includes it.
- Remove it from the preset first (` + "`DEFAULTS -index index`" + `) to move it to the end.`,
	}

	unmetDependenciesIssue = &Issue{
		id:    UnmetDependenciesId,
		title: "Unmet dependencies",
		mdMsg: `
A fragment imports a capability that no fragment in the request provides.

A fragment declares a dependency with an internal import such as
` + "`from rugmi.plugins.core import response`" + ` and provides its own name,
unless it carries a ` + "`# rugmi: provides: <label>`" + ` line.

## Things you can try
- Add the providing fragment to the request.
- Inspect what each fragment provides and needs:
~~~
$ composer inspect DEFAULTS
~~~`,
	}

	orderViolationIssue = &Issue{
		id:    OrderViolationId,
		title: "Fragments out of dependency order",
		mdMsg: `
Strict ordering is enabled and a fragment appears before every fragment that provides one of its dependencies.

The composer never reorders a request. The error lists an order that satisfies every dependency.

## Things you can try
- Reorder the tokens on the command line.
- Disable the check with ` + "`--strict-order=false`" + ` or ` + "`checks: strict_order: false`" + `.`,
	}

	duplicateProviderIssue = &Issue{
		id:    DuplicateProviderId,
		title: "Capability provided more than once",
		mdMsg: `
Unique providers are required and two fragments claim the same capability.

## Things you can try
- Keep one of the fragments, removing the other with a negation token.
- Disable the check with ` + "`--unique-provides=false`" + `.`,
	}

	configLoadFailedIssue = &Issue{
		id:    ConfigLoadFailedId,
		title: "Configuration could not be loaded",
		mdMsg: `
The configuration file is not valid CUE or does not match the schema.

## Things you can try
- Print the effective configuration:
~~~
$ composer config show
~~~
- Compare with a freshly generated file:
~~~
$ composer config init
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id:    OutputWriteFailedId,
		title: "Output could not be written",
		mdMsg: `
Composition succeeded but the artifact could not be written. Any previous file at the destination is unchanged.

## Things you can try
- Check that the destination directory exists and is writable.
- Use ` + "`--dry-run`" + ` to print the artifact instead.`,
	}

	issues = map[Id]*Issue{
		fragmentNotFoundIssue.Id():   fragmentNotFoundIssue,
		fragmentParseErrorIssue.Id(): fragmentParseErrorIssue,
		unknownPresetIssue.Id():      unknownPresetIssue,
		removalFailedIssue.Id():      removalFailedIssue,
		duplicateFragmentIssue.Id():  duplicateFragmentIssue,
		unmetDependenciesIssue.Id():  unmetDependenciesIssue,
		orderViolationIssue.Id():     orderViolationIssue,
		duplicateProviderIssue.Id():  duplicateProviderIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		outputWriteFailedIssue.Id():  outputWriteFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	sort.Slice(values, func(a, b int) bool { return values[a].id < values[b].id })
	return slices.Clip(values)
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
