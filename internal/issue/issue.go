// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	AppNameUnresolvedId Id = iota + 1
	ConfigLoadFailedId
	BridgeUnavailableId
	OpenURLFailedId
	ContentProcessFailedId
	UnverifiedOSVersionId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id
	mdMsg    MarkdownMsg
	docLinks []HttpLink // never empty
	extLinks []HttpLink
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render formats the issue for the terminal. stylePath is a glamour style
// name such as "dark", "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			md += "\n- <" + string(link) + ">"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	appNameUnresolvedIssue = &Issue{
		id: AppNameUnresolvedId,
		mdMsg: `
# The application name could not be resolved

hostlog needs an application name to decide where logs are written. It tried,
in order:

1. a name set explicitly by the application
2. the name reported by the host framework
3. the ` + "`name`" + ` (or ` + "`productName`" + `) field of the nearest ` + "`package.json`" + `

## Things you can try
- Call ` + "`SetAppName`" + ` on the strategy before the first path query.
- Pass ` + "`--app-name`" + ` on the command line, or set ` + "`app_name`" + ` in the config:
~~~
$ hostlog config init
~~~
- Run from a directory inside your project so its manifest can be found.`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#application-name"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# The configuration file could not be loaded

## Things you can try
- Check the file for CUE syntax errors.
- Move it aside and write the defaults:
~~~
$ hostlog config init
~~~
- Print the path hostlog reads:
~~~
$ hostlog config path
~~~`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#configuration"},
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	bridgeUnavailableIssue = &Issue{
		id: BridgeUnavailableId,
		mdMsg: `
# No coordinator process is reachable

This process was not started by a hostlog coordinator, so there is nobody to
send messages to or invoke.

## Things you can try
- Start the program through the reference coordinator:
~~~
$ hostlog exec -- ./your-program
~~~
- Check that ` + "`HOSTLOG_IPC_ADDR`" + ` and ` + "`HOSTLOG_IPC_TOKEN`" + ` are set in the child.`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#process-roles"},
	}

	openURLFailedIssue = &Issue{
		id: OpenURLFailedId,
		mdMsg: `
# The URL could not be opened

The system URL opener failed or is not installed.

## Things you can try
- On Linux, install ` + "`xdg-utils`" + `.
- Inside Flatpak, make sure ` + "`flatpak-spawn`" + ` is allowed to reach the host.`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#opening-urls"},
	}

	contentProcessFailedIssue = &Issue{
		id: ContentProcessFailedId,
		mdMsg: `
# The content process could not be started

## Things you can try
- Check that the command exists and is executable.
- Run it directly to see its own error output.`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#process-roles"},
	}

	unverifiedOSVersionIssue = &Issue{
		id: UnverifiedOSVersionId,
		mdMsg: `
# The macOS version is extrapolated

The Darwin kernel release is newer than the releases hostlog knows about, so
the marketing version was guessed. Pass ` + "`--platform`" + ` or update hostlog.`,
		docLinks: []HttpLink{"https://github.com/hostlog/hostlog#os-versions"},
	}

	issues = map[Id]*Issue{
		appNameUnresolvedIssue.Id():    appNameUnresolvedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		bridgeUnavailableIssue.Id():    bridgeUnavailableIssue,
		openURLFailedIssue.Id():        openURLFailedIssue,
		contentProcessFailedIssue.Id(): contentProcessFailedIssue,
		unverifiedOSVersionIssue.Id():  unverifiedOSVersionIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
