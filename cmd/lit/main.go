// Command lit is the CLI surface described in spec.md §6: a single proper
// action per invocation (init/commit/rollback/checkout/log/add/delete/
// add-branch/switch-branch/rebase-branch/delete-branch/clear-cache/
// add-tag/delete-tag), each a kingpin subcommand carrying its own
// modifier flags exactly where spec.md §6's table says they apply,
// dispatched onto internal/dispatcher. Grounded on the teacher's
// flag-block-then-Parse main(), reshaped from one flat command to one
// subcommand per proper action, since spec.md §6 requires exactly one
// action selected per invocation rather than the teacher's single
// always-run command.
//
// kingpin commands don't support single-dash aliases, so the spec's
// short forms (-i, -c, -r, -C, -l, -a, -d, -aB, -sB, -rB, -dB, -cc,
// -aT, -dT) are resolved against aliasTable and the action argument is
// replaced by its long form before argv is handed to kingpin.Parse.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/seanhobeck/lit/internal/dispatcher"
	"github.com/seanhobeck/lit/internal/graphviz"
	"github.com/seanhobeck/lit/internal/hashlabel"
	"github.com/seanhobeck/lit/internal/literr"
	"github.com/seanhobeck/lit/internal/repository"
	"github.com/seanhobeck/lit/internal/session"
	"github.com/seanhobeck/lit/internal/shelf"
	"github.com/seanhobeck/lit/internal/tag"
	"github.com/seanhobeck/lit/internal/version"
)

const progName = "lit"
const op = "cli"

// aliasTable maps each spec.md §6 short form to the long subcommand name
// kingpin.Command was declared with.
var aliasTable = map[string]string{
	"-i":  "init",
	"-c":  "commit",
	"-r":  "rollback",
	"-C":  "checkout",
	"-l":  "log",
	"-a":  "add",
	"-d":  "delete",
	"-aB": "add-branch",
	"-sB": "switch-branch",
	"-rB": "rebase-branch",
	"-dB": "delete-branch",
	"-cc": "clear-cache",
	"-aT": "add-tag",
	"-dT": "delete-tag",
}

// resolveAlias rewrites the first short-form action alias found before any
// non-flag argument to its long subcommand name, leaving everything else
// (including global flags that may precede the action, e.g. --verbose)
// untouched.
func resolveAlias(argv []string) []string {
	for i, a := range argv {
		if long, ok := aliasTable[a]; ok {
			out := make([]string, len(argv))
			copy(out, argv)
			out[i] = long
			return out
		}
		if strings.HasPrefix(a, "-") {
			continue
		}
		break
	}
	return argv
}

// app bundles the parsed application plus every subcommand clause and
// flag pointer dispatch needs after Parse returns the matched command.
type app struct {
	kingpin *kingpin.Application

	initCmd         *kingpin.CmdClause
	commitCmd       *kingpin.CmdClause
	rollbackCmd     *kingpin.CmdClause
	checkoutCmd     *kingpin.CmdClause
	logCmd          *kingpin.CmdClause
	addCmd          *kingpin.CmdClause
	deleteCmd       *kingpin.CmdClause
	addBranchCmd    *kingpin.CmdClause
	switchBranchCmd *kingpin.CmdClause
	rebaseBranchCmd *kingpin.CmdClause
	deleteBranchCmd *kingpin.CmdClause
	clearCacheCmd   *kingpin.CmdClause
	addTagCmd       *kingpin.CmdClause
	deleteTagCmd    *kingpin.CmdClause

	message    *string
	rollbackArg *string
	checkoutArg *string
	tagName    *string
	addPath    *string
	addAll     *string
	addNoRec   *string
	delPath    *string
	delAll     *string
	delNoRec   *string
	branchName *string
	branchFrom *string
	switchName *string
	rebaseSrc  *string
	rebaseDst  *string
	delBranch  *string
	addTagHash *string
	addTagName *string
	delTagName *string
	graph      *bool
	graphOut   *string
	filter     *string
	maxCount   *int
	hard       *bool

	verbose    *bool
	quiet      *bool
	profile    *string
	configPath *string
}

func buildApp() *app {
	a := &app{}
	k := kingpin.New(progName, "A local, content-addressed, single-user version control engine.")
	k.UsageTemplate(kingpin.CompactUsageTemplate).Version(version.Print(progName)).Author("lit")
	k.HelpFlag.Short('h')
	k.VersionFlag.Short('v')
	a.kingpin = k

	a.verbose = k.Flag("verbose", "Raise logging to debug level.").Bool()
	a.quiet = k.Flag("quiet", "Lower logging to error level.").Bool()
	a.profile = k.Flag("profile", "Wrap the dispatched operation in a pprof profile.").Enum("cpu", "mem")
	a.configPath = k.Flag("config", "Path to .litconfig.yaml.").Default(".litconfig.yaml").String()

	a.initCmd = k.Command("init", "Initialize a new repository.")

	a.commitCmd = k.Command("commit", "Fold shelved changes into a new commit.")
	a.message = a.commitCmd.Flag("message", "Commit message.").Short('m').String()

	a.rollbackCmd = k.Command("rollback", "Move the active branch's head to an earlier commit.")
	a.rollbackArg = a.rollbackCmd.Arg("hash", "Target commit hash.").String()
	a.hard = a.rollbackCmd.Flag("hard", "Also discard shelved changes.").Bool()

	a.checkoutCmd = k.Command("checkout", "Move the active branch's head to a later commit.")
	a.checkoutArg = a.checkoutCmd.Arg("hash", "Target commit hash.").String()
	a.checkoutCmd.Flag("hard", "Also discard shelved changes.").BoolVar(a.hard)
	a.tagName = a.rollbackCmd.Flag("tag", "Resolve the target commit from this tag instead of <hash>.").String()
	a.checkoutCmd.Flag("tag", "Resolve the target commit from this tag instead of <hash>.").StringVar(a.tagName)

	a.logCmd = k.Command("log", "Show branch, shelved count, commit list and tags.")
	a.graph = a.logCmd.Flag("graph", "Also render the branch/commit graph as Graphviz DOT.").Bool()
	a.graphOut = a.logCmd.Flag("out", "Render the graph to this PNG file instead of printing DOT.").String()
	a.filter = a.logCmd.Flag("filter", "Substring filter applied to commit messages.").String()
	a.maxCount = a.logCmd.Flag("max-count", "Limit the number of commits printed.").Int()

	a.addCmd = k.Command("add", "Stage a file or folder.")
	a.addPath = a.addCmd.Arg("path", "Path to stage (trailing / marks a folder).").String()
	a.addAll = a.addCmd.Flag("all", "Recursively stage every inode under this folder.").String()
	a.addNoRec = a.addCmd.Flag("no-recurse", "Stage only this folder's immediate entries.").String()

	a.deleteCmd = k.Command("delete", "Stage removal of a file or folder.")
	a.delPath = a.deleteCmd.Arg("path", "Path to stage for removal (trailing / marks a folder).").String()
	a.delAll = a.deleteCmd.Flag("all", "Recursively stage removal of every inode under this folder.").String()
	a.delNoRec = a.deleteCmd.Flag("no-recurse", "Stage removal of only this folder itself.").String()

	a.addBranchCmd = k.Command("add-branch", "Create a branch.")
	a.branchName = a.addBranchCmd.Arg("name", "New branch name.").Required().String()
	a.branchFrom = a.addBranchCmd.Flag("from", "Source branch (default: active branch).").String()

	a.switchBranchCmd = k.Command("switch-branch", "Switch the active branch.")
	a.switchName = a.switchBranchCmd.Arg("name", "Branch to switch to.").Required().String()

	a.rebaseBranchCmd = k.Command("rebase-branch", "Rebase <src>'s divergent commits onto <dst>.")
	a.rebaseSrc = a.rebaseBranchCmd.Arg("src", "Source branch.").Required().String()
	a.rebaseDst = a.rebaseBranchCmd.Arg("dst", "Destination branch.").Required().String()

	a.deleteBranchCmd = k.Command("delete-branch", "Delete a branch (not origin).")
	a.delBranch = a.deleteBranchCmd.Arg("name", "Branch to delete.").Required().String()

	a.clearCacheCmd = k.Command("clear-cache", "Sweep unreferenced diff/commit objects.")

	a.addTagCmd = k.Command("add-tag", "Tag <hash> with <name>.")
	a.addTagHash = a.addTagCmd.Arg("hash", "Commit hash to tag.").Required().String()
	a.addTagName = a.addTagCmd.Arg("name", "New tag name.").Required().String()

	a.deleteTagCmd = k.Command("delete-tag", "Delete a tag.")
	a.delTagName = a.deleteTagCmd.Arg("name", "Tag to delete.").Required().String()

	return a
}

func (a *app) verbosity() string {
	switch {
	case *a.verbose:
		return "debug"
	case *a.quiet:
		return "error"
	default:
		return ""
	}
}

func run(argv []string, root string, stdout, stderr io.Writer) int {
	a := buildApp()

	cmd, err := a.kingpin.Parse(resolveAlias(argv))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if cmd == "" {
		fmt.Fprintln(stderr, "no action specified; see --help")
		return 1
	}

	var stopProfile func()
	switch *a.profile {
	case "cpu":
		p := profile.Start(profile.CPUProfile, profile.Quiet)
		stopProfile = p.Stop
	case "mem":
		p := profile.Start(profile.MemProfile, profile.Quiet)
		stopProfile = p.Stop
	}
	if stopProfile != nil {
		defer stopProfile()
	}

	if cmd == a.initCmd.FullCommand() {
		s, err := dispatcher.Init(root, *a.configPath)
		if err != nil {
			logErr(stderr, nil, err)
			return 1
		}
		a.applyVerbosity(s)
		fmt.Fprintln(stdout, "initialized empty repository at "+root)
		return 0
	}

	s, err := session.Open(root, *a.configPath)
	if err != nil {
		logErr(stderr, nil, err)
		return 1
	}
	a.applyVerbosity(s)
	s.Logger.SetOutput(stderr)

	if err := a.dispatch(s, cmd, stdout); err != nil {
		logErr(stderr, s.Logger, err)
		return 1
	}
	return 0
}

func (a *app) applyVerbosity(s *session.Session) {
	if v := a.verbosity(); v != "" {
		s.Logger.Level = session.NewLogger(v).Level
	}
}

func logErr(stderr io.Writer, logger *logrus.Logger, err error) {
	if logger != nil {
		logger.Error(err)
		return
	}
	fmt.Fprintln(stderr, err)
}

func (a *app) dispatch(s *session.Session, cmd string, stdout io.Writer) error {
	switch cmd {
	case a.commitCmd.FullCommand():
		c, err := dispatcher.Commit(s, *a.message)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "committed %s: %s\n", c.Hash.Hex()[:8], c.Message)
		return nil

	case a.rollbackCmd.FullCommand():
		hash, err := a.resolveHash(s, *a.rollbackArg)
		if err != nil {
			return err
		}
		if err := a.discardShelfIfHard(s); err != nil {
			return err
		}
		return dispatcher.Rollback(s, hash)

	case a.checkoutCmd.FullCommand():
		hash, err := a.resolveHash(s, *a.checkoutArg)
		if err != nil {
			return err
		}
		if err := a.discardShelfIfHard(s); err != nil {
			return err
		}
		return dispatcher.Checkout(s, hash)

	case a.logCmd.FullCommand():
		return a.renderLog(s, stdout)

	case a.addCmd.FullCommand():
		return addOrDelete(s, *a.addPath, *a.addAll, *a.addNoRec, dispatcher.AddPath)

	case a.deleteCmd.FullCommand():
		return addOrDelete(s, *a.delPath, *a.delAll, *a.delNoRec, dispatcher.DeletePath)

	case a.addBranchCmd.FullCommand():
		_, err := dispatcher.AddBranch(s, *a.branchName, *a.branchFrom)
		return err

	case a.switchBranchCmd.FullCommand():
		return dispatcher.SwitchBranch(s, *a.switchName)

	case a.rebaseBranchCmd.FullCommand():
		return dispatcher.RebaseBranch(s, *a.rebaseDst, *a.rebaseSrc)

	case a.deleteBranchCmd.FullCommand():
		return dispatcher.DeleteBranch(s, *a.delBranch)

	case a.clearCacheCmd.FullCommand():
		n, err := dispatcher.ClearCache(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "removed %d unreferenced object(s)\n", n)
		return nil

	case a.addTagCmd.FullCommand():
		hash, err := hashlabel.Sha1FromHex(*a.addTagHash)
		if err != nil {
			return literr.Wrap(op, literr.UnknownArgument, "invalid hash", err)
		}
		return dispatcher.AddTag(s, hash, *a.addTagName)

	case a.deleteTagCmd.FullCommand():
		return dispatcher.DeleteTag(s, *a.delTagName)

	default:
		return literr.New(op, literr.UnknownArgument, "unknown action: "+cmd)
	}
}

func (a *app) discardShelfIfHard(s *session.Session) error {
	if !*a.hard {
		return nil
	}
	return shelf.Clear(repository.ObjectsShelvedDir(s.Root), s.Repo.Active().Name)
}

// addOrDelete implements spec.md §6's add/delete row: a bare <path>
// argument, or a directory given via --all (recursive) / --no-recurse
// (non-recursive), mutually exclusive ways of naming the target.
func addOrDelete(s *session.Session, path, allDir, noRecurseDir string, stageFn func(*session.Session, string, bool) error) error {
	switch {
	case allDir != "":
		return stageFn(s, strings.TrimSuffix(allDir, "/")+"/", true)
	case noRecurseDir != "":
		return stageFn(s, strings.TrimSuffix(noRecurseDir, "/")+"/", false)
	case path != "":
		return stageFn(s, path, false)
	default:
		return literr.New(op, literr.MissingArgument, "expected <path>, --all <dir>, or --no-recurse <dir>")
	}
}

// resolveHash resolves the target commit hash for rollback/checkout,
// either from positional arg or, if --tag was given, by looking up the
// named tag on the active branch.
func (a *app) resolveHash(s *session.Session, hashArg string) (hashlabel.Sha1, error) {
	if *a.tagName != "" {
		t, err := tag.Read(repository.RefsTagsDir(s.Root), *a.tagName)
		if err != nil {
			return hashlabel.Sha1{}, err
		}
		return t.CommitHash, nil
	}
	if hashArg == "" {
		return hashlabel.Sha1{}, literr.New(op, literr.MissingArgument, "expected a commit hash or --tag")
	}
	hash, err := hashlabel.Sha1FromHex(hashArg)
	if err != nil {
		return hashlabel.Sha1{}, literr.Wrap(op, literr.UnknownArgument, "invalid hash", err)
	}
	return hash, nil
}

func (a *app) renderLog(s *session.Session, stdout io.Writer) error {
	view, err := dispatcher.Log(s)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "branch %s (readonly=%t, shelved=%d)\n", view.Branch, view.Readonly, view.ShelvedCount)

	max := *a.maxCount
	if cfgMax := s.UserConfig.MaxCount; max == 0 && cfgMax > 0 {
		max = cfgMax
	}
	printed := 0
	for i := len(view.Commits) - 1; i >= 0; i-- {
		c := view.Commits[i]
		if *a.filter != "" && !strings.Contains(c.Message, *a.filter) {
			continue
		}
		fmt.Fprintf(stdout, "  %s  %s  %s\n", c.Hash.Hex(), c.TimestampFormatted, c.Message)
		printed++
		if max > 0 && printed >= max {
			break
		}
	}
	for _, t := range view.Tags {
		fmt.Fprintf(stdout, "  tag %s -> %s\n", t.Name, t.CommitHash.Hex()[:8])
	}

	if *a.graph {
		if *a.graphOut != "" {
			if err := graphviz.RenderPNG(s.Repo, *a.graphOut); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "graph written to %s\n", *a.graphOut)
		} else {
			fmt.Fprintln(stdout, graphviz.RenderDOT(s.Repo))
		}
	}
	return nil
}

func main() {
	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(run(os.Args[1:], root, os.Stdout, os.Stderr))
}
