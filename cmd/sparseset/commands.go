package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/sparseset"
	"github.com/hupe1980/sparseset/blobstore"
	"github.com/hupe1980/sparseset/stream"
	"gopkg.in/alecthomas/kingpin.v2"
)

// load returns the named set. A missing set is empty when create is true.
func (e *env) load(ctx context.Context, name string, create bool) (*sparseset.Set, error) {
	s, err := e.mgr.Load(ctx, name)
	if create && errors.Is(err, blobstore.ErrNotFound) {
		return sparseset.New(), nil
	}
	return s, err
}

func listCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("list", "List the saved sets with their stored size.")

	return cmd, func(ctx context.Context, e *env) error {
		names, err := e.mgr.List(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			size, err := e.mgr.StoredSize(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(e.out, "%-20s %s\n", name, humanize.Bytes(uint64(size)))
		}
		return nil
	}
}

func showCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("show", "Print the values of a set, ten per line, followed by -1.")
	name := cmd.Arg("name", "set name").Required().String()
	compact := cmd.Flag("compact", "Print as {v1 v2 ...} on one line.").Bool()

	return cmd, func(ctx context.Context, e *env) error {
		s, err := e.load(ctx, *name, false)
		if err != nil {
			return err
		}
		if *compact {
			_, err = fmt.Fprintln(e.out, s.String())
			return err
		}
		_, err = stream.Write(e.out, s)
		return err
	}
}

func ranksCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("ranks", "Print the occupied bucket ranks of a set.")
	name := cmd.Arg("name", "set name").Required().String()

	return cmd, func(ctx context.Context, e *env) error {
		s, err := e.load(ctx, *name, false)
		if err != nil {
			return err
		}
		return stream.WriteRanks(e.out, s)
	}
}

func sizeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("size", "Print the number of values of a set.")
	name := cmd.Arg("name", "set name").Required().String()

	return cmd, func(ctx context.Context, e *env) error {
		s, err := e.load(ctx, *name, false)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.out, "%s: %s values in %s buckets\n",
			*name, humanize.Comma(int64(s.Len())), humanize.Comma(int64(len(s.Ranks()))))
		return err
	}
}

func containsCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("contains", "Report whether a set contains each value.")
	name := cmd.Arg("name", "set name").Required().String()
	values := cmd.Arg("values", "values to look up").Required().Ints()

	return cmd, func(ctx context.Context, e *env) error {
		s, err := e.load(ctx, *name, false)
		if err != nil {
			return err
		}
		for _, v := range *values {
			if _, err := fmt.Fprintf(e.out, "%d: %t\n", v, s.Contains(v)); err != nil {
				return err
			}
		}
		return nil
	}
}

// editCmd registers add and remove. Values come from the arguments or, when
// none are given, from stdin up to the -1 terminator.
func editCmd(app *kingpin.Application, verb, help string, fromArgs func(*sparseset.Set, int), fromStream func(*sparseset.Set, *env) (int, error)) (*kingpin.CmdClause, handler) {
	cmd := app.Command(verb, help)
	name := cmd.Arg("name", "set name").Required().String()
	values := cmd.Arg("values", "values (read from stdin up to -1 when omitted)").Ints()

	return cmd, func(ctx context.Context, e *env) error {
		s, err := e.load(ctx, *name, true)
		if err != nil {
			return err
		}
		n := len(*values)
		if n > 0 {
			for _, v := range *values {
				fromArgs(s, v)
			}
		} else if n, err = fromStream(s, e); err != nil {
			return err
		}
		e.log.WithName(*name).WithCount(n).Debug(verb + " applied")
		return e.mgr.Save(ctx, *name, s)
	}
}

func addCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return editCmd(app, "add", "Add values to a set, creating it when missing.",
		(*sparseset.Set).Add,
		func(s *sparseset.Set, e *env) (int, error) { return stream.AddAll(s, e.in) },
	)
}

func removeCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return editCmd(app, "remove", "Remove values from a set.",
		(*sparseset.Set).Remove,
		func(s *sparseset.Set, e *env) (int, error) { return stream.RemoveAll(s, e.in) },
	)
}

func clearCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("clear", "Empty a set.")
	name := cmd.Arg("name", "set name").Required().String()

	return cmd, func(ctx context.Context, e *env) error {
		return e.mgr.Save(ctx, *name, sparseset.New())
	}
}

func deleteCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	cmd := app.Command("delete", "Delete saved sets.")
	names := cmd.Arg("names", "set names").Required().Strings()

	return cmd, func(ctx context.Context, e *env) error {
		for _, name := range *names {
			if err := e.mgr.Delete(ctx, name); err != nil {
				return err
			}
		}
		return nil
	}
}

// algebraCmd registers a command that replaces the first set with op applied
// to it and the second one. With --into the result is saved under another
// name and the first set is kept.
func algebraCmd(app *kingpin.Application, verb, help string, op func(dst, src *sparseset.Set)) (*kingpin.CmdClause, handler) {
	cmd := app.Command(verb, help)
	a := cmd.Arg("a", "receiving set").Required().String()
	b := cmd.Arg("b", "operand set").Required().String()
	into := cmd.Flag("into", "Save the result under this name instead of a.").String()

	return cmd, func(ctx context.Context, e *env) error {
		sets, err := e.mgr.LoadMany(ctx, []string{*a, *b})
		if err != nil {
			return err
		}
		dst, src := sets[*a], sets[*b]
		if *a == *b {
			src = dst
		}
		op(dst, src)

		target := *a
		if *into != "" {
			target = *into
		}
		if err := e.mgr.Save(ctx, target, dst); err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.out, "%s: %s values\n", target, humanize.Comma(int64(dst.Len())))
		return err
	}
}

func unionCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return algebraCmd(app, "union", "a := a ∪ b", (*sparseset.Set).Union)
}

func intersectCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return algebraCmd(app, "intersect", "a := a ∩ b", (*sparseset.Set).Intersect)
}

func diffCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return algebraCmd(app, "diff", "a := a \\ b", (*sparseset.Set).Difference)
}

func symdiffCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return algebraCmd(app, "symdiff", "a := a △ b", (*sparseset.Set).SymmetricDifference)
}

// predicateCmd registers a command printing a boolean relation of two sets.
func predicateCmd(app *kingpin.Application, verb, help string, pred func(a, b *sparseset.Set) bool) (*kingpin.CmdClause, handler) {
	cmd := app.Command(verb, help)
	a := cmd.Arg("a", "first set").Required().String()
	b := cmd.Arg("b", "second set").Required().String()

	return cmd, func(ctx context.Context, e *env) error {
		sets, err := e.mgr.LoadMany(ctx, []string{*a, *b})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.out, pred(sets[*a], sets[*b]))
		return err
	}
}

func equalCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return predicateCmd(app, "equal", "Print whether a and b hold the same values.", (*sparseset.Set).Equal)
}

func subsetCmd(app *kingpin.Application) (*kingpin.CmdClause, handler) {
	return predicateCmd(app, "subset", "Print whether a is a subset of b.", (*sparseset.Set).IsSubsetOf)
}
