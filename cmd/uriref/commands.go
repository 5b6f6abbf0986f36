package main

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/uriref/header"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/log"
	"github.com/ghettovoice/uriref/uri"
)

func newParseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <uri>...",
		Short: "Print the components of URI references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, s := range args {
				u, err := uri.Parse(s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				opts.logger().Debug("parsed", "uri", u,
					"default_port", log.CalcValue(func() any { return uri.DefaultPort(u.Scheme()) }))

				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				if _, err := writeComponents(cmd.OutOrStdout(), u); err != nil {
					return errtrace.Wrap(err)
				}
			}
			return nil
		},
	}
}

func writeComponents(w io.Writer, u uri.URI) (int, error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	port := ""
	if p, ok := u.Port(); ok {
		port = strconv.FormatUint(uint64(p), 10)
	}
	for _, kv := range [][2]string{
		{"uri", u.String()},
		{"scheme", u.Scheme()},
		{"userinfo", u.UserInfo()},
		{"host", u.Host()},
		{"port", port},
		{"path", u.Path()},
		{"query", u.Query()},
		{"fragment", u.Fragment()},
	} {
		cw.WriteStrings(kv[0], ":\t", kv[1], "\n")
	}
	return errtrace.Wrap2(cw.Result())
}

func newResolveCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <base> <ref>...",
		Short: "Resolve references against a base URI",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := uri.Parse(args[0])
			if err != nil {
				return errtrace.Wrap(fmt.Errorf("base: %w", err))
			}
			for _, s := range args[1:] {
				res, err := uri.ResolveString(base, s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				opts.logger().Debug("resolved", "base", base, "ref", s, "uri", res)
				fmt.Fprintln(cmd.OutOrStdout(), res.String())
			}
			return nil
		},
	}
}

func newRelativizeCommand(opts *options) *cobra.Command {
	var norm []string
	cmd := &cobra.Command{
		Use:   "relativize <base> <target>...",
		Short: "Print the shortest references from a base URI to targets",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := parseNormalizeFlags(norm)
			if err != nil {
				return errtrace.Wrap(err)
			}
			base, err := uri.Parse(args[0])
			if err != nil {
				return errtrace.Wrap(fmt.Errorf("base: %w", err))
			}
			base = uri.Normalize(base, flags)
			for _, s := range args[1:] {
				target, err := uri.Parse(s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				ref := uri.Relativize(base, uri.Normalize(target, flags))
				opts.logger().Debug("relativized", "base", base, "target", target, "uri", ref)
				fmt.Fprintln(cmd.OutOrStdout(), ref.String())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&norm, "normalize", "n", nil,
		"normalizations applied to base and targets first")
	return cmd
}

func newNormalizeCommand(opts *options) *cobra.Command {
	var norm []string
	cmd := &cobra.Command{
		Use:   "normalize <uri>...",
		Short: "Normalize URI references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := parseNormalizeFlags(norm)
			if err != nil {
				return errtrace.Wrap(err)
			}
			opts.logger().Debug("normalizing", "flags", log.FmtValue(flags, false))
			for _, s := range args {
				u, err := uri.Parse(s)
				if err != nil {
					return errtrace.Wrap(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), uri.Normalize(u, flags).String())
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&norm, "normalize", "n", []string{"preserving"},
		"normalizations to apply")
	return cmd
}

func newEquivalentCommand(opts *options) *cobra.Command {
	var norm []string
	cmd := &cobra.Command{
		Use:   "equivalent <uri> <uri>",
		Short: "Report whether two URI references are equivalent after normalization",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := parseNormalizeFlags(norm)
			if err != nil {
				return errtrace.Wrap(err)
			}
			a, err := uri.Parse(args[0])
			if err != nil {
				return errtrace.Wrap(err)
			}
			b, err := uri.Parse(args[1])
			if err != nil {
				return errtrace.Wrap(err)
			}
			eq := uri.IsEquivalent(a, b, flags)
			opts.logger().Debug("compared", "a", a, "b", b, "equivalent", eq)
			fmt.Fprintln(cmd.OutOrStdout(), eq)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&norm, "normalize", "n", []string{"preserving"},
		"normalizations applied before comparison")
	return cmd
}

func newHeadersCommand(opts *options) *cobra.Command {
	var names []string
	cmd := &cobra.Command{
		Use:   "headers",
		Short: "Split a raw header block read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return errtrace.Wrap(err)
			}
			fs, err := header.Split(raw)
			if err != nil {
				return errtrace.Wrap(err)
			}
			opts.logger().Debug("split header block", "raw", log.StringValue(raw), "fields", len(fs))

			if len(names) == 0 {
				_, err = fs.RenderTo(cmd.OutOrStdout())
				return errtrace.Wrap(err)
			}
			var sel header.Fields
			for _, f := range fs {
				for _, n := range names {
					if f.Name.Equal(n) {
						sel = append(sel, f)
						break
					}
				}
			}
			for _, f := range sel {
				opts.logger().Debug("selected", "field", f)
			}
			_, err = sel.RenderTo(cmd.OutOrStdout())
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().StringSliceVarP(&names, "get", "g", nil, "print only the fields with these names")
	return cmd
}
