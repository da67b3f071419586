package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmoranv/aolachart/pkg/attr"
	"github.com/vmoranv/aolachart/pkg/attr/graph"
	apperrors "github.com/vmoranv/aolachart/pkg/errors"
)

// attrCommand groups the attribute relation subcommands.
func (c *CLI) attrCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attr",
		Short: "Inspect attribute damage relations",
	}

	cmd.AddCommand(c.attrListCommand())
	cmd.AddCommand(c.attrShowCommand())
	cmd.AddCommand(c.attrChartCommand())
	cmd.AddCommand(c.attrGraphCommand())

	return cmd
}

func (c *CLI) attrListCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all attributes in the catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}
			attrs, err := e.repo.Attributes(ctx)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch the attribute catalogue")
			}
			fmt.Println(attr.FormatList(attrs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	return cmd
}

func (c *CLI) attrShowCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Print the text relation report for an attribute",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}
			subject, attack, defend, err := c.analyze(ctx, e, args[0])
			if err != nil {
				return err
			}
			fmt.Println(attr.FormatReport(subject, attack, defend))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	return cmd
}

func (c *CLI) attrChartCommand() *cobra.Command {
	var noCache bool
	var output string

	cmd := &cobra.Command{
		Use:   "chart <id|name>",
		Short: "Render the relation chart as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}
			subject, attack, defend, err := c.analyze(ctx, e, args[0])
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			png, err := e.chartRenderer(c.Logger).Render(ctx, subject, attack, defend)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "chart render failed")
			}
			prog.done(fmt.Sprintf("Rendered chart for %s", subject.Name))

			if output == "" {
				output = fmt.Sprintf("attr_%d.png", subject.ID)
			}
			if err := os.WriteFile(output, png, 0o644); err != nil {
				return err
			}
			printSuccess("Chart written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default attr_<id>.png)")
	return cmd
}

func (c *CLI) attrGraphCommand() *cobra.Command {
	var noCache bool
	var output, format string

	cmd := &cobra.Command{
		Use:   "graph <id|name>",
		Short: "Render the relations as a node-link graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := validateGraphFormat(format); err != nil {
				return err
			}
			e, err := c.newEngine(ctx, noCache)
			if err != nil {
				return err
			}
			subject, attack, defend, err := c.analyze(ctx, e, args[0])
			if err != nil {
				return err
			}

			dot := graph.ToDOT(subject, attack, defend)
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "png":
				data, err = graph.RenderPNG(ctx, dot)
			default:
				data, err = graph.RenderSVG(ctx, dot)
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "graph render failed")
			}

			if output == "" {
				output = fmt.Sprintf("attr_%d.%s", subject.ID, format)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Graph written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the API response cache")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default attr_<id>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, png, dot")
	return cmd
}

func validateGraphFormat(format string) error {
	switch format {
	case "svg", "png", "dot":
		return nil
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown graph format %q (want svg, png, or dot)", format)
	}
}

// analyze resolves the subject and produces both bucket sets. The defend
// direction needs every other attribute's relation map resident first, so
// the full catalogue is prefetched behind a spinner before classification.
func (c *CLI) analyze(ctx context.Context, e *engine, query string) (attr.Attribute, attr.BucketSet, attr.BucketSet, error) {
	attrs, err := e.repo.Attributes(ctx)
	if err != nil {
		return attr.Attribute{}, nil, nil, apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch the attribute catalogue")
	}

	subject, err := c.chooseSubject(attrs, query)
	if err != nil {
		return attr.Attribute{}, nil, nil, err
	}

	spinner := newSpinner(ctx, fmt.Sprintf("Fetching relation maps for %d attributes...", len(attrs)-1))
	spinner.Start()
	attack, defend, err := e.relationBuckets(ctx, subject)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to fetch relations for %s", subject.Name))
		return attr.Attribute{}, nil, nil, apperrors.Wrap(apperrors.ErrCodeDataUnavailable, err, "could not fetch relations for %s", subject.Name)
	}
	spinner.Stop()
	return subject, attack, defend, nil
}

// chooseSubject resolves a query to a subject. Ambiguous name queries open
// the interactive picker when attached to a terminal; otherwise the shortest
// matching name wins and a warning names the others.
func (c *CLI) chooseSubject(attrs []attr.Attribute, query string) (attr.Attribute, error) {
	if _, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		return resolveSubject(attrs, query)
	}

	candidates := attr.Candidates(attrs, query)
	if len(candidates) > 1 {
		if isInteractive() {
			selected, ok, err := pickAttribute(candidates)
			if err != nil {
				return attr.Attribute{}, err
			}
			if !ok {
				return attr.Attribute{}, apperrors.New(apperrors.ErrCodeAttributeNotFound, "no attribute selected")
			}
			return selected, nil
		}
		subject, _ := attr.Match(attrs, query)
		printWarning("%d attributes match %q, using %s", len(candidates), query, subject.Name)
		return subject, nil
	}

	return resolveSubject(attrs, query)
}

func resolveSubject(attrs []attr.Attribute, query string) (attr.Attribute, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		for _, a := range attrs {
			if a.ID == id {
				return a, nil
			}
		}
		return attr.Attribute{}, apperrors.New(apperrors.ErrCodeAttributeNotFound, "no attribute with id %d", id)
	}

	if a, ok := attr.Match(attrs, query); ok {
		return a, nil
	}
	return attr.Attribute{}, apperrors.New(apperrors.ErrCodeAttributeNotFound, "no attribute matching %q", query)
}
