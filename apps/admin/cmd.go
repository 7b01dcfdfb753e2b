package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/katalog/core"
	"github.com/trezcool/katalog/core/catalog"
	"github.com/trezcool/katalog/core/session"
)

type commandLine struct {
	svc  *catalog.Service
	i18n *core.I18n
	out  io.Writer
	lang string
}

// run executes args (program name included).
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	root.SetOut(cli.out)
	root.SetErr(cli.out)
	return root.Execute()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Browse the project catalog from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cli.i18n.Has(cli.lang) {
				return errors.Errorf("unsupported language %q", cli.lang)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cli.lang, "lang", "l", cli.lang, "display language (cs|en)")

	var filter catalog.ProjectFilter
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects matching the filter, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.listProjects(filter)
		},
	}
	projectsCmd.Flags().StringVar(&filter.Subject, "subject", catalog.All, "subject id")
	projectsCmd.Flags().StringVar(&filter.Year, "year", catalog.All, "academic year, e.g. 2023/2024")
	projectsCmd.Flags().StringVar(&filter.Search, "search", "", "text matched against titles and tags")

	yearsCmd := &cobra.Command{
		Use:   "years",
		Short: "List the academic years having projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.listYears()
		},
	}

	feedbackCmd := &cobra.Command{
		Use:   "feedback",
		Short: "List all feedback grouped by project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.listFeedback()
		},
	}

	studentCmd := &cobra.Command{
		Use:   "student <id>",
		Short: "Show a student's projects and feedback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.showStudent(args[0])
		},
	}

	root.AddCommand(projectsCmd, yearsCmd, feedbackCmd, studentCmd)
	return root
}

func (cli *commandLine) t(key string) string {
	return cli.i18n.T(cli.lang, key)
}

func (cli *commandLine) subjectLabel(subj *catalog.Subject) string {
	if subj == nil {
		return cli.t("subject.unknown")
	}
	return subj.Code
}

func (cli *commandLine) studentLabel(std *catalog.Student) string {
	if std == nil {
		return cli.t("student.unknown")
	}
	return std.Name
}

func (cli *commandLine) listProjects(filter catalog.ProjectFilter) error {
	snap, err := cli.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking catalog snapshot")
	}
	filter.Clean()
	view := session.BuildPublicView(snap, filter)
	if len(view.Projects) == 0 {
		fmt.Fprintln(cli.out, cli.t("dashboard.no_results"))
		return nil
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\t%s\t%s\t%s\n",
		cli.t("form.project_title"), cli.t("dashboard.filter_subject"), cli.t("dashboard.filter_year"), cli.t("project.team"))
	for _, card := range view.Projects {
		names := make([]string, 0, len(card.Authors))
		for _, a := range card.Authors {
			names = append(names, a.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			card.ID, card.Title, cli.subjectLabel(card.Subject), card.AcademicYear, strings.Join(names, ", "))
	}
	return w.Flush()
}

func (cli *commandLine) listYears() error {
	projects, err := cli.svc.Projects()
	if err != nil {
		return errors.Wrap(err, "querying projects")
	}
	for _, y := range catalog.DistinctAcademicYears(projects) {
		fmt.Fprintln(cli.out, y)
	}
	return nil
}

func (cli *commandLine) listFeedback() error {
	snap, err := cli.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking catalog snapshot")
	}
	groups := session.BuildLecturerView(snap, nil).Feedback
	if len(groups) == 0 {
		fmt.Fprintln(cli.out, cli.t("feedback.no_feedback"))
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(cli.out, "%s (%d %s)\n", g.Project.Title, g.Count, cli.t("feedback.count_suffix"))
		for _, e := range g.Feedback {
			cli.printFeedback(e)
		}
	}
	return nil
}

func (cli *commandLine) printFeedback(e session.FeedbackEntry) {
	fmt.Fprintf(cli.out, "  %s -> %s, %s\n", cli.studentLabel(e.From), cli.studentLabel(e.To), e.CreatedAt)
	fmt.Fprintf(cli.out, "    %s: %s\n", cli.t("student.label_strengths"), e.Strengths)
	fmt.Fprintf(cli.out, "    %s: %s\n", cli.t("student.label_improvements"), e.Improvements)
}

func (cli *commandLine) showStudent(id string) error {
	std, err := cli.svc.GetStudent(id)
	if err != nil {
		return errors.Wrapf(err, "getting student %q", id)
	}
	snap, err := cli.svc.Snapshot()
	if err != nil {
		return errors.Wrap(err, "taking catalog snapshot")
	}

	fmt.Fprintf(cli.out, "%s <%s>\n", std.Name, std.Email)
	own := catalog.ProjectsOf(std.ID, snap.Projects)
	if len(own) == 0 {
		fmt.Fprintln(cli.out, cli.t("student.no_project"))
	}
	for _, p := range own {
		fmt.Fprintf(cli.out, "%s: %s\n", cli.t("student.active_project"), p.Title)
		for _, mate := range catalog.TeammatesOf(p, std.ID, snap.Students) {
			fmt.Fprintf(cli.out, "  %s\n", mate.Name)
		}
	}

	sections := []struct {
		key string
		fbs []catalog.Feedback
	}{
		{key: "student.sent_history", fbs: catalog.FeedbackFrom(snap.Feedback, std.ID)},
		{key: "student.received_history", fbs: catalog.FeedbackTo(snap.Feedback, std.ID)},
	}
	for _, sec := range sections {
		fmt.Fprintf(cli.out, "%s (%d)\n", cli.t(sec.key), len(sec.fbs))
		for _, f := range sec.fbs {
			cli.printFeedback(session.NewFeedbackEntry(f, snap.Students))
		}
	}
	return nil
}
