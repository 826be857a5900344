package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/reminders-api/internal/form"
	"github.com/BuzzLyutic/reminders-api/internal/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders, pending first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a reminder",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a reminder's title, description or priority",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a reminder done or not done",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance <text>",
	Short: "Ask the AI to rewrite a reminder text without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEnhance,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pending and completed counts",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var (
	listFilter string

	draftTitle       string
	draftDescription string
	draftPriority    string
	draftEnhance     bool

	rmYes bool
)

func init() {
	rootCmd.AddCommand(listCmd, addCmd, editCmd, toggleCmd, rmCmd, enhanceCmd, statsCmd)

	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Filter (all, active, completed)")

	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringVarP(&draftDescription, "description", "d", "", "Description")
		c.Flags().StringVarP(&draftPriority, "priority", "p", "", "Priority (Low, Medium, High)")
		c.Flags().BoolVar(&draftEnhance, "enhance", false, "Rewrite with AI before saving")
	}
	editCmd.Flags().StringVarP(&draftTitle, "title", "t", "", "New title")

	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Do not ask for confirmation")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := model.ParseFilter(listFilter)
	if err != nil {
		return fmt.Errorf("%w: %q", err, listFilter)
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	renderList(cmd.OutOrStdout(), a.Store.View(filter))
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	f := form.NewController(a.Store, a.Enhancer)
	defer f.Close()

	f.SetTitle(strings.Join(args, " "))
	f.SetDescription(draftDescription)
	if err := setPriority(f, draftPriority); err != nil {
		return err
	}
	return submit(cmd, f, a.Enhancer.Configured())
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	current, err := a.Store.Get(args[0])
	if err != nil {
		return fmt.Errorf("reminder %s: %w", args[0], err)
	}

	f := form.NewController(a.Store, a.Enhancer)
	defer f.Close()
	f.Edit(current)

	if cmd.Flags().Changed("title") {
		f.SetTitle(draftTitle)
	}
	if cmd.Flags().Changed("description") {
		f.SetDescription(draftDescription)
	}
	if cmd.Flags().Changed("priority") {
		if err := setPriority(f, draftPriority); err != nil {
			return err
		}
	}
	return submit(cmd, f, a.Enhancer.Configured())
}

func setPriority(f *form.Controller, s string) error {
	p, err := model.ParsePriority(s)
	if err != nil {
		return fmt.Errorf("%w: %q", err, s)
	}
	f.SetPriority(p)
	return nil
}

func submit(cmd *cobra.Command, f *form.Controller, aiConfigured bool) error {
	out := cmd.OutOrStdout()
	if draftEnhance {
		if !aiConfigured {
			fmt.Fprintln(out, "AI is not configured: set API_KEY to get smart suggestions.")
		}
		f.Enhance(cmd.Context())
	}

	d := f.Draft()
	ok, err := f.Submit(cmd.Context())
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("title is required")
	}
	fmt.Fprintf(out, "Saved: %s [%s]\n", d.Title, d.Priority)
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.Store.ToggleComplete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("reminder %s: %w", args[0], err)
	}

	state := "pending"
	if r.IsCompleted {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", r.Title, state)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.Store.Get(args[0])
	if err != nil {
		return fmt.Errorf("reminder %s: %w", args[0], err)
	}

	if !rmYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete %q?", r.Title))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := a.Store.Remove(cmd.Context(), r.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", r.Title)
	return nil
}

func runEnhance(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return errors.New("text is required")
	}

	res := a.Enhancer.Enhance(cmd.Context(), text)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Title:       %s\n", res.ImprovedTitle)
	fmt.Fprintf(out, "Description: %s\n", res.ImprovedDescription)
	fmt.Fprintf(out, "Priority:    %s\n", res.SuggestedPriority)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	s := a.Store.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "%d pending, %d completed, %d total\n", s.Active, s.Completed, s.Total)
	return nil
}

// confirm читает y/yes, все остальное (включая пустой ввод) - отказ
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
