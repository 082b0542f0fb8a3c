package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rolodex/internal/record"
	"github.com/roach88/rolodex/internal/store"
)

// searchFields lists the fields the console can search by, in menu
// order. "id" hits the index; the rest are linear scans.
var searchFields = []string{"id", "name", "age", "gender", "occupation"}

// MenuOptions holds flags for the menu command.
type MenuOptions struct {
	*RootOptions
}

// NewMenuCommand creates the interactive console command.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MenuOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive user management console",
		Long: `Run the interactive, menu-driven user management console.

The console owns one store for the duration of the session. Records
are assigned increasing serial ids automatically; a deleted serial is
never reissued. All data is discarded when the session ends.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}

	return cmd
}

// console bundles the session state: one store, a serial source, and
// the input/output streams of the command. Tests inject FixedSerials
// through the generator interface.
type console struct {
	store   *store.Store
	serials store.SerialGenerator
	in      *bufio.Scanner
	out     io.Writer
}

func runMenu(opts *MenuOptions, cmd *cobra.Command) error {
	c := &console{
		store:   store.New(),
		serials: store.NewSequence(),
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
	}

	fmt.Fprintln(c.out, "===== User Management Console =====")

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "What would you like to do:")
		fmt.Fprintln(c.out, "1. Add an entry")
		fmt.Fprintln(c.out, "2. Update an entry")
		fmt.Fprintln(c.out, "3. Delete an entry")
		fmt.Fprintln(c.out, "4. Search entries")
		fmt.Fprintln(c.out, "5. Display all entries")
		fmt.Fprintln(c.out, "6. Exit")

		line, ok := c.prompt("Enter your choice: ")
		if !ok {
			// EOF ends the session like an explicit exit.
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid input: enter a number between 1 and 6.")
			continue
		}

		switch choice {
		case 1:
			c.addEntry()
		case 2:
			c.updateEntry()
		case 3:
			c.deleteEntry()
		case 4:
			c.searchEntries()
		case 5:
			renderRecords(c.out, c.store.List())
		case 6:
			fmt.Fprintln(c.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option: enter a number between 1 and 6.")
		}
	}
}

// prompt writes the prompt and reads one trimmed line. ok is false on
// end of input.
func (c *console) prompt(msg string) (string, bool) {
	fmt.Fprint(c.out, msg)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) addEntry() {
	name, ok := c.prompt("Enter name: ")
	if !ok {
		return
	}
	if name == "" {
		fmt.Fprintln(c.out, "Error: name must not be empty. Entry aborted.")
		return
	}

	ageText, ok := c.prompt("Enter age: ")
	if !ok {
		return
	}
	age, err := strconv.Atoi(ageText)
	if err != nil || age < 0 {
		fmt.Fprintln(c.out, "Error: age must be a non-negative number. Entry aborted.")
		return
	}

	gender, ok := c.prompt("Enter gender: ")
	if !ok {
		return
	}
	occupation, ok := c.prompt("Enter occupation: ")
	if !ok {
		return
	}

	attrs := map[string]string{}
	if gender != "" {
		attrs[record.AttrGender] = gender
	}
	if occupation != "" {
		attrs[record.AttrOccupation] = occupation
	}

	id := c.serials.Next()
	r, err := record.New(id, name, age, attrs)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if err := c.store.Add(r); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	slog.Debug("entry added", "id", id, "name", name)
	fmt.Fprintf(c.out, "Entry added with id %d.\n", id)
}

func (c *console) updateEntry() {
	target, ok := c.locateEntry()
	if !ok {
		return
	}

	fmt.Fprintln(c.out, "Enter the updated details (leave a field blank to keep it):")
	fields := map[string]string{}
	for _, f := range []string{"name", "age", "gender", "occupation"} {
		v, ok := c.prompt(fmt.Sprintf("Enter %s: ", f))
		if !ok {
			return
		}
		if v != "" {
			fields[f] = v
		}
	}
	changes, err := store.ParseChanges(fields)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if changes.IsZero() {
		fmt.Fprintln(c.out, "Nothing to update.")
		return
	}
	if err := c.store.Update(target.ID, changes); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	slog.Debug("entry updated", "id", target.ID)
	fmt.Fprintln(c.out, "Entry updated.")
}

func (c *console) deleteEntry() {
	target, ok := c.locateEntry()
	if !ok {
		return
	}
	if err := c.store.Delete(target.ID); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}

	slog.Debug("entry deleted", "id", target.ID)
	fmt.Fprintln(c.out, "Entry deleted.")
}

func (c *console) searchEntries() {
	field, value, ok := c.searchCriteria()
	if !ok {
		return
	}

	if field == "id" {
		id, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid id: must be a number.")
			return
		}
		r, found := c.store.Find(id)
		if !found {
			fmt.Fprintln(c.out, "No entry found matching the criteria.")
			return
		}
		renderRecord(c.out, r)
		return
	}

	matches := c.store.FindByAttribute(field, value)
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No entry found matching the criteria.")
		return
	}
	renderRecords(c.out, matches)
}

// locateEntry asks for search criteria and resolves them to a single
// record: the index hit for an id search, the first match in insertion
// order otherwise.
func (c *console) locateEntry() (*record.Record, bool) {
	field, value, ok := c.searchCriteria()
	if !ok {
		return nil, false
	}

	if field == "id" {
		id, err := strconv.Atoi(value)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid id: must be a number.")
			return nil, false
		}
		r, found := c.store.Find(id)
		if !found {
			fmt.Fprintln(c.out, "No entry found matching the criteria.")
			return nil, false
		}
		return r, true
	}

	matches := c.store.FindByAttribute(field, value)
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No entry found matching the criteria.")
		return nil, false
	}
	return matches[0], true
}

// searchCriteria asks which field to search by and for the value.
func (c *console) searchCriteria() (field, value string, ok bool) {
	fmt.Fprintln(c.out, "Select a field to search by:")
	for i, f := range searchFields {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, capitalize(f))
	}

	line, ok := c.prompt("Enter your choice: ")
	if !ok {
		return "", "", false
	}
	choice, err := strconv.Atoi(line)
	if err != nil || choice < 1 || choice > len(searchFields) {
		fmt.Fprintf(c.out, "Invalid input: enter a number between 1 and %d.\n", len(searchFields))
		return "", "", false
	}
	field = searchFields[choice-1]

	value, ok = c.prompt(fmt.Sprintf("Enter %s to search: ", field))
	if !ok {
		return "", "", false
	}
	return field, value, true
}
