package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagewright/pagewright/internal/state"
)

// eventsCmd groups event log operations.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect and extend document event logs",
}

var eventsListCmd = &cobra.Command{
	Use:   "list <document>",
	Short: "List a document's events in append order",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventsList,
}

var eventsAppendCmd = &cobra.Command{
	Use:   "append <document> [file]",
	Short: "Append events from a JSON file (or stdin) to a document's log",
	Long: `Append reads one event object or an array of event objects and appends
them to the document's log in order. Events use the wire format:

  {"id": "...", "timestamp": "...", "type": "element-added", "payload": {...}}

A missing id or timestamp is filled in. Reading from "-" uses stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEventsAppend,
}

var eventsDocsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List documents that have events",
	Args:  cobra.NoArgs,
	RunE:  runEventsDocs,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsListCmd)
	eventsCmd.AddCommand(eventsAppendCmd)
	eventsCmd.AddCommand(eventsDocsCmd)
}

func runEventsList(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	events, err := rt.events.LoadEvents(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tTYPE\tID\tTIMESTAMP")
	for i, ev := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, ev.Payload.EventType(), ev.ID, ev.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runEventsAppend(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	var raw []byte
	if len(args) < 2 || args[1] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[1])
	}
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	events, err := decodeEvents(raw)
	if err != nil {
		return err
	}

	for _, ev := range events {
		if _, err := rt.events.AppendEvent(cmd.Context(), args[0], ev); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Appended %d event(s) to %s\n", len(events), args[0])
	return nil
}

func runEventsDocs(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ids, err := rt.events.Documents(cmd.Context())
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

// decodeEvents accepts either a single event object or an array of them,
// filling in missing envelope fields.
func decodeEvents(raw []byte) ([]state.Event, error) {
	var events []state.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		var single state.Event
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
		events = []state.Event{single}
	}
	for i := range events {
		if events[i].ID == "" || events[i].Timestamp.IsZero() {
			fresh := state.NewEvent(events[i].Payload)
			if events[i].ID == "" {
				events[i].ID = fresh.ID
			}
			if events[i].Timestamp.IsZero() {
				events[i].Timestamp = fresh.Timestamp
			}
		}
	}
	return events, nil
}
