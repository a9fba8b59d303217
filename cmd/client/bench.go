package main

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

var benchContact = model.Contact{
	GivenName:    "Marcus",
	FamilyName:   "Antonius",
	PhoneNumbers: []model.PhoneNumber{{Label: "mobile", Number: "+39 999 777 555"}},
	Birthday:     &model.Birthday{Day: 14, Month: 1, Year: 1983},
}

// newBenchCmd returns the bench command. apiURL points at the persistent
// --api flag of the root command.
func newBenchCmd(out io.Writer, apiURL *string) *cobra.Command {
	var sizes []int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure the average duration of POST, PUT, GET and DELETE requests in microseconds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(newAPI(*apiURL), sizes, out)
		},
	}
	cmd.Flags().IntSliceVarP(&sizes, "sizes", "s", []int{1000, 5000, 10000}, "number of contacts per round")
	return cmd
}

func runBench(a *api, sizes []int, out io.Writer) error {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "  Elements      POST       PUT       GET    DELETE ")
	_, _ = fmt.Fprintln(out, "---------------------------------------------------")
	for _, loops := range sizes {
		if loops <= 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "%10d", loops)

		// POST requests
		ids := make([]string, 0, loops)
		var duration time.Duration
		for i := 0; i < loops; i++ {
			before := time.Now()
			created, err := a.add(benchContact)
			if err != nil {
				return err
			}
			duration += time.Since(before)
			ids = append(ids, created.RecordID)
		}
		_, _ = fmt.Fprintf(out, "%10d", duration.Microseconds()/int64(loops))

		// PUT requests
		err := callInLoop(ids, out, func(id string) error {
			c := benchContact
			c.RecordID = id
			return a.update(c)
		})
		if err != nil {
			return err
		}

		// GET requests
		err = callInLoop(ids, out, func(id string) error {
			_, err := a.get(id)
			return err
		})
		if err != nil {
			return err
		}

		// DELETE requests
		if err := callInLoop(ids, out, a.delete); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
	}
	return nil
}

// callInLoop calls f for every id in random order and prints the average
// duration in microseconds.
func callInLoop(ids []string, out io.Writer, f func(id string) error) error {
	shuffled := shuffle(ids)
	var duration time.Duration
	for _, id := range shuffled {
		before := time.Now()
		if err := f(id); err != nil {
			return fmt.Errorf("record %s: %w", id, err)
		}
		duration += time.Since(before)
	}
	_, _ = fmt.Fprintf(out, "%10d", duration.Microseconds()/int64(len(ids)))
	return nil
}

func shuffle(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

