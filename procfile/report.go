package procfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Gthulhu/schedsim/domain"
	"github.com/olekukonko/tablewriter"
)

// WriteProgress prints, per non-empty queue, the average waiting time each policy reached
func WriteProgress(w io.Writer, sim domain.Simulation) {
	_, _ = fmt.Fprintf(w, "Found %d queues.\n", sim.QueueCount)
	if sim.ExcludedCount > 0 {
		_, _ = fmt.Fprintf(w, "Skipped %d processes with a negative queue id.\n", sim.ExcludedCount)
	}
	for q := 0; q < sim.QueueCount; q++ {
		header := false
		for _, alg := range domain.Algorithms {
			res, ok := sim.ResultFor(q, alg)
			if !ok {
				continue
			}
			if !header {
				_, _ = fmt.Fprintf(w, "\nProcessing Queue %d (%d processes):\n", q, len(res.WaitingTimes))
				header = true
			}
			_, _ = fmt.Fprintf(w, "  Running %s... Done. AWT: %.2f\n", alg, res.AverageWaiting)
		}
	}
}

// WriteTables prints one schedule table per result
func WriteTables(w io.Writer, results []domain.ScheduleResult) {
	for _, res := range results {
		_, _ = fmt.Fprintf(w, "\nQueue %d, %s\n", res.QueueID, res.Algorithm)
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Burst", "Priority", "Arrival", "Wait", "Turnaround", "Exit"})
		rows := make([][]string, 0, len(res.Processes))
		for _, p := range res.Processes {
			rows = append(rows, []string{
				strconv.Itoa(p.ID),
				strconv.Itoa(p.BurstTime),
				strconv.Itoa(p.Priority),
				strconv.Itoa(p.ArrivalTime),
				strconv.Itoa(p.WaitingTime),
				strconv.Itoa(p.TurnaroundTime),
				strconv.Itoa(p.CompletionTime),
			})
		}
		table.AppendBulk(rows)
		table.SetFooter([]string{"", "", "", "",
			fmt.Sprintf("Average\n%.2f", res.AverageWaiting),
			fmt.Sprintf("Average\n%.2f", res.AverageTurnaround),
			""})
		table.Render()
	}
}

// WriteFinal prints the results in the screen variant of the canonical format
func WriteFinal(w io.Writer, results []domain.ScheduleResult) {
	_, _ = fmt.Fprintln(w, "\nFinal Results:")
	_, _ = fmt.Fprintln(w, "==============")
	for _, res := range results {
		waits := make([]string, len(res.WaitingTimes))
		for i, wt := range res.WaitingTimes {
			waits[i] = strconv.Itoa(wt)
		}
		_, _ = fmt.Fprintf(w, "Queue %d, Algorithm %d: %s:%.2f\n", res.QueueID, res.Algorithm, strings.Join(waits, ":"), res.AverageWaiting)
	}
}
