package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL = flag.String("api-url", "http://localhost:8080", "Threadster API base URL")
	ids    = flag.String("ids", "", "Comma-separated post IDs or links (default: built-in samples)")
	runs   = flag.Int("runs", 3, "Number of runs per post for averaging")
	output = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Sample inputs covering both accepted input shapes.
var sampleInputs = []string{
	"DEHwQg6Bl-s",
	"https://www.threads.net/@zuck/post/CuUtmNAhQ8x",
	"https://www.threads.com/@threads/post/C8H5FiCtESk?xmt=1",
}

// threadResponse mirrors models.ThreadResponse and models.ErrorResponse.
type threadResponse struct {
	OK       bool     `json:"ok"`
	Message  string   `json:"message"`
	Username string   `json:"username"`
	Caption  string   `json:"caption"`
	URL      []string `json:"url"`
}

// --- Benchmark result types ---

type runResult struct {
	Run        int    `json:"run"`
	TotalMs    int64  `json:"total_ms"`
	StatusCode int    `json:"status_code"`
	LinkCount  int    `json:"link_count"`
	HasCaption bool   `json:"has_caption"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
}

type inputAverages struct {
	TotalMs   float64 `json:"total_ms"`
	LinkCount float64 `json:"link_count"`
}

type inputResult struct {
	Input    string         `json:"input"`
	Runs     []runResult    `json:"runs"`
	Averages *inputAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp    string        `json:"timestamp"`
	APIURL       string        `json:"api_url"`
	RunsPerInput int           `json:"runs_per_input"`
	Results      []inputResult `json:"results"`
}

func main() {
	flag.Parse()

	inputs := sampleInputs
	if *ids != "" {
		inputs = splitInputs(*ids)
	}

	fmt.Println("=== Threadster Benchmark ===")
	fmt.Printf("API URL:    %s\n", *apiURL)
	fmt.Printf("Runs/post:  %d\n", *runs)
	fmt.Printf("Output:     %s\n", *output)
	fmt.Println()

	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		APIURL:       *apiURL,
		RunsPerInput: *runs,
	}

	client := &http.Client{Timeout: 60 * time.Second}
	for _, in := range inputs {
		fmt.Printf("Benchmarking %s ...\n", in)
		ir := inputResult{Input: in}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			rr := benchmarkInput(client, *apiURL, in, i)
			if rr.Success {
				fmt.Printf("OK  %dms  %d links\n", rr.TotalMs, rr.LinkCount)
			} else {
				fmt.Printf("FAILED (%d): %s\n", rr.StatusCode, rr.Error)
			}
			ir.Runs = append(ir.Runs, rr)
		}

		ir.Averages = computeAverages(ir.Runs)
		report.Results = append(report.Results, ir)
		fmt.Println()
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func splitInputs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkInput(client *http.Client, baseURL, input string, run int) runResult {
	rr := runResult{Run: run}

	start := time.Now()
	resp, err := client.Get(baseURL + "/api/threadster?id=" + url.QueryEscape(input))
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()

	var tr threadResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}
	rr.TotalMs = time.Since(start).Milliseconds()

	rr.StatusCode = resp.StatusCode
	rr.Success = tr.OK
	rr.LinkCount = len(tr.URL)
	rr.HasCaption = tr.Caption != ""
	if !tr.OK {
		rr.Error = tr.Message
	}
	return rr
}

func computeAverages(runs []runResult) *inputAverages {
	var successCount int
	var avg inputAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.LinkCount += float64(r.LinkCount)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.LinkCount /= n
	return &avg
}

func printTable(results []inputResult) {
	fmt.Println(strings.Repeat("─", 72))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Input\tAvg Latency\tAvg Links\tOK Runs\n")
	fmt.Fprintf(w, "─────\t───────────\t─────────\t───────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t0/%d\n", truncate(r.Input, 44), len(r.Runs))
			continue
		}
		fmt.Fprintf(w, "%s\t%dms\t%.1f\t%d/%d\n",
			truncate(r.Input, 44),
			int64(r.Averages.TotalMs),
			r.Averages.LinkCount,
			okRuns(r.Runs),
			len(r.Runs),
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 72))
}

func okRuns(runs []runResult) int {
	n := 0
	for _, r := range runs {
		if r.Success {
			n++
		}
	}
	return n
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
