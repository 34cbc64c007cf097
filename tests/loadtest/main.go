// Command loadtest drives a running hnblocks server with a mixed read and
// settings-write workload and prints latency percentiles per endpoint.
package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"hnblocks/internal/models"
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
}

type result struct {
	endpoint string
	latency  time.Duration
	failed   bool
}

type endpointStats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 15 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

func main() {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Load test a running hnblocks server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "url", "http://127.0.0.1:8080", "server base URL")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 20, "concurrent workers")
	cmd.Flags().DurationVarP(&opts.duration, "duration", "t", 10*time.Second, "duration of each phase")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	client := newHTTPClient()

	fmt.Println("=== hnblocks load test ===")
	fmt.Printf("Workers: %d | Phase duration: %s\n\n", opts.workers, opts.duration)

	blocks, err := waitForBlocks(client, opts.baseURL)
	if err != nil {
		return err
	}
	fmt.Printf("Server up, %d blocks available\n", len(blocks))

	// warm the story cache so later phases measure cached reads
	fmt.Println("\n--- Phase 1: Cold reads (GET /api/stories for every block) ---")
	var next atomic.Int64
	runPhase(opts, func(_ *rand.Rand) result {
		i := int(next.Add(1)-1) % len(blocks)
		return getStories(client, opts.baseURL, blocks[i])
	})

	fmt.Println("\n--- Phase 2: Read-heavy (95% GET, 5% PUT /api/settings) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		r := rng.Float64()
		block := blocks[rng.Intn(len(blocks))]
		switch {
		case r < 0.05:
			return putSettings(client, opts.baseURL, rng)
		case r < 0.45:
			return getView(client, opts.baseURL, block, rng)
		case r < 0.80:
			return getStories(client, opts.baseURL, block)
		case r < 0.90:
			return get(client, "GET /api/time-blocks", opts.baseURL+"/api/time-blocks")
		default:
			return get(client, "GET /api/settings", opts.baseURL+"/api/settings")
		}
	})

	// restore defaults so the run leaves no filters behind
	putJSON(client, opts.baseURL+"/api/settings", models.DefaultSettings())
	return nil
}

func waitForBlocks(client *http.Client, baseURL string) ([]models.TimeBlock, error) {
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := client.Get(baseURL + "/api/time-blocks")
		if err == nil {
			var blocks []models.TimeBlock
			decodeErr := json.NewDecoder(resp.Body).Decode(&blocks)
			resp.Body.Close()
			if decodeErr == nil && len(blocks) > 0 {
				fmt.Println("OK")
				return blocks, nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("FAILED")
	return nil, fmt.Errorf("server at %s is not responding", baseURL)
}

func runPhase(opts options, work func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	stop := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- work(rng)
				}
			}
		}(time.Now().UnixNano() + int64(i))
	}

	collected := make(map[string]*endpointStats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := collected[r.endpoint]
			if !ok {
				s = &endpointStats{}
				collected[r.endpoint] = s
			}
			s.count++
			if r.failed {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(opts.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(collected, opts.duration)
}

func printResults(collected map[string]*endpointStats, duration time.Duration) {
	endpoints := make([]string, 0, len(collected))
	for ep := range collected {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 72))

	var total, failed int64
	for _, ep := range endpoints {
		s := collected[ep]
		total += s.count
		failed += s.errors
		slices.Sort(s.latencies)
		fmt.Printf("  %-22s %8d %6d %10s %10s %10s\n", ep, s.count, s.errors,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 72))
	if total == 0 {
		fmt.Println("  No requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		total, failed, float64(failed)/float64(total)*100, float64(total)/duration.Seconds())
}

func get(client *http.Client, endpoint, url string) result {
	start := time.Now()
	resp, err := client.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint: endpoint, latency: lat, failed: true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// upstream failures surface as 502 and count as errors here
	return result{endpoint: endpoint, latency: lat, failed: resp.StatusCode != http.StatusOK}
}

func getStories(client *http.Client, baseURL string, b models.TimeBlock) result {
	return get(client, "GET /api/stories", fmt.Sprintf("%s/api/stories?start=%d&end=%d", baseURL, b.Start, b.End))
}

func getView(client *http.Client, baseURL string, b models.TimeBlock, rng *rand.Rand) result {
	url := fmt.Sprintf("%s/api/view?start=%d&end=%d", baseURL, b.Start, b.End)
	if rng.Intn(2) == 0 {
		url += fmt.Sprintf("&minRanking=%d", rng.Intn(30))
	}
	return get(client, "GET /api/view", url)
}

func putSettings(client *http.Client, baseURL string, rng *rand.Rand) result {
	s := models.SettingsConfig{
		MinRanking:       rng.Intn(3) * 10,
		MinPoints:        rng.Intn(4) * 25,
		ShowRecentBlocks: rng.Intn(2) == 0,
	}
	start := time.Now()
	status, err := putJSON(client, baseURL+"/api/settings", s)
	return result{endpoint: "PUT /api/settings", latency: time.Since(start), failed: err != nil || status != http.StatusOK}
}

func putJSON(client *http.Client, url string, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return resp.StatusCode, nil
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := min(int(float64(len(d))*p), len(d)-1)
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
