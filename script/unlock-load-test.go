package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UnlockResponse mirrors the body of POST /resources/:id/unlock. Exactly one
// of Success or Error is set.
type UnlockResponse struct {
	Success string `json:"success,omitempty"`
	Credits int64  `json:"credits,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RequestResult contains metrics for a single request
type RequestResult struct {
	Outcome      string
	ResponseTime time.Duration
	StatusCode   int
	Err          error
}

// RunStats contains aggregated run statistics
type RunStats struct {
	TotalRequests     int
	CompletedRequests int
	TotalTime         time.Duration
	MinResponseTime   time.Duration
	MaxResponseTime   time.Duration
	TotalResponseTime time.Duration
	ResponseTimes     []time.Duration
	OutcomeCounts     map[string]int
	ResourceStats     map[string]int
	Lock              sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	resourcesStr := flag.String("r", "", "Comma-separated resource UUIDs to unlock (random UUIDs when empty)")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	token := flag.String("token", "", "Bearer token for the Authorization header")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	// Hammering a small fixed resource set is how the double-charge race is
	// exercised; random UUIDs measure the 404 path instead.
	var resourceIDs []string
	for _, id := range strings.Split(*resourcesStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			resourceIDs = append(resourceIDs, id)
		}
	}
	if len(resourceIDs) == 0 {
		for i := 0; i < 10; i++ {
			resourceIDs = append(resourceIDs, uuid.NewString())
		}
	}

	fmt.Printf("Load testing unlocks across %d resources\n", len(resourceIDs))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &RunStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		OutcomeCounts:   make(map[string]int),
		ResourceStats:   make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
	}

	results := make(chan RequestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(workerID, *baseURL, *token, *delayMs, resourceIDs, jobs, results, stats)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			stats.CompletedRequests++
			stats.OutcomeCounts[result.Outcome]++

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Run in progress...")

	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			if stats.CompletedRequests > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					stats.CompletedRequests, stats.TotalRequests,
					float64(stats.CompletedRequests)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	ticker.Stop()

	stats.TotalTime = time.Since(startTime)
	printResults(stats)
}

func worker(id int, baseURL, token string, delayMs int, resourceIDs []string,
	jobs <-chan int, results chan<- RequestResult, stats *RunStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for jobID := range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		resourceID := resourceIDs[rand.Intn(len(resourceIDs))]

		stats.Lock.Lock()
		stats.ResourceStats[resourceID]++
		stats.Lock.Unlock()

		apiURL := fmt.Sprintf("%s/resources/%s/unlock", baseURL, resourceID)

		req, err := http.NewRequest(http.MethodPost, apiURL, nil)
		if err != nil {
			results <- RequestResult{Outcome: "request_error", Err: err}
			continue
		}
		req.Header.Set("X-Request-ID", fmt.Sprintf("load-%d-%d-%s", id, jobID, uuid.NewString()))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := RequestResult{ResponseTime: responseTime}

		if err != nil {
			result.Outcome = "transport_error"
			result.Err = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		result.Outcome = classifyResponse(resp)
		resp.Body.Close()

		results <- result
	}
}

// classifyResponse buckets a response by its business outcome rather than
// just the status code, since failures ride a 200 here.
func classifyResponse(resp *http.Response) string {
	if resp.StatusCode == http.StatusNotFound {
		return "not_found"
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return "unauthorized"
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("http_%d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "read_error"
	}

	var unlockResp UnlockResponse
	if err := json.Unmarshal(body, &unlockResp); err != nil {
		return "decode_error"
	}

	switch {
	case unlockResp.Success != "":
		return "unlocked"
	case strings.Contains(unlockResp.Error, "credits"):
		return "insufficient_credits"
	default:
		return "generic_failure"
	}
}

func printResults(stats *RunStats) {
	tps := float64(stats.CompletedRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)
		sort.Slice(sortedTimes, func(i, j int) bool { return sortedTimes[i] < sortedTimes[j] })

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	fmt.Println("\n================= RUN RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Total Run Time:      %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Requests Per Second: %.2f\n", tps)

	fmt.Println("\n----------------- OUTCOMES -----------------")
	outcomes := make([]string, 0, len(stats.OutcomeCounts))
	for outcome := range stats.OutcomeCounts {
		outcomes = append(outcomes, outcome)
	}
	sort.Strings(outcomes)
	for _, outcome := range outcomes {
		count := stats.OutcomeCounts[outcome]
		fmt.Printf("%-20s: %d (%.1f%%)\n", outcome, count,
			float64(count)/float64(stats.CompletedRequests)*100)
	}

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	fmt.Println("\n----------------- RESOURCE DISTRIBUTION -----------------")
	for resourceID, count := range stats.ResourceStats {
		if count > 0 {
			fmt.Printf("%s: %d requests (%.1f%%)\n", resourceID, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	// Each resource should unlock successfully at most once per credit the
	// user held; everything past that must read as unlocked-for-free repeats.
	fmt.Println("\n================================================")
}
