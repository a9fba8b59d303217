package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "the base URL of the contacts bridge")
	flag.Parse()

	client := resty.New().SetBaseURL(*baseURL).SetTimeout(5 * time.Second)
	totalWaitTime := 0
	for {
		res, err := client.R().Get("/contacts/count")
		if err == nil {
			fmt.Println(res.Status(), res.String())
			if res.StatusCode() == 200 {
				break
			}
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds", totalWaitTime)
		fmt.Println()
		time.Sleep(5 * time.Second)
	}
}
