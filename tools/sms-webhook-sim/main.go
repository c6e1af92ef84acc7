package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// Local stand-in for an SMS provider webhook. The notification service
// POSTs {"to","body"} here when SMS_PROVIDER=webhook.
func main() {
	var (
		addr     = flag.String("addr", getenv("ADDR", ":9925"), "listen address")
		token    = flag.String("token", getenv("SMS_WEBHOOK_TOKEN", ""), "expected bearer token (empty disables the check)")
		failTo   = flag.String("fail-to", getenv("FAIL_TO", ""), "reject messages whose recipient contains this substring")
	)
	flag.Parse()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if *token != "" && r.Header.Get("Authorization") != "Bearer "+*token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var payload struct {
			To   string `json:"to"`
			Body string `json:"body"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		if *failTo != "" && strings.Contains(payload.To, *failTo) {
			fmt.Printf("rejected to=%s\n", payload.To)
			http.Error(w, "simulated provider failure", http.StatusBadGateway)
			return
		}
		fmt.Printf("sms to=%s body=%q\n", payload.To, payload.Body)
		w.WriteHeader(http.StatusAccepted)
	})

	fmt.Printf("sms webhook sim listening on %s\n", *addr)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
