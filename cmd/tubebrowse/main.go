package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	baseURL := flag.String("server", envOr("TB_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 70*time.Second, "Timeout HTTP")
	limit := flag.Int("limit", 0, "Nombre d'éléments par liste (0: valeur du serveur)")
	region := flag.String("region", "", "Code région (ex: FR)")
	locale := flag.String("locale", "", "Locale (ex: fr_FR)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	client := &http.Client{Timeout: *timeout}
	base := strings.TrimRight(*baseURL, "/") + "/api/v1"

	q := url.Values{}
	if *limit > 0 {
		q.Set("limit", fmt.Sprint(*limit))
	}
	if *region != "" {
		q.Set("region", *region)
	}
	if *locale != "" {
		q.Set("locale", *locale)
	}

	switch args[0] {
	case "health":
		run(client, base+"/health")
	case "version":
		run(client, base+"/version")
	case "browse":
		if len(args) > 1 {
			q.Set("token", args[1])
		}
		run(client, base+"/browse?"+q.Encode())
	case "search":
		if len(args) < 2 {
			usage()
		}
		q.Set("q", strings.Join(args[1:], " "))
		run(client, base+"/search?"+q.Encode())
	case "video":
		if len(args) < 2 {
			usage()
		}
		run(client, base+"/videos/"+url.PathEscape(args[1])+"?"+q.Encode())
	default:
		fmt.Fprintln(os.Stderr, "Commande inconnue:", args[0])
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tubebrowse [health|version|browse [token]|search <query>|video <id>]")
	os.Exit(2)
}

func run(client *http.Client, url string) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
