package commands

import (
	"fmt"
	"log"
	"os"
	"strings"

	"askpablos-go/lib/askpablos"
	"askpablos-go/lib/configutil"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// cliConfig is read from askpablos.json5 (searched upward from the cwd).
// Environment variables ASKPABLOS_API_KEY / ASKPABLOS_SECRET_KEY override it.
type cliConfig struct {
	ApiKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
	BaseUrl   string `json:"base_url"`
}

var fetchFlags struct {
	params        []string
	headers       []string
	browser       bool
	rotateProxy   bool
	waitForLoad   bool
	screenshot    bool
	jsStrategy    string
	timeout       int
	output        string
	screenshotOut string
	markdown      bool
	showHeaders   bool
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringArrayVarP(&fetchFlags.params, "param", "p", nil, "query parameter as key=value, repeatable")
	fetchCmd.Flags().StringArrayVarP(&fetchFlags.headers, "header", "H", nil, "relayed header as key=value, repeatable")
	fetchCmd.Flags().BoolVar(&fetchFlags.browser, "browser", false, "render the page in a remote headless browser")
	fetchCmd.Flags().BoolVar(&fetchFlags.rotateProxy, "rotate-proxy", false, "route through a rotating proxy IP")
	fetchCmd.Flags().BoolVar(&fetchFlags.waitForLoad, "wait-for-load", false, "wait for page load completion (requires --browser)")
	fetchCmd.Flags().BoolVar(&fetchFlags.screenshot, "screenshot", false, "capture a screenshot (requires --browser)")
	fetchCmd.Flags().StringVar(&fetchFlags.jsStrategy, "js-strategy", "DEFAULT", "JS strategy: DEFAULT, true, false or a service-defined name")
	fetchCmd.Flags().IntVar(&fetchFlags.timeout, "timeout", askpablos.DefaultTimeoutSeconds, "round trip timeout in seconds")
	fetchCmd.Flags().StringVarP(&fetchFlags.output, "output", "o", "", "write the body to a file instead of stdout")
	fetchCmd.Flags().StringVar(&fetchFlags.screenshotOut, "screenshot-out", "screenshot.png", "where to write the captured screenshot")
	fetchCmd.Flags().BoolVar(&fetchFlags.markdown, "markdown", false, "convert an HTML body to markdown before printing")
	fetchCmd.Flags().BoolVar(&fetchFlags.showHeaders, "show-headers", false, "print the target's response headers")
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <url>",
	Short: "Fetch a URL through the proxy and print the result.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := configutil.ReadRecursively[cliConfig]("askpablos.json5")
		if err != nil && !os.IsNotExist(err) {
			log.Fatal(err)
		}
		if v := os.Getenv("ASKPABLOS_API_KEY"); v != "" {
			config.ApiKey = v
		}
		if v := os.Getenv("ASKPABLOS_SECRET_KEY"); v != "" {
			config.SecretKey = v
		}

		client, err := askpablos.NewClient(askpablos.ClientOptions{
			APIKey:    config.ApiKey,
			SecretKey: config.SecretKey,
			BaseURL:   config.BaseUrl,
		})
		if err != nil {
			log.Fatal(err)
		}

		res, err := client.Get(cmd.Context(), args[0], askpablos.GetOptions{
			Params:         parsePairs(fetchFlags.params),
			Headers:        parsePairs(fetchFlags.headers),
			Browser:        fetchFlags.browser,
			RotateProxy:    fetchFlags.rotateProxy,
			WaitForLoad:    fetchFlags.waitForLoad,
			Screenshot:     fetchFlags.screenshot,
			JSStrategy:     parseJsStrategy(fetchFlags.jsStrategy),
			TimeoutSeconds: fetchFlags.timeout,
		})
		if err != nil {
			log.Fatal(err)
		}

		printSummary(res)
		if fetchFlags.showHeaders {
			printHeaders(res.Headers)
		}

		if res.Screenshot != nil {
			err = os.WriteFile(fetchFlags.screenshotOut, res.Screenshot, 0644)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintln(os.Stderr, "screenshot written to", fetchFlags.screenshotOut)
		}

		body := res.Content
		if fetchFlags.markdown {
			converted, err := md.NewConverter("", true, nil).ConvertString(body)
			if err != nil {
				log.Fatal(err)
			}
			body = converted
		}

		if fetchFlags.output != "" {
			err = os.WriteFile(fetchFlags.output, []byte(body), 0644)
			if err != nil {
				log.Fatal(err)
			}
			return
		}
		fmt.Println(body)
	},
}

func parsePairs(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := map[string]string{}
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		out[key] = value
	}
	return out
}

func parseJsStrategy(v string) askpablos.JSStrategy {
	switch strings.ToLower(v) {
	case "", "default":
		return askpablos.JSStrategyDefault
	case "true":
		return askpablos.JSStrategyStealthMinimal
	case "false":
		return askpablos.JSStrategyDisabled
	}
	return askpablos.JSStrategy(v)
}

func printSummary(res *askpablos.ResponseData) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendRow(table.Row{"status", res.StatusCode})
	t.AppendRow(table.Row{"url", res.URL})
	t.AppendRow(table.Row{"elapsed", res.ElapsedTime})
	if res.Encoding != "" {
		t.AppendRow(table.Row{"encoding", res.Encoding})
	}
	t.AppendRow(table.Row{"content bytes", len(res.Content)})
	if title := pageTitle(res.Content); title != "" {
		t.AppendRow(table.Row{"title", title})
	}
	t.Render()
}

func printHeaders(headers map[string]string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"header", "value"})
	for k, v := range headers {
		t.AppendRow(table.Row{k, v})
	}
	t.Render()
}

func pageTitle(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
