package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/yamanekazuki/hr-qa-assistant/pkg/knowledge"
)

// kbcheck lints a knowledge base file before deployment: structural
// validation via the loader, plus warnings for entries that will match
// poorly at runtime.
func main() {
	path := flag.String("file", "knowledge_base.yaml", "path to the knowledge base YAML file")
	flag.Parse()

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	store, err := knowledge.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("FAIL"), err)
		os.Exit(1)
	}

	warnings := 0
	for _, item := range store.Items() {
		if len(item.Keywords) == 0 {
			fmt.Printf("%s %s: no keywords, item is only reachable by question overlap\n", yellow("WARN"), item.Id)
			warnings++
		}
		if item.Category == "" {
			fmt.Printf("%s %s: missing category\n", yellow("WARN"), item.Id)
			warnings++
		}
		for _, kw := range item.Keywords {
			if strings.TrimSpace(kw) != kw || kw == "" {
				fmt.Printf("%s %s: keyword %q has leading/trailing whitespace\n", yellow("WARN"), item.Id, kw)
				warnings++
			}
		}
	}

	fmt.Printf("%s %d items, %d warnings (context size %d chars)\n",
		green("OK"), store.Len(), warnings, len([]rune(store.Context())))
}
